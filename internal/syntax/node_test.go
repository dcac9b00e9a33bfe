package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTextRangeLen(t *testing.T) {
	r := TextRange{Start: 4, End: 10}
	require.Equal(t, uint32(6), r.Len())
}

func TestTextRangeContains(t *testing.T) {
	r := TextRange{Start: 4, End: 10}
	require.True(t, r.Contains(4, false))
	require.False(t, r.Contains(10, false))
	require.True(t, r.Contains(10, true))
	require.False(t, r.Contains(3, false))
}

func TestTextRangeCovers(t *testing.T) {
	outer := TextRange{Start: 0, End: 20}
	inner := TextRange{Start: 4, End: 10}
	require.True(t, outer.Covers(inner))
	require.False(t, inner.Covers(outer))
	require.True(t, outer.Covers(outer))
}

func TestTextRangeTighter(t *testing.T) {
	a := TextRange{Start: 4, End: 10}
	b := TextRange{Start: 2, End: 12}
	require.True(t, a.Tighter(b))
	require.False(t, b.Tighter(a))
	require.False(t, a.Tighter(a), "a range is not tighter than itself")

	c := TextRange{Start: 4, End: 12}
	require.True(t, c.Tighter(b), "sharing one endpoint with a strict improvement on the other is tighter")
}

func TestNodeTextSlicesFromOwningDocument(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let x = 1;")
	require.Empty(t, errs)
	require.Equal(t, "let x = 1;", doc.Root.Text())
}

func TestNodeTextOnNilIsEmpty(t *testing.T) {
	var n *Node
	require.Equal(t, "", n.Text())
}

func TestNodeChildrenForwardAndReverse(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let a = 1; let b = 2; let c = 3;")
	require.Empty(t, errs)
	root, ok := CastRhai(doc.Root)
	require.True(t, ok)
	stmts := root.Statements()
	require.Len(t, stmts, 3)

	fwd := doc.Root.ChildrenForward()
	rev := doc.Root.ChildrenReverse()
	require.Len(t, rev, len(fwd))
	for i, c := range fwd {
		require.Same(t, c, rev[len(rev)-1-i])
	}
}

func TestNodeTokensAndNodeChildrenPartitionChildren(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let x = 1;")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	letStmt := root.Statements()[0]

	toks := letStmt.Tokens()
	nodes := letStmt.NodeChildren()
	require.Equal(t, letStmt.NChildren(), len(toks)+len(nodes))
	for _, tok := range toks {
		require.True(t, tok.Kind.IsToken())
	}
	for _, n := range nodes {
		require.False(t, n.Kind.IsToken())
	}
}

func TestNodeFirstChildOfKindAndChildrenOfKind(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "fn add(a, b, c) { a }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	fnStmt := root.Statements()[0]

	paramList := fnStmt.FirstChildOfKind(KindParamList)
	require.NotNil(t, paramList)

	pl, ok := CastParamList(paramList)
	require.True(t, ok)
	require.Len(t, pl.Params(), 3)

	require.Nil(t, fnStmt.FirstChildOfKind(KindImportStmt))
	require.Empty(t, fnStmt.ChildrenOfKind(KindImportStmt))
}

func TestNodeDescendantsIsPreOrder(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let x = 1;")
	require.Empty(t, errs)
	all := doc.Root.Descendants()
	require.NotEmpty(t, all)
	require.Same(t, doc.Root, all[0], "the root itself is the first descendant")

	for _, n := range all {
		require.Same(t, doc, sourceOf(n), "every descendant is attached to the parsed document")
	}
}

func TestNodeDescendantsRevVisitsChildrenBackwards(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let a = 1; let b = 2;")
	require.Empty(t, errs)

	fwd := doc.Root.Descendants()
	rev := doc.Root.DescendantsRev()
	require.Equal(t, len(fwd), len(rev))
	require.Same(t, doc.Root, rev[0])

	// The two root-level let statements must appear in opposite order.
	root, _ := CastRhai(doc.Root)
	stmts := root.Statements()
	require.Len(t, stmts, 2)

	fwdIdx := indexOfNode(fwd, stmts[1])
	revIdx := indexOfNode(rev, stmts[1])
	require.Less(t, indexOfNode(fwd, stmts[0]), fwdIdx)
	require.Less(t, revIdx, indexOfNode(rev, stmts[0]))
}

// sourceOf exposes a node's owning document for test assertions without
// adding a public accessor that nothing else needs.
func sourceOf(n *Node) *Document { return n.source }

func indexOfNode(nodes []*Node, target *Node) int {
	for i, n := range nodes {
		if n == target {
			return i
		}
	}
	return -1
}
