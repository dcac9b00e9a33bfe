package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func parseScript(t *testing.T, src string) *Document {
	t.Helper()
	doc, errs := Parse("test:///a.rhai", src)
	require.Empty(t, errs, "unexpected parse errors for %q", src)
	return doc
}

func TestParseClassifiesScriptVsDef(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let x = 1;")
	require.Empty(t, errs)
	require.Equal(t, DialectScript, doc.Kind)
	require.Equal(t, KindRhai, doc.Root.Kind)

	defDoc, errs := Parse("test:///a.d.rhai", "module foo;\nfn bar(x: int) -> int;")
	require.Empty(t, errs)
	require.Equal(t, DialectDef, defDoc.Kind)
	require.Equal(t, KindRhaiDef, defDoc.Root.Kind)
}

func TestParseLetAndConstStatements(t *testing.T) {
	doc := parseScript(t, "let a = 1; const B = 2;")
	root, ok := CastRhai(doc.Root)
	require.True(t, ok)
	stmts := root.Statements()
	require.Len(t, stmts, 2)
	require.Equal(t, KindLetStmt, stmts[0].Kind)
	require.Equal(t, KindConstStmt, stmts[1].Kind)
}

func TestParseFnWithParamsAndBody(t *testing.T) {
	doc := parseScript(t, "fn add(a, b) { a + b }")
	root, _ := CastRhai(doc.Root)
	stmts := root.Statements()
	require.Len(t, stmts, 1)
	require.Equal(t, KindFnStmt, stmts[0].Kind)

	paramList := stmts[0].FirstChildOfKind(KindParamList)
	require.NotNil(t, paramList)
	pl, ok := CastParamList(paramList)
	require.True(t, ok)
	require.Len(t, pl.Params(), 2)
}

func TestParseImportWithAlias(t *testing.T) {
	doc := parseScript(t, `import "./util" as util;`)
	root, _ := CastRhai(doc.Root)
	stmts := root.Statements()
	require.Len(t, stmts, 1)
	require.Equal(t, KindImportStmt, stmts[0].Kind)

	var toks []*Node
	for _, tok := range stmts[0].Tokens() {
		if !tok.Kind.IsTrivia() {
			toks = append(toks, tok)
		}
	}
	var sawAlias bool
	for i, t := range toks {
		if t.Kind == KindKwAs && i+1 < len(toks) {
			sawAlias = toks[i+1].Kind == KindIdent && toks[i+1].Text() == "util"
		}
	}
	require.True(t, sawAlias, "expected an `as util` alias token pair")
}

func TestParseMultiSegmentPath(t *testing.T) {
	doc := parseScript(t, "foo::bar::baz;")
	root, _ := CastRhai(doc.Root)
	stmts := root.Statements()
	require.Len(t, stmts, 1)

	exprStmt := stmts[0]
	require.Equal(t, KindExprStmt, exprStmt.Kind)
	pathNode := exprStmt.FirstChildOfKind(KindPathExpr)
	require.NotNil(t, pathNode, "expected a path expression")

	p, ok := CastPath(pathNode)
	require.True(t, ok)
	require.Len(t, p.Segments(), 3)
}

func TestParseIfElseExpression(t *testing.T) {
	doc := parseScript(t, "let r = if x { 1 } else { 2 };")
	root, _ := CastRhai(doc.Root)
	letStmt := root.Statements()[0]
	ifNode := letStmt.FirstChildOfKind(KindIfExpr)
	require.NotNil(t, ifNode)

	// The then-branch is a direct BlockExpr child; only the else clause
	// is wrapped in an IfBranch node.
	require.NotNil(t, ifNode.FirstChildOfKind(KindBlockExpr), "expected a then-branch block")
	elseBranches := ifNode.ChildrenOfKind(KindIfBranch)
	require.Len(t, elseBranches, 1)
	require.NotNil(t, elseBranches[0].FirstChildOfKind(KindBlockExpr), "expected an else-branch block")
}

func TestParseRecoversFromSyntaxErrorWithoutPanicking(t *testing.T) {
	doc, errs := Parse("test:///broken.rhai", "let x = ;")
	require.NotEmpty(t, errs, "malformed input should record at least one ParseError")
	require.NotNil(t, doc.Root, "a best-effort tree is still produced")
}

func TestParseDefFileHeaderAndItems(t *testing.T) {
	doc, errs := Parse("test:///foo.d.rhai", `module "./foo";
fn bar(x: int) -> int;
const N = 1;`)
	require.Empty(t, errs)
	def, ok := CastRhaiDef(doc.Root)
	require.True(t, ok)
	require.NotNil(t, def.Header())
	items := def.Items()
	require.Len(t, items, 2)
	require.Equal(t, KindFnStmt, items[0].Kind)
	require.Equal(t, KindConstStmt, items[1].Kind)
}

func TestParseDocCommentsAreFoldedOntoNextItem(t *testing.T) {
	doc := parseScript(t, "/// doubles its input\nfn double(n) { n * 2 }")
	root, _ := CastRhai(doc.Root)
	fnStmt := root.Statements()[0]
	require.Contains(t, Doc(fnStmt), "doubles its input")
}
