package syntax

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRhaiStatementsExcludesTrivia(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "// leading comment\nlet x = 1;")
	require.Empty(t, errs)
	root, ok := CastRhai(doc.Root)
	require.True(t, ok)
	require.Len(t, root.Statements(), 1)
}

func TestCastRhaiRejectsWrongKind(t *testing.T) {
	doc, errs := Parse("test:///a.d.rhai", "module foo;")
	require.Empty(t, errs)
	_, ok := CastRhai(doc.Root)
	require.False(t, ok, "a def-file root is not a Rhai script root")
}

func TestRhaiDefHeaderAndItemsExcludeEachOther(t *testing.T) {
	doc, errs := Parse("test:///a.d.rhai", `module "./a";
const N = 1;`)
	require.Empty(t, errs)
	def, ok := CastRhaiDef(doc.Root)
	require.True(t, ok)

	header := def.Header()
	require.NotNil(t, header)
	require.Equal(t, KindModuleDeclStmt, header.Kind)

	items := def.Items()
	require.Len(t, items, 1)
	require.NotEqual(t, KindModuleDeclStmt, items[0].Kind)
}

func TestCastPathSegments(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "a::b::c;")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	exprStmt := root.Statements()[0]
	pathNode := exprStmt.FirstChildOfKind(KindPathExpr)
	require.NotNil(t, pathNode)

	p, ok := CastPath(pathNode)
	require.True(t, ok)
	segs := p.Segments()
	require.Len(t, segs, 3)
	require.Equal(t, "a", segs[0].Text())
	require.Equal(t, "c", segs[2].Text())
}

func TestCastPathRejectsWrongKind(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let x = 1;")
	require.Empty(t, errs)
	_, ok := CastPath(doc.Root)
	require.False(t, ok)
}

func TestParamListAndParamName(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "fn add(a: int, b) { a + b }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	fnStmt := root.Statements()[0]
	paramList := fnStmt.FirstChildOfKind(KindParamList)
	pl, ok := CastParamList(paramList)
	require.True(t, ok)

	params := pl.Params()
	require.Len(t, params, 2)
	require.Equal(t, "a", ParamName(params[0]))
	require.Equal(t, "b", ParamName(params[1]))
}

func TestParamNameOnNilIsEmpty(t *testing.T) {
	require.Equal(t, "", ParamName(nil))
}

func TestArmsReturnsSwitchArms(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", `switch x {
	1 => "one",
	2 if y => "two",
}`)
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	exprStmt := root.Statements()[0]
	switchExpr := exprStmt.FirstChildOfKind(KindSwitchExpr)
	require.NotNil(t, switchExpr)

	arms := Arms(switchExpr)
	require.Len(t, arms, 2)
	require.Equal(t, KindSwitchArm, arms[0].Kind)
}

func TestArmsOnNilIsEmpty(t *testing.T) {
	require.Nil(t, Arms(nil))
}

func TestCastLitStrTemplateSegmentsAndInterpolations(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "let greeting = `hi ${name}!`;")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	letStmt := root.Statements()[0]
	tmplNode := letStmt.FirstChildOfKind(KindLitStrTemplateExpr)
	require.NotNil(t, tmplNode, "expected a string template expression")

	tmpl, ok := CastLitStrTemplate(tmplNode)
	require.True(t, ok)

	segs := tmpl.Segments()
	require.Len(t, segs, 2)
	require.Equal(t, "hi ", segs[0].Text())
	require.Equal(t, "!", segs[1].Text())

	interp := tmpl.Interpolations()
	require.Len(t, interp, 1)
}

func TestCastLitStrTemplateRejectsPlainString(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", `let x = "plain";`)
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	letStmt := root.Statements()[0]
	litNode := letStmt.FirstChildOfKind(KindLitExpr)
	_, ok := CastLitStrTemplate(litNode)
	require.False(t, ok)
}

func TestDocFoldsConsecutiveLineDocComments(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "/// first line\n/// second line\nfn f() { 1 }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	fnStmt := root.Statements()[0]
	require.Equal(t, "first line\nsecond line", Doc(fnStmt))
}

func TestDocFoldsBlockDocComment(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "/**\n * multi\n * line\n */\nfn f() { 1 }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	fnStmt := root.Statements()[0]
	got := Doc(fnStmt)
	require.Contains(t, got, "multi")
	require.Contains(t, got, "line")
}

func TestDocIsEmptyWithoutPrecedingComment(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "fn f() { 1 }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	require.Equal(t, "", Doc(root.Statements()[0]))
}

func TestDocOnNilIsEmpty(t *testing.T) {
	require.Equal(t, "", Doc(nil))
}

func TestDocStopsAtNonDocComment(t *testing.T) {
	doc, errs := Parse("test:///a.rhai", "// not a doc comment\nfn f() { 1 }")
	require.Empty(t, errs)
	root, _ := CastRhai(doc.Root)
	require.Equal(t, "", Doc(root.Statements()[0]))
}
