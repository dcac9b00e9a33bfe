package hir

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oxhq/rhai-hir/internal/syntax"
)

func mustAdd(t *testing.T, h *Hir, url, src string) SourceHandle {
	t.Helper()
	doc, errs := syntax.Parse(url, src)
	require.Empty(t, errs, "unexpected parse errors for %s", url)
	sh := h.AddSource(url, doc)
	require.False(t, sh.IsNull(), "AddSource dropped %s", url)
	return sh
}

// Scenario 1 (§8): unresolved identifier with a fuzzy suggestion.
func TestUnresolvedReferenceSuggestsName(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///a.rhai", "let apple = 1; print(aple);")
	h.ResolveAll()

	errs := h.ErrorsForSource(src)
	var found *SemanticError
	for i := range errs {
		if errs[i].Code == ErrUnresolvedReference && errs[i].Name == "aple" {
			found = &errs[i]
		}
	}
	require.NotNil(t, found, "expected an UnresolvedReference for 'aple'")
	require.Equal(t, "apple", found.Suggestion)
}

// Scenario 2 (§8): import + path resolution across two sources.
func TestImportAndPathResolution(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///a.rhai", "export const X = 42;")
	mustAdd(t, h, "test:///b.rhai", `import "./a" as a; print(a::X);`)
	h.ResolveAll()

	modA, ok := h.ModuleByURL("test:///a")
	require.True(t, ok)

	var importSym *Symbol
	var pathSym *Symbol
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		switch d := sym.Data.(type) {
		case *Import:
			importSym = sym
			require.Equal(t, modA, d.Target, "import target should be a.rhai's module")
		case *Path:
			pathSym = sym
			_ = d
		}
	}
	require.NotNil(t, importSym, "expected an Import symbol")
	require.NotNil(t, pathSym, "expected a Path symbol for a::X")

	p, _ := pathSym.AsPath()
	require.Len(t, p.Segments, 2)

	firstSeg := h.symbols.MustGet(p.Segments[0])
	firstRef, _ := firstSeg.AsReference()
	require.Equal(t, RefTargetModule, firstRef.Target.Kind)
	require.Equal(t, modA, firstRef.Target.Module)

	secondSeg := h.symbols.MustGet(p.Segments[1])
	secondRef, _ := secondSeg.AsReference()
	require.Equal(t, RefTargetSymbol, secondRef.Target.Kind)

	xSym := h.symbols.MustGet(secondRef.Target.Symbol)
	xDecl, ok := xSym.AsDecl()
	require.True(t, ok)
	require.Equal(t, "X", xDecl.Name)
	require.Contains(t, xDecl.References, p.Segments[1])
}

// Scenario 5 (§8): shadowing — the inner and outer print(x) bind to
// distinct declarations of x.
func TestShadowingBindsToNearestDecl(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///shadow.rhai",
		"let x = 1; { let x = 2; print(x); } print(x);")
	h.ResolveAll()

	var outerDecl, innerDecl SymbolHandle
	var refs []SymbolHandle
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if d, ok := sym.AsDecl(); ok && d.Name == "x" {
			if outerDecl.IsNull() {
				outerDecl = sh
			} else {
				innerDecl = sh
			}
		}
		if ref, ok := sym.AsReference(); ok && ref.Name == "x" {
			refs = append(refs, sh)
		}
	}
	require.False(t, outerDecl.IsNull())
	require.False(t, innerDecl.IsNull())
	require.Len(t, refs, 2)

	innerRef := h.symbols.MustGet(refs[0]).Data.(*Reference)
	outerRef := h.symbols.MustGet(refs[1]).Data.(*Reference)
	require.Equal(t, innerDecl, innerRef.Target.Symbol, "inner print(x) should bind to the shadowed x")
	require.Equal(t, outerDecl, outerRef.Target.Symbol, "outer print(x) should bind to the outer x")
}

// Scenario 6 (§8): operator binding-power defaulting.
func TestOperatorPrecedenceDefaulting(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		powers [2]uint8
	}{
		{"explicit both", "op foo(int, int) -> int precedence(50, 51);", [2]uint8{50, 51}},
		{"left only, R = L+1", "op foo(int, int) -> int precedence(50);", [2]uint8{50, 51}},
		{"absent defaults to (1,2)", "op foo(int, int) -> int;", [2]uint8{1, 2}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := New()
			mustAdd(t, h, "test:///ops.d.rhai", "module static;\n"+tc.src)

			var op *Op
			for _, sh := range h.symbols.Keys() {
				if sym := h.symbols.MustGet(sh); sym.Kind == SymbolOp {
					op, _ = sym.AsOp()
				}
			}
			require.NotNil(t, op)
			require.Equal(t, tc.powers, op.BindingPowers)
		})
	}
}

// Re-running resolve_all twice in a row must produce byte-identical
// targets and back-reference sets (§8's idempotence invariant).
func TestResolveAllIsIdempotent(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///a.rhai", "export const X = 42;")
	mustAdd(t, h, "test:///b.rhai", `import "./a" as a; print(a::X);`)

	h.ResolveAll()
	snapshot := snapshotTargets(h)

	h.ResolveAll()
	require.Equal(t, snapshot, snapshotTargets(h))
}

func snapshotTargets(h *Hir) map[SymbolHandle]RefTarget {
	out := map[SymbolHandle]RefTarget{}
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if ref, ok := sym.AsReference(); ok {
			out[sh] = ref.Target
		}
	}
	return out
}
