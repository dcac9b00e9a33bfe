package hir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// Scenario 4 (§8): an inline `module inner { ... }` declared inside a
// definition file surfaces as a Virtual.Module symbol, and a script that
// imports the outer module can reach the inline module's declarations
// through a fully-qualified path.
func TestInlineModuleResolvableThroughImport(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///foo.d.rhai",
		`module foo;
		module inner {
			fn bar(x: int) -> int;
		}`)
	mustAdd(t, h, "test:///use.rhai",
		`import "static://foo" as foo; print(foo::inner::bar(1));`)
	h.ResolveAll()

	var innerVM *Symbol
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if vm, ok := sym.AsVirtualModule(); ok && vm.Name == "inner" {
			innerVM = sym
		}
	}
	require.NotNil(t, innerVM, "expected a Virtual.Module symbol named 'inner'")
	require.True(t, innerVM.Export, "an inline module must be visible to importers")

	var pathSym *Symbol
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if p, ok := sym.AsPath(); ok && len(p.Segments) == 3 {
			pathSym = sym
		}
	}
	require.NotNil(t, pathSym, "expected the foo::inner::bar path symbol")

	p, _ := pathSym.AsPath()
	lastSeg := h.symbols.MustGet(p.Segments[2])
	lastRef, ok := lastSeg.AsReference()
	require.True(t, ok)
	require.Equal(t, RefTargetSymbol, lastRef.Target.Kind)

	barSym := h.symbols.MustGet(lastRef.Target.Symbol)
	barFn, ok := barSym.AsFn()
	require.True(t, ok)
	require.Equal(t, "bar", barFn.Name)
}
