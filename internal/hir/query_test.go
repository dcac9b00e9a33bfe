package hir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// SymbolAt must return the most tightly nested symbol covering offset,
// not merely the first one that happens to contain it.
func TestSymbolAtReturnsTightestRange(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///tight.rhai", "let total = 1 + 2;")
	h.ResolveAll()

	// Offset inside the literal "2" should resolve to the Lit symbol for
	// 2, not the enclosing Binary or the enclosing Decl.
	text := "let total = 1 + 2;"
	offset := uint32(len(text) - 2) // points at '2'

	sh, ok := h.SymbolAt(src, offset, false)
	require.True(t, ok)
	sym := h.symbols.MustGet(sh)
	require.Equal(t, SymbolLit, sym.Kind)
}

// Repeated cursor queries at the same offset must return the same
// symbol every time (§8's query-stability invariant).
func TestSymbolAtIsStableAcrossRepeatedQueries(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///stable.rhai", "let x = 1; print(x);")
	h.ResolveAll()

	offset := uint32(18) // inside the print(x) reference
	first, firstOK := h.SymbolAt(src, offset, false)
	for i := 0; i < 10; i++ {
		again, ok := h.SymbolAt(src, offset, false)
		require.Equal(t, firstOK, ok)
		require.Equal(t, first, again)
	}
}

// ScopeAt should find the block scope, not the outer script scope, for
// an offset inside a nested block.
func TestScopeAtFindsInnermostBlock(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///scope.rhai", "let x = 1; { let y = 2; }")
	h.ResolveAll()

	text := "let x = 1; { let y = 2; }"
	offset := uint32(len(text) - 3) // inside the inner block, at the ";" after "2"

	sch, ok := h.ScopeAt(src, offset, false)
	require.True(t, ok)
	sc := h.scopes.MustGet(sch)
	require.Equal(t, ParentSym, sc.Parent.Kind, "the inner block's scope should be parented to its Block symbol")
}

// VisibleSymbolsFromOffset queried right after a let binding must
// include that binding but not ones declared later in the same scope.
func TestVisibleSymbolsFromOffsetRespectsDeclarationOrder(t *testing.T) {
	h := New()
	src := mustAdd(t, h, "test:///order.rhai", "let a = 1; let b = 2;")
	h.ResolveAll()

	text := "let a = 1; let b = 2;"
	midpoint := uint32(len("let a = 1;"))

	visible := h.VisibleSymbolsFromOffset(src, midpoint)
	var names []string
	for _, sh := range visible {
		if sym, ok := h.SymbolOK(sh); ok {
			if name := sym.Name(); name != "" {
				names = append(names, name)
			}
		}
	}
	require.Contains(t, names, "a")
	require.NotContains(t, names, "b")
	_ = text
}
