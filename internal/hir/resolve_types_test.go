package hir

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func declType(t *testing.T, h *Hir, name string) *Type {
	t.Helper()
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if d, ok := sym.AsDecl(); ok && d.Name == name {
			return h.Type(sym.Type)
		}
	}
	t.Fatalf("no decl named %q", name)
	return nil
}

func TestResolveTypesLiteralsAndDecl(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///lit.rhai", `let n = 1; let s = "x"; let b = true;`)
	h.ResolveAll()

	require.Equal(t, TypeInt, declType(t, h, "n").Kind)
	require.Equal(t, TypeString, declType(t, h, "s").Kind)
	require.Equal(t, TypeBool, declType(t, h, "b").Kind)
}

func TestResolveTypesArrayAndUnion(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///arr.rhai", "let xs = [1, 2, 3];")
	h.ResolveAll()

	arrTy := declType(t, h, "xs")
	require.Equal(t, TypeArray, arrTy.Kind)
	items := h.Type(arrTy.ArrayItems)
	require.Equal(t, TypeInt, items.Kind, "a homogeneous int array should collapse to a single Int item type")
}

func TestResolveTypesBlockTail(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///tail.rhai", "let r = { 1; 2; 3 };")
	h.ResolveAll()

	// The block's value is the type of its last statement.
	require.Equal(t, TypeInt, declType(t, h, "r").Kind)
}

func TestResolveTypesEmptyBlockIsVoid(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///empty.rhai", "let r = {};")
	h.ResolveAll()

	require.Equal(t, TypeVoid, declType(t, h, "r").Kind)
}

func TestResolveTypesFnReturnFromTailExpression(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///fn.rhai", "fn identity(n) { n } let r = identity(1);")
	h.ResolveAll()

	// identity's inferred return type is whatever its tail expression's
	// type resolves to; since n is an untyped param, n's (and thus
	// identity(1)'s call) type is Unknown rather than Int.
	callTy := declType(t, h, "r")
	require.Equal(t, TypeUnknown, callTy.Kind)
}

func TestResolveTypesObjectFields(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///obj.rhai", `let o = #{ a: 1, b: "x" };`)
	h.ResolveAll()

	objTy := declType(t, h, "o")
	require.Equal(t, TypeObject, objTy.Kind)
	require.Len(t, objTy.Fields, 2)
	byName := map[string]TypeHandle{}
	for _, f := range objTy.Fields {
		byName[f.Name] = f.Type
	}
	require.Equal(t, TypeInt, h.Type(byName["a"]).Kind)
	require.Equal(t, TypeString, h.Type(byName["b"]).Kind)
}

// Re-running resolve_all must not keep growing the type arena for the
// same composite (Array/Object/Fn) declarations.
func TestResolveTypesDoesNotGrowArenaAcrossReRuns(t *testing.T) {
	h := New()
	mustAdd(t, h, "test:///stable.rhai", "let xs = [1, 2, 3]; fn f(n) { n }")
	h.ResolveAll()
	countAfterFirst := h.types.Len()

	h.ResolveAll()
	h.ResolveAll()
	require.Equal(t, countAfterFirst, h.types.Len())
}
