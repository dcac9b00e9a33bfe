package hir

// ScopeParentKind tags the two ways a scope can be nested.
type ScopeParentKind int

const (
	ParentNone ScopeParentKind = iota
	ParentScope
	ParentSym
)

// ScopeParent is the sum type `Parent = Scope(ScopeHandle) | Symbol(SymbolHandle)`.
type ScopeParent struct {
	Kind   ScopeParentKind
	Scope  ScopeHandle
	Symbol SymbolHandle
}

// Scope is a lexical block: an insertion-ordered list of symbols plus an
// unordered set of hoisted declarations, both visible throughout it.
type Scope struct {
	Source  SourceInfo
	Parent  ScopeParent
	Symbols []SymbolHandle // insertion-ordered
	Hoisted []SymbolHandle // order-independent visibility set
}

// IterSymbols returns ordered symbols followed by hoisted ones, per the
// data model's `scope.iter_symbols()` contract.
func (s *Scope) IterSymbols() []SymbolHandle {
	out := make([]SymbolHandle, 0, len(s.Symbols)+len(s.Hoisted))
	out = append(out, s.Symbols...)
	out = append(out, s.Hoisted...)
	return out
}

// Scope dereferences handle, panicking if it is null or dangling.
func (h *Hir) Scope(handle ScopeHandle) *Scope { return h.scopes.MustGet(handle) }

// ScopeOK is the non-panicking counterpart of Scope.
func (h *Hir) ScopeOK(handle ScopeHandle) (*Scope, bool) { return h.scopes.Get(handle) }

// addSymbolToScope sets sym's ParentScope (asserting it was previously
// null) and appends it to scope's ordered or hoisted list.
func (h *Hir) addSymbolToScope(scope ScopeHandle, sym SymbolHandle, hoist bool) {
	symbol := h.symbols.MustGet(sym)
	if !symbol.ParentScope.IsNull() {
		panic("hir: symbol already has a parent scope")
	}
	symbol.ParentScope = scope

	sc := h.scopes.MustGet(scope)
	if hoist {
		sc.Hoisted = append(sc.Hoisted, sym)
	} else {
		sc.Symbols = append(sc.Symbols, sym)
	}
}

// setScopeParent sets scope's parent to the body-owning symbol sym,
// asserting this has not already been done.
func (h *Hir) setScopeParent(scope ScopeHandle, sym SymbolHandle) {
	sc := h.scopes.MustGet(scope)
	if sc.Parent.Kind != ParentNone {
		panic("hir: scope parent already set")
	}
	sc.Parent = ScopeParent{Kind: ParentSym, Symbol: sym}
}

// setScopeParentScope sets scope's parent to an enclosing scope.
func (h *Hir) setScopeParentScope(scope, parent ScopeHandle) {
	sc := h.scopes.MustGet(scope)
	if sc.Parent.Kind != ParentNone {
		panic("hir: scope parent already set")
	}
	sc.Parent = ScopeParent{Kind: ParentScope, Scope: parent}
}
