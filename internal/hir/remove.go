package hir

// RemoveSource deletes source s and everything it built: its symbols and
// their owned scopes, its now-unreferenced non-protected types (with
// dangling Type references falling back to Builtins.Unknown), its entry
// in every module's Sources set, and any non-protected module left with
// an empty Sources set afterward (cascading into that module's scope and
// the Virtual.Module symbols that exposed it). Safe to call with a
// handle that has already been removed, or mid-way through another
// removal: every step checks arena containment before touching a handle.
func (h *Hir) RemoveSource(s SourceHandle) {
	if !h.sources.Contains(s) {
		return
	}
	h.sources.Remove(s)

	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok || !sym.Source.IsPartOf(s) {
			continue
		}
		h.removeSymbol(sh, true)
	}

	for _, th := range h.types.Keys() {
		ty, ok := h.types.Get(th)
		if !ok || ty.Protected || !ty.Source.IsPartOf(s) {
			continue
		}
		h.types.Remove(th)
		for _, other := range h.symbols.Keys() {
			sym, ok := h.symbols.Get(other)
			if ok && sym.Type == th {
				sym.Type = h.Builtins.Unknown
			}
		}
	}

	for _, mh := range h.modules.Keys() {
		m, ok := h.modules.Get(mh)
		if !ok {
			continue
		}
		delete(m.Sources, s)
	}

	for _, mh := range h.modules.Keys() {
		m, ok := h.modules.Get(mh)
		if !ok || m.Protected || len(m.Sources) > 0 {
			continue
		}
		h.removeModule(mh)
	}
}

// removeModule removes mh's scope (transitively) and every Virtual.Module
// symbol anywhere in the arena that points at mh, then mh itself.
func (h *Hir) removeModule(mh ModuleHandle) {
	m, ok := h.modules.Get(mh)
	if !ok {
		return
	}
	h.removeScope(m.Scope)

	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok {
			continue
		}
		if vm, ok := sym.AsVirtualModule(); ok && vm.Module == mh {
			h.removeSymbol(sh, true)
		}
	}

	h.modules.Remove(mh)
}

// removeScope recursively removes every symbol the scope directly owns
// (ordered and hoisted alike) before removing the scope itself. Children
// are not spliced out of this scope's lists individually since the whole
// scope is being discarded.
func (h *Hir) removeScope(sch ScopeHandle) {
	sc, ok := h.scopes.Get(sch)
	if !ok {
		return
	}
	owned := make([]SymbolHandle, 0, len(sc.Symbols)+len(sc.Hoisted))
	owned = append(owned, sc.Symbols...)
	owned = append(owned, sc.Hoisted...)
	for _, sh := range owned {
		h.removeSymbol(sh, false)
	}
	h.scopes.Remove(sch)
}

// removeSymbol removes sh and every scope it owns, recursively. When
// spliceFromParent is set, sh is first unlinked from its ParentScope's
// symbol lists; callers already tearing down the whole parent scope skip
// this since the list is about to be discarded anyway. Sub-expression
// operands (Binary.Lhs, Call.Args, ...) are not walked here: the builder
// adds every one of them directly to an enclosing scope, so they are
// reached and removed as members of that scope's own Symbols/Hoisted list,
// not as struct-field children of this symbol.
func (h *Hir) removeSymbol(sh SymbolHandle, spliceFromParent bool) {
	sym, ok := h.symbols.Get(sh)
	if !ok {
		return
	}

	for _, owned := range ownedScopes(sym.Data) {
		h.removeScope(owned)
	}

	if ref, ok := sym.AsReference(); ok && ref.Target.Kind == RefTargetSymbol {
		pruneBackReference(h, ref.Target.Symbol, sh)
	}

	if spliceFromParent {
		spliceSymbolFromScope(h, sym.ParentScope, sh)
	}

	h.symbols.Remove(sh)
}

// ownedScopes lists the scope handles a SymbolKind payload owns directly,
// i.e. scopes that exist only to hold that symbol's body and are not
// reachable any other way.
func ownedScopes(data SymbolData) []ScopeHandle {
	switch d := data.(type) {
	case *Decl:
		if d.ValueScope.IsNull() {
			return nil
		}
		return []ScopeHandle{d.ValueScope}
	case *Fn:
		return []ScopeHandle{d.Scope}
	case *Import:
		return []ScopeHandle{d.Scope}
	case *Block:
		return []ScopeHandle{d.Scope}
	case *If:
		out := make([]ScopeHandle, 0, len(d.Branches))
		for _, br := range d.Branches {
			out = append(out, br.Scope)
		}
		return out
	case *Loop:
		return []ScopeHandle{d.Scope}
	case *For:
		return []ScopeHandle{d.Scope}
	case *While:
		return []ScopeHandle{d.Scope}
	case *Try:
		out := []ScopeHandle{d.TryScope}
		if !d.CatchScope.IsNull() {
			out = append(out, d.CatchScope)
		}
		return out
	case *Lit:
		return d.InterpolatedScopes
	case *Closure:
		return []ScopeHandle{d.Scope}
	default:
		return nil
	}
}

// pruneBackReference removes ref from target's Fn.References/Decl.References
// set, if target is still live and carries one.
func pruneBackReference(h *Hir, target, ref SymbolHandle) {
	sym, ok := h.symbols.Get(target)
	if !ok {
		return
	}
	switch d := sym.Data.(type) {
	case *Decl:
		delete(d.References, ref)
	case *Fn:
		delete(d.References, ref)
	}
}

// spliceSymbolFromScope removes sh from scope's ordered and hoisted lists,
// if scope is still live. A symbol's ParentScope is only ever the scope
// it was literally added to, never an owned child scope that is itself
// being torn down in the same pass.
func spliceSymbolFromScope(h *Hir, scope ScopeHandle, sh SymbolHandle) {
	sc, ok := h.scopes.Get(scope)
	if !ok {
		return
	}
	sc.Symbols = removeHandle(sc.Symbols, sh)
	sc.Hoisted = removeHandle(sc.Hoisted, sh)
}

func removeHandle(list []SymbolHandle, sh SymbolHandle) []SymbolHandle {
	for i, h := range list {
		if h == sh {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}
