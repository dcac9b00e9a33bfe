package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// VisibleSymbolsFromSymbol walks the symbols visible from sym's own
// position: its enclosing scope's ordered symbols in reverse starting
// just before sym, then that scope's hoisted symbols, then ascends
// through enclosing scopes/symbols. Duplicate names across levels are
// expected; pass results through UniqueSymbolName to de-duplicate.
func (h *Hir) VisibleSymbolsFromSymbol(sym SymbolHandle) []SymbolHandle {
	s, ok := h.SymbolOK(sym)
	if !ok {
		return nil
	}
	sc, ok := h.ScopeOK(s.ParentScope)
	if !ok {
		return nil
	}

	var out []SymbolHandle
	if idx := indexOfHandle(sc.Symbols, sym); idx >= 0 {
		for i := idx - 1; i >= 0; i-- {
			out = append(out, sc.Symbols[i])
		}
	}
	out = append(out, sc.Hoisted...)
	out = append(out, h.ascendVisible(sc)...)
	return out
}

// VisibleSymbolsFromOffset walks the symbols visible from a bare byte
// offset in source: the tightest enclosing scope's ordered symbols in
// reverse whose end lies at or before offset, then its hoisted symbols,
// then ascends. With no enclosing scope, the owning module's top-level
// scope is walked the same way in its place.
func (h *Hir) VisibleSymbolsFromOffset(source SourceHandle, offset syntax.TextSize) []SymbolHandle {
	if sch, ok := h.ScopeAt(source, offset, true); ok {
		sc := h.Scope(sch)

		var out []SymbolHandle
		for i := len(sc.Symbols) - 1; i >= 0; i-- {
			sh := sc.Symbols[i]
			sym, ok := h.SymbolOK(sh)
			if ok && sym.Source.HasTextRange && sym.Source.TextRange.End <= offset {
				out = append(out, sh)
			}
		}
		out = append(out, sc.Hoisted...)
		out = append(out, h.ascendVisible(sc)...)
		return out
	}

	src, ok := h.SourceOK(source)
	if !ok {
		return nil
	}
	mod, ok := h.ModuleOK(src.Module)
	if !ok {
		return nil
	}
	sc := h.Scope(mod.Scope)
	var out []SymbolHandle
	for i := len(sc.Symbols) - 1; i >= 0; i-- {
		sh := sc.Symbols[i]
		sym, ok := h.SymbolOK(sh)
		if ok && sym.Source.HasTextRange && sym.Source.TextRange.End <= offset {
			out = append(out, sh)
		}
	}
	out = append(out, sc.Hoisted...)
	out = append(out, h.ascendVisible(sc)...)
	return out
}

// ascendVisible climbs sc's parent chain: a Parent.Scope contributes all
// of that scope's ordered+hoisted symbols and keeps climbing; a
// Parent.Symbol hands off to VisibleSymbolsFromSymbol for that symbol,
// which already folds in everything further out.
func (h *Hir) ascendVisible(sc *Scope) []SymbolHandle {
	switch sc.Parent.Kind {
	case ParentScope:
		parent, ok := h.ScopeOK(sc.Parent.Scope)
		if !ok {
			return nil
		}
		var out []SymbolHandle
		out = append(out, parent.Symbols...)
		out = append(out, parent.Hoisted...)
		out = append(out, h.ascendVisible(parent)...)
		return out
	case ParentSym:
		return h.VisibleSymbolsFromSymbol(sc.Parent.Symbol)
	default:
		return nil
	}
}

func indexOfHandle(list []SymbolHandle, h SymbolHandle) int {
	for i, v := range list {
		if v == h {
			return i
		}
	}
	return -1
}

// UniqueSymbolName returns sym's name for de-duplicating visible-symbol
// results, falling back to the handle's string form for kinds with no
// stable name (so every symbol still dedupes against itself).
func (h *Hir) UniqueSymbolName(sym SymbolHandle) string {
	s, ok := h.SymbolOK(sym)
	if !ok {
		return sym.String()
	}
	if name := s.Name(); name != "" {
		return name
	}
	return sym.String()
}

// DescendantSymbols performs a recursive depth-first walk over everything
// sym's owned scopes and child-symbol slots reach, in the order a
// cross-module lookup would encounter them. The symbol itself is not
// included.
func (h *Hir) DescendantSymbols(sym SymbolHandle) []SymbolHandle {
	s, ok := h.SymbolOK(sym)
	if !ok {
		return nil
	}
	var out []SymbolHandle
	h.appendOwnedChildren(s.Data, &out)
	for _, sch := range ownedScopes(s.Data) {
		h.appendScopeDescendants(sch, &out)
	}
	return out
}

func (h *Hir) appendScopeDescendants(sch ScopeHandle, out *[]SymbolHandle) {
	sc, ok := h.ScopeOK(sch)
	if !ok {
		return
	}
	for _, sh := range sc.IterSymbols() {
		*out = append(*out, sh)
		if sym, ok := h.SymbolOK(sh); ok {
			h.appendOwnedChildren(sym.Data, out)
			for _, child := range ownedScopes(sym.Data) {
				h.appendScopeDescendants(child, out)
			}
		}
	}
}

// appendOwnedChildren appends the struct-field child handles a SymbolKind
// carries directly (as opposed to reaching them through an owned scope),
// e.g. Binary.Lhs/Rhs or Call.Args. Most of these are redundantly reached
// through the enclosing scope's own symbol list too (the builder adds
// them there); recording them here as well keeps DescendantSymbols usable
// from a symbol whose own children aren't all in one owned scope (Path
// segments, in particular, live in the *enclosing* scope, not a scope
// Path owns).
func (h *Hir) appendOwnedChildren(data SymbolData, out *[]SymbolHandle) {
	push := func(handles ...SymbolHandle) {
		for _, hh := range handles {
			if !hh.IsNull() {
				*out = append(*out, hh)
			}
		}
	}
	switch d := data.(type) {
	case *Decl:
		push(d.Value)
	case *Reference:
		push(d.Base)
	case *Path:
		push(d.Segments...)
	case *Import:
		push(d.Expr, d.Alias)
	case *If:
		for _, br := range d.Branches {
			push(br.Cond)
		}
	case *For:
		push(d.Iterable)
	case *While:
		push(d.Cond)
	case *Switch:
		push(d.Target)
		for _, arm := range d.Arms {
			push(arm.Pattern, arm.Guard, arm.Value)
		}
	case *Unary:
		push(d.Operand)
	case *Binary:
		push(d.Lhs, d.Rhs)
	case *IndexExpr:
		push(d.Base, d.Index)
	case *Call:
		push(d.Callee)
		push(d.Args...)
	case *Array:
		push(d.Values...)
	case *Object:
		for _, f := range d.Fields {
			push(f.Value)
		}
	case *Return:
		push(d.Expr)
	case *Break:
		push(d.Expr)
	case *Throw:
		push(d.Expr)
	case *Export:
		push(d.Target)
	}
}
