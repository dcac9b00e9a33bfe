package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// SourceByURL/Source lookups, plus the cursor-position queries an editor
// host drives directly: SymbolAt, SymbolSelectionAt, ScopeAt, and the two
// visible-symbol queries exposed by scope_iter.go. All of them iterate
// the arena filtered to entities belonging to source and return the one
// with the tightest covering range, per §4.7's range-nesting rule.

// SymbolOf resolves a url/offset pair directly to a symbol handle, or the
// null handle if url isn't a known source or nothing covers offset.
func (h *Hir) SymbolOf(url string, offset syntax.TextSize) SymbolHandle {
	src, ok := h.SourceByURL(url)
	if !ok {
		return SymbolHandle{}
	}
	sh, _ := h.SymbolAt(src, offset, false)
	return sh
}

// SymbolAt returns the symbol belonging to source whose full text_range
// most tightly covers offset.
func (h *Hir) SymbolAt(source SourceHandle, offset syntax.TextSize, inclusive bool) (SymbolHandle, bool) {
	var best SymbolHandle
	var bestRange syntax.TextRange
	found := false
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		if !sym.Source.IsPartOf(source) || !sym.Source.HasTextRange {
			continue
		}
		r := sym.Source.TextRange
		if !r.Contains(offset, inclusive) {
			continue
		}
		if !found || r.Tighter(bestRange) {
			best, bestRange, found = sh, r, true
		}
	}
	return best, found
}

// SymbolSelectionAt is SymbolAt but compares selection ranges (falling
// back to the full range when a symbol has none), used for go-to/highlight
// queries that should key on just the identifier token.
func (h *Hir) SymbolSelectionAt(source SourceHandle, offset syntax.TextSize, inclusive bool) (SymbolHandle, bool) {
	var best SymbolHandle
	var bestRange syntax.TextRange
	found := false
	for _, sh := range h.symbols.Keys() {
		sym := h.symbols.MustGet(sh)
		r, ok := sym.Source.SelectionOrTextRange()
		if !ok || !sym.Source.IsPartOf(source) || !r.Contains(offset, inclusive) {
			continue
		}
		if !found || r.Tighter(bestRange) {
			best, bestRange, found = sh, r, true
		}
	}
	return best, found
}

// ScopeAt returns the scope belonging to source whose own source range
// most tightly covers offset. Scopes anchored to no syntax at all (the
// static module's scope, inline modules) are never returned since they
// have no range to compare.
func (h *Hir) ScopeAt(source SourceHandle, offset syntax.TextSize, inclusive bool) (ScopeHandle, bool) {
	var best ScopeHandle
	var bestRange syntax.TextRange
	found := false
	for _, sch := range h.scopes.Keys() {
		sc := h.scopes.MustGet(sch)
		if !sc.Source.IsPartOf(source) || !sc.Source.HasTextRange {
			continue
		}
		r := sc.Source.TextRange
		if !r.Contains(offset, inclusive) {
			continue
		}
		if !found || r.Tighter(bestRange) {
			best, bestRange, found = sch, r, true
		}
	}
	return best, found
}

// Operators returns every Op symbol in the arena, used by the language
// server to build operator-completion lists.
func (h *Hir) Operators() []SymbolHandle {
	var out []SymbolHandle
	for _, sh := range h.symbols.Keys() {
		if sym := h.symbols.MustGet(sh); sym.Kind == SymbolOp {
			out = append(out, sh)
		}
	}
	return out
}
