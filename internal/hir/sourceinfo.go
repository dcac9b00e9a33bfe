package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// SourceInfo anchors an entity to the source text it was built from: a
// full construct range plus an optional narrower "selection" range
// (typically a single identifier token) used for go-to/highlight.
type SourceInfo struct {
	Source SourceHandle

	HasTextRange bool
	TextRange    syntax.TextRange

	HasSelectionTextRange bool
	SelectionTextRange    syntax.TextRange
}

// SelectionOrTextRange returns the selection range when present,
// otherwise falling back to the full construct range.
func (si SourceInfo) SelectionOrTextRange() (syntax.TextRange, bool) {
	if si.HasSelectionTextRange {
		return si.SelectionTextRange, true
	}
	if si.HasTextRange {
		return si.TextRange, true
	}
	return syntax.TextRange{}, false
}

// IsPartOf reports whether this entity was built from source s.
func (si SourceInfo) IsPartOf(s SourceHandle) bool {
	return si.Source == s
}
