package hir

// SourceKind distinguishes the two surface dialects a source can hold.
type SourceKind int

const (
	SourceScript SourceKind = iota
	SourceDef
)

// Source is the entity created when a syntax tree is submitted via
// AddSource and destroyed by RemoveSource.
type Source struct {
	URL    string
	Kind   SourceKind
	Module ModuleHandle
}

// SourceByURL returns the handle of the source registered at url, if any.
func (h *Hir) SourceByURL(url string) (SourceHandle, bool) {
	for _, handle := range h.sources.Keys() {
		s := h.sources.MustGet(handle)
		if s.URL == url {
			return handle, true
		}
	}
	return SourceHandle{}, false
}

// Source dereferences handle, panicking if it is null or dangling.
func (h *Hir) Source(handle SourceHandle) *Source { return h.sources.MustGet(handle) }

// SourceOK is the non-panicking counterpart of Source.
func (h *Hir) SourceOK(handle SourceHandle) (*Source, bool) { return h.sources.Get(handle) }
