// Package hir implements the semantic model: a content-addressed
// repository of sources, modules, scopes, symbols, and types, built
// incrementally from syntax trees and resolved across files.
package hir

import "fmt"

// Handle is an opaque, stable reference into one of the Hir arenas. Its
// zero value is the null sentinel: Index 0, Generation 0 is never
// issued by Arena.Insert, which starts generations at 1.
type Handle[T any] struct {
	Index      uint32
	Generation uint32
}

// IsNull reports whether h is the unset/absent sentinel.
func (h Handle[T]) IsNull() bool { return h.Generation == 0 }

func (h Handle[T]) String() string {
	if h.IsNull() {
		return "<null>"
	}
	return fmt.Sprintf("#%d.%d", h.Index, h.Generation)
}

type (
	SourceHandle = Handle[Source]
	ModuleHandle = Handle[Module]
	ScopeHandle  = Handle[Scope]
	SymbolHandle = Handle[Symbol]
	TypeHandle   = Handle[Type]
)
