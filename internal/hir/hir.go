package hir

import (
	"math/rand"
	"time"

	cache "github.com/patrickmn/go-cache"
)

// Tracer receives best-effort diagnostic breadcrumbs from the builder
// and resolver (e.g. "dropped definition file: unresolved module URL").
// A nil Tracer disables tracing entirely; it is never required for
// correctness.
type Tracer interface {
	Trace(event string, fields map[string]any)
}

// Hir is the root container: it owns the five arenas plus the singleton
// handles named in §3 (static module, virtual source, builtin types).
// It is a single-owner data structure: every mutating method requires
// exclusive access, and queries never mutate.
type Hir struct {
	sources *Arena[Source]
	modules *Arena[Module]
	scopes  *Arena[Scope]
	symbols *Arena[Symbol]
	types   *Arena[Type]

	// StaticModule is the unique ambient root module, protected and
	// never removed.
	StaticModule ModuleHandle
	// VirtualSource is a sourceless placeholder used to anchor entities
	// (like the static module's scope) that aren't owned by any real
	// source.
	VirtualSource SourceHandle
	Builtins      builtinTypes

	tracer Tracer

	// joinCache memoizes resolveImportURL's URL-join computation across
	// resolve passes; import graphs tend to reuse the same base/path
	// pairs every time resolve_all reruns after an unrelated edit.
	joinCache *cache.Cache
	// entropy backs the per-run id stamped onto trace events emitted by
	// ResolveAll, so a host correlating logs can tell two resolve runs
	// apart even when they land in the same millisecond.
	entropy *rand.Rand
}

// New constructs an empty Hir with its static module and builtin types
// already in place.
func New() *Hir {
	h := &Hir{
		sources: newArena[Source](),
		modules: newArena[Module](),
		scopes:  newArena[Scope](),
		symbols: newArena[Symbol](),
		types:   newArena[Type](),
	}
	h.initBuiltinTypes()
	h.joinCache = cache.New(5*time.Minute, 10*time.Minute)
	h.entropy = rand.New(rand.NewSource(time.Now().UnixNano()))

	h.VirtualSource = h.sources.Insert(Source{URL: "hir://virtual", Kind: SourceDef})

	staticScope := h.scopes.Insert(Scope{Parent: ScopeParent{Kind: ParentNone}})
	h.StaticModule = h.modules.Insert(Module{
		Kind:      ModuleStatic,
		URL:       staticModuleURL,
		Scope:     staticScope,
		Sources:   map[SourceHandle]struct{}{},
		Protected: true,
	})
	return h
}

// SetTracer installs (or clears, with nil) the diagnostic tracer.
func (h *Hir) SetTracer(t Tracer) { h.tracer = t }

func (h *Hir) trace(event string, fields map[string]any) {
	if h.tracer != nil {
		h.tracer.Trace(event, fields)
	}
}

// SourceCount, ModuleCount, ScopeCount, SymbolCount, TypeCount expose
// arena sizes, used by the round-trip/idempotence tests in §8.
func (h *Hir) SourceCount() int { return h.sources.Len() }
func (h *Hir) ModuleCount() int { return h.modules.Len() }
func (h *Hir) ScopeCount() int  { return h.scopes.Len() }
func (h *Hir) SymbolCount() int { return h.symbols.Len() }
func (h *Hir) TypeCount() int   { return h.types.Len() }
