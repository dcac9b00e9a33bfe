package hir

import "github.com/google/uuid"

// ModuleKind distinguishes the three ways a module can come to exist.
type ModuleKind int

const (
	// ModuleStatic is the unique ambient module at the top of the URL
	// namespace.
	ModuleStatic ModuleKind = iota
	// ModuleURL is a normal module keyed by its canonical URL.
	ModuleURL
	// ModuleInline is nested inside a definition file and only reachable
	// through a virtual module symbol.
	ModuleInline
)

const staticModuleURL = "static://"

// Module groups one or more sources under a shared scope.
type Module struct {
	Kind      ModuleKind
	URL       string // canonical URL for ModuleURL; synthetic key otherwise
	Scope     ScopeHandle
	Sources   map[SourceHandle]struct{}
	Protected bool
	Docs      string
}

func newModule(kind ModuleKind, url string) *Module {
	return &Module{Kind: kind, URL: url, Sources: map[SourceHandle]struct{}{}}
}

// Module dereferences handle, panicking if it is null or dangling.
func (h *Hir) Module(handle ModuleHandle) *Module { return h.modules.MustGet(handle) }

// ModuleOK is the non-panicking counterpart of Module.
func (h *Hir) ModuleOK(handle ModuleHandle) (*Module, bool) { return h.modules.Get(handle) }

// ModuleByURL returns the handle of the Url(u) module for u, if one has
// been created. At most one such module may exist at a time.
func (h *Hir) ModuleByURL(url string) (ModuleHandle, bool) {
	for _, handle := range h.modules.Keys() {
		m := h.modules.MustGet(handle)
		if m.Kind != ModuleInline && m.URL == url {
			return handle, true
		}
	}
	return ModuleHandle{}, false
}

// ensureURLModule finds or creates a Url module for url, parented to the
// static module's scope, per §4.4's module-selection rule.
func (h *Hir) ensureURLModule(url string) ModuleHandle {
	if existing, ok := h.ModuleByURL(url); ok {
		return existing
	}
	m := newModule(ModuleURL, url)
	scope := &Scope{Parent: ScopeParent{Kind: ParentNone}}
	m.Scope = h.scopes.Insert(*scope)
	handle := h.modules.Insert(*m)

	staticScope := h.Module(h.StaticModule).Scope
	h.setScopeParentScope(m.Scope, staticScope)
	h.registerVirtualModule(staticScope, url, handle)
	return handle
}

// newInlineModule allocates an Inline module with a synthetic key, used
// by definition files' nested `module X { ... }` blocks.
func (h *Hir) newInlineModule() ModuleHandle {
	m := newModule(ModuleInline, "rhai-inline://"+uuid.NewString())
	scope := &Scope{Parent: ScopeParent{Kind: ParentNone}}
	m.Scope = h.scopes.Insert(*scope)
	return h.modules.Insert(*m)
}

// registerVirtualModule adds a deduplicated Virtual.Module symbol for
// target under name, to scope, unless one already exists there.
func (h *Hir) registerVirtualModule(scope ScopeHandle, name string, target ModuleHandle) {
	sc := h.scopes.MustGet(scope)
	for _, existing := range append(append([]SymbolHandle{}, sc.Symbols...), sc.Hoisted...) {
		sym := h.symbols.MustGet(existing)
		if vm, ok := sym.Data.(*VirtualModule); ok && vm.Name == name && vm.Module == target {
			return
		}
	}
	sym := &Symbol{Kind: SymbolVirtualModule, Data: &VirtualModule{Name: name, Module: target}, Export: true}
	symHandle := h.symbols.Insert(*sym)
	h.addSymbolToScope(scope, symHandle, true)
}
