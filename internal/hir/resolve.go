package hir

import (
	"time"

	"github.com/oklog/ulid"
)

// ResolveAll clears every cross-link the resolver owns and rebuilds them
// from the current arena contents, in the fixed order §4.6 specifies:
// imports, then paths, then bare scope references, then type
// propagation. It is idempotent: running it twice in a row with no
// intervening add_source/remove_source produces byte-identical targets
// and back-reference sets.
func (h *Hir) ResolveAll() {
	runID := ulid.MustNew(ulid.Timestamp(time.Now()), h.entropy).String()
	h.trace("resolve_all.start", map[string]any{"run_id": runID})
	h.ResolveReferences()
	h.ResolveTypes()
	h.trace("resolve_all.done", map[string]any{"run_id": runID})
}

// ResolveReferences runs the import/path/scope-reference passes alone,
// clearing their targets and back-reference sets first. Useful for a
// caller that wants fresh reference edges without paying for a type
// propagation pass it doesn't need yet.
func (h *Hir) ResolveReferences() {
	h.clearCrossLinks()
	h.resolveImports()
	h.resolvePaths()
	h.resolveScopeReferences()
}

// clearCrossLinks resets every resolver-owned field to its pre-resolve
// state: Import.Target, import-alias Decl.Target, Reference.Target (bare
// and path-segment alike), and every Fn/Decl back-reference set.
func (h *Hir) clearCrossLinks() {
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok {
			continue
		}
		switch d := sym.Data.(type) {
		case *Import:
			d.Target = ModuleHandle{}
		case *Decl:
			d.Target = RefTarget{}
			clearRefs(d.References)
		case *Fn:
			clearRefs(d.References)
		case *Reference:
			d.Target = RefTarget{}
		}
	}
}

func clearRefs(refs map[SymbolHandle]struct{}) {
	for k := range refs {
		delete(refs, k)
	}
}

// resolveImports binds each Import symbol's Target (and its alias Decl's
// Target, if any) to the module its import path joins to, relative to
// the URL of the module that contains the Import symbol.
func (h *Hir) resolveImports() {
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok || sym.Kind != SymbolImport {
			continue
		}
		im, _ := sym.AsImport()

		path, ok := h.importPathOf(im.Expr)
		if !ok {
			continue
		}
		baseURL := h.moduleURLContaining(sym)
		resolved, ok := h.resolveImportURL(baseURL, path)
		if !ok {
			continue
		}
		target, ok := h.ModuleByURL(resolved)
		if !ok {
			continue
		}
		im.Target = target

		if im.Alias.IsNull() {
			continue
		}
		if aliasSym, ok := h.SymbolOK(im.Alias); ok {
			if d, ok := aliasSym.AsDecl(); ok {
				d.Target = RefTarget{Kind: RefTargetModule, Module: target}
			}
		}
	}
}

// importPathOf reads the literal string payload of an import's captured
// path expression, if it is (as usual) a string literal.
func (h *Hir) importPathOf(expr SymbolHandle) (string, bool) {
	sym, ok := h.SymbolOK(expr)
	if !ok {
		return "", false
	}
	lit, ok := sym.AsLit()
	if !ok || lit.Value.Kind != ValueString {
		return "", false
	}
	return lit.Value.String, true
}

// moduleURLContaining returns the URL of the module owning the source
// sym was built from.
func (h *Hir) moduleURLContaining(sym *Symbol) string {
	src, ok := h.SourceOK(sym.Source.Source)
	if !ok {
		return ""
	}
	mod, ok := h.ModuleOK(src.Module)
	if !ok {
		return ""
	}
	return mod.URL
}

// resolveImportURL is joinImportURL memoized across resolve passes: a
// given (base, path) pair is joined once and reused until evicted.
func (h *Hir) resolveImportURL(base, path string) (string, bool) {
	key := base + "\x00" + path
	if cached, ok := h.joinCache.Get(key); ok {
		s := cached.(string)
		return s, s != ""
	}
	resolved, err := joinImportURL(base, path)
	if err != nil {
		h.joinCache.SetDefault(key, "")
		return "", false
	}
	h.joinCache.SetDefault(key, resolved)
	return resolved, true
}

// resolvePaths binds each Path symbol's segments left to right: the
// first segment against scope-visible import aliases and virtual-module
// names, then each subsequent segment as an exported top-level symbol of
// the module the previous segment resolved into.
func (h *Hir) resolvePaths() {
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok || sym.Kind != SymbolPath {
			continue
		}
		p, _ := sym.AsPath()
		h.resolvePathSegments(sh, p)
	}
}

func (h *Hir) resolvePathSegments(pathSym SymbolHandle, p *Path) {
	if len(p.Segments) == 0 {
		return
	}
	firstSym, ok := h.SymbolOK(p.Segments[0])
	if !ok {
		return
	}
	firstRef, ok := firstSym.AsReference()
	if !ok {
		return
	}
	cur, ok := h.resolveAliasOrVirtual(pathSym, firstRef.Name)
	if !ok {
		return
	}
	firstRef.Target = RefTarget{Kind: RefTargetModule, Module: cur}

	for i := 1; i < len(p.Segments); i++ {
		segSym, ok := h.SymbolOK(p.Segments[i])
		if !ok {
			return
		}
		segRef, ok := segSym.AsReference()
		if !ok {
			return
		}
		found, ok := h.lookupExported(cur, segRef.Name)
		if !ok {
			return
		}
		segRef.Target = RefTarget{Kind: RefTargetSymbol, Symbol: found}
		if foundSym, ok := h.SymbolOK(found); ok {
			addBackReference(foundSym, p.Segments[i])
			if vm, ok := foundSym.AsVirtualModule(); ok {
				cur = vm.Module
				continue
			}
		}
		if i+1 < len(p.Segments) {
			return // no module to descend into; remaining segments can't resolve
		}
	}
}

// resolveAliasOrVirtual looks for name among the symbols visible from
// fromSym, accepting only an import alias Decl already bound to a module
// or a Virtual.Module symbol.
func (h *Hir) resolveAliasOrVirtual(fromSym SymbolHandle, name string) (ModuleHandle, bool) {
	for _, cand := range h.VisibleSymbolsFromSymbol(fromSym) {
		sym, ok := h.SymbolOK(cand)
		if !ok {
			continue
		}
		if vm, ok := sym.AsVirtualModule(); ok && vm.Name == name {
			return vm.Module, true
		}
		if d, ok := sym.AsDecl(); ok && d.IsImport && d.Name == name && d.Target.Kind == RefTargetModule {
			return d.Target.Module, true
		}
	}
	return ModuleHandle{}, false
}

// lookupExported searches mod's top-level scope (ordered then hoisted)
// for the first symbol named name with Export set, per §4.6.1.
func (h *Hir) lookupExported(mod ModuleHandle, name string) (SymbolHandle, bool) {
	m, ok := h.ModuleOK(mod)
	if !ok {
		return SymbolHandle{}, false
	}
	sc, ok := h.ScopeOK(m.Scope)
	if !ok {
		return SymbolHandle{}, false
	}
	for _, sh := range sc.IterSymbols() {
		sym, ok := h.SymbolOK(sh)
		if !ok {
			continue
		}
		if sym.Export && sym.Name() == name {
			return sh, true
		}
	}
	return SymbolHandle{}, false
}

// resolveScopeReferences binds every bare Reference (one that is not
// part of a path and not a field access) to the first Fn, Decl, or
// Virtual.Module symbol with a matching name visible from its position.
func (h *Hir) resolveScopeReferences() {
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok || sym.Kind != SymbolReference {
			continue
		}
		ref, _ := sym.AsReference()
		if ref.PartOfPath || ref.FieldAccess {
			continue
		}
		for _, cand := range h.VisibleSymbolsFromSymbol(sh) {
			candSym, ok := h.SymbolOK(cand)
			if !ok {
				continue
			}
			if candSym.Kind != SymbolFn && candSym.Kind != SymbolDecl && candSym.Kind != SymbolVirtualModule {
				continue
			}
			if candSym.Name() != ref.Name {
				continue
			}
			ref.Target = RefTarget{Kind: RefTargetSymbol, Symbol: cand}
			addBackReference(candSym, sh)
			break
		}
	}
}

// addBackReference inserts ref into target's Fn.References/Decl.References
// set, lazily allocating it on first use.
func addBackReference(target *Symbol, ref SymbolHandle) {
	switch d := target.Data.(type) {
	case *Decl:
		if d.References == nil {
			d.References = map[SymbolHandle]struct{}{}
		}
		d.References[ref] = struct{}{}
	case *Fn:
		if d.References == nil {
			d.References = map[SymbolHandle]struct{}{}
		}
		d.References[ref] = struct{}{}
	}
}
