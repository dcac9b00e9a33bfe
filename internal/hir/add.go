package hir

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/oxhq/rhai-hir/internal/syntax"
)

// builder holds the mutable state threaded through a single AddSource
// call: which source it's populating, under what context shift, and a
// handle back to the Hir being mutated.
type builder struct {
	h      *Hir
	source SourceHandle
	ctx    AddContext
}

// AddSource classifies and inserts a freshly parsed syntax tree. If a
// source already exists for url, it is removed first (C5), per §4.4.
func (h *Hir) AddSource(url string, doc *syntax.Document) SourceHandle {
	return h.AddSourceWithContext(url, doc, AddContext{})
}

// AddSourceWithContext is AddSource with an additive root-offset applied
// to every span synthesized while walking doc (used for embedded
// definitions quoted inside a host document).
func (h *Hir) AddSourceWithContext(srcURL string, doc *syntax.Document, ctx AddContext) SourceHandle {
	if existing, ok := h.SourceByURL(srcURL); ok {
		h.RemoveSource(existing)
	}

	kind := SourceScript
	if doc.Kind == syntax.DialectDef {
		kind = SourceDef
	}

	sourceHandle := h.sources.Insert(Source{URL: srcURL, Kind: kind})
	b := &builder{h: h, source: sourceHandle, ctx: ctx}

	var module ModuleHandle
	ok := true
	if kind == SourceDef {
		module, ok = b.selectDefModule(srcURL, doc.Root)
	} else {
		module = h.ensureURLModule(scriptURL(srcURL))
	}

	if !ok {
		// §9 "Silent failure on unresolved module URL during build": the
		// source is dropped rather than left half-registered.
		h.trace("add_source.dropped", map[string]any{"url": srcURL})
		h.sources.Remove(sourceHandle)
		return SourceHandle{}
	}

	src := h.sources.MustGet(sourceHandle)
	src.Module = module
	h.Module(module).Sources[sourceHandle] = struct{}{}

	if kind == SourceDef {
		b.addDef(doc.Root)
	} else {
		b.addScript(doc.Root)
	}

	return sourceHandle
}

// scriptURL derives the canonical module URL for a script source by
// stripping a trailing `.rhai` extension, per the GLOSSARY's "Script
// URL" definition.
func scriptURL(u string) string {
	if idx := strings.LastIndexByte(u, '.'); idx >= 0 && strings.EqualFold(u[idx:], ".rhai") {
		return u[:idx]
	}
	return u
}

// joinImportURL implements the URL join rule from §6: a `.`-prefixed
// path joins relative to base; anything else must parse as a standalone
// absolute URL.
func joinImportURL(base, path string) (string, error) {
	if strings.HasPrefix(path, ".") {
		b, err := url.Parse(base)
		if err != nil {
			return "", fmt.Errorf("parse base url %q: %w", base, err)
		}
		ref, err := url.Parse(path)
		if err != nil {
			return "", fmt.Errorf("parse relative path %q: %w", path, err)
		}
		return b.ResolveReference(ref).String(), nil
	}
	u, err := url.Parse(path)
	if err != nil {
		return "", fmt.Errorf("parse import path %q: %w", path, err)
	}
	if !u.IsAbs() {
		return "", fmt.Errorf("import path %q is not absolute", path)
	}
	return u.String(), nil
}

// sourceInfo builds a SourceInfo anchored to this builder's source, with
// the full range taken from n (shifted by ctx) and no selection range.
func (b *builder) sourceInfo(n *syntax.Node) SourceInfo {
	if n == nil {
		return SourceInfo{Source: b.source}
	}
	return SourceInfo{
		Source:       b.source,
		HasTextRange: true,
		TextRange:    b.ctx.shift(n.Range),
	}
}

// sourceInfoSel is sourceInfo plus a narrower selection range (typically
// an identifier token) for go-to/highlight.
func (b *builder) sourceInfoSel(full, sel *syntax.Node) SourceInfo {
	si := b.sourceInfo(full)
	if sel != nil {
		si.HasSelectionTextRange = true
		si.SelectionTextRange = b.ctx.shift(sel.Range)
	}
	return si
}

// newScope inserts a fresh scope anchored to n (may be nil for scopes
// with no direct syntax, e.g. the static module's scope).
func (b *builder) newScope(n *syntax.Node) ScopeHandle {
	return b.h.scopes.Insert(Scope{Source: b.sourceInfo(n)})
}

// newSymbol inserts sym into the scope arena... er, symbol arena, with
// source info derived from n, and returns its handle without yet
// attaching it to any scope (callers do that via addSymbolToScope).
func (b *builder) newSymbol(kind SymbolKindTag, data SymbolData, n *syntax.Node) SymbolHandle {
	return b.h.symbols.Insert(Symbol{
		Source: b.sourceInfo(n),
		Kind:   kind,
		Data:   data,
		Type:   b.h.Builtins.Unknown,
	})
}

// newSymbolSel is newSymbol with an explicit selection range.
func (b *builder) newSymbolSel(kind SymbolKindTag, data SymbolData, full, sel *syntax.Node) SymbolHandle {
	return b.h.symbols.Insert(Symbol{
		Source: b.sourceInfoSel(full, sel),
		Kind:   kind,
		Data:   data,
		Type:   b.h.Builtins.Unknown,
	})
}

func (b *builder) add(scope ScopeHandle, sym SymbolHandle, hoist bool) {
	b.h.addSymbolToScope(scope, sym, hoist)
}
