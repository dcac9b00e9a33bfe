package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// selectDefModule picks the module a definition file's declarations land
// in, per the header's optional `module <static|"url"|ident>;` form: no
// header uses the source's own script URL module; an empty `module;`
// defaults to Static; `static` is explicit Static;
// a quoted path resolves relative to srcURL via the same join rule as
// imports; a bare identifier names a virtual Url module keyed under the
// static namespace. Returns ok=false only when a quoted path fails to
// resolve, signaling the caller to drop the source per §9.
func (b *builder) selectDefModule(srcURL string, root *syntax.Node) (ModuleHandle, bool) {
	def, ok := syntax.CastRhaiDef(root)
	if !ok {
		return b.h.ensureURLModule(scriptURL(srcURL)), true
	}
	header := def.Header()
	if header == nil {
		return b.h.ensureURLModule(scriptURL(srcURL)), true
	}

	for _, t := range header.Tokens() {
		switch t.Kind {
		case syntax.KindKwStatic:
			return b.h.StaticModule, true
		case syntax.KindLitStr:
			text := t.Text()
			body := text
			if len(text) >= 2 {
				body = text[1 : len(text)-1]
			}
			resolved, err := joinImportURL(srcURL, body)
			if err != nil {
				return ModuleHandle{}, false
			}
			return b.h.ensureURLModule(resolved), true
		case syntax.KindIdent:
			return b.h.ensureURLModule(staticModuleURL + t.Text()), true
		}
	}
	// `module;` with no name: defaults to Static.
	return b.h.StaticModule, true
}

// addDef walks a definition file's top-level items (skipping its header,
// already consumed by selectDefModule) into the owning module's scope.
func (b *builder) addDef(root *syntax.Node) {
	def, ok := syntax.CastRhaiDef(root)
	if !ok {
		return
	}
	src := b.h.Source(b.source)
	mod := b.h.Module(src.Module)
	scope := mod.Scope
	for _, item := range def.Items() {
		b.walkDefItem(item, scope)
	}
}

// walkDefItem builds and registers one definition-file declaration. Like
// script functions, fn signatures hoist, and so do inline modules;
// everything else is ordered. A
// definition file has no `export` keyword of its own — every top-level
// item it declares is, by construction, part of the module's public
// surface, so each is marked Export unconditionally (unlike script-file
// declarations, which stay private unless explicitly exported).
func (b *builder) walkDefItem(n *syntax.Node, scope ScopeHandle) {
	if n == nil {
		return
	}
	var sym SymbolHandle
	hoist := false
	switch n.Kind {
	case syntax.KindFnStmt:
		sym, hoist = b.buildDefFn(n), true
	case syntax.KindOpStmt:
		sym = b.buildOp(n)
	case syntax.KindLetStmt, syntax.KindConstStmt:
		sym = b.buildLetConst(n, scope)
	case syntax.KindTypeDeclStmt:
		sym = b.buildTypeDecl(n)
	case syntax.KindInlineModuleStmt:
		sym, hoist = b.buildInlineModule(n), true
	default:
		return
	}
	b.h.Symbol(sym).Export = true
	b.add(scope, sym, hoist)
}

// buildDefFn builds a bodyless function signature: name, typed
// parameters, and return type, with no statements to walk.
func (b *builder) buildDefFn(n *syntax.Node) SymbolHandle {
	nameTok := firstToken(n, syntax.KindIdent)
	paramListNode := n.FirstChildOfKind(syntax.KindParamList)
	retTyTok := tokenAfterMarker(n, syntax.KindThinArrow, syntax.KindIdent)

	fnScope := b.newScope(n)
	f := &Fn{
		Name:  identText(nameTok),
		Docs:  syntax.Doc(n),
		Scope: fnScope,
		RetTy: b.h.Builtins.Unknown,
		IsDef: true,
	}
	f.Getter, f.Setter = fnGetterSetter(f.Name)
	if retTyTok != nil {
		f.RetTy = b.resolveTypeName(identText(retTyTok))
	}
	sym := b.newSymbolSel(SymbolFn, f, n, nameTok)
	b.h.setScopeParent(fnScope, sym)

	if paramListNode != nil {
		pl, _ := syntax.CastParamList(paramListNode)
		for _, p := range pl.Params() {
			pd := &Decl{Name: syntax.ParamName(p), IsParam: true, TyDecl: b.paramTypeOrUnknown(p)}
			b.add(fnScope, b.newSymbol(SymbolDecl, pd, p), false)
		}
	}
	return sym
}

func (b *builder) paramTypeOrUnknown(p *syntax.Node) TypeHandle {
	ta := p.FirstChildOfKind(syntax.KindTypeAnnotation)
	if ta == nil {
		return b.h.Builtins.Unknown
	}
	return b.resolveTypeName(typeAnnotationName(ta))
}

// buildOp builds `op name(lhsTy[, rhsTy]) -> retTy [precedence(L[,R])];`.
// Binding powers default to (1,2) when the clause is omitted entirely,
// and to (L, L+1) (saturating) when only the left power is given.
func (b *builder) buildOp(n *syntax.Node) SymbolHandle {
	toks := n.Tokens()
	var nameTok *syntax.Node
	if len(toks) > 1 {
		nameTok = toks[1]
	}
	retTyTok := tokenAfterMarker(n, syntax.KindThinArrow, syntax.KindIdent)
	precNode := n.FirstChildOfKind(syntax.KindPrecedenceClause)

	op := &Op{
		Name:  identText(nameTok),
		Docs:  syntax.Doc(n),
		RetTy: b.h.Builtins.Unknown,
	}
	if retTyTok != nil {
		op.RetTy = b.resolveTypeName(identText(retTyTok))
	}

	if paramListNode := n.FirstChildOfKind(syntax.KindParamList); paramListNode != nil {
		pl, _ := syntax.CastParamList(paramListNode)
		params := pl.Params()
		if len(params) > 0 {
			op.LhsTy = b.paramTypeOrUnknown(params[0])
		}
		if len(params) > 1 {
			op.RhsTy = b.paramTypeOrUnknown(params[1])
		}
	}

	op.BindingPowers = defaultBindingPowers(precNode)
	return b.newSymbolSel(SymbolOp, op, n, nameTok)
}

func defaultBindingPowers(precNode *syntax.Node) [2]uint8 {
	if precNode == nil {
		return [2]uint8{1, 2}
	}
	ints := precNode.ChildrenOfKind(syntax.KindLitInt)
	if len(ints) == 0 {
		return [2]uint8{1, 2}
	}
	l := parseUint8(ints[0].Text())
	if len(ints) > 1 {
		return [2]uint8{l, parseUint8(ints[1].Text())}
	}
	return [2]uint8{l, saturatingAddU8(l, 1)}
}

// buildTypeDecl builds `type Name [= Aliased];`.
func (b *builder) buildTypeDecl(n *syntax.Node) SymbolHandle {
	var nameTok, aliasTok *syntax.Node
	for _, t := range n.Tokens() {
		if t.Kind != syntax.KindIdent {
			continue
		}
		if nameTok == nil {
			nameTok = t
		} else if aliasTok == nil {
			aliasTok = t
		}
	}
	td := &TypeDecl{Name: identText(nameTok)}
	if aliasTok != nil {
		td.Aliased = b.resolveTypeName(identText(aliasTok))
	}
	return b.newSymbolSel(SymbolTypeDecl, td, n, nameTok)
}

// buildInlineModule builds a nested `module Name { ... }` block: a fresh
// Inline module holding its own items, exposed in the enclosing scope
// through a VirtualModule symbol. The inline module depends on the host
// source for removal/GC purposes even though it has no source of its own.
func (b *builder) buildInlineModule(n *syntax.Node) SymbolHandle {
	nameTok := firstToken(n, syntax.KindIdent)
	name := identText(nameTok)

	modHandle := b.h.newInlineModule()
	mod := b.h.Module(modHandle)
	mod.Sources[b.source] = struct{}{}

	for _, item := range n.NodeChildren() {
		b.walkDefItem(item, mod.Scope)
	}

	return b.newSymbolSel(SymbolVirtualModule, &VirtualModule{Name: name, Module: modHandle}, n, nameTok)
}
