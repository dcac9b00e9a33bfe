package hir

import (
	"strconv"
	"strings"

	"github.com/oxhq/rhai-hir/internal/syntax"
)

// addScript walks a parsed script document's top-level statements into the
// owning module's scope. Every symbol created along the way is registered
// into exactly one scope before this function returns, per the "parent_scope
// set exactly once" discipline: statement-level symbols are added by
// walkStatement/walkExportStmt, everything reachable as a sub-expression is
// added by walkExpr's own tail, and the handful of symbols built outside
// walkExpr (parameters, loop variables, caught-error bindings, path
// segments, import aliases) are added at their point of creation.
func (b *builder) addScript(root *syntax.Node) {
	rhai, ok := syntax.CastRhai(root)
	if !ok {
		return
	}
	src := b.h.Source(b.source)
	mod := b.h.Module(src.Module)
	scope := mod.Scope
	for _, stmt := range rhai.Statements() {
		b.walkStatement(stmt, scope)
	}
}

// walkStatement builds and registers one top-level or block-level
// statement into scope, choosing the hoist flag by statement kind: function
// declarations hoist (visible anywhere in the enclosing scope), everything
// else is visible only from its own position onward.
func (b *builder) walkStatement(n *syntax.Node, scope ScopeHandle) {
	if n == nil {
		return
	}
	switch n.Kind {
	case syntax.KindLetStmt, syntax.KindConstStmt:
		b.add(scope, b.buildLetConst(n, scope), false)
	case syntax.KindFnStmt:
		b.add(scope, b.buildFn(n, scope), true)
	case syntax.KindImportStmt:
		b.add(scope, b.buildImport(n, scope), false)
	case syntax.KindExportStmt:
		b.walkExportStmt(n, scope)
	case syntax.KindExprStmt:
		if children := n.NodeChildren(); len(children) > 0 {
			b.walkExpr(children[0], scope)
		}
	}
}

// walkBody walks a construct's body: a brace-delimited block's statements
// go directly into scope (no further nested Block symbol is synthesized —
// that would duplicate the scope the construct itself already owns), a
// bodyless closure shorthand (`|x| x + 1`) walks its single expression.
func (b *builder) walkBody(body *syntax.Node, scope ScopeHandle) {
	if body == nil {
		return
	}
	if body.Kind == syntax.KindBlockExpr {
		for _, stmt := range body.NodeChildren() {
			b.walkStatement(stmt, scope)
		}
		return
	}
	b.walkExpr(body, scope)
}

// walkExportStmt handles `export let/const/fn ...` by setting Export
// directly on the inner declaration (its own identity, scope, and hoisting
// are unaffected), and `export <expr>;` by wrapping the expression's symbol
// in a dedicated Export symbol.
func (b *builder) walkExportStmt(n *syntax.Node, scope ScopeHandle) {
	children := n.NodeChildren()
	if len(children) == 0 {
		return
	}
	inner := children[0]
	switch inner.Kind {
	case syntax.KindLetStmt, syntax.KindConstStmt:
		sym := b.buildLetConst(inner, scope)
		b.h.Symbol(sym).Export = true
		b.add(scope, sym, false)
	case syntax.KindFnStmt:
		sym := b.buildFn(inner, scope)
		b.h.Symbol(sym).Export = true
		b.add(scope, sym, true)
	default:
		target := b.walkExpr(inner, scope)
		b.add(scope, b.newSymbol(SymbolExport, &Export{Target: target}, n), false)
	}
}

// buildLetConst builds a let/const declaration. Its initializer, if any,
// is walked into a fresh scope of its own so interpolations and nested
// blocks in the initializer have somewhere to put their own symbols.
func (b *builder) buildLetConst(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	nameTok := firstToken(n, syntax.KindIdent)
	ta := n.FirstChildOfKind(syntax.KindTypeAnnotation)

	var valueNode *syntax.Node
	for _, c := range n.NodeChildren() {
		if c.Kind == syntax.KindTypeAnnotation {
			continue
		}
		valueNode = c
		break
	}

	d := &Decl{
		Name:    identText(nameTok),
		IsConst: n.Kind == syntax.KindConstStmt,
		Docs:    syntax.Doc(n),
	}
	if ta != nil {
		d.TyDecl = b.resolveTypeName(typeAnnotationName(ta))
	}
	// The initializer is walked before the Decl is inserted, so that
	// ResolveTypes' arena-order sweep sees the value's type first.
	var valScope ScopeHandle
	var value SymbolHandle
	if valueNode != nil {
		valScope = b.newScope(valueNode)
		value = b.walkExpr(valueNode, valScope)
	}
	sym := b.newSymbolSel(SymbolDecl, d, n, nameTok)

	if valueNode != nil {
		b.h.setScopeParent(valScope, sym)
		d.Value = value
		d.ValueScope = valScope
	}
	return sym
}

// buildFn builds a function declaration: a scope holding its parameters as
// a leading IsParam Decl prefix (see Hir.FnParams), followed by its body's
// own statements.
func (b *builder) buildFn(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	nameTok := firstToken(n, syntax.KindIdent)
	paramListNode := n.FirstChildOfKind(syntax.KindParamList)
	bodyNode := n.FirstChildOfKind(syntax.KindBlockExpr)
	retTyTok := tokenAfterMarker(n, syntax.KindThinArrow, syntax.KindIdent)

	fnScope := b.newScope(n)
	f := &Fn{
		Name:  identText(nameTok),
		Docs:  syntax.Doc(n),
		Scope: fnScope,
		RetTy: b.h.Builtins.Unknown,
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
			pd := &Decl{Name: syntax.ParamName(p), IsParam: true}
			b.add(fnScope, b.newSymbol(SymbolDecl, pd, p), false)
		}
	}
	b.walkBody(bodyNode, fnScope)
	return sym
}

// buildImport builds an `import` statement. Target resolution happens in
// the resolver (resolveImports), not here; this only records the imported
// expression and the optional alias declaration.
func (b *builder) buildImport(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var exprNode *syntax.Node
	if children := n.NodeChildren(); len(children) > 0 {
		exprNode = children[0]
	}
	aliasTok := tokenAfterMarker(n, syntax.KindKwAs, syntax.KindIdent)

	importScope := b.newScope(n)
	im := &Import{Scope: importScope}
	sym := b.newSymbol(SymbolImport, im, n)
	b.h.setScopeParent(importScope, sym)

	if exprNode != nil {
		im.Expr = b.walkExpr(exprNode, importScope)
	}
	if aliasTok != nil {
		d := &Decl{Name: identText(aliasTok), IsImport: true}
		aliasSym := b.newSymbolSel(SymbolDecl, d, n, aliasTok)
		b.add(scope, aliasSym, true)
		im.Alias = aliasSym
	}
	return sym
}

// walkExpr builds the symbol for an expression node and registers it into
// scope, then returns its handle. Every path through the switch either
// returns a fresh symbol (added below) or delegates to a helper that
// recurses via walkExpr for its own operands, so every symbol reachable
// from an expression tree is added exactly once.
func (b *builder) walkExpr(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	if n == nil {
		return SymbolHandle{}
	}

	var sym SymbolHandle
	switch n.Kind {
	case syntax.KindLitExpr:
		sym = b.buildLit(n)
	case syntax.KindLitStrTemplateExpr:
		sym = b.buildLitStrTemplate(n, scope)
	case syntax.KindIdentExpr:
		tok := firstToken(n, syntax.KindIdent)
		sym = b.newSymbolSel(SymbolReference, &Reference{Name: identText(tok)}, n, tok)
	case syntax.KindPathExpr:
		sym = b.buildPath(n, scope)
	case syntax.KindFieldAccessExpr:
		sym = b.buildFieldAccess(n, scope)
	case syntax.KindCallExpr:
		sym = b.buildCall(n, scope)
	case syntax.KindIndexExpr:
		sym = b.buildIndex(n, scope)
	case syntax.KindArrayExpr:
		sym = b.buildArray(n, scope)
	case syntax.KindObjectExpr:
		sym = b.buildObject(n, scope)
	case syntax.KindUnaryExpr:
		sym = b.buildUnary(n, scope)
	case syntax.KindBinaryExpr:
		sym = b.buildBinary(n, scope)
	case syntax.KindClosureExpr:
		sym = b.buildClosure(n, scope)
	case syntax.KindBlockExpr:
		sym = b.buildBlock(n, scope)
	case syntax.KindIfExpr:
		sym = b.buildIf(n, scope)
	case syntax.KindWhileExpr:
		sym = b.buildWhile(n, scope)
	case syntax.KindLoopExpr:
		sym = b.buildLoop(n, scope)
	case syntax.KindForExpr:
		sym = b.buildFor(n, scope)
	case syntax.KindSwitchExpr:
		sym = b.buildSwitch(n, scope)
	case syntax.KindTryExpr:
		sym = b.buildTry(n, scope)
	case syntax.KindReturnExpr:
		sym = b.buildReturn(n, scope)
	case syntax.KindBreakExpr:
		sym = b.buildBreak(n, scope)
	case syntax.KindContinueExpr:
		sym = b.newSymbol(SymbolContinue, &Continue{}, n)
	case syntax.KindThrowExpr:
		sym = b.buildThrow(n, scope)
	default:
		return SymbolHandle{}
	}

	if !sym.IsNull() {
		b.add(scope, sym, false)
	}
	return sym
}

func (b *builder) buildLit(n *syntax.Node) SymbolHandle {
	var v Value
	if toks := n.Tokens(); len(toks) > 0 {
		tok := toks[0]
		text := tok.Text()
		switch tok.Kind {
		case syntax.KindLitInt:
			v = Value{Kind: ValueInt, Int: parseIntLiteral(text)}
		case syntax.KindLitFloat:
			v = Value{Kind: ValueFloat, Float: parseFloatLiteral(text)}
		case syntax.KindKwTrue:
			v = Value{Kind: ValueBool, Bool: true}
		case syntax.KindKwFalse:
			v = Value{Kind: ValueBool, Bool: false}
		case syntax.KindLitChar:
			body := text
			if len(text) >= 2 {
				body = text[1 : len(text)-1]
			}
			decoded, _ := syntax.Unescape(body, '\'')
			for _, r := range decoded {
				v = Value{Kind: ValueChar, Char: r}
				break
			}
		case syntax.KindLitStr:
			body := text
			if len(text) >= 2 {
				body = text[1 : len(text)-1]
			}
			decoded, _ := syntax.Unescape(body, rune(text[0]))
			v = Value{Kind: ValueString, String: decoded}
		}
	}
	sym := b.newSymbol(SymbolLit, &Lit{Value: v}, n)
	b.h.Symbol(sym).Type = b.h.builtinTypeFor(v)
	return sym
}

func parseIntLiteral(text string) int64 {
	v, _ := strconv.ParseInt(strings.ReplaceAll(text, "_", ""), 10, 64)
	return v
}

func parseFloatLiteral(text string) float64 {
	v, _ := strconv.ParseFloat(strings.ReplaceAll(text, "_", ""), 64)
	return v
}

// buildLitStrTemplate builds a backtick string template: each `${...}`
// interpolation gets its own fresh scope (spec's interpolated_scopes),
// owned by the Lit symbol itself.
func (b *builder) buildLitStrTemplate(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	lit := &Lit{Value: Value{Kind: ValueString}}
	sym := b.newSymbol(SymbolLit, lit, n)
	b.h.Symbol(sym).Type = b.h.Builtins.String

	tpl, _ := syntax.CastLitStrTemplate(n)
	for _, interp := range tpl.Interpolations() {
		interpScope := b.newScope(interp)
		b.h.setScopeParent(interpScope, sym)
		b.walkExpr(interp, interpScope)
		lit.InterpolatedScopes = append(lit.InterpolatedScopes, interpScope)
	}
	return sym
}

// buildPath builds a `::`-chained path. Every segment is a Reference
// living directly in scope (not in a scope of its own), matching the
// data model's "all segments live in path.scope".
func (b *builder) buildPath(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	p, _ := syntax.CastPath(n)
	var segs []SymbolHandle
	for _, seg := range p.Segments() {
		tok := firstToken(seg, syntax.KindIdent)
		refSym := b.newSymbolSel(SymbolReference, &Reference{Name: identText(tok), PartOfPath: true}, seg, tok)
		b.add(scope, refSym, false)
		segs = append(segs, refSym)
	}
	return b.newSymbol(SymbolPath, &Path{Segments: segs, Scope: scope}, n)
}

// buildFieldAccess builds the RHS of a `.` as a FieldAccess Reference,
// carrying Base to the LHS's symbol for the resolver's type-directed
// field lookup (scope resolution never applies to these).
func (b *builder) buildFieldAccess(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	if len(children) < 2 {
		return SymbolHandle{}
	}
	lhs := b.walkExpr(children[0], scope)
	rhsTok := firstToken(children[1], syntax.KindIdent)
	return b.newSymbolSel(SymbolReference, &Reference{Name: identText(rhsTok), FieldAccess: true, Base: lhs}, n, children[1])
}

func (b *builder) buildCall(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	if len(children) == 0 {
		return SymbolHandle{}
	}
	callee := b.walkExpr(children[0], scope)
	var args []SymbolHandle
	if len(children) > 1 {
		for _, a := range children[1].NodeChildren() {
			args = append(args, b.walkExpr(a, scope))
		}
	}
	return b.newSymbol(SymbolCall, &Call{Callee: callee, Args: args}, n)
}

func (b *builder) buildIndex(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	var base, idx SymbolHandle
	if len(children) > 0 {
		base = b.walkExpr(children[0], scope)
	}
	if len(children) > 1 {
		idx = b.walkExpr(children[1], scope)
	}
	return b.newSymbol(SymbolIndexExpr, &IndexExpr{Base: base, Index: idx}, n)
}

func (b *builder) buildArray(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var vals []SymbolHandle
	for _, c := range n.NodeChildren() {
		vals = append(vals, b.walkExpr(c, scope))
	}
	return b.newSymbol(SymbolArray, &Array{Values: vals}, n)
}

func (b *builder) buildObject(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var fields []ObjectEntry
	for _, f := range n.NodeChildren() {
		nameTok := firstToken(f, syntax.KindIdent)
		var val SymbolHandle
		if vs := f.NodeChildren(); len(vs) > 0 {
			val = b.walkExpr(vs[0], scope)
		}
		fields = append(fields, ObjectEntry{Name: identText(nameTok), Value: val})
	}
	return b.newSymbol(SymbolObject, &Object{Fields: fields}, n)
}

func (b *builder) buildUnary(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var operand SymbolHandle
	if children := n.NodeChildren(); len(children) > 0 {
		operand = b.walkExpr(children[0], scope)
	}
	return b.newSymbol(SymbolUnary, &Unary{Operand: operand}, n)
}

func (b *builder) buildBinary(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	var lhs, rhs SymbolHandle
	if len(children) > 0 {
		lhs = b.walkExpr(children[0], scope)
	}
	if len(children) > 1 {
		rhs = b.walkExpr(children[1], scope)
	}
	return b.newSymbol(SymbolBinary, &Binary{Lhs: lhs, Rhs: rhs}, n)
}

func (b *builder) buildClosure(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	fnScope := b.newScope(n)
	sym := b.newSymbol(SymbolClosure, &Closure{Scope: fnScope}, n)
	b.h.setScopeParent(fnScope, sym)

	var paramListNode, bodyNode *syntax.Node
	if len(children) > 0 {
		paramListNode = children[0]
	}
	if len(children) > 1 {
		bodyNode = children[1]
	}
	if paramListNode != nil {
		pl, _ := syntax.CastParamList(paramListNode)
		for _, p := range pl.Params() {
			pd := &Decl{Name: syntax.ParamName(p), IsParam: true}
			b.add(fnScope, b.newSymbol(SymbolDecl, pd, p), false)
		}
	}
	b.walkBody(bodyNode, fnScope)
	return sym
}

// buildBlock builds a brace-delimited block used as an expression (e.g.
// the value of `let x = { ...};`, or a bare block statement).
func (b *builder) buildBlock(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	blockScope := b.newScope(n)
	b.walkBody(n, blockScope)
	sym := b.newSymbol(SymbolBlock, &Block{Scope: blockScope}, n)
	b.h.setScopeParent(blockScope, sym)
	return sym
}

func (b *builder) buildIf(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	sym := b.newSymbol(SymbolIf, &If{}, n)
	branches := b.collectIfBranches(sym, n, scope)
	b.h.Symbol(sym).Data = &If{Branches: branches}
	return sym
}

// collectIfBranches flattens an `if`/`else if`/`else` chain into a single
// ordered branch list owned by ifSym, recursing into nested `else if`
// arms rather than nesting a fresh If symbol per arm.
func (b *builder) collectIfBranches(ifSym SymbolHandle, n *syntax.Node, scope ScopeHandle) []IfBranch {
	children := n.NodeChildren()
	if len(children) < 2 {
		return nil
	}
	cond := b.walkExpr(children[0], scope)
	bodyScope := b.newScope(children[1])
	b.h.setScopeParent(bodyScope, ifSym)
	b.walkBody(children[1], bodyScope)
	branches := []IfBranch{{Cond: cond, Scope: bodyScope}}

	for _, arm := range children[2:] {
		inner := arm.NodeChildren()
		if len(inner) == 0 {
			continue
		}
		if inner[0].Kind == syntax.KindIfExpr {
			branches = append(branches, b.collectIfBranches(ifSym, inner[0], scope)...)
			continue
		}
		elseScope := b.newScope(inner[0])
		b.h.setScopeParent(elseScope, ifSym)
		b.walkBody(inner[0], elseScope)
		branches = append(branches, IfBranch{Scope: elseScope})
	}
	return branches
}

func (b *builder) buildWhile(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	sym := b.newSymbol(SymbolWhile, &While{}, n)
	var cond SymbolHandle
	var bodyScope ScopeHandle
	if len(children) > 0 {
		cond = b.walkExpr(children[0], scope)
	}
	if len(children) > 1 {
		bodyScope = b.newScope(children[1])
		b.h.setScopeParent(bodyScope, sym)
		b.walkBody(children[1], bodyScope)
	}
	b.h.Symbol(sym).Data = &While{Cond: cond, Scope: bodyScope}
	return sym
}

func (b *builder) buildLoop(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	sym := b.newSymbol(SymbolLoop, &Loop{}, n)
	var bodyScope ScopeHandle
	if len(children) > 0 {
		bodyScope = b.newScope(children[0])
		b.h.setScopeParent(bodyScope, sym)
		b.walkBody(children[0], bodyScope)
	}
	b.h.Symbol(sym).Data = &Loop{Scope: bodyScope}
	return sym
}

func (b *builder) buildFor(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	sym := b.newSymbol(SymbolFor, &For{}, n)
	var iterable SymbolHandle
	var bodyScope ScopeHandle
	if len(children) > 0 {
		iterable = b.walkExpr(children[0], scope)
	}
	if len(children) > 1 {
		bodyScope = b.newScope(children[1])
		b.h.setScopeParent(bodyScope, sym)
		if loopVarTok := firstToken(n, syntax.KindIdent); loopVarTok != nil {
			pd := &Decl{Name: identText(loopVarTok), IsParam: true}
			b.add(bodyScope, b.newSymbolSel(SymbolDecl, pd, loopVarTok, loopVarTok), false)
		}
		b.walkBody(children[1], bodyScope)
	}
	b.h.Symbol(sym).Data = &For{Iterable: iterable, Scope: bodyScope}
	return sym
}

func (b *builder) buildSwitch(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	sym := b.newSymbol(SymbolSwitch, &Switch{}, n)
	var target SymbolHandle
	var arms []SwitchArm
	if len(children) > 0 {
		target = b.walkExpr(children[0], scope)
	}
	for _, armNode := range children[1:] {
		if armNode.Kind != syntax.KindSwitchArm {
			continue
		}
		ac := armNode.NodeChildren()
		var pattern, guard, value SymbolHandle
		switch len(ac) {
		case 2:
			pattern = b.walkExpr(ac[0], scope)
			value = b.walkExpr(ac[1], scope)
		case 3:
			pattern = b.walkExpr(ac[0], scope)
			guard = b.walkExpr(ac[1], scope)
			value = b.walkExpr(ac[2], scope)
		}
		arms = append(arms, SwitchArm{Pattern: pattern, Guard: guard, Value: value})
	}
	b.h.Symbol(sym).Data = &Switch{Target: target, Arms: arms}
	return sym
}

func (b *builder) buildTry(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	children := n.NodeChildren()
	sym := b.newSymbol(SymbolTry, &Try{}, n)
	var tryScope, catchScope ScopeHandle
	if len(children) > 0 {
		tryScope = b.newScope(children[0])
		b.h.setScopeParent(tryScope, sym)
		b.walkBody(children[0], tryScope)
	}
	if len(children) > 1 && children[1].Kind == syntax.KindCatchClause {
		catchNode := children[1]
		catchChildren := catchNode.NodeChildren()
		if len(catchChildren) > 0 {
			catchScope = b.newScope(catchChildren[0])
			b.h.setScopeParent(catchScope, sym)
			if errTok := firstToken(catchNode, syntax.KindIdent); errTok != nil {
				pd := &Decl{Name: identText(errTok), IsParam: true}
				b.add(catchScope, b.newSymbolSel(SymbolDecl, pd, errTok, errTok), false)
			}
			b.walkBody(catchChildren[0], catchScope)
		}
	}
	b.h.Symbol(sym).Data = &Try{TryScope: tryScope, CatchScope: catchScope}
	return sym
}

func (b *builder) buildReturn(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var expr SymbolHandle
	if children := n.NodeChildren(); len(children) > 0 {
		expr = b.walkExpr(children[0], scope)
	}
	return b.newSymbol(SymbolReturn, &Return{Expr: expr}, n)
}

func (b *builder) buildBreak(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var expr SymbolHandle
	if children := n.NodeChildren(); len(children) > 0 {
		expr = b.walkExpr(children[0], scope)
	}
	return b.newSymbol(SymbolBreak, &Break{Expr: expr}, n)
}

func (b *builder) buildThrow(n *syntax.Node, scope ScopeHandle) SymbolHandle {
	var expr SymbolHandle
	if children := n.NodeChildren(); len(children) > 0 {
		expr = b.walkExpr(children[0], scope)
	}
	return b.newSymbol(SymbolThrow, &Throw{Expr: expr}, n)
}
