package syntax

// parseRhaiDef parses the definition-file dialect: an optional module
// header followed by a sequence of declaration items (fn signatures, op
// declarations, const/let with type annotations, type aliases, and
// named inline modules).
func (p *parser) parseRhaiDef() *Node {
	var children []*Node
	p.bumpTrivia(&children)

	if p.at(KindKwModule) && !p.isInlineModule() {
		children = append(children, p.parseModuleHeader())
	}

	for {
		p.bumpTrivia(&children)
		if p.atEnd() {
			break
		}
		children = append(children, p.parseDefItem())
	}
	return wrap(KindRhaiDef, children)
}

// isInlineModule distinguishes a nested `module Name { ... }` (or
// anonymous `module { ... }`) from the file-level header form
// (`module;` / `module "url";` / `module ident;`), by looking for a
// following `{`.
func (p *parser) isInlineModule() bool {
	n1 := p.peekNth(1)
	if n1 == nil {
		return false
	}
	if n1.Kind == KindLBrace {
		return true
	}
	if n1.Kind == KindIdent {
		n2 := p.peekNth(2)
		return n2 != nil && n2.Kind == KindLBrace
	}
	return false
}

// parseModuleHeader parses the file-level `module <static|"url"|ident>;`
// declaration; per spec.md §2 a missing name defaults to the Static kind.
func (p *parser) parseModuleHeader() *Node {
	var children []*Node
	p.bump(&children) // module
	switch p.peekKind() {
	case KindKwStatic, KindLitStr, KindIdent:
		p.bump(&children)
	}
	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindModuleDeclStmt, children)
}

func (p *parser) parseDefItem() *Node {
	switch p.peekKind() {
	case KindKwFn:
		return p.parseFnStmt(false)
	case KindKwOp:
		return p.parseOpStmt()
	case KindKwLet, KindKwConst:
		return p.parseLetConstStmt()
	case KindKwType:
		return p.parseTypeDeclStmt()
	case KindKwModule:
		return p.parseInlineModule()
	default:
		var children []*Node
		p.errorHere("expected a declaration")
		p.skipToSync(&children, KindSemicolon, KindKwFn, KindKwOp, KindKwLet,
			KindKwConst, KindKwType, KindKwModule, KindRBrace)
		if p.at(KindSemicolon) {
			p.bump(&children)
		}
		return wrap(KindExprStmt, children)
	}
}

// parseOpStmt parses `op name(lhsTy[, rhsTy]) -> retTy [precedence(L[,R])];`.
func (p *parser) parseOpStmt() *Node {
	var children []*Node
	p.bump(&children) // op
	p.bump(&children) // operator name (ident or symbol token)
	children = append(children, p.parseParamList(true))

	if p.at(KindThinArrow) {
		p.bump(&children)
		p.expect(&children, KindIdent)
	}
	if p.at(KindKwPrecedence) {
		children = append(children, p.parsePrecedenceClause())
	}
	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindOpStmt, children)
}

// parsePrecedenceClause parses `precedence(L[, R])`. Binding-power
// defaulting when this clause or its right power is omitted is applied
// downstream by the builder, not here (see SPEC_FULL.md's binding-power
// defaulting rules).
func (p *parser) parsePrecedenceClause() *Node {
	var children []*Node
	p.bump(&children) // precedence
	p.expect(&children, KindLParen)
	p.expect(&children, KindLitInt)
	if p.at(KindComma) {
		p.bump(&children)
		p.expect(&children, KindLitInt)
	}
	p.expect(&children, KindRParen)
	return wrap(KindPrecedenceClause, children)
}

func (p *parser) parseTypeDeclStmt() *Node {
	var children []*Node
	p.bump(&children) // type
	p.expect(&children, KindIdent)
	if p.at(KindAssign) {
		p.bump(&children)
		p.expect(&children, KindIdent)
	}
	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindTypeDeclStmt, children)
}

// parseInlineModule parses a nested `module Name { ... }` block, whose
// items are exposed as a virtual module symbol in the builder.
func (p *parser) parseInlineModule() *Node {
	var children []*Node
	p.bump(&children) // module
	if p.at(KindIdent) {
		p.bump(&children)
	}
	p.expect(&children, KindLBrace)
	for !p.at(KindRBrace) && !p.atEnd() {
		p.bumpTrivia(&children)
		if p.at(KindRBrace) || p.atEnd() {
			break
		}
		children = append(children, p.parseDefItem())
	}
	p.expect(&children, KindRBrace)
	return wrap(KindInlineModuleStmt, children)
}
