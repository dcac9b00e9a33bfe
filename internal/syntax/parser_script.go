package syntax

// parseRhai parses the script dialect: a sequence of statements until EOF.
func (p *parser) parseRhai() *Node {
	var children []*Node
	for {
		p.bumpTrivia(&children)
		if p.atEnd() {
			break
		}
		stmt := p.parseStatement()
		if stmt == nil {
			// Shouldn't happen (parseStatement always makes progress),
			// but guard against infinite loops defensively.
			p.bump(&children)
			continue
		}
		children = append(children, stmt)
	}
	return wrap(KindRhai, children)
}

func (p *parser) parseStatement() *Node {
	switch p.peekKind() {
	case KindKwLet, KindKwConst:
		return p.parseLetConstStmt()
	case KindKwFn:
		return p.parseFnStmt(true)
	case KindKwImport:
		return p.parseImportStmt()
	case KindKwExport:
		return p.parseExportStmt()
	default:
		return p.parseExprStmt()
	}
}

func (p *parser) parseLetConstStmt() *Node {
	var children []*Node
	kind := KindLetStmt
	if p.peekKind() == KindKwConst {
		kind = KindConstStmt
	}
	p.bump(&children) // let/const

	p.expect(&children, KindIdent)

	if p.at(KindColon) {
		children = append(children, p.parseTypeAnnotation())
	}

	if p.at(KindAssign) {
		p.bump(&children)
		val := p.parseExpr(0)
		if val != nil {
			children = append(children, val)
		}
	}

	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(kind, children)
}

func (p *parser) parseTypeAnnotation() *Node {
	var children []*Node
	p.bump(&children) // ':'
	p.expect(&children, KindIdent)
	return wrap(KindTypeAnnotation, children)
}

func (p *parser) parseFnStmt(requireBody bool) *Node {
	var children []*Node
	p.bump(&children) // fn
	p.expect(&children, KindIdent)
	children = append(children, p.parseParamList(true))

	if p.at(KindThinArrow) {
		p.bump(&children)
		p.expect(&children, KindIdent)
	}

	if requireBody && p.at(KindLBrace) {
		children = append(children, p.parseBlockExpr())
	} else if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindFnStmt, children)
}

// parseParamList parses `(a, b: int, ...)`, with optional type
// annotations (used by definition files; ignored by the script builder).
func (p *parser) parseParamList(allowTypes bool) *Node {
	var children []*Node
	p.expect(&children, KindLParen)
	for !p.at(KindRParen) && !p.atEnd() {
		var param []*Node
		p.expect(&param, KindIdent)
		if allowTypes && p.at(KindColon) {
			param = append(param, p.parseTypeAnnotation())
		}
		children = append(children, wrap(KindParam, param))
		if p.at(KindComma) {
			p.bump(&children)
		} else {
			break
		}
	}
	p.expect(&children, KindRParen)
	return wrap(KindParamList, children)
}

func (p *parser) parseImportStmt() *Node {
	var children []*Node
	p.bump(&children) // import
	expr := p.parseExpr(0)
	if expr != nil {
		children = append(children, expr)
	}
	if p.at(KindKwAs) {
		p.bump(&children)
		p.expect(&children, KindIdent)
	}
	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindImportStmt, children)
}

func (p *parser) parseExportStmt() *Node {
	var children []*Node
	p.bump(&children) // export
	switch p.peekKind() {
	case KindKwLet, KindKwConst:
		children = append(children, p.parseLetConstStmt())
	case KindKwFn:
		children = append(children, p.parseFnStmt(true))
	default:
		if e := p.parseExpr(0); e != nil {
			children = append(children, e)
		}
		if p.at(KindSemicolon) {
			p.bump(&children)
		}
	}
	return wrap(KindExportStmt, children)
}

func (p *parser) parseExprStmt() *Node {
	var children []*Node
	e := p.parseExpr(0)
	if e == nil {
		// Make forward progress on unparseable input.
		p.skipToSync(&children, KindSemicolon, KindRBrace)
		if p.at(KindSemicolon) {
			p.bump(&children)
		}
		return wrap(KindExprStmt, children)
	}
	children = append(children, e)
	if p.at(KindSemicolon) {
		p.bump(&children)
	}
	return wrap(KindExprStmt, children)
}
