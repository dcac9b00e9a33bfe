package syntax

import "strings"

// binding power table for binary operators; 0 means "not a binary operator".
func binaryBp(k Kind) int {
	switch k {
	case KindOpOr:
		return 1
	case KindOpAnd:
		return 2
	case KindOpEq, KindOpNeq:
		return 3
	case KindOpLt, KindOpLe, KindOpGt, KindOpGe:
		return 4
	case KindOpBitAnd, KindOpBitXor, KindPipe:
		// `|` only reads as bitwise-or here, in infix position; parsePrimary
		// claims it first for closures (`|x| ...`, `|| ...`).
		return 5
	case KindDotDot, KindDotDotEq:
		return 6
	case KindOpAdd, KindOpSub:
		return 7
	case KindOpMul, KindOpDiv, KindOpMod:
		return 8
	case KindOpPow:
		return 9
	default:
		return 0
	}
}

// parseExpr implements precedence-climbing over binaryBp, wrapping each
// binary expression's operands and operator in a KindBinaryExpr node.
func (p *parser) parseExpr(minBp int) *Node {
	lhs := p.parseUnary()
	if lhs == nil {
		return nil
	}

	for {
		bp := binaryBp(p.peekKind())
		if bp == 0 || bp < minBp {
			break
		}
		var children []*Node
		children = append(children, lhs)
		p.bump(&children) // operator token
		rhs := p.parseExpr(bp + 1)
		if rhs != nil {
			children = append(children, rhs)
		}
		lhs = wrap(KindBinaryExpr, children)
	}
	return lhs
}

func (p *parser) parseUnary() *Node {
	switch p.peekKind() {
	case KindOpNot, KindOpSub:
		var children []*Node
		p.bump(&children)
		operand := p.parseUnary()
		if operand != nil {
			children = append(children, operand)
		}
		return wrap(KindUnaryExpr, children)
	default:
		return p.parsePostfix(p.parsePrimary())
	}
}

func (p *parser) parsePostfix(expr *Node) *Node {
	if expr == nil {
		return nil
	}
	for {
		switch p.peekKind() {
		case KindColonColon:
			if expr.Kind != KindIdentExpr && expr.Kind != KindPathExpr {
				return expr
			}
			segments := []*Node{expr}
			if expr.Kind == KindPathExpr {
				segments = expr.Children
			}
			for p.at(KindColonColon) {
				var seg []*Node
				p.bump(&seg) // ::
				id := p.expect(&seg, KindIdent)
				if id == nil {
					break
				}
				segments = append(segments, wrap(KindIdentExpr, seg[1:]))
			}
			expr = wrap(KindPathExpr, segments)

		case KindDot:
			var children []*Node
			children = append(children, expr)
			p.bump(&children) // .
			var rhsTok []*Node
			p.expect(&rhsTok, KindIdent)
			children = append(children, wrap(KindIdentExpr, rhsTok))
			expr = wrap(KindFieldAccessExpr, children)

		case KindLParen:
			var children []*Node
			children = append(children, expr)
			children = append(children, p.parseArgList()...)
			expr = wrap(KindCallExpr, children)

		case KindLBracket:
			var children []*Node
			children = append(children, expr)
			p.bump(&children) // [
			idx := p.parseExpr(0)
			if idx != nil {
				children = append(children, idx)
			}
			p.expect(&children, KindRBracket)
			expr = wrap(KindIndexExpr, children)

		default:
			return expr
		}
	}
}

func (p *parser) parseArgList() []*Node {
	var children []*Node
	p.expect(&children, KindLParen)
	for !p.at(KindRParen) && !p.atEnd() {
		arg := p.parseExpr(0)
		if arg == nil {
			break
		}
		children = append(children, arg)
		if p.at(KindComma) {
			p.bump(&children)
		} else {
			break
		}
	}
	p.expect(&children, KindRParen)
	return []*Node{wrap(KindArgList, children)}
}

func (p *parser) parsePrimary() *Node {
	switch p.peekKind() {
	case KindLitInt, KindLitFloat, KindLitBool, KindLitChar, KindKwTrue, KindKwFalse:
		var children []*Node
		p.bump(&children)
		return wrap(KindLitExpr, children)

	case KindLitStr:
		return p.parseStringLiteral()

	case KindIdent:
		var children []*Node
		p.bump(&children)
		return wrap(KindIdentExpr, children)

	case KindLParen:
		var open []*Node
		p.bump(&open)
		inner := p.parseExpr(0)
		var closeTok []*Node
		p.expect(&closeTok, KindRParen)
		// Parenthesized grouping is transparent: the group's own tokens
		// are dropped and the inner expression is returned as-is, so
		// downstream walkers never have to special-case "grouped" nodes.
		return inner

	case KindLBracket:
		return p.parseArrayExpr()

	case KindHash:
		return p.parseObjectExpr()

	case KindLBrace:
		return p.parseBlockExpr()

	case KindKwIf:
		return p.parseIfExpr()

	case KindKwWhile:
		return p.parseWhileExpr()

	case KindKwLoop:
		return p.parseLoopExpr()

	case KindKwFor:
		return p.parseForExpr()

	case KindKwSwitch:
		return p.parseSwitchExpr()

	case KindKwTry:
		return p.parseTryExpr()

	case KindKwThrow:
		var children []*Node
		p.bump(&children)
		if e := p.parseExpr(0); e != nil {
			children = append(children, e)
		}
		return wrap(KindThrowExpr, children)

	case KindKwReturn:
		var children []*Node
		p.bump(&children)
		if canStartExpr(p.peekKind()) {
			if e := p.parseExpr(0); e != nil {
				children = append(children, e)
			}
		}
		return wrap(KindReturnExpr, children)

	case KindKwBreak:
		var children []*Node
		p.bump(&children)
		if canStartExpr(p.peekKind()) {
			if e := p.parseExpr(0); e != nil {
				children = append(children, e)
			}
		}
		return wrap(KindBreakExpr, children)

	case KindKwContinue:
		var children []*Node
		p.bump(&children)
		return wrap(KindContinueExpr, children)

	case KindPipe, KindOpOr:
		return p.parseClosureExpr()

	default:
		var children []*Node
		p.errorHere("expected expression")
		p.bump(&children)
		return nil
	}
}

func canStartExpr(k Kind) bool {
	switch k {
	case KindSemicolon, KindRBrace, KindRParen, KindRBracket, KindComma, KindError:
		return false
	}
	return true
}

func (p *parser) parseArrayExpr() *Node {
	var children []*Node
	p.expect(&children, KindLBracket)
	for !p.at(KindRBracket) && !p.atEnd() {
		v := p.parseExpr(0)
		if v == nil {
			break
		}
		children = append(children, v)
		if p.at(KindComma) {
			p.bump(&children)
		} else {
			break
		}
	}
	p.expect(&children, KindRBracket)
	return wrap(KindArrayExpr, children)
}

func (p *parser) parseObjectExpr() *Node {
	var children []*Node
	p.bump(&children) // #
	p.expect(&children, KindLBrace)
	for !p.at(KindRBrace) && !p.atEnd() {
		var field []*Node
		p.expect(&field, KindIdent)
		if p.at(KindColon) {
			p.bump(&field)
			v := p.parseExpr(0)
			if v != nil {
				field = append(field, v)
			}
		}
		children = append(children, wrap(KindObjectField, field))
		if p.at(KindComma) {
			p.bump(&children)
		} else {
			break
		}
	}
	p.expect(&children, KindRBrace)
	return wrap(KindObjectExpr, children)
}

func (p *parser) parseClosureExpr() *Node {
	var children []*Node
	var params []*Node
	if p.at(KindOpOr) {
		p.bump(&params) // || == empty param list
	} else {
		p.bump(&params) // opening |
		for !p.at(KindPipe) && !p.atEnd() {
			var param []*Node
			p.expect(&param, KindIdent)
			params = append(params, wrap(KindParam, param))
			if p.at(KindComma) {
				p.bump(&params)
			} else {
				break
			}
		}
		p.expect(&params, KindPipe)
	}
	children = append(children, wrap(KindParamList, params))
	body := p.parseExpr(0)
	if body != nil {
		children = append(children, body)
	}
	return wrap(KindClosureExpr, children)
}

func (p *parser) parseBlockExpr() *Node {
	var children []*Node
	p.expect(&children, KindLBrace)
	for !p.at(KindRBrace) && !p.atEnd() {
		p.bumpTrivia(&children)
		if p.at(KindRBrace) || p.atEnd() {
			break
		}
		children = append(children, p.parseStatement())
	}
	p.expect(&children, KindRBrace)
	return wrap(KindBlockExpr, children)
}

func (p *parser) parseIfExpr() *Node {
	var children []*Node
	p.bump(&children) // if
	cond := p.parseExpr(0)
	if cond != nil {
		children = append(children, cond)
	}
	children = append(children, p.parseBlockExpr())

	for p.at(KindKwElse) {
		var elseChildren []*Node
		p.bump(&elseChildren) // else
		if p.at(KindKwIf) {
			elseChildren = append(elseChildren, p.parseIfExpr())
		} else {
			elseChildren = append(elseChildren, p.parseBlockExpr())
		}
		children = append(children, wrap(KindIfBranch, elseChildren))
	}
	return wrap(KindIfExpr, children)
}

func (p *parser) parseWhileExpr() *Node {
	var children []*Node
	p.bump(&children) // while
	cond := p.parseExpr(0)
	if cond != nil {
		children = append(children, cond)
	}
	children = append(children, p.parseBlockExpr())
	return wrap(KindWhileExpr, children)
}

func (p *parser) parseLoopExpr() *Node {
	var children []*Node
	p.bump(&children) // loop
	children = append(children, p.parseBlockExpr())
	return wrap(KindLoopExpr, children)
}

func (p *parser) parseForExpr() *Node {
	var children []*Node
	p.bump(&children) // for
	p.expect(&children, KindIdent)
	p.expect(&children, KindKwIn)
	iterable := p.parseExpr(0)
	if iterable != nil {
		children = append(children, iterable)
	}
	children = append(children, p.parseBlockExpr())
	return wrap(KindForExpr, children)
}

func (p *parser) parseSwitchExpr() *Node {
	var children []*Node
	p.bump(&children) // switch
	target := p.parseExpr(0)
	if target != nil {
		children = append(children, target)
	}
	p.expect(&children, KindLBrace)
	for !p.at(KindRBrace) && !p.atEnd() {
		var arm []*Node
		pat := p.parseExpr(0)
		if pat != nil {
			arm = append(arm, pat)
		}
		if p.at(KindKwIf) {
			p.bump(&arm)
			cond := p.parseExpr(0)
			if cond != nil {
				arm = append(arm, cond)
			}
		}
		p.expect(&arm, KindFatArrow)
		val := p.parseExpr(0)
		if val != nil {
			arm = append(arm, val)
		}
		children = append(children, wrap(KindSwitchArm, arm))
		if p.at(KindComma) {
			p.bump(&children)
		} else {
			break
		}
	}
	p.expect(&children, KindRBrace)
	return wrap(KindSwitchExpr, children)
}

// parseStringLiteral turns the raw LIT_STR token just peeked into either a
// plain literal or, for backtick templates containing `${...}`, a
// KindLitStrTemplateExpr with interpolated sub-expressions parsed from a
// nested Parse call over each `${ ... }` span.
func (p *parser) parseStringLiteral() *Node {
	var children []*Node
	tok := p.bump(&children)
	if tok == nil {
		return wrap(KindLitExpr, children)
	}
	text := tok.text
	if len(text) < 2 || text[0] != '`' || !strings.Contains(text, "${") {
		return wrap(KindLitExpr, children)
	}

	base := int(tok.Range.Start)
	var parts []*Node
	i := 1
	partStart := 1
	for i < len(text)-1 {
		if text[i] == '$' && i+1 < len(text) && text[i+1] == '{' {
			if i > partStart {
				parts = append(parts, &Node{
					Kind:  KindLitStrTemplatePart,
					Range: TextRange{Start: uint32(base + partStart), End: uint32(base + i)},
					text:  text[partStart:i],
				})
			}
			depth := 1
			exprStart := i + 2
			j := exprStart
			for j < len(text)-1 && depth > 0 {
				switch text[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				if depth == 0 {
					break
				}
				j++
			}
			innerSrc := text[exprStart:j]
			innerToks := lex(innerSrc)
			sub := &parser{toks: innerToks, src: innerSrc}
			expr := sub.parseExpr(0)
			if expr != nil {
				shiftRange(expr, uint32(base+exprStart))
				parts = append(parts, expr)
			}
			i = j + 1
			partStart = i
			continue
		}
		i++
	}
	if partStart < len(text)-1 {
		parts = append(parts, &Node{
			Kind:  KindLitStrTemplatePart,
			Range: TextRange{Start: uint32(base + partStart), End: uint32(base + len(text) - 1)},
			text:  text[partStart : len(text)-1],
		})
	}

	tmplChildren := append([]*Node{tok}, parts...)
	return wrap(KindLitStrTemplateExpr, tmplChildren)
}

// shiftRange rebases a subtree parsed from an extracted interpolation
// substring back onto the outer document's byte offsets.
func shiftRange(n *Node, offset uint32) {
	n.Range.Start += offset
	n.Range.End += offset
	for _, c := range n.Children {
		shiftRange(c, offset)
	}
}

func (p *parser) parseTryExpr() *Node {
	var children []*Node
	p.bump(&children) // try
	children = append(children, p.parseBlockExpr())
	if p.at(KindKwCatch) {
		var catchChildren []*Node
		p.bump(&catchChildren) // catch
		if p.at(KindLParen) {
			p.bump(&catchChildren)
			p.expect(&catchChildren, KindIdent)
			p.expect(&catchChildren, KindRParen)
		}
		catchChildren = append(catchChildren, p.parseBlockExpr())
		children = append(children, wrap(KindCatchClause, catchChildren))
	}
	return wrap(KindTryExpr, children)
}
