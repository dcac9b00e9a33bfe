package syntax

import "strings"

// lex tokenizes src into a flat list of leaf Nodes (tokens), including
// trivia (whitespace, comments). The parser is responsible for
// attaching trivia tokens to the nodes they precede.
func lex(src string) []*Node {
	l := &lexer{src: src}
	var toks []*Node
	for {
		t := l.next()
		if t == nil {
			break
		}
		toks = append(toks, t)
	}
	return toks
}

type lexer struct {
	src string
	pos int
}

func (l *lexer) next() *Node {
	if l.pos >= len(l.src) {
		return nil
	}
	start := l.pos
	c := l.src[l.pos]

	switch {
	case c == ' ' || c == '\t' || c == '\n' || c == '\r':
		for l.pos < len(l.src) && isSpace(l.src[l.pos]) {
			l.pos++
		}
		return l.tok(KindWhitespace, start)

	case c == '/' && l.peekAt(1) == '/':
		return l.lineComment(start)

	case c == '/' && l.peekAt(1) == '*':
		return l.blockComment(start)

	case isDigit(c):
		return l.number(start)

	case c == '"':
		return l.stringLit(start, '"')

	case c == '`':
		return l.stringLit(start, '`')

	case c == '\'':
		return l.charLit(start)

	case isIdentStart(c):
		return l.identOrKeyword(start)

	default:
		return l.punct(start)
	}
}

func (l *lexer) tok(k Kind, start int) *Node {
	return &Node{Kind: k, Range: TextRange{Start: uint32(start), End: uint32(l.pos)}, text: l.src[start:l.pos]}
}

func (l *lexer) peekAt(off int) byte {
	if l.pos+off >= len(l.src) {
		return 0
	}
	return l.src[l.pos+off]
}

func (l *lexer) lineComment(start int) *Node {
	doc := l.peekAt(2) == '/' || l.peekAt(2) == '!'
	for l.pos < len(l.src) && l.src[l.pos] != '\n' {
		l.pos++
	}
	if doc {
		return l.tok(KindDocComment, start)
	}
	return l.tok(KindLineComment, start)
}

func (l *lexer) blockComment(start int) *Node {
	doc := l.peekAt(2) == '*' && l.peekAt(3) != '/' && l.peekAt(3) != '*'
	l.pos += 2
	for l.pos < len(l.src) {
		if l.src[l.pos] == '*' && l.peekAt(1) == '/' {
			l.pos += 2
			break
		}
		l.pos++
	}
	if doc {
		return l.tok(KindDocBlockComment, start)
	}
	return l.tok(KindBlockComment, start)
}

func (l *lexer) number(start int) *Node {
	for l.pos < len(l.src) && (isDigit(l.src[l.pos]) || l.src[l.pos] == '_') {
		l.pos++
	}

	isFloat := false
	// Ambiguous-token resplit (spec.md §4.3): `123..` / `123..=` must NOT
	// be consumed as `123.` followed by `.`; only consume a `.` as part
	// of the number when it is not immediately followed by another `.`.
	if l.pos < len(l.src) && l.src[l.pos] == '.' && l.peekAt(1) != '.' && isDigit(l.peekAt(1)) {
		isFloat = true
		l.pos++
		for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			l.pos++
		}
	}
	if l.pos < len(l.src) && (l.src[l.pos] == 'e' || l.src[l.pos] == 'E') {
		save := l.pos
		l.pos++
		if l.pos < len(l.src) && (l.src[l.pos] == '+' || l.src[l.pos] == '-') {
			l.pos++
		}
		if l.pos < len(l.src) && isDigit(l.src[l.pos]) {
			isFloat = true
			for l.pos < len(l.src) && isDigit(l.src[l.pos]) {
				l.pos++
			}
		} else {
			l.pos = save
		}
	}

	if isFloat {
		return l.tok(KindLitFloat, start)
	}
	return l.tok(KindLitInt, start)
}

func (l *lexer) stringLit(start int, delim byte) *Node {
	l.pos++ // opening delim
	for l.pos < len(l.src) {
		if l.src[l.pos] == '\\' {
			l.pos += 2
			continue
		}
		if l.src[l.pos] == delim {
			l.pos++
			break
		}
		l.pos++
	}
	return l.tok(KindLitStr, start)
}

func (l *lexer) charLit(start int) *Node {
	l.pos++
	for l.pos < len(l.src) {
		if l.src[l.pos] == '\\' {
			l.pos += 2
			continue
		}
		if l.src[l.pos] == '\'' {
			l.pos++
			break
		}
		l.pos++
	}
	return l.tok(KindLitChar, start)
}

var keywords = map[string]Kind{
	"let": KindKwLet, "const": KindKwConst, "fn": KindKwFn, "op": KindKwOp,
	"import": KindKwImport, "as": KindKwAs, "export": KindKwExport,
	"if": KindKwIf, "else": KindKwElse, "while": KindKwWhile, "loop": KindKwLoop,
	"for": KindKwFor, "in": KindKwIn, "switch": KindKwSwitch, "try": KindKwTry,
	"catch": KindKwCatch, "throw": KindKwThrow, "return": KindKwReturn,
	"break": KindKwBreak, "continue": KindKwContinue, "module": KindKwModule,
	"static": KindKwStatic, "type": KindKwType, "true": KindKwTrue, "false": KindKwFalse,
	"precedence": KindKwPrecedence,
}

func (l *lexer) identOrKeyword(start int) *Node {
	for l.pos < len(l.src) && isIdentCont(l.src[l.pos]) {
		l.pos++
	}
	text := l.src[start:l.pos]
	if k, ok := keywords[text]; ok {
		return l.tok(k, start)
	}
	return l.tok(KindIdent, start)
}

func (l *lexer) punct(start int) *Node {
	two := ""
	if l.pos+1 < len(l.src) {
		two = l.src[l.pos : l.pos+2]
	}
	three := ""
	if l.pos+2 < len(l.src) {
		three = l.src[l.pos : l.pos+3]
	}

	if three == "..=" {
		l.pos += 3
		return l.tok(KindDotDotEq, start)
	}

	switch two {
	case "::":
		l.pos += 2
		return l.tok(KindColonColon, start)
	case "..":
		l.pos += 2
		return l.tok(KindDotDot, start)
	case "=>":
		l.pos += 2
		return l.tok(KindFatArrow, start)
	case "->":
		l.pos += 2
		return l.tok(KindThinArrow, start)
	case "==":
		l.pos += 2
		return l.tok(KindOpEq, start)
	case "!=":
		l.pos += 2
		return l.tok(KindOpNeq, start)
	case "<=":
		l.pos += 2
		return l.tok(KindOpLe, start)
	case ">=":
		l.pos += 2
		return l.tok(KindOpGe, start)
	case "&&":
		l.pos += 2
		return l.tok(KindOpAnd, start)
	case "||":
		l.pos += 2
		return l.tok(KindOpOr, start)
	case "**":
		l.pos += 2
		return l.tok(KindOpPow, start)
	}

	c := l.src[l.pos]
	l.pos++
	switch c {
	case '(':
		return l.tok(KindLParen, start)
	case ')':
		return l.tok(KindRParen, start)
	case '{':
		return l.tok(KindLBrace, start)
	case '}':
		return l.tok(KindRBrace, start)
	case '[':
		return l.tok(KindLBracket, start)
	case ']':
		return l.tok(KindRBracket, start)
	case ',':
		return l.tok(KindComma, start)
	case ':':
		return l.tok(KindColon, start)
	case ';':
		return l.tok(KindSemicolon, start)
	case '.':
		return l.tok(KindDot, start)
	case '|':
		return l.tok(KindPipe, start)
	case '?':
		return l.tok(KindQuestion, start)
	case '#':
		return l.tok(KindHash, start)
	case '=':
		return l.tok(KindAssign, start)
	case '+':
		return l.tok(KindOpAdd, start)
	case '-':
		return l.tok(KindOpSub, start)
	case '*':
		return l.tok(KindOpMul, start)
	case '/':
		return l.tok(KindOpDiv, start)
	case '%':
		return l.tok(KindOpMod, start)
	case '<':
		return l.tok(KindOpLt, start)
	case '>':
		return l.tok(KindOpGt, start)
	case '!':
		return l.tok(KindOpNot, start)
	case '&':
		return l.tok(KindOpBitAnd, start)
	case '^':
		return l.tok(KindOpBitXor, start)
	default:
		return l.tok(KindError, start)
	}
}

func isSpace(c byte) bool { return c == ' ' || c == '\t' || c == '\n' || c == '\r' }
func isDigit(c byte) bool { return c >= '0' && c <= '9' }
func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
func isIdentCont(c byte) bool { return isIdentStart(c) || isDigit(c) }

// classify tries to parse only the leading module declaration to decide
// whether src is a definition file, per the §6 classifier contract.
func classify(src string) DialectKind {
	trimmed := strings.TrimSpace(src)
	if strings.HasPrefix(trimmed, "module ") || strings.HasPrefix(trimmed, "module;") ||
		strings.HasPrefix(trimmed, "module\t") {
		return DialectDef
	}
	return DialectScript
}
