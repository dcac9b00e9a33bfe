package syntax

// Query answers cursor-position questions against a parsed Document,
// used by the core's symbol-at-offset and completion-support operations
// without requiring callers to walk the tree themselves.
type Query struct {
	doc *Document
}

// NewQuery builds a Query over doc.
func NewQuery(doc *Document) Query { return Query{doc: doc} }

// TokenBefore returns the last token whose range ends at or before
// offset, skipping trivia.
func (q Query) TokenBefore(offset TextSize) *Node {
	var best *Node
	for _, n := range q.doc.Root.Descendants() {
		if !n.Kind.IsToken() || n.Kind.IsTrivia() {
			continue
		}
		if n.Range.End <= offset {
			best = n
		}
	}
	return best
}

// TokenAfter returns the first token whose range starts at or after
// offset, skipping trivia.
func (q Query) TokenAfter(offset TextSize) *Node {
	for _, n := range q.doc.Root.Descendants() {
		if !n.Kind.IsToken() || n.Kind.IsTrivia() {
			continue
		}
		if n.Range.Start >= offset {
			return n
		}
	}
	return nil
}

// tokenAt returns the deepest token covering offset, inclusive at the
// end boundary (so a cursor right after an identifier still resolves to
// it, matching editor completion-trigger conventions).
func (q Query) tokenAt(offset TextSize) *Node {
	var best *Node
	for _, n := range q.doc.Root.Descendants() {
		if !n.Kind.IsToken() {
			continue
		}
		if n.Range.Contains(offset, true) {
			if best == nil || n.Range.Tighter(best.Range) {
				best = n
			}
		}
	}
	return best
}

// IsInComment reports whether offset falls inside a comment token.
func (q Query) IsInComment(offset TextSize) bool {
	t := q.tokenAt(offset)
	if t == nil {
		return false
	}
	switch t.Kind {
	case KindLineComment, KindDocComment, KindBlockComment, KindDocBlockComment:
		return true
	default:
		return false
	}
}

// IsPath reports whether offset sits within a path expression, and
// returns that path's node.
func (q Query) IsPath(offset TextSize) (*Node, bool) {
	t := q.tokenAt(offset)
	for n := t; n != nil; n = n.Parent {
		if n.Kind == KindPathExpr {
			return n, true
		}
	}
	return nil, false
}

// IsFieldAccess reports whether offset sits within a field-access
// expression's right-hand identifier.
func (q Query) IsFieldAccess(offset TextSize) (*Node, bool) {
	t := q.tokenAt(offset)
	for n := t; n != nil; n = n.Parent {
		if n.Kind == KindFieldAccessExpr {
			return n, true
		}
	}
	return nil, false
}

// CanCompleteRef reports whether offset is a position where a bare
// reference (identifier or trailing path segment) could be completed:
// any position not inside a comment, string or char literal. It does not
// check that an IdentExpr or PathExpr is at or before offset.
func (q Query) CanCompleteRef(offset TextSize) bool {
	if q.IsInComment(offset) {
		return false
	}
	t := q.tokenAt(offset)
	if t == nil {
		return true
	}
	switch t.Kind {
	case KindLitStr, KindLitStrTemplateStart, KindLitStrTemplatePart, KindLitStrTemplateEnd, KindLitChar:
		return false
	}
	return true
}

// CanCompleteOp reports whether offset sits in infix-operator position:
// immediately after a complete expression, where a binary or custom
// operator name could be typed next.
func (q Query) CanCompleteOp(offset TextSize) bool {
	before := q.TokenBefore(offset)
	if before == nil {
		return false
	}
	switch before.Kind {
	case KindIdent, KindLitInt, KindLitFloat, KindLitStr, KindLitChar, KindLitBool,
		KindRParen, KindRBracket, KindRBrace:
		return true
	default:
		return false
	}
}

// PathSegmentIndex returns the zero-based index of the path segment
// covering offset within path, or -1 if offset isn't within any segment.
func PathSegmentIndex(path *Node, offset TextSize) int {
	p, ok := CastPath(path)
	if !ok {
		return -1
	}
	for i, seg := range p.Segments() {
		if seg.Range.Contains(offset, true) {
			return i
		}
	}
	return -1
}
