package hir

import (
	"strconv"
	"strings"

	"github.com/oxhq/rhai-hir/internal/syntax"
)

// firstToken returns the first direct token child of n with kind k.
func firstToken(n *syntax.Node, k syntax.Kind) *syntax.Node {
	if n == nil {
		return nil
	}
	for _, c := range n.Children {
		if c.Kind == k {
			return c
		}
	}
	return nil
}

// tokenAfterMarker scans n's direct children in order and returns the
// first non-trivia token of kind want that appears strictly after the
// first occurrence of marker.
func tokenAfterMarker(n *syntax.Node, marker, want syntax.Kind) *syntax.Node {
	if n == nil {
		return nil
	}
	seenMarker := false
	for _, c := range n.Children {
		if !c.Kind.IsToken() || c.Kind.IsTrivia() {
			continue
		}
		if !seenMarker {
			if c.Kind == marker {
				seenMarker = true
			}
			continue
		}
		if c.Kind == want {
			return c
		}
	}
	return nil
}

// typeAnnotationName extracts the type identifier's text from a
// KindTypeAnnotation node (`: ident`), or "" if ta is nil.
func typeAnnotationName(ta *syntax.Node) string {
	if ta == nil {
		return ""
	}
	for _, t := range ta.Tokens() {
		if t.Kind == syntax.KindIdent {
			return t.Text()
		}
	}
	return ""
}

// identText returns tok's text, or "" if tok is nil.
func identText(tok *syntax.Node) string {
	if tok == nil {
		return ""
	}
	return tok.Text()
}

// fnGetterSetter recognizes Rhai's `get$`/`set$` property-accessor naming
// convention, the only grammar a function declaration uses to mark itself
// as a property getter or setter (there is no dedicated keyword).
func fnGetterSetter(name string) (getter, setter bool) {
	switch {
	case strings.HasPrefix(name, "get$"):
		return true, false
	case strings.HasPrefix(name, "set$"):
		return false, true
	default:
		return false, false
	}
}

// parseUint8 parses text (with optional `_` digit separators) as a uint8,
// saturating-truncating on overflow rather than erroring.
func parseUint8(text string) uint8 {
	v, err := strconv.ParseUint(strings.ReplaceAll(text, "_", ""), 10, 8)
	if err != nil {
		if ne, ok := err.(*strconv.NumError); ok && ne.Err == strconv.ErrRange {
			return 255
		}
		return 0
	}
	return uint8(v)
}

// saturatingAddU8 adds a+b, saturating at 255 rather than wrapping.
func saturatingAddU8(a, b uint8) uint8 {
	sum := a + b
	if sum < a {
		return 255
	}
	return sum
}
