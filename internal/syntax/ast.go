package syntax

import "strings"

// Rhai is a typed view over a KindRhai root.
type Rhai struct{ node *Node }

// CastRhai attempts to view n as a script root.
func CastRhai(n *Node) (Rhai, bool) {
	if n == nil || n.Kind != KindRhai {
		return Rhai{}, false
	}
	return Rhai{node: n}, true
}

// Statements returns the script's top-level statement nodes.
func (r Rhai) Statements() []*Node { return r.node.NodeChildren() }

// RhaiDef is a typed view over a KindRhaiDef root.
type RhaiDef struct{ node *Node }

// CastRhaiDef attempts to view n as a definition-file root.
func CastRhaiDef(n *Node) (RhaiDef, bool) {
	if n == nil || n.Kind != KindRhaiDef {
		return RhaiDef{}, false
	}
	return RhaiDef{node: n}, true
}

// Header returns the module header statement, if present.
func (r RhaiDef) Header() *Node { return r.node.FirstChildOfKind(KindModuleDeclStmt) }

// Items returns the file's top-level declarations (excluding the header).
func (r RhaiDef) Items() []*Node {
	var out []*Node
	for _, c := range r.node.NodeChildren() {
		if c.Kind == KindModuleDeclStmt {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Path is a typed view over a KindPathExpr node.
type Path struct{ node *Node }

// CastPath attempts to view n as a path expression.
func CastPath(n *Node) (Path, bool) {
	if n == nil || n.Kind != KindPathExpr {
		return Path{}, false
	}
	return Path{node: n}, true
}

// Segments returns the path's identifier segments in order.
func (p Path) Segments() []*Node { return p.node.ChildrenOfKind(KindIdentExpr) }

// ParamList is a typed view over a KindParamList node.
type ParamList struct{ node *Node }

// CastParamList attempts to view n as a parameter list.
func CastParamList(n *Node) (ParamList, bool) {
	if n == nil || n.Kind != KindParamList {
		return ParamList{}, false
	}
	return ParamList{node: n}, true
}

// Params returns the individual KindParam nodes.
func (pl ParamList) Params() []*Node { return pl.node.ChildrenOfKind(KindParam) }

// ParamName returns a KindParam node's identifier token text.
func ParamName(param *Node) string {
	if param == nil {
		return ""
	}
	for _, t := range param.Tokens() {
		if t.Kind == KindIdent {
			return t.Text()
		}
	}
	return ""
}

// SwitchArmList-like helper: Arms returns a switch expression's arms.
func Arms(switchExpr *Node) []*Node {
	if switchExpr == nil {
		return nil
	}
	return switchExpr.ChildrenOfKind(KindSwitchArm)
}

// LitStrTemplate is a typed view over a KindLitStrTemplateExpr node.
type LitStrTemplate struct{ node *Node }

// CastLitStrTemplate attempts to view n as a string template literal.
func CastLitStrTemplate(n *Node) (LitStrTemplate, bool) {
	if n == nil || n.Kind != KindLitStrTemplateExpr {
		return LitStrTemplate{}, false
	}
	return LitStrTemplate{node: n}, true
}

// Segments returns the raw text parts between interpolations.
func (t LitStrTemplate) Segments() []*Node { return t.node.ChildrenOfKind(KindLitStrTemplatePart) }

// Interpolations returns the parsed expression children (everything that
// isn't the opening token or a raw text segment).
func (t LitStrTemplate) Interpolations() []*Node {
	var out []*Node
	for _, c := range t.node.NodeChildren() {
		if c.Kind == KindLitStrTemplatePart {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Doc extracts and folds the doc-comment trivia immediately preceding n
// within its parent's child list, per the doc-folding rule: consecutive
// line docs concatenate body+"\n"; a block doc has its delimiters
// removed and each line trimmed of surrounding whitespace and of a
// leading "* "; trailing whitespace is trimmed from the final result.
func Doc(n *Node) string {
	if n == nil || n.Parent == nil {
		return ""
	}
	siblings := n.Parent.Children
	idx := -1
	for i, s := range siblings {
		if s == n {
			idx = i
			break
		}
	}
	if idx < 0 {
		return ""
	}

	var docToks []*Node
	for i := idx - 1; i >= 0; i-- {
		k := siblings[i].Kind
		if k == KindWhitespace {
			continue
		}
		if k == KindDocComment || k == KindDocBlockComment {
			docToks = append([]*Node{siblings[i]}, docToks...)
			continue
		}
		break
	}
	if len(docToks) == 0 {
		return ""
	}

	var b strings.Builder
	for _, t := range docToks {
		if t.Kind == KindDocComment {
			body := strings.TrimPrefix(t.Text(), "///")
			body = strings.TrimPrefix(body, "//!")
			b.WriteString(strings.TrimPrefix(body, " "))
			b.WriteByte('\n')
		} else {
			body := strings.TrimPrefix(t.Text(), "/**")
			body = strings.TrimSuffix(body, "*/")
			for _, line := range strings.Split(body, "\n") {
				b.WriteString(strings.TrimPrefix(strings.TrimSpace(line), "* "))
				b.WriteByte('\n')
			}
		}
	}
	return strings.TrimRight(b.String(), " \t\n")
}
