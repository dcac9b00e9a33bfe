package hir

import "github.com/oxhq/rhai-hir/internal/syntax"

// SemanticErrorCode is a machine-readable tag for the diagnostics
// errors_for_source collects, per §4.7/§7's semantic-error taxonomy.
type SemanticErrorCode string

const (
	ErrUnresolvedReference  SemanticErrorCode = "UNRESOLVED_REFERENCE"
	ErrDuplicateFnParameter SemanticErrorCode = "DUPLICATE_FN_PARAMETER"
	ErrUnresolvedImport     SemanticErrorCode = "UNRESOLVED_IMPORT"
	ErrNestedFunction       SemanticErrorCode = "NESTED_FUNCTION"
)

// SemanticError is one diagnostic produced by ErrorsForSource. Range is
// always the symbol's primary (non-selection) byte range so a host can
// remap it to line/column without a second lookup.
type SemanticError struct {
	Code       SemanticErrorCode
	Range      syntax.TextRange
	Name       string
	Suggestion string // UnresolvedReference only
}

// ErrorsForSource collects the semantic diagnostics for every symbol
// belonging to source, in one pass: unresolved bare/path references,
// unresolved imports, duplicate function parameters, and (script
// sources only) functions nested inside another function.
func (h *Hir) ErrorsForSource(source SourceHandle) []SemanticError {
	src, ok := h.SourceOK(source)
	if !ok {
		return nil
	}

	var out []SemanticError
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok || !sym.Source.IsPartOf(source) {
			continue
		}

		switch d := sym.Data.(type) {
		case *Reference:
			if d.FieldAccess || d.Target.Kind != RefTargetNone {
				continue
			}
			r, hasRange := sym.Source.TextRange, sym.Source.HasTextRange
			if !hasRange {
				continue
			}
			suggestion, _ := h.SuggestForReference(sh)
			out = append(out, SemanticError{
				Code:       ErrUnresolvedReference,
				Range:      r,
				Name:       d.Name,
				Suggestion: suggestion,
			})
		case *Import:
			if !d.Target.IsNull() {
				continue
			}
			if !sym.Source.HasTextRange {
				continue
			}
			out = append(out, SemanticError{
				Code:  ErrUnresolvedImport,
				Range: sym.Source.TextRange,
			})
		case *Fn:
			if sym.Source.HasTextRange {
				if name, dup := h.duplicateFnParameter(d); dup {
					out = append(out, SemanticError{
						Code:  ErrDuplicateFnParameter,
						Range: sym.Source.TextRange,
						Name:  name,
					})
				}
				if src.Kind == SourceScript && h.isNestedFunction(sym) {
					out = append(out, SemanticError{
						Code:  ErrNestedFunction,
						Range: sym.Source.TextRange,
						Name:  d.Name,
					})
				}
			}
		}
	}
	return out
}

// duplicateFnParameter reports the first parameter name that appears
// more than once in fn's parameter list, if any.
func (h *Hir) duplicateFnParameter(fn *Fn) (string, bool) {
	seen := map[string]struct{}{}
	for _, sh := range h.FnParams(fn) {
		sym, ok := h.SymbolOK(sh)
		if !ok {
			continue
		}
		name := sym.Name()
		if name == "" {
			continue
		}
		if _, dup := seen[name]; dup {
			return name, true
		}
		seen[name] = struct{}{}
	}
	return "", false
}

// isNestedFunction walks up from sym's declaring scope (not its own
// body scope) looking for an ancestor scope owned by another Fn
// symbol, per §4.7's NestedFunction rule (script dialect only).
func (h *Hir) isNestedFunction(sym *Symbol) bool {
	scope, ok := h.ScopeOK(sym.ParentScope)
	if !ok {
		return false
	}
	for {
		switch scope.Parent.Kind {
		case ParentSym:
			owner, ok := h.SymbolOK(scope.Parent.Symbol)
			if !ok {
				return false
			}
			if owner.Kind == SymbolFn {
				return true
			}
			scope, ok = h.ScopeOK(owner.ParentScope)
			if !ok {
				return false
			}
		case ParentScope:
			scope, ok = h.ScopeOK(scope.Parent.Scope)
			if !ok {
				return false
			}
		default:
			return false
		}
	}
}
