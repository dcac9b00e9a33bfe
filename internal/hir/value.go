package hir

// ValueKind tags the literal forms a Lit symbol can carry.
type ValueKind int

const (
	ValueUnknown ValueKind = iota
	ValueInt
	ValueFloat
	ValueBool
	ValueChar
	ValueString
	ValueArray
	ValueObject
)

// Value is the best-effort literal payload attached to a Lit symbol;
// it backs hover/completion display, not evaluation.
type Value struct {
	Kind   ValueKind
	Int    int64
	Float  float64
	Bool   bool
	Char   rune
	String string
}

// builtinTypeFor maps a literal's ValueKind to its builtin TypeHandle.
func (h *Hir) builtinTypeFor(v Value) TypeHandle {
	switch v.Kind {
	case ValueInt:
		return h.Builtins.Int
	case ValueFloat:
		return h.Builtins.Float
	case ValueBool:
		return h.Builtins.Bool
	case ValueChar:
		return h.Builtins.Char
	case ValueString:
		return h.Builtins.String
	case ValueArray, ValueObject:
		return h.Builtins.Unknown
	default:
		return h.Builtins.Unknown
	}
}
