package hir

// TypeKindTag discriminates the TypeKind tagged union.
type TypeKindTag int

const (
	TypeModule TypeKindTag = iota
	TypeInt
	TypeFloat
	TypeBool
	TypeChar
	TypeString
	TypeTimestamp
	TypeVoid
	TypeUnknown
	TypeNever
	TypeArray
	TypeTuple
	TypeObject
	TypeUnion
	TypeFn
	TypeUnresolved
)

// ObjectField is one entry of an Object type's ordered field map.
type ObjectField struct {
	Name string
	Type TypeHandle
}

// FnParam is one entry of a Fn type's parameter list.
type FnParam struct {
	Name string
	Type TypeHandle
}

// Type is an entity in the type arena. Builtins are created once,
// marked Protected, and reused rather than re-inserted.
type Type struct {
	Source    SourceInfo
	Protected bool

	Kind TypeKindTag

	// Populated only for the matching Kind.
	ArrayItems  TypeHandle    // TypeArray
	TupleItems  []TypeHandle  // TypeTuple
	Fields      []ObjectField // TypeObject
	UnionOf     []TypeHandle  // TypeUnion
	FnIsClosure bool          // TypeFn
	FnParams    []FnParam     // TypeFn
	FnRet       TypeHandle    // TypeFn
	Unresolved  string        // TypeUnresolved
}

// builtinTypes holds the singleton handles for the builtin TypeKinds,
// created once at Hir construction and reused for the lifetime of the
// process.
type builtinTypes struct {
	Module    TypeHandle
	Int       TypeHandle
	Float     TypeHandle
	Bool      TypeHandle
	Char      TypeHandle
	String    TypeHandle
	Timestamp TypeHandle
	Void      TypeHandle
	Unknown   TypeHandle
	Never     TypeHandle
}

func (h *Hir) initBuiltinTypes() {
	mk := func(kind TypeKindTag) TypeHandle {
		return h.types.Insert(Type{Kind: kind, Protected: true})
	}
	h.Builtins = builtinTypes{
		Module:    mk(TypeModule),
		Int:       mk(TypeInt),
		Float:     mk(TypeFloat),
		Bool:      mk(TypeBool),
		Char:      mk(TypeChar),
		String:    mk(TypeString),
		Timestamp: mk(TypeTimestamp),
		Void:      mk(TypeVoid),
		Unknown:   mk(TypeUnknown),
		Never:     mk(TypeNever),
	}
}

// Type dereferences handle, panicking if it is null or dangling.
func (h *Hir) Type(handle TypeHandle) *Type { return h.types.MustGet(handle) }

// TypeOK is the non-panicking counterpart of Type.
func (h *Hir) TypeOK(handle TypeHandle) (*Type, bool) { return h.types.Get(handle) }

// resolveTypeName is resolveTypeName attributed to this builder's source,
// so a freshly allocated Unresolved type can be garbage-collected when
// that source is removed. Builtins are protected singletons and are
// left unstamped.
func (b *builder) resolveTypeName(name string) TypeHandle {
	th := b.h.resolveTypeName(name)
	if ty, ok := b.h.TypeOK(th); ok && !ty.Protected {
		ty.Source = SourceInfo{Source: b.source}
	}
	return th
}

// resolveTypeName maps a type-annotation identifier to a builtin handle
// when recognized, or allocates a fresh Unresolved(name) otherwise.
func (h *Hir) resolveTypeName(name string) TypeHandle {
	switch name {
	case "":
		return h.Builtins.Unknown
	case "int":
		return h.Builtins.Int
	case "float":
		return h.Builtins.Float
	case "bool":
		return h.Builtins.Bool
	case "char":
		return h.Builtins.Char
	case "string":
		return h.Builtins.String
	case "timestamp":
		return h.Builtins.Timestamp
	case "void":
		return h.Builtins.Void
	case "never":
		return h.Builtins.Never
	default:
		return h.NewUnresolvedType(name)
	}
}

// NewUnresolvedType allocates an Unresolved(name) type for a reference to
// a name that doesn't (yet) resolve to a declared type.
func (h *Hir) NewUnresolvedType(name string) TypeHandle {
	return h.types.Insert(Type{Kind: TypeUnresolved, Unresolved: name})
}

// NewUnion builds a Union type, collapsing to the unique element when
// the deduplicated set has cardinality one, and to Void when empty.
func (h *Hir) NewUnion(members []TypeHandle) TypeHandle {
	seen := map[TypeHandle]struct{}{}
	var deduped []TypeHandle
	for _, m := range members {
		if _, ok := seen[m]; ok {
			continue
		}
		seen[m] = struct{}{}
		deduped = append(deduped, m)
	}
	switch len(deduped) {
	case 0:
		return h.Builtins.Void
	case 1:
		return deduped[0]
	default:
		return h.types.Insert(Type{Kind: TypeUnion, UnionOf: deduped})
	}
}
