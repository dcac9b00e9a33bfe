package hir

// ResolveTypes runs the fixed-point-free type-propagation pass described
// in §4.6.2: one forward sweep over every live symbol, deriving its type
// from whatever its children's Type fields currently hold. Because the
// builder adds an expression's operands, a let/const initializer and a
// block's statements to the arena before the symbol built from them, a
// single arena-order sweep sees those values fresh. Symbols whose
// dependency runs the other way settle one resolve_all call later,
// matching the spec's explicit fixed-point-free contract: Reference
// targets, Fn parameter types feeding back into a signature computed
// earlier in the same sweep, and If and Fn symbols, which are inserted
// before their bodies.
func (h *Hir) ResolveTypes() {
	for _, sh := range h.symbols.Keys() {
		sym, ok := h.symbols.Get(sh)
		if !ok {
			continue
		}
		h.deriveType(sym)
	}
}

func (h *Hir) deriveType(sym *Symbol) {
	switch d := sym.Data.(type) {
	case *Lit:
		sym.Type = h.builtinTypeFor(d.Value)
	case *Reference:
		sym.Type = h.referenceType(d)
	case *Decl:
		sym.Type = h.declType(d)
	case *Block:
		sym.Type = h.tailType(d.Scope)
	case *If:
		sym.Type = h.branchesType(d.Branches)
	case *Switch:
		sym.Type = h.switchType(d.Arms)
	case *Fn:
		h.setFnType(sym, d)
	case *Call:
		sym.Type = h.callType(d)
	case *IndexExpr:
		sym.Type = h.indexType(d)
	case *Array:
		h.setArrayType(sym, d)
	case *Object:
		h.setObjectType(sym, d)
	case *Path:
		sym.Type = h.pathType(d)
	case *Break:
		sym.Type = h.Builtins.Never
	case *Continue:
		sym.Type = h.Builtins.Never
	case *Return:
		sym.Type = h.Builtins.Never
	case *Throw:
		sym.Type = h.Builtins.Never
	case *Try:
		sym.Type = h.Builtins.Never
	case *Import:
		sym.Type = h.Builtins.Void
	case *Export:
		sym.Type = h.Builtins.Void
	case *For:
		sym.Type = h.Builtins.Void
	case *Loop:
		sym.Type = h.Builtins.Void
	case *While:
		sym.Type = h.Builtins.Void
	case *VirtualModule:
		sym.Type = h.Builtins.Module
	}
}

func (h *Hir) referenceType(ref *Reference) TypeHandle {
	switch ref.Target.Kind {
	case RefTargetSymbol:
		if t, ok := h.SymbolOK(ref.Target.Symbol); ok {
			return t.Type
		}
		return h.Builtins.Unknown
	case RefTargetModule:
		return h.Builtins.Module
	default:
		return h.Builtins.Unknown
	}
}

func (h *Hir) declType(d *Decl) TypeHandle {
	if !d.TyDecl.IsNull() {
		return d.TyDecl
	}
	if !d.Value.IsNull() {
		if v, ok := h.SymbolOK(d.Value); ok {
			return v.Type
		}
	}
	return h.Builtins.Unknown
}

// tailType returns the type of a scope's last ordered symbol (the
// last-expression rule Block/Fn bodies share), or Void for an empty one.
func (h *Hir) tailType(scope ScopeHandle) TypeHandle {
	sc, ok := h.ScopeOK(scope)
	if !ok || len(sc.Symbols) == 0 {
		return h.Builtins.Void
	}
	last, ok := h.SymbolOK(sc.Symbols[len(sc.Symbols)-1])
	if !ok {
		return h.Builtins.Void
	}
	return last.Type
}

// branchValueType is tailType but reports whether the branch has a
// value at all, distinguishing an empty arm from one typed Void.
func (h *Hir) branchValueType(scope ScopeHandle) (TypeHandle, bool) {
	sc, ok := h.ScopeOK(scope)
	if !ok || len(sc.Symbols) == 0 {
		return TypeHandle{}, false
	}
	last, ok := h.SymbolOK(sc.Symbols[len(sc.Symbols)-1])
	if !ok {
		return TypeHandle{}, false
	}
	return last.Type, true
}

func (h *Hir) branchesType(branches []IfBranch) TypeHandle {
	var values []TypeHandle
	for _, br := range branches {
		if t, ok := h.branchValueType(br.Scope); ok {
			values = append(values, t)
		}
	}
	if len(values) == 0 {
		return h.Builtins.Void
	}
	return h.NewUnion(values)
}

func (h *Hir) switchType(arms []SwitchArm) TypeHandle {
	var values []TypeHandle
	for _, arm := range arms {
		if arm.Value.IsNull() {
			continue
		}
		if v, ok := h.SymbolOK(arm.Value); ok {
			values = append(values, v.Type)
		}
	}
	if len(values) == 0 {
		return h.Builtins.Void
	}
	return h.NewUnion(values)
}

// fnTailType is tailType restricted to reject a body made of nothing but
// its own leading parameter prefix (a fn with no statements has no
// trailing expression to infer a return type from).
func (h *Hir) fnTailType(scope ScopeHandle) (TypeHandle, bool) {
	sc, ok := h.ScopeOK(scope)
	if !ok || len(sc.Symbols) == 0 {
		return TypeHandle{}, false
	}
	last, ok := h.SymbolOK(sc.Symbols[len(sc.Symbols)-1])
	if !ok {
		return TypeHandle{}, false
	}
	if d, ok := last.AsDecl(); ok && d.IsParam {
		return TypeHandle{}, false
	}
	return last.Type, true
}

func (h *Hir) fnTypeParams(fn *Fn) []FnParam {
	var out []FnParam
	for _, sh := range h.FnParams(fn) {
		sym, ok := h.SymbolOK(sh)
		if !ok {
			continue
		}
		d, _ := sym.AsDecl()
		out = append(out, FnParam{Name: d.Name, Type: sym.Type})
	}
	return out
}

func (h *Hir) setFnType(sym *Symbol, fn *Fn) {
	ret := fn.RetTy
	if !fn.IsDef {
		if t, ok := h.fnTailType(fn.Scope); ok {
			ret = t
		} else {
			ret = h.Builtins.Unknown
		}
	}
	params := h.fnTypeParams(fn)
	h.setDerivedType(sym, TypeFn, func(t *Type) {
		t.FnIsClosure = !fn.IsDef
		t.FnParams = params
		t.FnRet = ret
	})
}

func (h *Hir) callType(call *Call) TypeHandle {
	if call.Callee.IsNull() {
		return h.Builtins.Unknown
	}
	callee, ok := h.SymbolOK(call.Callee)
	if !ok {
		return h.Builtins.Unknown
	}
	ty, ok := h.TypeOK(callee.Type)
	if !ok || ty.Kind != TypeFn {
		return h.Builtins.Unknown
	}
	return ty.FnRet
}

func (h *Hir) indexType(idx *IndexExpr) TypeHandle {
	if idx.Base.IsNull() {
		return h.Builtins.Unknown
	}
	base, ok := h.SymbolOK(idx.Base)
	if !ok {
		return h.Builtins.Unknown
	}
	ty, ok := h.TypeOK(base.Type)
	if !ok || ty.Kind != TypeArray {
		return h.Builtins.Unknown
	}
	return ty.ArrayItems
}

func (h *Hir) setArrayType(sym *Symbol, arr *Array) {
	var elems []TypeHandle
	for _, v := range arr.Values {
		if s, ok := h.SymbolOK(v); ok {
			elems = append(elems, s.Type)
		}
	}
	items := h.NewUnion(elems)
	h.setDerivedType(sym, TypeArray, func(t *Type) { t.ArrayItems = items })
}

func (h *Hir) setObjectType(sym *Symbol, obj *Object) {
	fields := make([]ObjectField, 0, len(obj.Fields))
	for _, f := range obj.Fields {
		ft := h.Builtins.Unknown
		if s, ok := h.SymbolOK(f.Value); ok {
			ft = s.Type
		}
		fields = append(fields, ObjectField{Name: f.Name, Type: ft})
	}
	h.setDerivedType(sym, TypeObject, func(t *Type) { t.Fields = fields })
}

func (h *Hir) pathType(p *Path) TypeHandle {
	if len(p.Segments) == 0 {
		return h.Builtins.Unknown
	}
	last, ok := h.SymbolOK(p.Segments[len(p.Segments)-1])
	if !ok {
		return h.Builtins.Unknown
	}
	return last.Type
}

// setDerivedType reuses sym's current Type entry in place when it is
// already a live, unprotected instance of kind (avoiding unbounded type
// arena growth across repeated resolve_all calls), allocating a fresh
// one only the first time or after a kind change.
func (h *Hir) setDerivedType(sym *Symbol, kind TypeKindTag, mutate func(*Type)) {
	if ty, ok := h.TypeOK(sym.Type); ok && !ty.Protected && ty.Kind == kind {
		mutate(ty)
		return
	}
	var t Type
	t.Kind = kind
	mutate(&t)
	sym.Type = h.types.Insert(t)
}
