package hir

// SymbolKindTag discriminates the ~30-variant SymbolKind tagged union.
// Spelling doesn't matter to the model, only the behavioral category
// each tag belongs to (declaration-like, reference-like, scope-owning
// control flow, expression leaf, or virtual).
type SymbolKindTag int

const (
	SymbolDecl SymbolKindTag = iota
	SymbolFn
	SymbolOp
	SymbolReference
	SymbolPath
	SymbolImport
	SymbolBlock
	SymbolIf
	SymbolLoop
	SymbolFor
	SymbolWhile
	SymbolSwitch
	SymbolTry
	SymbolUnary
	SymbolBinary
	SymbolIndexExpr
	SymbolCall
	SymbolArray
	SymbolObject
	SymbolLit
	SymbolClosure
	SymbolReturn
	SymbolBreak
	SymbolContinue
	SymbolThrow
	SymbolExport
	SymbolDiscard
	SymbolTypeDecl
	SymbolVirtualModule
	SymbolVirtualProxy
	SymbolVirtualAlias
)

// RefTargetKind tags the `RefTarget = Symbol | Module` sum type.
type RefTargetKind int

const (
	RefTargetNone RefTargetKind = iota
	RefTargetSymbol
	RefTargetModule
)

// RefTarget is the resolved referent of a Reference or Import alias.
type RefTarget struct {
	Kind   RefTargetKind
	Symbol SymbolHandle
	Module ModuleHandle
}

// SymbolData is implemented by every per-kind payload struct. It carries
// no behavior; it exists only so Symbol.Data can hold any of them while
// still being type-checked as "one of ours" at compile time.
type SymbolData interface{ isSymbolData() }

// Symbol is the entity common to every SymbolKind: a source anchor, the
// scope it lives in, module-export visibility, an inferred type, and
// the kind-specific payload.
type Symbol struct {
	Source      SourceInfo
	ParentScope ScopeHandle
	Export      bool
	Type        TypeHandle
	Kind        SymbolKindTag
	Data        SymbolData
}

// Name dispatches on Data for the kinds that carry a name.
func (s *Symbol) Name() string {
	switch d := s.Data.(type) {
	case *Decl:
		return d.Name
	case *Fn:
		return d.Name
	case *Op:
		return d.Name
	case *Reference:
		return d.Name
	case *VirtualModule:
		return d.Name
	case *VirtualProxy:
		return d.Name
	case *VirtualAlias:
		return d.Name
	case *TypeDecl:
		return d.Name
	default:
		return ""
	}
}

// AsDecl narrows Data to *Decl.
func (s *Symbol) AsDecl() (*Decl, bool) { d, ok := s.Data.(*Decl); return d, ok }

// AsFn narrows Data to *Fn.
func (s *Symbol) AsFn() (*Fn, bool) { d, ok := s.Data.(*Fn); return d, ok }

// AsOp narrows Data to *Op.
func (s *Symbol) AsOp() (*Op, bool) { d, ok := s.Data.(*Op); return d, ok }

// AsReference narrows Data to *Reference.
func (s *Symbol) AsReference() (*Reference, bool) { d, ok := s.Data.(*Reference); return d, ok }

// AsPath narrows Data to *Path.
func (s *Symbol) AsPath() (*Path, bool) { d, ok := s.Data.(*Path); return d, ok }

// AsImport narrows Data to *Import.
func (s *Symbol) AsImport() (*Import, bool) { d, ok := s.Data.(*Import); return d, ok }

// AsVirtualModule narrows Data to *VirtualModule.
func (s *Symbol) AsVirtualModule() (*VirtualModule, bool) {
	d, ok := s.Data.(*VirtualModule)
	return d, ok
}

// AsLit narrows Data to *Lit.
func (s *Symbol) AsLit() (*Lit, bool) { d, ok := s.Data.(*Lit); return d, ok }

// Symbol dereferences handle, panicking if it is null or dangling.
func (h *Hir) Symbol(handle SymbolHandle) *Symbol { return h.symbols.MustGet(handle) }

// SymbolOK is the non-panicking counterpart of Symbol.
func (h *Hir) SymbolOK(handle SymbolHandle) (*Symbol, bool) { return h.symbols.Get(handle) }

// --- Decl ---

// Decl is a let/const/parameter/import alias.
type Decl struct {
	Name       string
	IsConst    bool
	IsParam    bool
	IsImport   bool
	Docs       string
	Value      SymbolHandle // initializer's result symbol, null if none
	ValueScope ScopeHandle
	TyDecl     TypeHandle
	Target     RefTarget
	References map[SymbolHandle]struct{}
}

func (*Decl) isSymbolData() {}

// --- Fn ---

// Fn is a function declaration. Its parameters are the leading entries
// of Scope's ordered symbol list, flagged IsParam; see Hir.FnParams.
type Fn struct {
	Name       string
	Docs       string
	Scope      ScopeHandle
	RetTy      TypeHandle
	Getter     bool
	Setter     bool
	IsDef      bool // definition-file signature with no body
	References map[SymbolHandle]struct{}
}

func (*Fn) isSymbolData() {}

// FnParams returns the leading Decl symbols of fn.Scope flagged IsParam,
// in declaration order, per §4.4's "leading parameter prefix" rule.
func (h *Hir) FnParams(fn *Fn) []SymbolHandle {
	scope, ok := h.ScopeOK(fn.Scope)
	if !ok {
		return nil
	}
	var out []SymbolHandle
	for _, sh := range scope.Symbols {
		sym, ok := h.SymbolOK(sh)
		if !ok {
			break
		}
		d, ok := sym.AsDecl()
		if !ok || !d.IsParam {
			break
		}
		out = append(out, sh)
	}
	return out
}

// --- Op ---

// Op is an operator declaration from a definition file.
type Op struct {
	Name          string
	Docs          string
	BindingPowers [2]uint8
	LhsTy         TypeHandle
	RhsTy         TypeHandle // null if unary
	RetTy         TypeHandle
}

func (*Op) isSymbolData() {}

// --- Reference ---

// Reference is an identifier use awaiting (or having completed)
// resolution. Base is only meaningful when FieldAccess is set: it's the
// symbol for the expression to the left of `.`, consulted by the
// type-based field lookup in place of scope resolution.
type Reference struct {
	Name        string
	PartOfPath  bool
	FieldAccess bool
	Base        SymbolHandle
	Target      RefTarget
}

func (*Reference) isSymbolData() {}

// --- Path ---

// Path is a dotted/`::` chain; each segment is itself a Reference.
type Path struct {
	Segments []SymbolHandle
	Scope    ScopeHandle
}

func (*Path) isSymbolData() {}

// --- Import ---

// Import is an `import` statement.
type Import struct {
	Expr   SymbolHandle // the imported path/string expression, if captured
	Alias  SymbolHandle // Decl marked IsImport, null if no `as` clause
	Scope  ScopeHandle
	Target ModuleHandle
}

func (*Import) isSymbolData() {}

// --- Control flow ---

type Block struct{ Scope ScopeHandle }

func (*Block) isSymbolData() {}

// IfBranch is one `if`/`else if`/`else` arm. Cond is null for a final
// unconditional `else`.
type IfBranch struct {
	Cond  SymbolHandle
	Scope ScopeHandle
}

type If struct{ Branches []IfBranch }

func (*If) isSymbolData() {}

type Loop struct{ Scope ScopeHandle }

func (*Loop) isSymbolData() {}

type For struct {
	Iterable SymbolHandle
	Scope    ScopeHandle
}

func (*For) isSymbolData() {}

type While struct {
	Cond  SymbolHandle
	Scope ScopeHandle
}

func (*While) isSymbolData() {}

// SwitchArm is one `pattern [if guard] => value` arm.
type SwitchArm struct {
	Pattern SymbolHandle
	Guard   SymbolHandle
	Value   SymbolHandle
}

type Switch struct {
	Target SymbolHandle
	Arms   []SwitchArm
}

func (*Switch) isSymbolData() {}

type Try struct {
	TryScope   ScopeHandle
	CatchScope ScopeHandle // null if no `catch` clause
}

func (*Try) isSymbolData() {}

// --- Expression/statement leaves ---

type Unary struct{ Operand SymbolHandle }

func (*Unary) isSymbolData() {}

type Binary struct{ Lhs, Rhs SymbolHandle }

func (*Binary) isSymbolData() {}

type IndexExpr struct{ Base, Index SymbolHandle }

func (*IndexExpr) isSymbolData() {}

type Call struct {
	Callee SymbolHandle
	Args   []SymbolHandle
}

func (*Call) isSymbolData() {}

type Array struct{ Values []SymbolHandle }

func (*Array) isSymbolData() {}

type ObjectEntry struct {
	Name  string
	Value SymbolHandle
}

type Object struct{ Fields []ObjectEntry }

func (*Object) isSymbolData() {}

type Lit struct {
	Value              Value
	InterpolatedScopes []ScopeHandle
}

func (*Lit) isSymbolData() {}

type Closure struct{ Scope ScopeHandle }

func (*Closure) isSymbolData() {}

type Return struct{ Expr SymbolHandle }

func (*Return) isSymbolData() {}

type Break struct{ Expr SymbolHandle }

func (*Break) isSymbolData() {}

type Continue struct{}

func (*Continue) isSymbolData() {}

type Throw struct{ Expr SymbolHandle }

func (*Throw) isSymbolData() {}

type Export struct{ Target SymbolHandle }

func (*Export) isSymbolData() {}

type Discard struct{}

func (*Discard) isSymbolData() {}

type TypeDecl struct {
	Name    string
	Aliased TypeHandle
}

func (*TypeDecl) isSymbolData() {}

// --- Virtual ---

// VirtualModule exposes a module inside a scope under a chosen name,
// with no source site of its own.
type VirtualModule struct {
	Name   string
	Module ModuleHandle
}

func (*VirtualModule) isSymbolData() {}

// VirtualProxy re-exposes another symbol under a new name.
type VirtualProxy struct {
	Name   string
	Target SymbolHandle
}

func (*VirtualProxy) isSymbolData() {}

// VirtualAlias exposes a RefTarget (symbol or module) under a new name.
type VirtualAlias struct {
	Name   string
	Target RefTarget
}

func (*VirtualAlias) isSymbolData() {}
