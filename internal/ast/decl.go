package ast

import "github.com/funvibe/typecheck/internal/types"

// ObjectDecl declares a prototype-backed Object (spec.md §4.6).
// ResolvedType is filled in by the pass once the Object is created,
// so Phase 2 re-entry can recover self_type without re-walking
// Phase 1.
type ObjectDecl struct {
	stmtBase
	Name         string
	TypeParams   []TypeParamDecl
	Body         []Statement
	ResolvedType types.Type
}

// TraitDecl declares a Trait (spec.md §4.6); RequiredTraits names
// traits this trait itself requires.
type TraitDecl struct {
	stmtBase
	Name           string
	TypeParams     []TypeParamDecl
	RequiredTraits []string
	Body           []Statement
	ResolvedType   types.Type
}

// TypeParamDecl is one generic type-parameter slot on an
// object/trait/method/block declaration, with its own constraint
// traits (spec.md §3 TypeParameter).
type TypeParamDecl struct {
	Name            string
	ConstraintTrait []string
}

// TraitImplementation is `impl Trait for Object { ... }` (spec.md
// §4.6 and §4.7).
type TraitImplementation struct {
	stmtBase
	TraitName  string
	ObjectName string
	Body       []Statement
}

// ReopenObject is `reopen Object { ... }`: resolve an existing type
// by name and recurse into Body with self = that type.
type ReopenObject struct {
	stmtBase
	Name string
	Body []Statement
}

// MethodDecl is `fn name(args) -> Return throws Throws { body }`. A
// method marked Required declares a trait's method contract instead
// of a concrete implementation (spec.md §4.6).
type MethodDecl struct {
	stmtBase
	Name         string
	Required     bool
	TypeParams   []TypeParamDecl
	Args         []ArgDecl
	Returns      TypeRef // nil means declared return defaults to Dynamic
	Throws       TypeRef // nil means no declared throw type
	Body         []Statement
	ResolvedType types.Type // the *types.Block built for this method
}

// ArgDecl is one formal argument in a method or block signature.
type ArgDecl struct {
	Name       string
	Annotation TypeRef // nil for an unannotated closure argument (-> Constraint)
	Optional   bool
	Rest       bool
	Keyword    bool
	Default    Expression // non-nil when Optional and a default value is given
}

// DefineVariableKind selects which of the three binding forms
// spec.md §4.6 describes a define_variable node is.
type DefineVariableKind int

const (
	DefineConstant DefineVariableKind = iota
	DefineAttribute
	DefineLocal
)

// DefineVariable is `name := value`, `@attr = value`, or
// `name :- value` depending on Kind (spec.md §4.6).
type DefineVariable struct {
	stmtBase
	Kind       DefineVariableKind
	Name       string
	Annotation TypeRef // optional explicit type annotation
	Value      Expression
}

// ReassignAttribute is `@attr = value`.
type ReassignAttribute struct {
	stmtBase
	Name  string
	Value Expression
}

// ReassignLocal is `name = value`.
type ReassignLocal struct {
	stmtBase
	Name  string
	Value Expression
}
