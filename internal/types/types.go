// Package types implements the type model of spec.md §3/§4.1: a
// closed sum of variants behind one capability interface, each
// carrying a (possibly nil) prototype link used only for attribute
// and method fallback.
//
// The mixed-in inspect/predicates/compatibility/object-ops/generic-ops
// behavior the teacher's HM-based typesystem package splits across
// several files collapses here into one TypeLike contract
// (spec.md §9 "Mixed-in behavior -> capability interfaces"), with a
// tagged set of concrete variants each implementing it directly.
package types

import "github.com/funvibe/typecheck/internal/symboltable"

// TypeLike is satisfied by every variant in this package.
type TypeLike interface {
	String() string
	// Prototype returns the fallback type used when attribute/method
	// lookup misses on the receiver, or nil if this variant has none.
	Prototype() Type
}

// Type is the exported alias other packages program against.
type Type = TypeLike

// BlockKind distinguishes the four ways a Block can arise (spec.md §3).
type BlockKind int

const (
	KindClosure BlockKind = iota
	KindMethod
	KindTryBlock
	KindElseBlock
)

func (k BlockKind) String() string {
	switch k {
	case KindClosure:
		return "closure"
	case KindMethod:
		return "method"
	case KindTryBlock:
		return "try_block"
	case KindElseBlock:
		return "else_block"
	default:
		return "unknown"
	}
}

// Object is spec.md §3's Object variant: a named prototype-backed
// bag of attributes (methods included, since a method is an
// attribute whose type is *Block), implemented traits, and generic
// type parameters.
type Object struct {
	Name string
	// Attributes holds every attribute, including methods (whose
	// Type is *Block). Shared storage matches spec.md §3: "attribute
	// table (shared with methods)".
	Attributes *symboltable.Table
	// ImplementedTraits is keyed by trait name; spec.md §4.7 mutates
	// this set (grow on success, shrink once on failed verification).
	ImplementedTraits map[string]*Trait
	// TypeParams is the object's own ordered type-parameter table,
	// each entry a generated Trait (spec.md: "TypeParameter
	// (represented as a generated Trait with required methods/traits)").
	TypeParams *symboltable.Table
	// TypeParamInstances maps a type-parameter name to the concrete
	// type it has been bound to for this object, built incrementally
	// at call sites (spec.md §4.1 "Parameter instantiation").
	TypeParamInstances map[string]Type
	proto              Type
}

func (o *Object) String() string    { return o.Name }
func (o *Object) Prototype() Type   { return o.proto }
func (o *Object) SetPrototype(p Type) { o.proto = p }

// Trait is spec.md §3's Trait variant: like Object, plus a
// required-methods table and required-traits set. Generated marks a
// trait synthesized from a type-parameter constraint (its name then
// matches the parameter's name) — this is how spec.md's TypeParameter
// is represented.
type Trait struct {
	Name              string
	Attributes        *symboltable.Table
	ImplementedTraits map[string]*Trait
	TypeParams        *symboltable.Table
	TypeParamInstances map[string]Type
	// RequiredMethods holds the trait's own method contract; each
	// value is a *Block with Kind == KindMethod.
	RequiredMethods map[string]*Block
	// RequiredMethodOrder preserves declaration order, needed so
	// verification (spec.md §4.7) and diagnostics are deterministic.
	RequiredMethodOrder []string
	RequiredTraits      map[string]*Trait
	Generated           bool
	proto               Type
}

func (t *Trait) String() string    { return t.Name }
func (t *Trait) Prototype() Type   { return t.proto }
func (t *Trait) SetPrototype(p Type) { t.proto = p }

// AddRequiredMethod records a required method in declaration order.
// Invariant 4 (spec.md §3): only legal while self_type is a Trait;
// the pass enforces that, not this setter.
func (t *Trait) AddRequiredMethod(name string, block *Block) {
	if _, exists := t.RequiredMethods[name]; !exists {
		t.RequiredMethodOrder = append(t.RequiredMethodOrder, name)
	}
	t.RequiredMethods[name] = block
}

// Implements reports whether this trait's name is present in the
// object's implemented-traits set — used from both directions of
// compatibility (spec.md §4.1).
func (o *Object) Implements(traitName string) bool {
	_, ok := o.ImplementedTraits[traitName]
	return ok
}

func (t *Trait) Implements(traitName string) bool {
	_, ok := t.ImplementedTraits[traitName]
	return ok
}

// Arg is one entry of a Block's ordered argument table.
type Arg struct {
	Name     string
	Type     Type
	Optional bool // true if this argument has a default and may be omitted
	Rest     bool // true if this is a trailing rest/variadic argument
	Keyword  bool // true if this argument must be (or may be) passed by keyword
}

// Block is spec.md §3's Block variant: the common type of closures
// and methods. Arguments[0] is always the implicit self
// (invariant 2).
type Block struct {
	Name       string
	BlockKind  BlockKind
	Arguments  []Arg
	Returns    Type // nil until set; resolved/back-filled per spec.md §4.6
	Throws     Type // nil means "no declared throw type"
	TypeParams *symboltable.Table
	// Infer marks a block written without an explicit signature; its
	// return type may be back-filled from its body (spec.md §3).
	Infer bool
	proto Type
}

func (b *Block) String() string {
	return b.Name
}
func (b *Block) Prototype() Type { return b.proto }

// Self returns the implicit 0th argument (invariant 2: every Block
// has a self argument at index 0).
func (b *Block) Self() Arg {
	if len(b.Arguments) == 0 {
		return Arg{}
	}
	return b.Arguments[0]
}

// PositionalArgs returns Arguments[1:], since index 0 is always self
// and method-call positional indices start at 1 (spec.md §4.6 step 7).
func (b *Block) PositionalArgs() []Arg {
	if len(b.Arguments) <= 1 {
		return nil
	}
	return b.Arguments[1:]
}

// MinArgs/MaxArgs compute arity bounds over the non-self arguments,
// honoring optional and rest arguments (spec.md §4.1, §8 boundary
// cases: "a rest argument accepts any argument count >= declared
// required count").
func (b *Block) MinArgs() int {
	min := 0
	for _, a := range b.PositionalArgs() {
		if !a.Optional && !a.Rest {
			min++
		}
	}
	return min
}

func (b *Block) HasRest() bool {
	for _, a := range b.PositionalArgs() {
		if a.Rest {
			return true
		}
	}
	return false
}

func (b *Block) MaxArgs() (int, bool) {
	if b.HasRest() {
		return 0, false
	}
	return len(b.PositionalArgs()), true
}

// Optional is spec.md §3's Optional[T] variant.
type Optional struct {
	Inner Type
}

func (o Optional) String() string  { return "Optional[" + o.Inner.String() + "]" }
func (o Optional) Prototype() Type { return nil }

// SelfType is a placeholder resolved to the enclosing self at the
// point of use (spec.md §3).
type SelfType struct{}

func (SelfType) String() string  { return "Self" }
func (SelfType) Prototype() Type { return nil }

// Dynamic is the universal-compatibility escape hatch (spec.md §3).
type Dynamic struct{}

func (Dynamic) String() string  { return "Dyn" }
func (Dynamic) Prototype() Type { return nil }

// Constraint is the inferred type of an unannotated closure argument;
// a set of required methods is attached on first use (spec.md §3,
// §8 scenario 6).
type Constraint struct {
	// Name identifies the argument this constraint was synthesized
	// for; used to name the generated trait if one is produced.
	Name            string
	RequiredMethods map[string]*Block
}

func (c *Constraint) String() string  { return "constraint(" + c.Name + ")" }
func (c *Constraint) Prototype() Type { return nil }

// NewConstraint builds an empty constraint for an unannotated
// argument named name.
func NewConstraint(name string) *Constraint {
	return &Constraint{Name: name, RequiredMethods: make(map[string]*Block)}
}

// RequireMethod records that this constraint's eventual binding must
// respond to method name with the given signature (spec.md §4.6
// send-algorithm step 3: "synthesize a required method on it").
func (c *Constraint) RequireMethod(name string, block *Block) {
	c.RequiredMethods[name] = block
}
