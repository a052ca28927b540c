package ast

import "github.com/funvibe/typecheck/internal/token"

// TypeRef is the AST shape of a type annotation, resolved by
// internal/pass's type-resolution routine against an ordered list of
// lookup sources (spec.md §4.6 "Type resolution").
type TypeRef interface {
	Node
	typeRefNode()
}

type typeRefBase struct{ Token token.Token }

func (t *typeRefBase) typeRefNode()         {}
func (t *typeRefBase) GetToken() token.Token { return t.Token }

// NamedTypeRef is a plain or qualified name (`Foo`, `mod.Foo`),
// resolved against [block_type, self_type, module] plus a receiver
// when qualified.
type NamedTypeRef struct {
	typeRefBase
	Qualifier string // "" when unqualified
	Name      string
	// TypeArgs are type-parameter arguments on a generic reference,
	// e.g. `List[Integer]`.
	TypeArgs []TypeRef
}

// OptionalTypeRef is `?Inner`, producing Optional[Inner].
type OptionalTypeRef struct {
	typeRefBase
	Inner TypeRef
}

// SelfTypeRef is literal `Self`, producing types.SelfType.
type SelfTypeRef struct{ typeRefBase }

// DynTypeRef is literal `Dyn`, producing types.Dynamic.
type DynTypeRef struct{ typeRefBase }

// BlockTypeRef is an inline block-type annotation, e.g.
// `fn(Integer) -> String throws Error`, producing a *types.Block.
type BlockTypeRef struct {
	typeRefBase
	Args    []ArgDecl
	Returns TypeRef
	Throws  TypeRef
}
