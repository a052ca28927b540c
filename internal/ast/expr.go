package ast

import "github.com/funvibe/typecheck/internal/types"

// Literal kinds (spec.md §4.6 "Literal nodes take their prototype
// type").
type IntegerLiteral struct{ exprBase }
type FloatLiteral struct{ exprBase }
type StringLiteral struct {
	exprBase
	Value string
}
type TrueLiteral struct{ exprBase }
type FalseLiteral struct{ exprBase }
type NilLiteral struct{ exprBase }

// SelfExpr is `self`; its type is scope.self_type (spec.md §4.6).
type SelfExpr struct{ exprBase }

// AttributeExpr is `@name`; looked up on self_type.
type AttributeExpr struct {
	exprBase
	Name string
}

// ConstantExpr is a qualified constant reference, resolved through
// [self_type, module] (spec.md §4.6).
type ConstantExpr struct {
	exprBase
	Qualifier string // "" when unqualified
	Name      string
}

// IdentifierExpr resolves as local, then zero-arg send on self_type,
// then on module type, then module global (spec.md §4.6).
type IdentifierExpr struct {
	exprBase
	Name string
}

// GlobalExpr requires a prior declaration (spec.md §4.6 "global
// requires a prior declaration").
type GlobalExpr struct {
	exprBase
	Name string
}

// KeywordArg is one `name: value` actual argument in a Send.
type KeywordArg struct {
	Name  string
	Value Expression
}

// Send is a method-call node (spec.md §4.6 "Sends"). Receiver is nil
// for an implicit-receiver send. ReceiverType is filled in by the
// pass (a supplementary slot per spec.md §6).
type Send struct {
	exprBase
	Receiver     Expression // nil => implicit receiver
	ReceiverType types.Type // supplementary slot, spec.md §6
	Name         string
	Args         []Expression
	KeywordArgs  []KeywordArg
}

// BlockLiteral is a closure expression (spec.md §4.6 "block
// (closure)"). BlockType is the supplementary slot downstream passes
// read (spec.md §6).
type BlockLiteral struct {
	exprBase
	Args      []ArgDecl
	Returns   TypeRef
	Throws    TypeRef
	Body      []Statement
	BlockType types.Type
}

// ReturnExpr is `return value?`.
type ReturnExpr struct {
	exprBase
	Value Expression // nil when bare `return`
}

// ThrowExpr is `throw value`.
type ThrowExpr struct {
	exprBase
	Value Expression
}

// TryExpr is `try { ... } else |err| { ... }` (spec.md §4.6). The two
// synthesized Block types are exposed as supplementary slots.
type TryExpr struct {
	exprBase
	TryBody       []Statement
	ElseArgName   string // name bound to the thrown value in the else branch
	ElseBody      []Statement
	TryBlockType  types.Type
	ElseBlockType types.Type
}

// RawInstruction is a closed-registry intrinsic node (spec.md §4.6
// "Raw instruction nodes"); Opcode must be a key of
// config.RawInstructions or the pass emits unknown-raw-instruction.
type RawInstruction struct {
	exprBase
	Opcode string
	Args   []Expression
}
