// Package typescope implements spec.md §4.5: the (self_type,
// block_type, locals) triple active during one traversal frame,
// immutable after construction.
//
// Grounded on the ambient traversal-frame fields of the teacher's
// walker struct (internal/analyzer/analyzer.go: inLoop, inInstance,
// mode), generalized here into the explicit scope record spec.md
// names instead of a grab-bag of booleans on one mutable walker.
package typescope

import (
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/types"
)

// Scope is one traversal frame.
type Scope struct {
	SelfType  types.Type
	BlockType *types.Block // the enclosing block being filled in, nil at module top level
	Locals    *symboltable.Table
}

// New builds a root scope (module top level): no enclosing block.
func New(selfType types.Type, locals *symboltable.Table) *Scope {
	return &Scope{SelfType: selfType, Locals: locals}
}

// Enter returns a new frame nested under s for the body of block,
// with a fresh, chained locals table seeded from block's arguments
// (the implicit self at index 0 is not re-bound as a local; it is
// read through SelfType).
func (s *Scope) Enter(selfType types.Type, block *types.Block) *Scope {
	locals := symboltable.NewChild(s.Locals)
	for _, arg := range block.PositionalArgs() {
		locals.Define(arg.Name, arg.Type, true)
	}
	return &Scope{SelfType: selfType, BlockType: block, Locals: locals}
}

// WithLocals returns a copy of s with a fresh child locals table,
// for a nested lexical block that keeps self_type and block_type
// unchanged. The pass itself does not call it.
func (s *Scope) WithLocals() *Scope {
	return &Scope{SelfType: s.SelfType, BlockType: s.BlockType, Locals: symboltable.NewChild(s.Locals)}
}

// IsClosure reports whether the enclosing block is a closure
// (spec.md §4.5 "closure?").
func (s *Scope) IsClosure() bool {
	return s.BlockType != nil && s.BlockType.BlockKind == types.KindClosure
}

// IsMethod reports whether the enclosing block is a method
// (spec.md §4.5 "method?").
func (s *Scope) IsMethod() bool {
	return s.BlockType != nil && s.BlockType.BlockKind == types.KindMethod
}
