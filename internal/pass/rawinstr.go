package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeRawInstruction implements spec.md §4.6 "raw instruction nodes":
// Opcode must be a key of config.RawInstructions, whose value names
// the prototype the instruction evaluates to, or the empty string for
// a nil-typed instruction.
func (p *Pass) typeRawInstruction(n *ast.RawInstruction, scope *typescope.Scope) types.Type {
	for _, a := range n.Args {
		p.typeExpr(a, scope)
	}

	protoName, ok := config.RawInstructions[n.Opcode]
	if !ok {
		p.err(diagnostics.UnknownRawInstruction, n, n.Opcode)
		return p.setAndReturn(n, p.dynamic())
	}
	if protoName == "" {
		return p.setAndReturn(n, p.DB.Nil)
	}
	t, ok := p.lookupBuiltinType(protoName)
	if !ok {
		return p.setAndReturn(n, p.dynamic())
	}
	return p.setAndReturn(n, t)
}
