package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeBlockLiteral implements spec.md §4.6 "block (closure)": closures
// are typed immediately, not deferred to Phase 2, since they are
// always nested inside a body already under traversal. An unannotated
// argument gets a fresh Constraint (spec.md §3); an unannotated return
// type is back-filled from the body once it has been typed.
func (p *Pass) typeBlockLiteral(n *ast.BlockLiteral, scope *typescope.Scope) types.Type {
	block := &types.Block{BlockKind: types.KindClosure, Infer: n.Returns == nil}
	block.Arguments = append(block.Arguments, types.Arg{Name: config.SelfArgName, Type: scope.SelfType})

	for _, a := range n.Args {
		var argType types.Type
		if a.Annotation != nil {
			argType = p.resolveTypeRef(a.Annotation, scope)
		} else {
			argType = types.NewConstraint(a.Name)
		}
		block.Arguments = append(block.Arguments, types.Arg{
			Name: a.Name, Type: argType, Optional: a.Optional, Rest: a.Rest, Keyword: a.Keyword,
		})
	}
	if n.Returns != nil {
		block.Returns = p.resolveTypeRef(n.Returns, scope)
	}
	if n.Throws != nil {
		block.Throws = p.resolveTypeRef(n.Throws, scope)
	}

	for _, a := range n.Args {
		if a.Default != nil {
			p.typeExpr(a.Default, scope)
		}
	}

	bodyScope := scope.Enter(scope.SelfType, block)
	bodyType := p.typeBody(n.Body, bodyScope)
	if block.Returns == nil {
		block.Returns = bodyType
	} else if !types.CompatibleWith(bodyType, block.Returns) {
		p.err(diagnostics.ReturnTypeMismatch, n, block.Returns.String(), bodyType.String())
	}

	n.BlockType = block
	n.SetType(block)
	return block
}
