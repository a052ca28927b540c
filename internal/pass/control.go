package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeBody types every statement of a method/closure/branch body in
// order, then enforces "every non-last return's value type must be
// compatible with [the body's type]" (spec.md §4.6 "Control-flow
// expressions"). The body's type is nil_type for an empty body.
func (p *Pass) typeBody(stmts []ast.Statement, scope *typescope.Scope) types.Type {
	var returns []*ast.ReturnExpr
	var last types.Type = p.DB.Nil

	for i, stmt := range stmts {
		t := p.typeBodyStatement(stmt, scope)
		if ret, ok := stmt.(*ast.ReturnExpr); ok {
			returns = append(returns, ret)
		}
		if i == len(stmts)-1 {
			last = t
		}
	}

	for _, ret := range returns {
		if len(stmts) > 0 && ret == stmts[len(stmts)-1] {
			continue // the last return IS the body's type; nothing to compare
		}
		if !types.CompatibleWith(ret.GetType(), last) {
			p.err(diagnostics.ReturnTypeMismatch, ret, last.String(), ret.GetType().String())
		}
	}
	return last
}

func (p *Pass) typeBodyStatement(stmt ast.Statement, scope *typescope.Scope) types.Type {
	switch n := stmt.(type) {
	case *ast.DefineVariable:
		p.typeDefineVariable(n, scope)
		return p.DB.Nil
	case *ast.ReassignAttribute:
		p.typeReassignAttribute(n, scope)
		return p.DB.Nil
	case *ast.ReassignLocal:
		p.typeReassignLocal(n, scope)
		return p.DB.Nil
	case *ast.ObjectDecl:
		p.declareObject(n, scope)
		return p.DB.Nil
	case *ast.TraitDecl:
		p.declareTrait(n, scope)
		return p.DB.Nil
	case *ast.MethodDecl:
		p.declareMethod(n, scope)
		return p.DB.Nil
	case ast.Expression:
		return p.typeExpr(n, scope)
	default:
		return p.DB.Nil
	}
}

// typeReturn implements "expression type is the value's type, or nil
// if absent" (spec.md §4.6).
func (p *Pass) typeReturn(n *ast.ReturnExpr, scope *typescope.Scope) types.Type {
	var t types.Type = p.DB.Nil
	if n.Value != nil {
		t = p.typeExpr(n.Value, scope)
	}
	n.SetType(t)
	return t
}

// typeThrow implements "expression type is Void. If inside a closure
// with no declared throw type, back-fill throws with the thrown
// value's type" (spec.md §4.6).
func (p *Pass) typeThrow(n *ast.ThrowExpr, scope *typescope.Scope) types.Type {
	valueType := p.typeExpr(n.Value, scope)
	if scope.IsClosure() && scope.BlockType.Throws == nil {
		scope.BlockType.Throws = valueType
	}
	n.SetType(p.DB.Void)
	return p.DB.Void
}

// typeTry implements spec.md §4.6 "try": two synthesized Block types
// share the enclosing self; the try branch's return type is
// back-filled from its body; the else branch's argument type is the
// try block's throw type; if both branches are "physical" (non-Void)
// they must be compatible, and the whole expression's type is the
// try branch's, falling back to the else branch's if the try
// branch's type is Void.
func (p *Pass) typeTry(n *ast.TryExpr, scope *typescope.Scope) types.Type {
	tryBlock := &types.Block{
		Name:      config.TryBlockName,
		BlockKind: types.KindTryBlock,
		Arguments: []types.Arg{{Name: config.SelfArgName, Type: scope.SelfType}},
	}
	tryScope := scope.Enter(scope.SelfType, tryBlock)
	tryType := p.typeBody(n.TryBody, tryScope)
	tryBlock.Returns = tryType
	n.TryBlockType = tryBlock

	elseBlock := &types.Block{
		Name:      config.ElseBlockName,
		BlockKind: types.KindElseBlock,
		Arguments: []types.Arg{
			{Name: config.SelfArgName, Type: scope.SelfType},
			{Name: n.ElseArgName, Type: firstNonNil(tryBlock.Throws, types.Type(types.Dynamic{}))},
		},
	}
	elseScope := scope.Enter(scope.SelfType, elseBlock)
	elseType := p.typeBody(n.ElseBody, elseScope)
	elseBlock.Returns = elseType
	n.ElseBlockType = elseBlock

	tryPhysical := tryType != p.DB.Void
	elsePhysical := elseType != p.DB.Void
	if tryPhysical && elsePhysical {
		if !types.CompatibleWith(elseType, tryType) {
			p.err(diagnostics.TypeMismatch, n, tryType.String(), elseType.String())
		}
	}

	result := tryType
	if tryType == p.DB.Void {
		result = elseType
	}
	n.SetType(result)
	return result
}

func firstNonNil(t types.Type, fallback types.Type) types.Type {
	if t == nil {
		return fallback
	}
	return t
}
