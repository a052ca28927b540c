package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeExpr dispatches one expression node via an explicit type switch
// (spec.md §9 "Visitor dispatch -> pattern match") and implements the
// per-node rules of spec.md §4.6. Every branch calls SetType before
// returning, satisfying invariant 1: every expression node carries a
// non-null type after the pass.
func (p *Pass) typeExpr(expr ast.Expression, scope *typescope.Scope) types.Type {
	switch n := expr.(type) {
	case *ast.IntegerLiteral:
		return p.setAndReturn(n, p.DB.Integer)
	case *ast.FloatLiteral:
		return p.setAndReturn(n, p.DB.Float)
	case *ast.StringLiteral:
		return p.setAndReturn(n, p.DB.String)
	case *ast.TrueLiteral:
		return p.setAndReturn(n, p.DB.True)
	case *ast.FalseLiteral:
		return p.setAndReturn(n, p.DB.False)
	case *ast.NilLiteral:
		return p.setAndReturn(n, p.DB.Nil)
	case *ast.SelfExpr:
		return p.setAndReturn(n, scope.SelfType)
	case *ast.AttributeExpr:
		return p.typeAttribute(n, scope)
	case *ast.ConstantExpr:
		return p.typeConstant(n, scope)
	case *ast.IdentifierExpr:
		return p.typeIdentifier(n, scope)
	case *ast.GlobalExpr:
		return p.typeGlobal(n, scope)
	case *ast.Send:
		return p.typeSend(n, scope)
	case *ast.BlockLiteral:
		return p.typeBlockLiteral(n, scope)
	case *ast.ReturnExpr:
		return p.typeReturn(n, scope)
	case *ast.ThrowExpr:
		return p.typeThrow(n, scope)
	case *ast.TryExpr:
		return p.typeTry(n, scope)
	case *ast.RawInstruction:
		return p.typeRawInstruction(n, scope)
	default:
		return p.dynamic()
	}
}

func (p *Pass) setAndReturn(expr ast.Expression, t types.Type) types.Type {
	expr.SetType(t)
	return t
}

// typeAttribute implements "`@name`; looked up on self_type" (spec.md
// §4.6), falling back through the prototype chain.
func (p *Pass) typeAttribute(n *ast.AttributeExpr, scope *typescope.Scope) types.Type {
	sym := types.LookupAttribute(scope.SelfType, n.Name)
	if !sym.Defined {
		p.err(diagnostics.UndefinedAttribute, n, n.Name, scope.SelfType.String())
		return p.setAndReturn(n, p.dynamic())
	}
	return p.setAndReturn(n, asType(sym.Type))
}

// typeConstant implements "a qualified constant reference, resolved
// through [self_type, module]" (spec.md §4.6).
func (p *Pass) typeConstant(n *ast.ConstantExpr, scope *typescope.Scope) types.Type {
	if n.Qualifier != "" {
		if t, ok := p.resolveConstantQualifier(n, scope); ok {
			return p.setAndReturn(n, t)
		}
		p.err(diagnostics.UndefinedConstant, n, n.Qualifier+"."+n.Name)
		return p.setAndReturn(n, p.dynamic())
	}

	if sym := types.LookupAttribute(scope.SelfType, n.Name); sym.Defined {
		return p.setAndReturn(n, asType(sym.Type))
	}
	if sym := p.Module.Globals.Lookup(n.Name); sym.Defined {
		return p.setAndReturn(n, asType(sym.Type))
	}
	p.err(diagnostics.UndefinedConstant, n, n.Name)
	return p.setAndReturn(n, p.dynamic())
}

func (p *Pass) resolveConstantQualifier(n *ast.ConstantExpr, scope *typescope.Scope) (types.Type, bool) {
	if imported, ok := p.Module.ImportedModules[n.Qualifier]; ok {
		if sym := imported.Globals.Lookup(n.Name); sym.Defined {
			return asType(sym.Type), true
		}
		return nil, false
	}
	qualSym := scope.Locals.Lookup(n.Qualifier)
	if !qualSym.Defined {
		qualSym = types.LookupAttribute(scope.SelfType, n.Qualifier)
	}
	if !qualSym.Defined {
		return nil, false
	}
	sym := types.LookupAttribute(asType(qualSym.Type), n.Name)
	if !sym.Defined {
		return nil, false
	}
	return asType(sym.Type), true
}

// typeIdentifier implements "resolves as local, then zero-arg send on
// self_type, then on module type, then module global" (spec.md §4.6).
func (p *Pass) typeIdentifier(n *ast.IdentifierExpr, scope *typescope.Scope) types.Type {
	if sym := scope.Locals.Lookup(n.Name); sym.Defined {
		return p.setAndReturn(n, asType(sym.Type))
	}
	if block, ok := types.LookupMethod(scope.SelfType, n.Name); ok && block.MinArgs() == 0 {
		ret := p.resolveSend(block.Returns, nil, scope.SelfType)
		if ret == nil {
			ret = p.dynamic()
		}
		return p.setAndReturn(n, ret)
	}
	if block, ok := types.LookupMethod(p.Module.Type, n.Name); ok && block.MinArgs() == 0 {
		ret := p.resolveSend(block.Returns, nil, p.Module.Type)
		if ret == nil {
			ret = p.dynamic()
		}
		return p.setAndReturn(n, ret)
	}
	if sym := p.Module.Globals.Lookup(n.Name); sym.Defined {
		return p.setAndReturn(n, asType(sym.Type))
	}
	p.err(diagnostics.UndefinedLocal, n, n.Name)
	return p.setAndReturn(n, p.dynamic())
}

// typeGlobal implements "global requires a prior declaration"
// (spec.md §4.6).
func (p *Pass) typeGlobal(n *ast.GlobalExpr, scope *typescope.Scope) types.Type {
	if sym := p.Module.Globals.Lookup(n.Name); sym.Defined {
		return p.setAndReturn(n, asType(sym.Type))
	}
	p.err(diagnostics.UndefinedLocal, n, n.Name)
	return p.setAndReturn(n, p.dynamic())
}
