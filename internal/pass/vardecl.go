package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// typeDefineVariable implements spec.md §4.6's three define_variable
// forms. An explicit annotation is adopted as the binding's declared
// type (a supertype of the value's inferred type) rather than the
// value's own narrower type, so later reassignment is checked against
// the annotation, not the first value.
func (p *Pass) typeDefineVariable(n *ast.DefineVariable, scope *typescope.Scope) {
	valueType := p.typeExpr(n.Value, scope)
	declared := valueType
	if n.Annotation != nil {
		declared = p.resolveTypeRef(n.Annotation, scope)
		if !types.CompatibleWith(valueType, declared) {
			p.err(diagnostics.TypeMismatch, n, declared.String(), valueType.String())
		}
	}

	switch n.Kind {
	case ast.DefineConstant:
		if config.ReservedConstants[n.Name] {
			p.err(diagnostics.RedefineReservedConstant, n, n.Name)
			return
		}
		if scope.BlockType == nil {
			if attrs := attributesOf(scope.SelfType); attrs != nil {
				attrs.Define(n.Name, declared, false)
			}
			// A top-level constant (self_type is literally the
			// module's own type, whether or not it defines a module
			// object) is also a module global, so imports of it from
			// another module resolve (spec.md §4.6, §3 invariant 6).
			if scope.SelfType == p.Module.Type {
				p.Module.Globals.Define(n.Name, declared, false)
			}
			return
		}
		scope.Locals.Define(n.Name, declared, false)
	case ast.DefineAttribute:
		if scope.BlockType == nil || scope.BlockType.Name != config.InitMethodName {
			p.err(diagnostics.DefineInstanceAttrOutsideInit, n, n.Name)
			return
		}
		if attrs := attributesOf(scope.SelfType); attrs != nil {
			attrs.Define(n.Name, declared, true)
		}
	case ast.DefineLocal:
		scope.Locals.Define(n.Name, declared, true)
	}
}

// typeReassignAttribute implements `@attr = value`: the attribute must
// already exist on self_type's own attribute table and be mutable
// (spec.md §4.6, invariant on attribute mutability).
func (p *Pass) typeReassignAttribute(n *ast.ReassignAttribute, scope *typescope.Scope) {
	valueType := p.typeExpr(n.Value, scope)
	attrs := attributesOf(scope.SelfType)
	if attrs == nil {
		p.err(diagnostics.ReassignUndefinedAttribute, n, n.Name)
		return
	}
	existing, ok := attrs.LookupLocal(n.Name)
	if !ok {
		p.err(diagnostics.ReassignUndefinedAttribute, n, n.Name)
		return
	}
	if !existing.Mutable {
		p.err(diagnostics.ReassignImmutableAttribute, n, n.Name)
		return
	}
	if !types.CompatibleWith(valueType, asType(existing.Type)) {
		p.err(diagnostics.TypeMismatch, n, existing.Type.String(), valueType.String())
	}
}

// typeReassignLocal implements `name = value`: the binding must
// already exist somewhere in the lexical chain and be mutable.
func (p *Pass) typeReassignLocal(n *ast.ReassignLocal, scope *typescope.Scope) {
	valueType := p.typeExpr(n.Value, scope)
	existing := scope.Locals.Lookup(n.Name)
	if !existing.Defined {
		p.err(diagnostics.ReassignUndefinedLocal, n, n.Name)
		return
	}
	if !existing.Mutable {
		p.err(diagnostics.ReassignImmutableLocal, n, n.Name)
		return
	}
	if !types.CompatibleWith(valueType, asType(existing.Type)) {
		p.err(diagnostics.TypeMismatch, n, existing.Type.String(), valueType.String())
	}
}
