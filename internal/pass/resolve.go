package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// resolveTypeRef implements spec.md §4.6 "Type resolution": a
// TypeRef is resolved against an ordered list of sources -
// [block_type's type parameters, self_type's type parameters, the
// module], falling back to a qualified receiver when the reference is
// qualified - and on total miss emits undefined-constant and
// substitutes Dynamic (spec.md §7).
func (p *Pass) resolveTypeRef(ref ast.TypeRef, scope *typescope.Scope) types.Type {
	switch r := ref.(type) {
	case nil:
		return p.dynamic()
	case *ast.SelfTypeRef:
		return types.SelfType{}
	case *ast.DynTypeRef:
		return types.Dynamic{}
	case *ast.OptionalTypeRef:
		return types.Optional{Inner: p.resolveTypeRef(r.Inner, scope)}
	case *ast.BlockTypeRef:
		return p.resolveBlockTypeRef(r, scope)
	case *ast.NamedTypeRef:
		return p.resolveNamedTypeRef(r, scope)
	default:
		return p.dynamic()
	}
}

func (p *Pass) resolveBlockTypeRef(r *ast.BlockTypeRef, scope *typescope.Scope) types.Type {
	block := &types.Block{BlockKind: types.KindClosure}
	block.Arguments = append(block.Arguments, types.Arg{Name: config.SelfArgName, Type: scope.SelfType})
	for _, a := range r.Args {
		block.Arguments = append(block.Arguments, types.Arg{
			Name:     a.Name,
			Type:     p.resolveTypeRef(a.Annotation, scope),
			Optional: a.Optional,
			Rest:     a.Rest,
			Keyword:  a.Keyword,
		})
	}
	if r.Returns != nil {
		block.Returns = p.resolveTypeRef(r.Returns, scope)
	}
	if r.Throws != nil {
		block.Throws = p.resolveTypeRef(r.Throws, scope)
	}
	return block
}

func (p *Pass) resolveNamedTypeRef(r *ast.NamedTypeRef, scope *typescope.Scope) types.Type {
	if r.Qualifier != "" {
		if t, ok := p.resolveQualified(r, scope); ok {
			return t
		}
		p.err(diagnostics.UndefinedConstant, r, r.Qualifier+"."+r.Name)
		return p.dynamic()
	}

	if scope.BlockType != nil && scope.BlockType.TypeParams != nil {
		if sym, ok := scope.BlockType.TypeParams.LookupLocal(r.Name); ok {
			return asType(sym.Type)
		}
	}
	if owner := typeParamOwner(scope.SelfType); owner != nil {
		if sym, ok := owner.LookupLocal(r.Name); ok {
			return asType(sym.Type)
		}
	}
	if t, ok := p.lookupModuleType(r.Name); ok {
		return t
	}
	if t, ok := p.lookupBuiltinType(r.Name); ok {
		return t
	}

	p.err(diagnostics.UndefinedConstant, r, r.Name)
	return p.dynamic()
}

// resolveQualified resolves `mod.Name`, first against an imported
// module's exported type, then by looking the qualifier up in the
// current module's globals and Name up as an attribute of the type
// bound there (for `Outer.Inner`-shaped qualifiers).
func (p *Pass) resolveQualified(r *ast.NamedTypeRef, scope *typescope.Scope) (types.Type, bool) {
	if imported, ok := p.Module.ImportedModules[r.Qualifier]; ok {
		if sym, ok := imported.Globals.LookupLocal(r.Name); ok {
			return asType(sym.Type), true
		}
	}
	if sym, ok := p.Module.Globals.LookupLocal(r.Qualifier); ok {
		if t := asType(sym.Type); t != nil {
			sym2 := types.LookupAttribute(t, r.Name)
			if sym2.Defined {
				return asType(sym2.Type), true
			}
		}
	}
	return nil, false
}

// typeParamOwner returns the type-parameter table of an Object/Trait
// self_type, or nil for anything else (spec.md §3 TypeParameter).
func typeParamOwner(t types.Type) *symboltable.Table {
	switch v := t.(type) {
	case *types.Object:
		return v.TypeParams
	case *types.Trait:
		return v.TypeParams
	default:
		return nil
	}
}

// lookupModuleType resolves a bare name against the module's own
// globals (covers top-level object/trait declarations and imports).
func (p *Pass) lookupModuleType(name string) (types.Type, bool) {
	sym, ok := p.Module.Globals.LookupLocal(name)
	if !ok {
		return nil, false
	}
	return asType(sym.Type), true
}

// lookupBuiltinType resolves a bare name against the builtin
// prototypes (spec.md §2 "a shared, process-wide type database").
func (p *Pass) lookupBuiltinType(name string) (types.Type, bool) {
	switch name {
	case config.IntegerTypeName:
		return p.DB.Integer, true
	case config.FloatTypeName:
		return p.DB.Float, true
	case config.StringTypeName:
		return p.DB.String, true
	case config.ArrayTypeName:
		return p.DB.Array, true
	case config.BlockTypeName:
		return p.DB.Block, true
	case config.TraitTypeName:
		return p.DB.Trait, true
	case config.ObjectTypeName:
		return p.DB.Object, true
	case config.NilTypeName:
		return p.DB.Nil, true
	case config.VoidTypeName:
		return p.DB.Void, true
	case config.TrueTypeName:
		return p.DB.True, true
	case config.FalseTypeName:
		return p.DB.False, true
	case config.TopLevelName:
		return p.DB.TopLevel, true
	default:
		return nil, false
	}
}
