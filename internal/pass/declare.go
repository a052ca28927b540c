package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// attributesOf returns the attribute table backing t's name-based
// lookup, or nil for a variant that has none (Block/Optional/SelfType
// /Dynamic/Constraint).
func attributesOf(t types.Type) *symboltable.Table {
	switch v := t.(type) {
	case *types.Object:
		return v.Attributes
	case *types.Trait:
		return v.Attributes
	default:
		return nil
	}
}

func newObject(name string) *types.Object {
	return &types.Object{
		Name:               name,
		Attributes:         symboltable.New(types.Dynamic{}),
		ImplementedTraits:  make(map[string]*types.Trait),
		TypeParams:         symboltable.New(types.Dynamic{}),
		TypeParamInstances: make(map[string]types.Type),
	}
}

// declareObject implements spec.md §4.6 "object declaration": a fresh
// Object inheriting object_type, its type parameters registered as
// generated traits, its body typed with self = the new object.
func (p *Pass) declareObject(n *ast.ObjectDecl, scope *typescope.Scope) {
	obj := newObject(n.Name)
	obj.SetPrototype(p.DB.Object)
	obj.Attributes.Define(config.NameAttr, p.DB.String, false)
	n.ResolvedType = obj
	p.Module.Globals.Define(n.Name, obj, false)

	objScope := typescope.New(obj, symboltable.NewChild(scope.Locals))
	p.registerTypeParams(n, n.TypeParams, obj.TypeParams)

	for _, stmt := range n.Body {
		p.typeTopLevelStatement(stmt, objScope)
	}
}

// declareTrait implements spec.md §4.6 "trait declaration": a fresh
// Trait whose body may contain `required fn` contract methods as well
// as concrete default methods.
func (p *Pass) declareTrait(n *ast.TraitDecl, scope *typescope.Scope) {
	trait := &types.Trait{
		Name:                n.Name,
		Attributes:          symboltable.New(p.DB.Dynamic),
		ImplementedTraits:   make(map[string]*types.Trait),
		TypeParams:          symboltable.New(p.DB.Dynamic),
		TypeParamInstances:  make(map[string]types.Type),
		RequiredMethods:     make(map[string]*types.Block),
		RequiredMethodOrder: nil,
		RequiredTraits:      make(map[string]*types.Trait),
	}
	n.ResolvedType = trait
	p.Module.Globals.Define(n.Name, trait, false)

	for _, reqName := range n.RequiredTraits {
		if req, ok := p.lookupModuleType(reqName); ok {
			if rt, ok := req.(*types.Trait); ok {
				trait.RequiredTraits[rt.Name] = rt
			}
		}
	}

	traitScope := typescope.New(trait, symboltable.NewChild(scope.Locals))
	p.registerTypeParams(n, n.TypeParams, trait.TypeParams)

	for _, stmt := range n.Body {
		p.typeTopLevelStatement(stmt, traitScope)
	}
}

// declareTraitImplementation implements spec.md §4.7: the trait is
// added to the object's implemented-traits set optimistically (so
// methods defined in the impl body can refer to Self's own
// now-declared conformance), the body is typed, and verification runs
// last - on failure the trait is removed from the set again.
func (p *Pass) declareTraitImplementation(n *ast.TraitImplementation, scope *typescope.Scope) {
	traitT, ok := p.lookupModuleType(n.TraitName)
	if !ok {
		p.err(diagnostics.UndefinedConstant, n, n.TraitName)
		return
	}
	trait, ok := traitT.(*types.Trait)
	if !ok {
		p.err(diagnostics.UndefinedConstant, n, n.TraitName)
		return
	}
	objT, ok := p.lookupModuleType(n.ObjectName)
	if !ok {
		p.err(diagnostics.UndefinedConstant, n, n.ObjectName)
		return
	}
	obj, ok := objT.(*types.Object)
	if !ok {
		p.err(diagnostics.UndefinedConstant, n, n.ObjectName)
		return
	}

	obj.ImplementedTraits[trait.Name] = trait

	implScope := typescope.New(obj, symboltable.NewChild(scope.Locals))
	for _, stmt := range n.Body {
		p.typeTopLevelStatement(stmt, implScope)
	}

	if !types.RequiredTraitsSatisfied(obj, trait) {
		delete(obj.ImplementedTraits, trait.Name)
		p.err(diagnostics.UnimplementedTrait, n, obj.Name, types.MissingRequiredMethod(obj, trait), trait.Name)
		return
	}
	if !types.RequiredMethodsSatisfied(obj, trait) {
		delete(obj.ImplementedTraits, trait.Name)
		missing := trait.Name
		for _, name := range trait.RequiredMethodOrder {
			if _, ok := obj.Attributes.LookupLocal(name); !ok {
				missing = name
				break
			}
		}
		p.err(diagnostics.UnimplementedMethod, n, obj.Name, missing, trait.Name)
	}
}

// declareReopenObject implements spec.md §4.6 "reopen": resolve an
// existing type by name and recurse into Body with self = that type.
func (p *Pass) declareReopenObject(n *ast.ReopenObject, scope *typescope.Scope) {
	t, ok := p.lookupModuleType(n.Name)
	if !ok {
		t, ok = p.lookupBuiltinType(n.Name)
	}
	if !ok {
		p.err(diagnostics.UndefinedConstant, n, n.Name)
		return
	}

	reopenScope := typescope.New(t, symboltable.NewChild(scope.Locals))
	for _, stmt := range n.Body {
		p.typeTopLevelStatement(stmt, reopenScope)
	}
}

// declareMethod implements spec.md §4.6 "method declaration": builds
// the Block signature eagerly (so sibling methods can reference it by
// name immediately, spec.md §5 forward-reference requirement), then
// either attaches it as a trait's required-method contract or queues
// its body for Phase 2.
func (p *Pass) declareMethod(n *ast.MethodDecl, scope *typescope.Scope) {
	block := &types.Block{Name: n.Name, BlockKind: types.KindMethod, TypeParams: symboltable.New(p.DB.Dynamic)}
	block.Arguments = append(block.Arguments, types.Arg{Name: config.SelfArgName, Type: scope.SelfType})

	methodScope := typescope.New(scope.SelfType, symboltable.NewChild(scope.Locals))
	p.registerTypeParams(n, n.TypeParams, block.TypeParams)

	for _, a := range n.Args {
		var at types.Type
		if a.Annotation != nil {
			at = p.resolveTypeRef(a.Annotation, methodScope)
		} else {
			at = types.NewConstraint(a.Name)
		}
		block.Arguments = append(block.Arguments, types.Arg{
			Name: a.Name, Type: at, Optional: a.Optional, Rest: a.Rest, Keyword: a.Keyword,
		})
		if a.Default != nil {
			p.typeExpr(a.Default, scope)
		}
	}
	if n.Returns != nil {
		block.Returns = p.resolveTypeRef(n.Returns, methodScope)
	}
	if n.Throws != nil {
		block.Throws = p.resolveTypeRef(n.Throws, methodScope)
	}
	n.ResolvedType = block

	if n.Required {
		trait, ok := scope.SelfType.(*types.Trait)
		if !ok {
			p.err(diagnostics.DefineRequiredMethodOnNonTrait, n, n.Name)
			return
		}
		trait.AddRequiredMethod(n.Name, block)
		return
	}

	if attrs := attributesOf(scope.SelfType); attrs != nil {
		attrs.Define(n.Name, block, false)
	}
	p.queue = append(p.queue, queuedMethod{node: n, scope: methodScope, block: block})
}

// registerTypeParams builds a generated Trait per spec.md §3
// TypeParameter for each declared type parameter, recording its named
// constraint traits as required traits (spec.md §4.7 recursion then
// verifies conformance at use, not at declaration). owner anchors any
// undefined-constant diagnostic at the declaring node's position.
func (p *Pass) registerTypeParams(owner ast.Node, decls []ast.TypeParamDecl, table *symboltable.Table) {
	for _, decl := range decls {
		trait := &types.Trait{
			Name:               decl.Name,
			Attributes:         symboltable.New(p.DB.Dynamic),
			ImplementedTraits:  make(map[string]*types.Trait),
			TypeParams:         symboltable.New(p.DB.Dynamic),
			TypeParamInstances: make(map[string]types.Type),
			RequiredMethods:    make(map[string]*types.Block),
			RequiredTraits:     make(map[string]*types.Trait),
			Generated:          true,
		}
		for _, cname := range decl.ConstraintTrait {
			ct, ok := p.lookupModuleType(cname)
			if !ok {
				ct, ok = p.lookupBuiltinType(cname)
			}
			if !ok {
				p.err(diagnostics.UndefinedConstant, owner, cname)
				continue
			}
			if rt, ok := ct.(*types.Trait); ok {
				trait.RequiredTraits[rt.Name] = rt
			}
		}
		table.Define(decl.Name, trait, false)
	}
}
