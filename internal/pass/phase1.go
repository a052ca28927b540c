package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/typescope"
	"github.com/funvibe/typecheck/internal/types"
)

// phase1 assigns the module type, processes imports, then types every
// top-level form, queuing method bodies for phase2 (spec.md §4.6
// "Phase 1 (module body)").
func (p *Pass) phase1(program *ast.Program) {
	p.assignModuleType(program)
	p.DB.RegisterModule(p.Module.Name, p.Module.Type)
	p.Module.Globals.Define(config.ModuleGlobalName, p.Module.Type, false)

	for _, imp := range program.Imports {
		p.Module.Imports = append(p.Module.Imports, imp)
		p.processImport(imp)
	}

	scope := typescope.New(p.Module.Type, p.Module.Globals)
	bodyArgs := []types.Arg{{Name: config.SelfArgName, Type: p.Module.Type}}
	p.Module.Body = &types.Block{Name: "$module_body", BlockKind: types.KindMethod, Arguments: bodyArgs}

	for _, stmt := range program.Statements {
		p.typeTopLevelStatement(stmt, scope)
	}
}

// assignModuleType implements "either a fresh Object inheriting
// Module, or top_level if the module 'does not define a module
// type'" (spec.md §4.3/§4.6).
func (p *Pass) assignModuleType(program *ast.Program) {
	if program.ModuleName == "" {
		p.Module.Type = p.DB.TopLevel
		p.Module.DefinesOwnType = false
		return
	}
	obj := newObject(program.ModuleName)
	obj.SetPrototype(p.DB.ModuleProto)
	obj.Attributes.Define(config.NameAttr, p.DB.String, false)
	p.Module.Type = obj
	p.Module.DefinesOwnType = true
}

// processImport binds selected symbols from another module into this
// module's globals (spec.md §4.6): rename support, a glob form, and
// "export self" re-exporting the source module's own type
// (SPEC_FULL.md §4).
func (p *Pass) processImport(node *ast.ImportStatement) {
	source, ok := p.Loader.GetModule(node.ModulePath)
	if !ok {
		p.err(diagnostics.ImportUndefinedSymbol, node, node.ModulePath, "<module>")
		return
	}
	p.Module.ImportedModules[node.ModulePath] = source

	if node.ReexportSelf {
		p.bindGlobal(node, node.ReexportAlias, source.Type)
		return
	}
	if node.Glob {
		for _, name := range source.Globals.Names() {
			sym := source.Globals.Lookup(name)
			p.bindGlobal(node, name, asType(sym.Type))
		}
		return
	}
	for _, imported := range node.Names {
		sym := source.Globals.Lookup(imported.Source)
		if !sym.Defined {
			p.err(diagnostics.ImportUndefinedSymbol, node, node.ModulePath, imported.Source)
			continue
		}
		p.bindGlobal(node, imported.Alias, asType(sym.Type))
	}
}

// bindGlobal implements "importing an already-bound name is an
// error" (spec.md §4.6) while still leaving the previous binding
// intact (spec.md §8 boundary case).
func (p *Pass) bindGlobal(node ast.Node, name string, typ types.Type) {
	if _, exists := p.Module.Globals.LookupLocal(name); exists {
		p.err(diagnostics.ImportExistingSymbol, node, name)
		return
	}
	p.Module.Globals.Define(name, typ, false)
}

// typeTopLevelStatement dispatches one top-level declaration via an
// explicit type switch (spec.md §9 "Visitor dispatch -> pattern
// match").
func (p *Pass) typeTopLevelStatement(stmt ast.Statement, scope *typescope.Scope) {
	switch n := stmt.(type) {
	case *ast.ObjectDecl:
		p.declareObject(n, scope)
	case *ast.TraitDecl:
		p.declareTrait(n, scope)
	case *ast.TraitImplementation:
		p.declareTraitImplementation(n, scope)
	case *ast.ReopenObject:
		p.declareReopenObject(n, scope)
	case *ast.MethodDecl:
		p.declareMethod(n, scope)
	case *ast.DefineVariable:
		p.typeDefineVariable(n, scope)
	case *ast.ReassignAttribute:
		p.typeReassignAttribute(n, scope)
	case *ast.ReassignLocal:
		p.typeReassignLocal(n, scope)
	default:
		// Any other top-level statement is a plain expression
		// statement; type it for side effects/diagnostics.
		if expr, ok := stmt.(ast.Expression); ok {
			p.typeExpr(expr, scope)
		}
	}
}
