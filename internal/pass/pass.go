// Package pass implements spec.md §4.6: the two-phase AST walker
// that assigns a type to every expression, enforces every rule in
// spec.md §4, and defers method bodies to a second phase.
//
// Grounded on the teacher's walker (internal/analyzer/analyzer.go):
// the errorSet-dedup pattern, the BaseDir/loader-as-collaborator
// shape, and the declare-then-defer split implied by
// modules.Module's HeadersAnalyzing/BodiesAnalyzing flags. The
// unification-based compatibility checks of internal/analyzer/
// inference_calls.go are replaced here by the compatibility relation
// of spec.md §4.1 (internal/types.CompatibleWith), since this
// language has no type inference beyond local-argument defaults and
// block return-type back-fill.
package pass

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/modulerec"
	"github.com/funvibe/typecheck/internal/typedb"
	"github.com/funvibe/typecheck/internal/types"
	"github.com/funvibe/typecheck/internal/typescope"
)

// ModuleLoader resolves a previously type-checked module by name
// (spec.md §2: "a previously run 'compile modules' coordinator
// ensures transitively imported modules are type-checked first").
type ModuleLoader interface {
	GetModule(name string) (*modulerec.Module, bool)
}

// queuedMethod is one (ast, scope) pair awaiting Phase 2 (spec.md
// §4.6, §9 "Deferred method bodies -> explicit queue").
type queuedMethod struct {
	node  *ast.MethodDecl
	scope *typescope.Scope
	block *types.Block
}

// Pass is one invocation of the type-checking pass over a single
// module's AST.
type Pass struct {
	DB     *typedb.Database
	Loader ModuleLoader
	Module *modulerec.Module
	Sink   *diagnostics.Sink

	queue []queuedMethod
}

// New builds a pass over module, backed by db and able to resolve
// imports through loader.
func New(db *typedb.Database, loader ModuleLoader, module *modulerec.Module) *Pass {
	return &Pass{DB: db, Loader: loader, Module: module, Sink: diagnostics.NewSink()}
}

// Run is the single entry point (spec.md §6): it mutates nodes in
// place by setting their Type slot, and returns the same program for
// chaining.
func (p *Pass) Run(program *ast.Program) *ast.Program {
	if p.Module.TypeChecked {
		// Idempotence (spec.md §8): re-running is a no-op, not a
		// second round of diagnostics.
		return program
	}
	p.phase1(program)
	p.phase2()
	p.Module.TypeChecked = true
	return program
}

// dynamic is shorthand for the shared Dynamic escape hatch every
// error path substitutes (spec.md §7).
func (p *Pass) dynamic() types.Type { return types.Dynamic{} }

func (p *Pass) err(kind diagnostics.Kind, n ast.Node, args ...interface{}) {
	p.Sink.Add(diagnostics.New(kind, n.GetToken(), args...))
}
