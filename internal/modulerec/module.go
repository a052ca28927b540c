// Package modulerec implements spec.md §4.3: the per-module record
// holding globals, imports, the module's own object type, and its
// body-block type.
//
// Grounded on the teacher's internal/modules/module.go (the Module
// struct and its Headers/BodiesAnalyzed flags), adapted from a
// multi-file package-group model to this spec's single-module-plus-
// imports model.
package modulerec

import (
	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/types"
)

// Module is spec.md §4.3's module record.
type Module struct {
	Name string
	// Type is the module's own object type: either a fresh Object
	// inheriting Module, or top_level if the module "does not define
	// a module type" (spec.md §4.3).
	Type *types.Object
	// DefinesOwnType is false when Type aliases top_level rather than
	// owning a freshly minted object.
	DefinesOwnType bool
	// Body is the Block type for the module's top-level code.
	Body *types.Block
	// Imports is the ordered list of import AST nodes, preserved for
	// diagnostics and for re-processing on re-entry.
	Imports []ast.Node
	// Globals holds every imported symbol and every non-block
	// top-level declaration (invariant 6: methods never leak in).
	Globals *symboltable.Table
	// ImportedModules maps the bound local name to the imported
	// module's own record, used by constant/identifier resolution
	// (spec.md §4.6 "constant... resolves... through [self_type,
	// module]").
	ImportedModules map[string]*Module

	// TypeChecked guards idempotence (spec.md §8 "Running the pass
	// twice... is equivalent to running it once"), mirroring the
	// teacher's HeadersAnalyzed/BodiesAnalyzed pair collapsed to one
	// flag since this spec has a single granularity of "done".
	TypeChecked bool
}

// New creates an empty module record. globals must be backed by the
// shared Dynamic sentinel from typedb so lookups on it behave per
// spec.md §3.
func New(name string, globals *symboltable.Table) *Module {
	return &Module{
		Name:            name,
		Globals:         globals,
		ImportedModules: make(map[string]*Module),
	}
}

// RespondsToMessage reports whether the module's own type (top_level
// for a module that declares none) binds name in its own attribute
// table. The prototype chain is not searched, and it returns false
// while Type is still unset.
func (m *Module) RespondsToMessage(name string) bool {
	if m.Type == nil {
		return false
	}
	_, ok := m.Type.Attributes.LookupLocal(name)
	return ok
}
