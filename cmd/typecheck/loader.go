// Command typecheck drives the type-checking pass (internal/pass)
// over a set of modules supplied in import-before-importer order.
//
// This module's boundary excludes lexing and parsing (spec.md §1,
// SPEC_FULL.md "Original module boundary"): a real frontend builds
// *ast.Program values and hands them to a loader like this one. In
// the absence of that frontend here, main.go constructs its demo
// programs directly via the ast package's node types, the way the
// teacher's own internal/analyzer tests build fixture ASTs by hand
// rather than lexing source text.
package main

import "github.com/funvibe/typecheck/internal/modulerec"

// registry is the in-memory ModuleLoader the driver hands to every
// pass.New call, accumulating one entry per module as it is checked
// (grounded on the teacher's internal/modules.Loader cache in
// cmd/funxy/main.go's moduleCache/evaluateModule).
type registry struct {
	modules map[string]*modulerec.Module
}

func newRegistry() *registry {
	return &registry{modules: make(map[string]*modulerec.Module)}
}

func (r *registry) GetModule(name string) (*modulerec.Module, bool) {
	m, ok := r.modules[name]
	return m, ok
}

func (r *registry) put(name string, m *modulerec.Module) {
	r.modules[name] = m
}
