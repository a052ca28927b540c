package main

import (
	"fmt"
	"os"

	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/modulerec"
	"github.com/funvibe/typecheck/internal/pass"
	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/typedb"
)

// moduleSource pairs a module's declared name with the program to
// check, in the order a real build driver would resolve them:
// imports before importers (spec.md §5 "Ordering guarantee").
type moduleSource struct {
	name    string
	program *ast.Program
}

func main() {
	// Catch panics and report them the way the teacher's cmd/funxy
	// main() does, rather than let a bare Go stack trace reach the
	// user.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "internal error: %v\n", r)
			os.Exit(1)
		}
	}()

	sources := []moduleSource{
		{name: "geometry", program: geometryModule()},
		{name: "app", program: appModule()},
	}

	db := typedb.Get()
	reg := newRegistry()
	rep := newReporter(os.Stdout)

	exitCode := 0
	for _, src := range sources {
		mod := modulerec.New(src.name, symboltable.New(db.Dynamic))
		p := pass.New(db, reg, mod)
		p.Run(src.program)
		reg.put(src.name, mod)

		ds := p.Sink.All()
		rep.report(src.name, ds)
		if len(ds) > 0 {
			exitCode = 1
		}
	}
	os.Exit(exitCode)
}

// geometryModule and appModule stand in for a real frontend's output
// (see loader.go's package doc): a minimal dependency module and a
// module that imports it, enough to exercise declarations, method
// bodies, sends, and cross-module import resolution end to end.
func geometryModule() *ast.Program {
	magnitude := &ast.MethodDecl{
		Name:    "magnitude",
		Returns: &ast.NamedTypeRef{Name: "integer_type"},
		Body: []ast.Statement{
			&ast.ReturnExpr{Value: &ast.IntegerLiteral{}},
		},
	}
	point := &ast.ObjectDecl{
		Name: "Point",
		Body: []ast.Statement{magnitude},
	}
	return &ast.Program{
		ModuleName: "geometry",
		Statements: []ast.Statement{point},
	}
}

func appModule() *ast.Program {
	imp := &ast.ImportStatement{
		ModulePath: "geometry",
		Names:      []ast.ImportedName{{Source: "Point", Alias: "Point"}},
	}
	label := &ast.DefineVariable{
		Kind:  ast.DefineConstant,
		Name:  "label",
		Value: &ast.StringLiteral{Value: "demo"},
	}
	// Deliberately invalid: label was bound as an immutable module
	// constant, so reassigning it here is a reassign-immutable-local
	// error (demonstrates the pass's diagnostic path alongside the
	// clean geometry module).
	badReassign := &ast.ReassignLocal{
		Name:  "label",
		Value: &ast.StringLiteral{Value: "oops"},
	}
	return &ast.Program{
		ModuleName: "app",
		Imports:    []*ast.ImportStatement{imp},
		Statements: []ast.Statement{label, badReassign},
	}
}
