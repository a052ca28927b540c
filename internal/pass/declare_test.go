package pass

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/typecheck/internal/ast"
	"github.com/funvibe/typecheck/internal/config"
	"github.com/funvibe/typecheck/internal/diagnostics"
	"github.com/funvibe/typecheck/internal/types"
)

func TestDeclareObjectInheritsObjectPrototypeAndNameAttribute(t *testing.T) {
	p, mod := newPass(t, "geometry", nil)
	decl := &ast.ObjectDecl{Name: "Point"}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	obj, ok := decl.ResolvedType.(*types.Object)
	require.True(t, ok)
	assert.Equal(t, "Point", obj.Name)
	assert.True(t, types.CompatibleWith(obj, p.DB.Object), "every declared object is a subtype of object_type")
	nameSym, ok := obj.Attributes.LookupLocal(config.NameAttr)
	require.True(t, ok)
	assert.Same(t, p.DB.String, nameSym.Type)
	sym, ok := mod.Globals.LookupLocal("Point")
	require.True(t, ok)
	assert.Same(t, obj, sym.Type)
}

func TestDeclareMethodForwardReferencesSiblingMethod(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	// `double` calls `base` before base is declared textually; the
	// Block signature for base must already exist when double is
	// queued, since declareMethod builds signatures eagerly.
	double := &ast.MethodDecl{
		Name: "double",
		Body: []ast.Statement{
			&ast.ReturnExpr{Value: &ast.Send{Name: "base"}},
		},
	}
	base := &ast.MethodDecl{
		Name:    "base",
		Returns: &ast.NamedTypeRef{Name: config.IntegerTypeName},
		Body:    []ast.Statement{&ast.ReturnExpr{Value: &ast.IntegerLiteral{}}},
	}
	decl := &ast.ObjectDecl{Name: "Doubler", Body: []ast.Statement{double, base}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	assert.Equal(t, 0, p.Sink.Len())
}

func TestDeclareTraitRequiredMethodDoesNotQueueABody(t *testing.T) {
	p, mod := newPass(t, "geometry", nil)
	req := &ast.MethodDecl{Name: "speak", Required: true, Returns: &ast.NamedTypeRef{Name: config.StringTypeName}}
	decl := &ast.TraitDecl{Name: "Speaker", Body: []ast.Statement{req}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	trait, ok := decl.ResolvedType.(*types.Trait)
	require.True(t, ok)
	_, hasRequired := trait.RequiredMethods["speak"]
	assert.True(t, hasRequired)
	sym, ok := mod.Globals.LookupLocal("Speaker")
	require.True(t, ok)
	assert.Same(t, trait, sym.Type)
	assert.Equal(t, 0, p.Sink.Len())
}

func TestDeclareRequiredMethodOnNonTraitIsAnError(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	req := &ast.MethodDecl{Name: "speak", Required: true}
	decl := &ast.ObjectDecl{Name: "Dog", Body: []ast.Statement{req}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.DefineRequiredMethodOnNonTrait, p.Sink.All()[0].Kind)
}

func TestDeclareTraitImplementationSucceedsWhenRequiredMethodProvided(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	trait := &ast.TraitDecl{
		Name: "Speaker",
		Body: []ast.Statement{
			&ast.MethodDecl{Name: "speak", Required: true, Returns: &ast.NamedTypeRef{Name: config.StringTypeName}},
		},
	}
	obj := &ast.ObjectDecl{Name: "Dog"}
	impl := &ast.TraitImplementation{
		TraitName:  "Speaker",
		ObjectName: "Dog",
		Body: []ast.Statement{
			&ast.MethodDecl{
				Name:    "speak",
				Returns: &ast.NamedTypeRef{Name: config.StringTypeName},
				Body:    []ast.Statement{&ast.ReturnExpr{Value: &ast.StringLiteral{Value: "woof"}}},
			},
		},
	}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{trait, obj, impl}})

	require.Equal(t, 0, p.Sink.Len())
	dogT := obj.ResolvedType.(*types.Object)
	traitT := trait.ResolvedType.(*types.Trait)
	_, implemented := dogT.ImplementedTraits[traitT.Name]
	assert.True(t, implemented)
}

func TestDeclareTraitImplementationFailsWhenRequiredMethodMissing(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	trait := &ast.TraitDecl{
		Name: "Speaker",
		Body: []ast.Statement{
			&ast.MethodDecl{Name: "speak", Required: true, Returns: &ast.NamedTypeRef{Name: config.StringTypeName}},
		},
	}
	obj := &ast.ObjectDecl{Name: "Rock"}
	impl := &ast.TraitImplementation{TraitName: "Speaker", ObjectName: "Rock"}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{trait, obj, impl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.UnimplementedMethod, p.Sink.All()[0].Kind)
	dogT := obj.ResolvedType.(*types.Object)
	traitT := trait.ResolvedType.(*types.Trait)
	_, implemented := dogT.ImplementedTraits[traitT.Name]
	assert.False(t, implemented, "a failed implementation must be rolled back out of ImplementedTraits")
}

func TestDeclareTraitImplementationFailsWhenRequiredTraitMissing(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	base := &ast.TraitDecl{
		Name: "Named",
		Body: []ast.Statement{
			&ast.MethodDecl{Name: "name", Required: true, Returns: &ast.NamedTypeRef{Name: config.StringTypeName}},
		},
	}
	derived := &ast.TraitDecl{Name: "Speaker", RequiredTraits: []string{"Named"}}
	obj := &ast.ObjectDecl{Name: "Rock"}
	impl := &ast.TraitImplementation{TraitName: "Speaker", ObjectName: "Rock"}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{base, derived, obj, impl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.UnimplementedTrait, p.Sink.All()[0].Kind)
}

func TestDeclareTraitImplementationOnUndefinedTraitIsUndefinedConstant(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	obj := &ast.ObjectDecl{Name: "Rock"}
	impl := &ast.TraitImplementation{TraitName: "Ghost", ObjectName: "Rock"}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{obj, impl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.UndefinedConstant, p.Sink.All()[0].Kind)
}

func TestDeclareReopenObjectAddsMethodToExistingType(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	obj := &ast.ObjectDecl{Name: "Point"}
	reopen := &ast.ReopenObject{
		Name: "Point",
		Body: []ast.Statement{
			&ast.MethodDecl{
				Name:    "origin",
				Returns: &ast.NamedTypeRef{Name: config.IntegerTypeName},
				Body:    []ast.Statement{&ast.ReturnExpr{Value: &ast.IntegerLiteral{}}},
			},
		},
	}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{obj, reopen}})

	require.Equal(t, 0, p.Sink.Len())
	pointT := obj.ResolvedType.(*types.Object)
	_, ok := pointT.Attributes.LookupLocal("origin")
	assert.True(t, ok)
}

func TestDeclareReopenUndefinedObjectIsUndefinedConstant(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	reopen := &ast.ReopenObject{Name: "Ghost"}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{reopen}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.UndefinedConstant, p.Sink.All()[0].Kind)
}

func TestDeclareMethodChecksBodyAgainstDeclaredReturn(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	method := &ast.MethodDecl{
		Name:    "bad",
		Returns: &ast.NamedTypeRef{Name: config.IntegerTypeName},
		Body:    []ast.Statement{&ast.ReturnExpr{Value: &ast.StringLiteral{Value: "nope"}}},
	}
	decl := &ast.ObjectDecl{Name: "Widget", Body: []ast.Statement{method}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.ReturnTypeMismatch, p.Sink.All()[0].Kind)
}
