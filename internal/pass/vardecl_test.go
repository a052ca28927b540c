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

func TestTopLevelConstantIsStoredOnBothModuleAttributesAndGlobalsWhenModuleDefinesOwnType(t *testing.T) {
	p, mod := newPass(t, "geometry", nil)
	define := &ast.DefineVariable{Kind: ast.DefineConstant, Name: "Pi", Value: &ast.FloatLiteral{}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{define}})

	require.Equal(t, 0, p.Sink.Len())
	obj := types.Type(mod.Type).(*types.Object)
	sym, ok := obj.Attributes.LookupLocal("Pi")
	require.True(t, ok)
	assert.Same(t, p.DB.Float, sym.Type)
	// A top-level constant is also a module global, so another
	// module's `import { Pi } from geometry` can resolve it (spec.md
	// §4.6, §3 invariant 6).
	globalSym, onGlobals := mod.Globals.LookupLocal("Pi")
	require.True(t, onGlobals, "a module-defining module's top-level constant must also be a module global")
	assert.Same(t, p.DB.Float, globalSym.Type)
}

func TestTopLevelConstantWithoutAModuleTypeIsStoredOnBothTopLevelAndGlobals(t *testing.T) {
	p, mod := newPass(t, "app", nil)
	define := &ast.DefineVariable{Kind: ast.DefineConstant, Name: "Label", Value: &ast.StringLiteral{Value: "hi"}}

	p.Run(&ast.Program{Statements: []ast.Statement{define}})

	require.Equal(t, 0, p.Sink.Len())
	// Without a declared module name, scope.SelfType IS top_level (an
	// Object with its own Attributes table), so a top-level constant
	// lands there - but top_level IS p.Module.Type in this case, so
	// it is still also defined as a module global (spec.md §4.6, §3
	// invariant 6).
	sym, ok := p.DB.TopLevel.Attributes.LookupLocal("Label")
	require.True(t, ok)
	assert.Same(t, p.DB.String, sym.Type)
	globalSym, onGlobals := mod.Globals.LookupLocal("Label")
	require.True(t, onGlobals)
	assert.Same(t, p.DB.String, globalSym.Type)
}

func TestDefineConstantRejectsReservedName(t *testing.T) {
	p, _ := newPass(t, "app", nil)
	define := &ast.DefineVariable{Kind: ast.DefineConstant, Name: "Self", Value: &ast.IntegerLiteral{}}

	p.Run(&ast.Program{Statements: []ast.Statement{define}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.RedefineReservedConstant, p.Sink.All()[0].Kind)
}

func TestDefineVariableAnnotationWidensDeclaredType(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	setInt := &ast.MethodDecl{
		Name: "setup",
		Body: []ast.Statement{
			&ast.DefineVariable{
				Kind:       ast.DefineConstant,
				Name:       "anything",
				Annotation: &ast.DynTypeRef{},
				Value:      &ast.IntegerLiteral{},
			},
			&ast.IdentifierExpr{Name: "anything"},
		},
	}
	decl := &ast.ObjectDecl{Name: "Widget", Body: []ast.Statement{setInt}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 0, p.Sink.Len())
	widgetT := decl.ResolvedType.(*types.Object)
	sym, ok := widgetT.Attributes.LookupLocal("setup")
	require.True(t, ok)
	block := sym.Type.(*types.Block)
	assert.IsType(t, types.Dynamic{}, setInt.Body[1].(*ast.IdentifierExpr).GetType(), "the annotation, not the narrower value type, becomes the local's declared type")
	assert.IsType(t, types.Dynamic{}, block.Returns, "a method without a return annotation gets Dynamic as its declared return type")
}

func TestDefineVariableAnnotationMismatchIsTypeMismatch(t *testing.T) {
	p, _ := newPass(t, "app", nil)
	define := &ast.DefineVariable{
		Kind:       ast.DefineConstant,
		Name:       "Bad",
		Annotation: &ast.NamedTypeRef{Name: config.IntegerTypeName},
		Value:      &ast.StringLiteral{Value: "nope"},
	}

	p.Run(&ast.Program{Statements: []ast.Statement{define}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.TypeMismatch, p.Sink.All()[0].Kind)
}

func TestDefineAttributeOutsideInitIsAnError(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	setup := &ast.MethodDecl{
		Name: "setup",
		Body: []ast.Statement{
			&ast.DefineVariable{Kind: ast.DefineAttribute, Name: "x", Value: &ast.IntegerLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{setup}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.DefineInstanceAttrOutsideInit, p.Sink.All()[0].Kind)
}

func TestDefineAttributeInsideInitDefinesAMutableAttribute(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	initMethod := &ast.MethodDecl{
		Name: config.InitMethodName,
		Body: []ast.Statement{
			&ast.DefineVariable{Kind: ast.DefineAttribute, Name: "x", Value: &ast.IntegerLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{initMethod}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 0, p.Sink.Len())
	pointT := decl.ResolvedType.(*types.Object)
	sym, ok := pointT.Attributes.LookupLocal("x")
	require.True(t, ok)
	assert.True(t, sym.Mutable)
	assert.Same(t, p.DB.Integer, sym.Type)
}

func TestReassignAttributeRequiresExistingMutableAttribute(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	initMethod := &ast.MethodDecl{
		Name: config.InitMethodName,
		Body: []ast.Statement{
			&ast.DefineVariable{Kind: ast.DefineAttribute, Name: "x", Value: &ast.IntegerLiteral{}},
		},
	}
	bump := &ast.MethodDecl{
		Name: "bump",
		Body: []ast.Statement{
			&ast.ReassignAttribute{Name: "x", Value: &ast.IntegerLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{initMethod, bump}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	assert.Equal(t, 0, p.Sink.Len())
}

func TestReassignUndefinedAttributeIsAnError(t *testing.T) {
	p, _ := newPass(t, "geometry", nil)
	bump := &ast.MethodDecl{
		Name: "bump",
		Body: []ast.Statement{
			&ast.ReassignAttribute{Name: "ghost", Value: &ast.IntegerLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{bump}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.ReassignUndefinedAttribute, p.Sink.All()[0].Kind)
}

func TestReassignImmutableAttributeIsAnError(t *testing.T) {
	// A define_constant placed directly in an object body (not inside a
	// method) runs with scope.BlockType == nil and scope.SelfType ==
	// the object itself, so it lands as an immutable attribute - the
	// one way (besides Name/$name) to get a non-mutable attribute.
	p, _ := newPass(t, "geometry", nil)
	labelConst := &ast.DefineVariable{Kind: ast.DefineConstant, Name: "Label", Value: &ast.StringLiteral{}}
	bump := &ast.MethodDecl{
		Name: "bump",
		Body: []ast.Statement{
			&ast.ReassignAttribute{Name: "Label", Value: &ast.StringLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{labelConst, bump}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.ReassignImmutableAttribute, p.Sink.All()[0].Kind)
}

func TestReassignLocalRequiresExistingMutableBinding(t *testing.T) {
	p, _ := newPass(t, "app", nil)
	define := &ast.DefineVariable{Kind: ast.DefineLocal, Name: "count", Value: &ast.IntegerLiteral{}}
	reassign := &ast.ReassignLocal{Name: "count", Value: &ast.IntegerLiteral{}}

	p.Run(&ast.Program{Statements: []ast.Statement{define, reassign}})

	assert.Equal(t, 0, p.Sink.Len())
}

func TestReassignUndefinedLocalIsAnError(t *testing.T) {
	p, _ := newPass(t, "app", nil)
	reassign := &ast.ReassignLocal{Name: "ghost", Value: &ast.IntegerLiteral{}}

	p.Run(&ast.Program{Statements: []ast.Statement{reassign}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.ReassignUndefinedLocal, p.Sink.All()[0].Kind)
}

func TestReassignImmutableLocalIsAnError(t *testing.T) {
	// A top-level define_constant (scope.BlockType == nil) is stored in
	// Module.Globals, which is also the top-level scope's Locals (see
	// TestTopLevelConstantWithoutAModuleTypeIsStoredOnBothTopLevelAndGlobals).
	// This test covers the other case: a define_constant inside a
	// method body, where scope.BlockType is non-nil and the constant is
	// defined into scope.Locals directly.
	p, _ := newPass(t, "geometry", nil)
	bump := &ast.MethodDecl{
		Name: "bump",
		Body: []ast.Statement{
			&ast.DefineVariable{Kind: ast.DefineConstant, Name: "frozen", Value: &ast.IntegerLiteral{}},
			&ast.ReassignLocal{Name: "frozen", Value: &ast.IntegerLiteral{}},
		},
	}
	decl := &ast.ObjectDecl{Name: "Point", Body: []ast.Statement{bump}}

	p.Run(&ast.Program{ModuleName: "geometry", Statements: []ast.Statement{decl}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.ReassignImmutableLocal, p.Sink.All()[0].Kind)
}

func TestReassignLocalTypeMismatch(t *testing.T) {
	p, _ := newPass(t, "app", nil)
	define := &ast.DefineVariable{Kind: ast.DefineLocal, Name: "count", Value: &ast.IntegerLiteral{}}
	reassign := &ast.ReassignLocal{Name: "count", Value: &ast.StringLiteral{Value: "nope"}}

	p.Run(&ast.Program{Statements: []ast.Statement{define, reassign}})

	require.Equal(t, 1, p.Sink.Len())
	assert.Equal(t, diagnostics.TypeMismatch, p.Sink.All()[0].Kind)
}
