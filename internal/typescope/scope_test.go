package typescope

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/funvibe/typecheck/internal/symboltable"
	"github.com/funvibe/typecheck/internal/types"
)

func TestNewRootScopeHasNoBlockType(t *testing.T) {
	locals := symboltable.New(types.Dynamic{})
	self := &types.Object{Name: "Point"}
	scope := New(self, locals)

	assert.Same(t, self, scope.SelfType)
	assert.Nil(t, scope.BlockType)
	assert.False(t, scope.IsClosure())
	assert.False(t, scope.IsMethod())
}

func TestEnterSeedsLocalsFromPositionalArgsAsMutable(t *testing.T) {
	root := New(&types.Object{Name: "Point"}, symboltable.New(types.Dynamic{}))
	intType := &types.Object{Name: "Integer"}
	block := &types.Block{
		Name:      "move_to",
		BlockKind: types.KindMethod,
		Arguments: []types.Arg{
			{Name: "self", Type: &types.Object{Name: "Point"}},
			{Name: "x", Type: intType},
			{Name: "y", Type: intType},
		},
	}

	child := root.Enter(root.SelfType, block)

	require.True(t, child.IsMethod())
	assert.False(t, child.IsClosure())

	sym, ok := child.Locals.LookupLocal("x")
	require.True(t, ok)
	assert.Same(t, intType, sym.Type)
	assert.True(t, sym.Mutable)

	_, selfBound := child.Locals.LookupLocal("self")
	assert.False(t, selfBound, "the implicit self argument is read through SelfType, not rebound as a local")
}

func TestEnterChainsLocalsToParent(t *testing.T) {
	root := New(&types.Object{Name: "Point"}, symboltable.New(types.Dynamic{}))
	root.Locals.Define("outer", &types.Object{Name: "String"}, false)

	block := &types.Block{Name: "run", BlockKind: types.KindMethod, Arguments: []types.Arg{{Name: "self"}}}
	child := root.Enter(root.SelfType, block)

	sym := child.Locals.Lookup("outer")
	assert.True(t, sym.Found())
}

func TestWithLocalsKeepsSelfAndBlockTypeSharesNoLocals(t *testing.T) {
	block := &types.Block{Name: "try_block", BlockKind: types.KindTryBlock}
	root := New(&types.Object{Name: "Point"}, symboltable.New(types.Dynamic{}))
	scope := &Scope{SelfType: root.SelfType, BlockType: block, Locals: root.Locals}

	branch := scope.WithLocals()

	assert.Same(t, scope.SelfType, branch.SelfType)
	assert.Same(t, scope.BlockType, branch.BlockType)
	assert.NotSame(t, scope.Locals, branch.Locals)

	branch.Locals.Define("caught", &types.Object{Name: "IOError"}, true)
	_, onParent := scope.Locals.LookupLocal("caught")
	assert.False(t, onParent, "branch locals must not leak back into the parent scope")
}

func TestIsClosureAndIsMethodDistinguishKinds(t *testing.T) {
	root := New(&types.Object{Name: "Point"}, symboltable.New(types.Dynamic{}))

	closureScope := root.Enter(root.SelfType, &types.Block{BlockKind: types.KindClosure})
	assert.True(t, closureScope.IsClosure())
	assert.False(t, closureScope.IsMethod())

	elseScope := root.Enter(root.SelfType, &types.Block{BlockKind: types.KindElseBlock})
	assert.False(t, elseScope.IsClosure())
	assert.False(t, elseScope.IsMethod())
}
