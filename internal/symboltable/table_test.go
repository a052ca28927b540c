package symboltable

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubType string

func (s stubType) String() string { return string(s) }

func TestDefinePreservesInsertionOrder(t *testing.T) {
	tbl := New(stubType("dynamic"))
	tbl.Define("b", stubType("int"), false)
	tbl.Define("a", stubType("string"), true)
	tbl.Define("b", stubType("float"), false) // redefine, does not reorder

	assert.Equal(t, []string{"b", "a"}, tbl.Names())
	assert.Equal(t, 2, tbl.Len())

	sym, ok := tbl.LookupLocal("b")
	require.True(t, ok)
	assert.Equal(t, stubType("float"), sym.Type)
}

func TestLookupLocalNeverConsultsParent(t *testing.T) {
	parent := New(stubType("dynamic"))
	parent.Define("x", stubType("int"), false)
	child := NewChild(parent)

	_, ok := child.LookupLocal("x")
	assert.False(t, ok, "LookupLocal must not walk the parent chain")

	sym := child.Lookup("x")
	assert.True(t, sym.Found())
	assert.Equal(t, stubType("int"), sym.Type)
}

func TestLookupMissReturnsAbsentSentinel(t *testing.T) {
	tbl := New(stubType("dynamic"))
	sym := tbl.Lookup("missing")

	assert.False(t, sym.Found())
	assert.Equal(t, stubType("dynamic"), sym.Type)
	assert.Equal(t, "missing", sym.Name)
}

func TestChildInheritsAbsentFromRoot(t *testing.T) {
	root := New(stubType("dynamic"))
	child := NewChild(root)
	grandchild := NewChild(child)

	sym := grandchild.Lookup("nope")
	assert.Equal(t, stubType("dynamic"), sym.Type)
}

func TestHasWalksTheFullChain(t *testing.T) {
	root := New(stubType("dynamic"))
	root.Define("shared", stubType("string"), false)
	mid := NewChild(root)
	leaf := NewChild(mid)

	assert.True(t, leaf.Has("shared"))
	assert.False(t, leaf.Has("absent"))
}

func TestAllReturnsOnlyThisTablesBindings(t *testing.T) {
	parent := New(stubType("dynamic"))
	parent.Define("outer", stubType("int"), false)
	child := NewChild(parent)
	child.Define("inner", stubType("string"), true)

	all := child.All()
	require.Len(t, all, 1)
	assert.Equal(t, "inner", all[0].Name)
	assert.True(t, all[0].Mutable)
}

func TestOuterReturnsParentOrNil(t *testing.T) {
	root := New(stubType("dynamic"))
	assert.Nil(t, root.Outer())

	child := NewChild(root)
	assert.Same(t, root, child.Outer())
}
