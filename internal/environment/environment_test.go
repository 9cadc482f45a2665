package environment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetAndGetRoundTripInSameFrame(t *testing.T) {
	e := NewRoot()
	e.Set("x", int64(1))
	v, ok := e.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
}

func TestGetSearchesOutwardThroughParent(t *testing.T) {
	root := NewRoot()
	root.Set("x", int64(7))
	child := root.Extend()
	v, ok := child.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(7), v)
}

func TestGetLocalDoesNotSearchParent(t *testing.T) {
	root := NewRoot()
	root.Set("x", int64(7))
	child := root.Extend()
	_, ok := child.GetLocal("x")
	assert.False(t, ok)
}

func TestSetInChildNeverLeaksIntoParent(t *testing.T) {
	root := NewRoot()
	child := root.Extend()
	child.Set("y", int64(2))
	_, ok := root.Get("y")
	assert.False(t, ok)
}

func TestGlobalReturnsRootFromAnyDepth(t *testing.T) {
	root := NewRoot()
	child := root.Extend()
	grandchild := child.Extend()
	assert.Same(t, root, grandchild.Global())
}

func TestBindGlobalAliasesToRootAndSetGlobalIsVisibleThere(t *testing.T) {
	root := NewRoot()
	frame := root.Extend()
	frame.BindGlobal("counter")
	assert.True(t, frame.IsGlobal("counter"))

	frame.SetGlobal("counter", int64(5))
	v, ok := root.Get("counter")
	require.True(t, ok)
	assert.Equal(t, int64(5), v)
}

func TestIsGlobalFalseForUndeclaredName(t *testing.T) {
	e := NewRoot()
	assert.False(t, e.IsGlobal("never_declared"))
}

func TestCopySnapshotsBindingsAtCallTime(t *testing.T) {
	root := NewRoot()
	root.Set("x", int64(1))
	snap := root.Copy()

	root.Set("x", int64(99))

	v, ok := snap.Get("x")
	require.True(t, ok)
	assert.Equal(t, int64(1), v, "a closure's captured environment must not see later writes to the original")
}

func TestCopyPreservesParentChain(t *testing.T) {
	root := NewRoot()
	root.Set("outer", int64(1))
	child := root.Extend()
	child.Set("inner", int64(2))

	snap := child.Copy()
	v, ok := snap.Get("outer")
	require.True(t, ok)
	assert.Equal(t, int64(1), v)
	v, ok = snap.Get("inner")
	require.True(t, ok)
	assert.Equal(t, int64(2), v)
}

func TestNamesEnumeratesAllVisibleBindingsDeduplicated(t *testing.T) {
	root := NewRoot()
	root.Set("a", int64(1))
	root.Set("b", int64(2))
	child := root.Extend()
	child.Set("b", int64(3))
	child.Set("c", int64(4))

	names := child.Names()
	assert.ElementsMatch(t, []string{"a", "b", "c"}, names)
}
