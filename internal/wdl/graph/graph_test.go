package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGraph_AddIsIdempotent(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", true)
	b := g.Add("a.wdl", false)
	assert.Equal(t, a, b)

	n, ok := g.Lookup("a.wdl")
	require.True(t, ok)
	assert.True(t, n.Rooted)
}

func TestGraph_AddDependencyEdge_rejectsCycle(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", true)
	b := g.Add("b.wdl", false)
	c := g.Add("c.wdl", false)

	require.True(t, g.AddDependencyEdge(a, b))
	require.True(t, g.AddDependencyEdge(b, c))
	assert.False(t, g.AddDependencyEdge(c, a))
}

func TestGraph_AddDependencyEdge_rejectsSelf(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", true)
	assert.False(t, g.AddDependencyEdge(a, a))
}

func TestGraph_ContainsCycle_doesNotMutate(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", true)
	b := g.Add("b.wdl", false)
	require.True(t, g.AddDependencyEdge(a, b))

	assert.True(t, g.ContainsCycle(b, a))
	assert.False(t, g.ContainsCycle(a, b), "a->b already exists, re-adding is not a new cycle by itself")

	assert.False(t, g.AddDependencyEdge(b, a))
}

func TestGraph_BFSDependents(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", true)
	b := g.Add("b.wdl", true)
	c := g.Add("c.wdl", true)
	d := g.Add("d.wdl", true)

	// b depends on a, c depends on b, d depends on b.
	require.True(t, g.AddDependencyEdge(b, a))
	require.True(t, g.AddDependencyEdge(c, b))
	require.True(t, g.AddDependencyEdge(d, b))

	var got []NodeID
	g.BFSDependents(a, func(id NodeID) { got = append(got, id) })
	assert.ElementsMatch(t, []NodeID{b, c, d}, got)
}

func TestGraph_GC_removesUnrootedLeaves(t *testing.T) {
	g := New()
	root := g.Add("root.wdl", true)
	lib := g.Add("lib.wdl", false)
	orphan := g.Add("orphan.wdl", false)

	require.True(t, g.AddDependencyEdge(root, lib))

	removed := g.GC()
	assert.ElementsMatch(t, []NodeID{orphan}, removed)

	_, ok := g.Lookup("lib.wdl")
	assert.True(t, ok, "lib is still reachable from a root, gc must keep it")
	_, ok = g.Lookup("orphan.wdl")
	assert.False(t, ok)
}

func TestGraph_GC_isClosedUnderIteration(t *testing.T) {
	g := New()
	a := g.Add("a.wdl", false)
	b := g.Add("b.wdl", false)
	// a depends on b; neither is rooted. a has no dependents and goes
	// first, which leaves b with none, so b must go in the same GC call.
	require.True(t, g.AddDependencyEdge(a, b))

	removed := g.GC()
	assert.ElementsMatch(t, []NodeID{a, b}, removed)
}

func TestGraph_RemoveRoot_invalidatesDependents(t *testing.T) {
	g := New()
	root := g.Add("root.wdl", true)
	lib := g.Add("lib.wdl", true)
	require.True(t, g.AddDependencyEdge(root, lib))

	rn, _ := g.Node(root)
	rn.ParseState = ParseStateParsed
	ln, _ := g.Node(lib)
	ln.ParseState = ParseStateParsed

	invalidated := g.RemoveRoot("lib.wdl")
	assert.Contains(t, invalidated, lib)

	n, ok := g.Lookup("lib.wdl")
	require.True(t, ok)
	assert.False(t, n.Rooted)
	assert.Equal(t, ParseStateUnparsed, n.ParseState)
}
