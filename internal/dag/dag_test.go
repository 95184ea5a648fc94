package dag

import (
	"testing"

	"github.com/specialistvlad/gypcmake/internal/fault"
	"github.com/specialistvlad/gypcmake/internal/target"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	g := New()
	require.NotNil(t, g)
	assert.Zero(t, g.Len())
}

func TestAddNode(t *testing.T) {
	g := New()

	g.AddNode("a")
	g.AddNode("a")
	assert.Equal(t, 1, g.Len(), "adding an id twice is a no-op")

	g.AddNode("b")
	assert.Equal(t, 2, g.Len())

	assert.Empty(t, g.vertices["a"].in)
}

func TestAddEdge(t *testing.T) {
	t.Run("success case", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		require.NoError(t, g.AddEdge("a", "b")) // b depends on a
		require.NoError(t, g.AddEdge("a", "b"))

		assert.Equal(t, []string{"b"}, g.vertices["a"].out.sorted())
		assert.Equal(t, []string{"a"}, g.vertices["b"].in.sorted())
	})

	t.Run("error cases", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")

		err := g.AddEdge("dne", "a")
		assert.ErrorContains(t, err, "source node not found")

		err = g.AddEdge("a", "dne")
		assert.ErrorContains(t, err, "destination node not found")

		err = g.AddEdge("a", "a")
		assert.ErrorContains(t, err, "self-referential edge")
	})
}

func TestDetectCycles(t *testing.T) {
	t.Run("empty graph has no cycles", func(t *testing.T) {
		g := New()
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("graph with nodes but no edges has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("valid dag has no cycles", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("a", "c")) // Transitive edge
		require.NoError(t, g.AddEdge("c", "d"))
		assert.NoError(t, g.DetectCycles())
	})

	t.Run("simple direct cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "a")) // Cycle
		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("longer cycle is detected", func(t *testing.T) {
		g := New()
		g.AddNode("a")
		g.AddNode("b")
		g.AddNode("c")
		g.AddNode("d")
		require.NoError(t, g.AddEdge("a", "b"))
		require.NoError(t, g.AddEdge("b", "c"))
		require.NoError(t, g.AddEdge("c", "d"))
		require.NoError(t, g.AddEdge("d", "a")) // Cycle back to the start
		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})

	t.Run("cycle in a disjoint component is detected", func(t *testing.T) {
		g := New()
		// Component 1 (valid)
		g.AddNode("a")
		g.AddNode("b")
		require.NoError(t, g.AddEdge("a", "b"))

		// Component 2 (has a cycle)
		g.AddNode("x")
		g.AddNode("y")
		g.AddNode("z")
		require.NoError(t, g.AddEdge("x", "y"))
		require.NoError(t, g.AddEdge("y", "z"))
		require.NoError(t, g.AddEdge("z", "y")) // Cycle

		err := g.DetectCycles()
		assert.Error(t, err)
		assert.ErrorContains(t, err, "cycle detected")
	})
}

func TestDetectCycles_Path(t *testing.T) {
	g := New()
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(id)
	}
	require.NoError(t, g.AddEdge("a", "b"))
	require.NoError(t, g.AddEdge("b", "c"))
	require.NoError(t, g.AddEdge("c", "b"))

	err := g.DetectCycles()
	var cycle *CycleError
	require.ErrorAs(t, err, &cycle)
	assert.Equal(t, []string{"b", "c", "b"}, cycle.Path)
	assert.EqualError(t, err, "cycle detected: b -> c -> b")
}

func TestFromTargets(t *testing.T) {
	tg := &target.Graph{Nodes: map[string]*target.Node{
		"a.gyp:app":  {Kind: target.Executable, Dependencies: []string{"a.gyp:lib"}, DependenciesOriginal: []string{"a.gyp:lib", "a.gyp:app"}},
		"a.gyp:lib":  {Kind: target.StaticLibrary},
		"a.gyp:tool": {Kind: target.Executable},
	}}

	g, err := FromTargets(tg)
	require.NoError(t, err)
	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"a.gyp:lib"}, g.vertices["a.gyp:app"].in.sorted())
	assert.NoError(t, g.DetectCycles())

	tg.Nodes["a.gyp:tool"].Dependencies = []string{"b.gyp:gone"}
	_, err = FromTargets(tg)
	require.Error(t, err)
	assert.ErrorIs(t, err, fault.DanglingReference)
}
