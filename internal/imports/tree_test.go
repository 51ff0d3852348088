package imports

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDependencyTree(t *testing.T) {
	tree := NewDependencyTree()
	tree.AddNode("a", "schema a")
	tree.AddNode("b", "schema b")
	tree.AddNode("c", "schema c")
	tree.AddNode("d", "schema d")

	require.NoError(t, tree.AddEdge("a", "b"))
	require.NoError(t, tree.AddEdge("a", "c"))
	require.NoError(t, tree.AddEdge("a", "b"))
	require.NoError(t, tree.AddEdge("b", "c"))
	require.NoError(t, tree.AddEdge("c", "a"))

	t.Run("nodes", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c", "d"}, tree.Nodes())
		assert.True(t, tree.HasNode("a"))
		assert.False(t, tree.HasNode("z"))

		schema, ok := tree.Schema("b")
		assert.True(t, ok)
		assert.Equal(t, "schema b", schema)
	})

	t.Run("edges are deduplicated", func(t *testing.T) {
		assert.Equal(t, []string{"b", "c"}, tree.Dependencies("a"))
		assert.Empty(t, tree.Dependencies("d"))
	})

	t.Run("all dependencies", func(t *testing.T) {
		assert.Equal(t, []string{"a", "b", "c"}, tree.AllDependencies("a"))
		assert.Equal(t, []string{"c", "a", "b"}, tree.AllDependencies("c"))
		assert.Equal(t, []string{"d", "b", "c", "a"}, tree.AllDependencies("d", "b"))
		assert.Empty(t, tree.AllDependencies())
	})

	t.Run("unknown nodes", func(t *testing.T) {
		assert.ErrorIs(t, tree.AddEdge("a", "missing"), ErrUnknownNode)
		assert.ErrorIs(t, tree.AddEdge("missing", "a"), ErrUnknownNode)
	})

	t.Run("re-adding a node keeps edges", func(t *testing.T) {
		tree.AddNode("a", "schema a v2")
		schema, _ := tree.Schema("a")
		assert.Equal(t, "schema a v2", schema)
		assert.Equal(t, []string{"b", "c"}, tree.Dependencies("a"))
	})
}
