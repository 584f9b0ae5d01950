package storagetree

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/voblako/voblako/internal/seed"
)

func TestResolveEmptyPathIsRoot(t *testing.T) {
	tree := Default()

	node, breadcrumbs, ok := tree.Resolve(nil)
	require.True(t, ok)

	assert.Equal(t, "root", node.ID)
	assert.Equal(t, "Главная", node.Label)
	require.Len(t, breadcrumbs, 1)
	assert.Equal(t, "root", breadcrumbs[0].ID)
	assert.NotEmpty(t, node.Folders)
	assert.NotEmpty(t, node.Files)
}

func TestResolveNestedPath(t *testing.T) {
	tree := Default()

	node, breadcrumbs, ok := tree.Resolve([]string{"projects", "design"})
	require.True(t, ok)

	assert.Equal(t, "design", node.ID)
	assert.Equal(t, "Дизайн", node.Label)
	assert.Empty(t, node.Folders)

	// Breadcrumbs run root to terminal, inclusive
	require.Len(t, breadcrumbs, 3)
	assert.Equal(t, "root", breadcrumbs[0].ID)
	assert.Equal(t, "projects", breadcrumbs[1].ID)
	assert.Equal(t, "design", breadcrumbs[2].ID)
	assert.Equal(t, "Проекты", breadcrumbs[1].Label)
}

func TestResolveFailsAsAWhole(t *testing.T) {
	tree := Default()

	for _, segments := range [][]string{
		{"does", "not", "exist"},
		{"projects", "nope"},
		{"nope", "design"},
		{"Projects"}, // matching is case sensitive
		{"Проекты"},  // labels are not identifiers
	} {
		node, breadcrumbs, ok := tree.Resolve(segments)
		assert.False(t, ok, "path %v should not resolve", segments)
		assert.Nil(t, node)
		assert.Nil(t, breadcrumbs)
	}
}

func TestDefaultTreeReferencesSeededFiles(t *testing.T) {
	tree := Default()

	seen := map[string]bool{}
	var walk func(node *Node)
	walk = func(node *Node) {
		for _, ref := range node.Files {
			assert.NotEmpty(t, ref.FileID, "folder %s carries a dangling reference", node.ID)
			seen[ref.FileID] = true
		}
		for _, child := range node.Folders {
			walk(child)
		}
	}

	node, _, ok := tree.Resolve(nil)
	require.True(t, ok)
	walk(node)

	// Every seeded file is reachable from some folder
	for _, f := range seed.Files {
		assert.True(t, seen[f.UUID], "seed %s is not placed in the tree", f.Alias)
	}
}

func TestSiblingIdentifiersAreUnique(t *testing.T) {
	var walk func(t *testing.T, node *Node)
	walk = func(t *testing.T, node *Node) {
		ids := map[string]bool{}
		for _, child := range node.Folders {
			assert.False(t, ids[child.ID], "duplicate child id %q under %q", child.ID, node.ID)
			ids[child.ID] = true
			walk(t, child)
		}
	}

	node, _, ok := Default().Resolve(nil)
	require.True(t, ok)
	walk(t, node)
}
