package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

func TestTree_PutAndLookup(t *testing.T) {
	tree := Tree{}
	require.NoError(t, tree.Put("data.dir", "/srv/catalog"))
	require.NoError(t, tree.Put("query.limit", 50))

	v, ok := tree.Lookup("data.dir")
	assert.True(t, ok)
	assert.Equal(t, "/srv/catalog", v)

	_, ok = tree.Lookup("data")
	assert.False(t, ok, "tables are not values")
	_, ok = tree.Lookup("query.limit.extra")
	assert.False(t, ok)
	assert.Equal(t, map[string]any{"limit": 50}, tree["query"])
}

func TestTree_PutConflicts(t *testing.T) {
	tree := Tree{}
	require.NoError(t, tree.Put("serve", ":8080"))
	require.NoError(t, tree.Put("data.dir", "x"))

	err := tree.Put("serve.addr", ":9000")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	err = tree.Put("data", "scalar")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestTree_MalformedKeys(t *testing.T) {
	tree := Tree{}
	for _, key := range []string{"", ".", "data.", ".dir", "data..dir"} {
		assert.ErrorIs(t, tree.Put(key, 1), domain.ErrInvalidInput, key)
		_, ok := tree.Lookup(key)
		assert.False(t, ok, key)
	}
	assert.Empty(t, tree)
}

func TestTree_Names(t *testing.T) {
	tree := Tree{}
	require.NoError(t, tree.Put("categories.starships", "equipment/Vehicles"))
	require.NoError(t, tree.Put("categories.drones", "equipment/Vehicles"))
	require.NoError(t, tree.Put("categories.nested.deep", "x"))
	require.NoError(t, tree.Put("version", 1))

	assert.Equal(t, []string{"drones", "starships"}, tree.Names("categories"))
	assert.Equal(t, []string{"version"}, tree.Names(""))
	assert.Empty(t, tree.Names("missing"))
	assert.Empty(t, tree.Names("version"))
}

func TestTree_DeletePrunesEmptyTables(t *testing.T) {
	tree := Tree{}
	require.NoError(t, tree.Put("categories.starships", "equipment/Vehicles"))
	require.NoError(t, tree.Put("github.repo", "owner/data"))
	require.NoError(t, tree.Put("github.ref", "main"))

	tree.Delete("categories.starships")
	tree.Delete("github.ref")
	tree.Delete("github.missing")
	tree.Delete("github")

	assert.NotContains(t, tree, "categories")
	assert.Equal(t, map[string]any{"repo": "owner/data"}, tree["github"], "tables are only removed once empty")
}
