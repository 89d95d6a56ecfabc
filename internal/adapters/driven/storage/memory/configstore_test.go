package memory

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigStore_SetGetUnset(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("data.dir", "/srv/catalog"))
	require.NoError(t, store.Set("load.concurrency", 8))

	v, ok := store.Get("data.dir")
	assert.True(t, ok)
	assert.Equal(t, "/srv/catalog", v)

	require.NoError(t, store.Unset("data.dir"))
	_, ok = store.Get("data.dir")
	assert.False(t, ok)
	assert.Empty(t, store.Keys("data"))

	v, _ = store.Get("load.concurrency")
	assert.Equal(t, 8, v, "values are kept as set")
}

func TestConfigStore_Keys(t *testing.T) {
	store := NewConfigStore()
	require.NoError(t, store.Set("categories.starships", "vehicles/Starships"))
	require.NoError(t, store.Set("categories.cybernetics", "equipment/Augmentations"))
	require.NoError(t, store.Set("categoriesx", "ignored"))

	assert.Equal(t, []string{"cybernetics", "starships"}, store.Keys("categories"))
	assert.Empty(t, store.Keys("watch"))
}

func TestConfigStore_RejectsMalformedKeys(t *testing.T) {
	store := NewConfigStore()

	assert.Error(t, store.Set("data..dir", "x"))
	require.NoError(t, store.Set("serve", ":9000"))
	assert.Error(t, store.Set("serve.addr", ":9000"))
}

func TestConfigStore_LoadAndPath(t *testing.T) {
	store := NewConfigStore()

	assert.NoError(t, store.Load())
	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_Concurrency(t *testing.T) {
	store := NewConfigStore()
	var wg sync.WaitGroup

	for i := 0; i < 20; i++ {
		wg.Add(2)
		go func(n int) {
			defer wg.Done()
			_ = store.Set("load.concurrency", n)
		}(i)
		go func() {
			defer wg.Done()
			_, _ = store.Get("load.concurrency")
			_ = store.Keys("load")
		}()
	}
	wg.Wait()

	_, ok := store.Get("load.concurrency")
	assert.True(t, ok)
}
