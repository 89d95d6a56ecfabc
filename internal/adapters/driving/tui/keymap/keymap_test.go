package keymap

import (
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	require.NotNil(t, km)
	assert.Contains(t, km.Quit.Keys(), "q")
	assert.Contains(t, km.Quit.Keys(), "ctrl+c")
	assert.Contains(t, km.NextType.Keys(), "tab")
	assert.Contains(t, km.Filter.Keys(), "/")
	assert.Len(t, km.Sort.Keys(), 9)
}

func TestKeyMap_BindingsHaveHelp(t *testing.T) {
	km := DefaultKeyMap()

	for _, group := range km.FullHelp() {
		for _, b := range group {
			h := b.Help()
			assert.NotEmpty(t, h.Key)
			assert.NotEmpty(t, h.Desc)
		}
	}
}

func TestKeyMap_ShortHelp(t *testing.T) {
	km := DefaultKeyMap()

	short := km.ShortHelp()

	require.NotEmpty(t, short)
	assert.Equal(t, km.Quit.Keys(), short[len(short)-1].Keys())
}

func TestKeyMap_NoDuplicateKeys(t *testing.T) {
	km := DefaultKeyMap()
	seen := map[string]string{}

	for _, group := range km.FullHelp() {
		for _, b := range group {
			for _, k := range b.Keys() {
				prev, dup := seen[k]
				assert.False(t, dup, "key %q bound to %q and %q", k, prev, b.Help().Desc)
				seen[k] = b.Help().Desc
			}
		}
	}
}

func TestMatches(t *testing.T) {
	b := key.NewBinding(key.WithKeys("a", "b"))

	assert.True(t, Matches("a", b))
	assert.True(t, Matches("b", b))
	assert.False(t, Matches("c", b))
}
