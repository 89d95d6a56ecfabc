package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

func TestCategoryResolver_Resolve(t *testing.T) {
	r := NewCategoryResolver(domain.DefaultTaxonomy())
	inherited := &domain.Classification{MainType: domain.MainTypeSpells, SubType: "Spells", Key: "spells"}

	t.Run("direct mapping", func(t *testing.T) {
		c := r.Resolve("lightArmor", nil)
		require.NotNil(t, c)
		assert.Equal(t, "Armor", c.SubType)
	})

	t.Run("direct mapping overrides inherited", func(t *testing.T) {
		c := r.Resolve("rituals", inherited)
		require.NotNil(t, c)
		assert.Equal(t, "Rituals", c.SubType)
		assert.Equal(t, "rituals", c.Key)
	})

	t.Run("unmapped key inherits", func(t *testing.T) {
		c := r.Resolve("rank1", inherited)
		assert.Same(t, inherited, c)
	})

	t.Run("unmapped key without ancestor", func(t *testing.T) {
		assert.Nil(t, r.Resolve("miscStuff", nil))
	})
}
