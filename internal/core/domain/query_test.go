package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScope_Contains(t *testing.T) {
	armor := Record{MainType: MainTypeEquipment, SubType: "Armor"}
	spell := Record{MainType: MainTypeSpells, SubType: "Spells"}

	assert.True(t, Scope{MainType: MainTypeEquipment, SubType: SubTypeAll}.Contains(armor))
	assert.True(t, Scope{MainType: MainTypeEquipment}.Contains(armor))
	assert.True(t, Scope{MainType: MainTypeEquipment, SubType: "Armor"}.Contains(armor))
	assert.False(t, Scope{MainType: MainTypeEquipment, SubType: "Weapons"}.Contains(armor))
	assert.False(t, Scope{MainType: MainTypeEquipment}.Contains(spell))
	assert.True(t, Scope{}.Contains(spell))
}

func TestScope_String(t *testing.T) {
	assert.Equal(t, "equipment", Scope{MainType: MainTypeEquipment, SubType: SubTypeAll}.String())
	assert.Equal(t, "equipment/Armor", Scope{MainType: MainTypeEquipment, SubType: "Armor"}.String())
}

func TestParseLevelRange(t *testing.T) {
	tests := []struct {
		name     string
		min, max string
		wantMin  *int
		wantMax  *int
	}{
		{name: "both empty", min: "", max: ""},
		{name: "both set", min: "2", max: "5", wantMin: intPtr(2), wantMax: intPtr(5)},
		{name: "unparseable min", min: "abc", max: "5", wantMax: intPtr(5)},
		{name: "whitespace trimmed", min: " 3 ", max: "", wantMin: intPtr(3)},
		{name: "zero is a bound", min: "0", max: "0", wantMin: intPtr(0), wantMax: intPtr(0)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := ParseLevelRange(tt.min, tt.max)
			assert.Equal(t, tt.wantMin, r.Min)
			assert.Equal(t, tt.wantMax, r.Max)
		})
	}
}

func TestLevelRange_Contains(t *testing.T) {
	r := LevelRange{Min: intPtr(2), Max: intPtr(4)}

	assert.False(t, r.Contains(1))
	assert.True(t, r.Contains(2))
	assert.True(t, r.Contains(4))
	assert.False(t, r.Contains(5))

	assert.True(t, LevelRange{}.Contains(99))
	assert.False(t, LevelRange{}.IsSet())

	inverted := LevelRange{Min: intPtr(5), Max: intPtr(1)}
	for lvl := 0; lvl <= 10; lvl++ {
		assert.False(t, inverted.Contains(lvl))
	}
}

func TestParseDirection(t *testing.T) {
	assert.Equal(t, Descending, ParseDirection("desc"))
	assert.Equal(t, Descending, ParseDirection(" DESC "))
	assert.Equal(t, Ascending, ParseDirection("asc"))
	assert.Equal(t, Ascending, ParseDirection("sideways"))
	require.Equal(t, "desc", Descending.String())
	require.Equal(t, "asc", Ascending.String())
}

func intPtr(n int) *int { return &n }
