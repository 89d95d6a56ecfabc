package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func sampleSpell() Record {
	return Record{
		ID:       "rec-1",
		Name:     "Mage Hand",
		MainType: MainTypeSpells,
		SubType:  "Spells",
		Category: "Spells",
		Level:    1,
		Traits:   []string{"Cantrip", "Manipulate"},
		Source:   "Player Core",
		Details: SpellDetails{
			Traditions: []string{"arcane", "occult"},
			Actions:    "2",
			Range:      "30 feet",
			Heightened: []Heightening{{Level: "+2", Effect: "Range increases"}},
		},
		Extra: map[string]any{"sustained": true},
	}
}

func TestRecord_Field(t *testing.T) {
	r := sampleSpell()

	tests := []struct {
		key   string
		value any
		ok    bool
	}{
		{FieldName, "Mage Hand", true},
		{FieldMainType, "spells", true},
		{FieldLevel, 1, true},
		{FieldTraits, []string{"Cantrip", "Manipulate"}, true},
		{"traditions", []string{"arcane", "occult"}, true},
		{"range", "30 feet", true},
		{"area", "", false},
		{"sustained", true, true},
		{"missing", nil, false},
		{FieldDescription, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			v, ok := r.Field(tt.key)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.value, v)
			}
		})
	}
}

func TestRecord_Field_Heightened(t *testing.T) {
	v, ok := sampleSpell().Field("heightened")

	assert.True(t, ok)
	assert.Equal(t, []any{map[string]any{"level": "+2", "effect": "Range increases"}}, v)
}

func TestRecord_Attributes(t *testing.T) {
	r := sampleSpell()
	attrs := r.Attributes()

	assert.Equal(t, "Mage Hand", attrs[FieldName])
	assert.Equal(t, 1, attrs[FieldLevel])
	assert.Equal(t, "2", attrs["actions"])
	assert.Equal(t, true, attrs["sustained"])
	assert.NotContains(t, attrs, "area")
	assert.NotContains(t, attrs, FieldDescription)

	attrs["sustained"] = false
	assert.Equal(t, true, r.Extra["sustained"], "attributes are a copy")
}

func TestRecord_HasTrait(t *testing.T) {
	r := Record{Traits: []string{"Fire", "Evocation"}}

	assert.True(t, r.HasTrait("Fire"))
	assert.False(t, r.HasTrait("Fi"))
	assert.False(t, r.HasTrait("fire"))
}

func TestRecord_ExtraKeys(t *testing.T) {
	r := Record{Extra: map[string]any{"b": 1, "a": 2, "c": 3}}

	assert.Equal(t, []string{"a", "b", "c"}, r.ExtraKeys())
}

func TestDetails_Kind(t *testing.T) {
	assert.Equal(t, MainTypeEquipment, EquipmentDetails{}.Kind())
	assert.Equal(t, MainTypeSpells, SpellDetails{}.Kind())
	assert.Equal(t, MainTypeSkills, SkillDetails{}.Kind())
}

func TestSkillDetails_Field(t *testing.T) {
	r := Record{Name: "Athletics", MainType: MainTypeSkills, Details: SkillDetails{KeyAttribute: "Str"}}

	v, ok := r.Field("keyAttribute")
	assert.True(t, ok)
	assert.Equal(t, "Str", v)
}
