package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

func queryFixture() []domain.Record {
	return []domain.Record{
		{Name: "Fireball", MainType: domain.MainTypeSpells, SubType: "Spells", Category: "Spells", Level: 3, Traits: []string{"Fire"}},
		{Name: "Hide Armor", MainType: domain.MainTypeEquipment, SubType: "Armor", Category: "Light Armor", Level: 1, Traits: []string{"Comfort"}},
		{Name: "Laser Pistol", MainType: domain.MainTypeEquipment, SubType: "Weapons", Category: "Simple Ranged", Level: 2, Traits: []string{"Fire", "Analog"}},
		{Name: "Plasma Cannon", MainType: domain.MainTypeEquipment, SubType: "Weapons", Category: "Advanced Ranged", Level: 9, Traits: []string{"Fire"}},
		{Name: "Athletics", MainType: domain.MainTypeSkills, SubType: "Skills", Category: "Skills", Traits: []string{}},
		{Name: "Doctor", MainType: domain.MainTypeEquipment, SubType: "Services", Category: "Services", Traits: []string{}},
	}
}

func names(records []domain.Record) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Name
	}
	return out
}

func TestQueryEngine_Filter(t *testing.T) {
	e := NewQueryEngine(domain.DefaultTaxonomy())
	equipment := domain.Scope{MainType: domain.MainTypeEquipment, SubType: domain.SubTypeAll}

	tests := []struct {
		name    string
		scope   domain.Scope
		filters domain.Filters
		want    []string
	}{
		{"scope only", equipment, domain.Filters{}, []string{"Hide Armor", "Laser Pistol", "Plasma Cannon", "Doctor"}},
		{"sub scope", domain.Scope{MainType: domain.MainTypeEquipment, SubType: "Weapons"}, domain.Filters{}, []string{"Laser Pistol", "Plasma Cannon"}},
		{"text case insensitive", equipment, domain.Filters{Text: "LASER"}, []string{"Laser Pistol"}},
		{"text name only by default", equipment, domain.Filters{Text: "ranged"}, []string{}},
		{"text name or category", equipment, domain.Filters{Text: "ranged", MatchCategory: true}, []string{"Laser Pistol", "Plasma Cannon"}},
		{"level range", equipment, domain.Filters{Levels: domain.ParseLevelRange("2", "5")}, []string{"Laser Pistol"}},
		{"open upper bound", equipment, domain.Filters{Levels: domain.ParseLevelRange("2", "")}, []string{"Laser Pistol", "Plasma Cannon"}},
		{"trait exact", equipment, domain.Filters{Trait: "Fire"}, []string{"Laser Pistol", "Plasma Cannon"}},
		{"trait is not substring", equipment, domain.Filters{Trait: "Fi"}, []string{}},
		{"all predicates", equipment, domain.Filters{Text: "p", Levels: domain.ParseLevelRange("", "5"), Trait: "Analog"}, []string{"Laser Pistol"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, names(e.Filter(queryFixture(), tt.scope, tt.filters)))
		})
	}
}

func TestQueryEngine_InvertedRange(t *testing.T) {
	e := NewQueryEngine(domain.DefaultTaxonomy())
	inverted := domain.Filters{Levels: domain.ParseLevelRange("5", "1")}

	got := e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeEquipment, SubType: domain.SubTypeAll}, inverted)
	assert.Empty(t, got, "level-bearing scope excludes everything")

	got = e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeSkills, SubType: domain.SubTypeAll}, inverted)
	assert.Equal(t, []string{"Athletics"}, names(got), "level-less scope ignores the range")

	got = e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeEquipment, SubType: "Services"}, inverted)
	assert.Equal(t, []string{"Doctor"}, names(got))
}

func TestQueryEngine_SkillsIgnoreMinLevel(t *testing.T) {
	e := NewQueryEngine(domain.DefaultTaxonomy())

	got := e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeSkills, SubType: domain.SubTypeAll},
		domain.Filters{Levels: domain.ParseLevelRange("5", "")})

	assert.Equal(t, []string{"Athletics"}, names(got))
}

func TestQueryEngine_LevellessDecidedByScope(t *testing.T) {
	e := NewQueryEngine(domain.DefaultTaxonomy())
	minFive := domain.Filters{Levels: domain.ParseLevelRange("5", "")}

	got := e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeEquipment, SubType: domain.SubTypeAll}, minFive)
	assert.Equal(t, []string{"Plasma Cannon"}, names(got), "services drop out under the whole main type")

	got = e.Filter(queryFixture(), domain.Scope{MainType: domain.MainTypeEquipment, SubType: "Services"}, minFive)
	assert.Equal(t, []string{"Doctor"}, names(got))
}

func TestQueryEngine_DoesNotMutateInput(t *testing.T) {
	e := NewQueryEngine(domain.DefaultTaxonomy())
	in := queryFixture()

	_ = e.Filter(in, domain.Scope{MainType: domain.MainTypeSpells}, domain.Filters{Text: "fire"})

	assert.Equal(t, queryFixture(), in)
}
