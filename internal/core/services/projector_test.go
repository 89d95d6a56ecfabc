package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

func TestProjector_Project(t *testing.T) {
	p := NewProjector()
	r := domain.Record{
		Name:     "Fireball",
		MainType: domain.MainTypeSpells,
		Level:    3,
		Traits:   []string{"Fire", "Evocation"},
		Details: domain.SpellDetails{
			Traditions: []string{"arcane", "primal"},
			Actions:    "2",
		},
	}

	row := p.Project(r, domain.SchemaFor(domain.Scope{MainType: domain.MainTypeSpells}))

	assert.Equal(t, []string{"Fireball", "3", "arcane, primal", "2", "-", "-", "Fire, Evocation"}, row)
}

func TestProjector_SameRecordDifferentSchemas(t *testing.T) {
	p := NewProjector()
	r := domain.Record{
		Name:     "Medkit",
		MainType: domain.MainTypeEquipment,
		SubType:  "Medical",
		Category: "Medical Items",
		Level:    1,
		Traits:   []string{},
		Source:   "Core",
		Details:  domain.EquipmentDetails{Price: "50", Bulk: "L"},
	}

	medical := p.Project(r, domain.SchemaFor(domain.Scope{MainType: domain.MainTypeEquipment, SubType: "Medical"}))
	all := p.Project(r, domain.SchemaFor(domain.Scope{MainType: domain.MainTypeEquipment, SubType: domain.SubTypeAll}))

	assert.Equal(t, []string{"Medkit", "1", "50", "L", "-", "Core"}, medical)
	assert.Equal(t, []string{"Medkit", "1", "Medical Items", "50", "L", "-", "-", "Core"}, all)
}

func TestProjector_JSONPathColumns(t *testing.T) {
	p := NewProjector()
	r := domain.Record{
		Name:     "Fireball",
		MainType: domain.MainTypeSpells,
		Details: domain.SpellDetails{
			Heightened: []domain.Heightening{{Level: "+1", Effect: "2d6"}, {Level: "+2", Effect: "4d6"}},
		},
		Extra: map[string]any{"cost": map[string]any{"credits": int64(5)}},
	}
	cols := []domain.Column{
		{Key: "$.heightened[0].effect", Label: "First"},
		{Key: "$.heightened[*].level", Label: "Levels"},
		{Key: "$.cost.credits", Label: "Credits"},
		{Key: "$.missing", Label: "Missing"},
		{Key: "$[[[", Label: "Broken"},
		{Key: "cost", Label: "Cost"},
	}

	row := p.Project(r, cols)

	assert.Equal(t, []string{"2d6", "+1, +2", "5", "-", "-", `{"credits":5}`}, row)
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name    string
		in      any
		want    string
		present bool
	}{
		{"nil", nil, "", false},
		{"empty string", "", "", false},
		{"string", "L", "L", true},
		{"int", 0, "0", true},
		{"float", 1.5, "1.5", true},
		{"bool", false, "false", true},
		{"empty slice", []string{}, "", false},
		{"any slice", []any{"a", nil, int64(2)}, "a, 2", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := FormatValue(tt.in)
			assert.Equal(t, tt.present, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
