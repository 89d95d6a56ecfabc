package services

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// DetailField is one labelled value of a record detail view.
type DetailField struct {
	Label string
	Value string
}

// Describe returns the labelled fields of a record in display order:
// level, traits and source, then the known stat fields that are present,
// then pass-through attributes sorted by key.
func Describe(r domain.Record, t *domain.Taxonomy) []DetailField {
	var out []DetailField
	add := func(label string, v any) {
		if s, ok := FormatValue(v); ok {
			out = append(out, DetailField{Label: label, Value: s})
		}
	}

	if !t.IsLevelless(domain.Scope{MainType: r.MainType, SubType: r.SubType}) {
		label := domain.LevelLabel(r.MainType)
		if label == "" {
			label = "Level"
		}
		add(label, r.Level)
	}
	add("Traits", r.Traits)
	add("Source", r.Source)

	known := make(map[string]bool, len(domain.DetailFields))
	for _, c := range domain.DetailFields {
		known[c.Key] = true
		if v, ok := r.Field(c.Key); ok {
			add(c.Label, v)
		}
	}
	for _, k := range r.ExtraKeys() {
		if known[k] {
			continue
		}
		add(domain.TitleCase(k), r.Extra[k])
	}
	return out
}

// RecordMeta returns the one-line summary shown under a list row:
// "Rank 3 | Evocation" for spells, "Lvl 6 | Heavy Armor" for equipment
// and "Int | Lore" for skills. Empty parts are left out.
func RecordMeta(r domain.Record, t *domain.Taxonomy) string {
	var parts []string
	switch r.MainType {
	case domain.MainTypeSpells:
		parts = append(parts, fmt.Sprintf("Rank %d", r.Level))
	case domain.MainTypeEquipment:
		if !t.IsLevelless(domain.Scope{MainType: r.MainType, SubType: r.SubType}) {
			parts = append(parts, fmt.Sprintf("Lvl %d", r.Level))
		}
	case domain.MainTypeSkills:
		if d, ok := r.Details.(domain.SkillDetails); ok && d.KeyAttribute != "" {
			parts = append(parts, d.KeyAttribute)
		}
	}
	if r.Category != "" {
		parts = append(parts, r.Category)
	}
	return strings.Join(parts, " | ")
}

// RecordMarkdown renders a record as a markdown document for detail views.
func RecordMarkdown(r domain.Record, t *domain.Taxonomy) string {
	var b strings.Builder
	fmt.Fprintf(&b, "# %s\n\n", r.Name)

	scope := r.MainType.Label()
	if r.SubType != "" {
		scope += " / " + r.SubType
	}
	fmt.Fprintf(&b, "*%s*\n\n", scope)
	if meta := RecordMeta(r, t); meta != "" {
		fmt.Fprintf(&b, "`%s`\n\n", meta)
	}

	for _, f := range Describe(r, t) {
		fmt.Fprintf(&b, "- **%s:** %s\n", f.Label, f.Value)
	}

	if r.Description != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Description)
	}

	if spell, ok := r.Details.(domain.SpellDetails); ok && len(spell.Heightened) > 0 {
		b.WriteString("\n## Heightened\n\n")
		for _, h := range spell.Heightened {
			fmt.Fprintf(&b, "- **%s** %s\n", h.Level, h.Effect)
		}
	}
	return b.String()
}
