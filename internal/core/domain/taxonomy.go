package domain

import (
	"fmt"
	"sort"
	"strings"
	"unicode"
)

// MainType is the top-level catalog partition.
type MainType string

// Known main types, in declared navigation order.
const (
	MainTypeEquipment MainType = "equipment"
	MainTypeSpells    MainType = "spells"
	MainTypeSkills    MainType = "skills"
)

// SubTypeAll is the synthetic sub-scope that selects every sub type.
const SubTypeAll = "All"

// String returns the string representation.
func (m MainType) String() string {
	return string(m)
}

// Label returns the display label for the main type.
func (m MainType) Label() string {
	if m == "" {
		return ""
	}
	s := string(m)
	return strings.ToUpper(s[:1]) + s[1:]
}

// Classification is the taxonomy position assigned to a structural key.
type Classification struct {
	// MainType is the top-level partition.
	MainType MainType

	// SubType is the finer classification within MainType.
	SubType string

	// Key is the structural key that produced this classification.
	Key string
}

// Label returns the category label derived from the classifying key.
func (c Classification) Label() string {
	return TitleCase(c.Key)
}

// String renders the classification as "mainType/SubType".
func (c Classification) String() string {
	return string(c.MainType) + "/" + c.SubType
}

// ParseClassification parses the "mainType/SubType" form used in config files.
func ParseClassification(key, value string) (Classification, error) {
	mt, sub, ok := strings.Cut(value, "/")
	mt = strings.TrimSpace(mt)
	sub = strings.TrimSpace(sub)
	if !ok || mt == "" || sub == "" {
		return Classification{}, fmt.Errorf("%w: category %q must be mainType/SubType, got %q", ErrInvalidInput, key, value)
	}
	return Classification{MainType: MainType(mt), SubType: sub, Key: key}, nil
}

// Taxonomy is the structural-key mapping table plus the main type ordering.
// A Taxonomy is immutable once built; WithOverrides returns a copy.
type Taxonomy struct {
	exact    map[string]Classification
	suffixes []suffixRule
	order    []MainType

	levellessMain map[MainType]bool
	levellessSub  map[string]bool
}

type suffixRule struct {
	suffix string
	class  Classification
}

// DefaultTaxonomy returns the built-in mapping table.
func DefaultTaxonomy() *Taxonomy {
	weapons := Classification{MainType: MainTypeEquipment, SubType: "Weapons"}
	armor := Classification{MainType: MainTypeEquipment, SubType: "Armor"}
	gear := Classification{MainType: MainTypeEquipment, SubType: "Tech Gear"}

	exact := map[string]Classification{
		"weapons":         weapons,
		"simpleMelee":     weapons,
		"martialMelee":    weapons,
		"advancedMelee":   weapons,
		"simpleRanged":    weapons,
		"martialRanged":   weapons,
		"advancedRanged":  weapons,
		"unarmedAttacks":  weapons,
		"ammunition":      {MainType: MainTypeEquipment, SubType: "Ammunition"},
		"armor":           armor,
		"lightArmor":      armor,
		"mediumArmor":     armor,
		"heavyArmor":      armor,
		"shields":         {MainType: MainTypeEquipment, SubType: "Shields"},
		"techGear":        gear,
		"adventuringGear": gear,
		"medicalItems":    {MainType: MainTypeEquipment, SubType: "Medical"},
		"services":        {MainType: MainTypeEquipment, SubType: "Services"},
		"spells":          {MainType: MainTypeSpells, SubType: "Spells"},
		"focusSpells":     {MainType: MainTypeSpells, SubType: "Focus Spells"},
		"rituals":         {MainType: MainTypeSpells, SubType: "Rituals"},
		"skills":          {MainType: MainTypeSkills, SubType: "Skills"},
	}

	t := &Taxonomy{
		exact: make(map[string]Classification, len(exact)),
		suffixes: []suffixRule{
			{suffix: "Melee", class: weapons},
			{suffix: "Ranged", class: weapons},
		},
		order:         []MainType{MainTypeEquipment, MainTypeSpells, MainTypeSkills},
		levellessMain: map[MainType]bool{MainTypeSkills: true},
		levellessSub:  map[string]bool{"Services": true},
	}
	for k, c := range exact {
		c.Key = k
		t.exact[k] = c
	}
	return t
}

// WithOverrides returns a copy of the taxonomy with extra or replaced keys.
// Overrides introducing a new main type append it to the navigation order.
func (t *Taxonomy) WithOverrides(overrides map[string]Classification) *Taxonomy {
	out := &Taxonomy{
		exact:         make(map[string]Classification, len(t.exact)+len(overrides)),
		suffixes:      append([]suffixRule(nil), t.suffixes...),
		order:         append([]MainType(nil), t.order...),
		levellessMain: t.levellessMain,
		levellessSub:  t.levellessSub,
	}
	for k, c := range t.exact {
		out.exact[k] = c
	}

	keys := make([]string, 0, len(overrides))
	for k := range overrides {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		c := overrides[k]
		c.Key = k
		out.exact[k] = c
		if !out.IsKnown(c.MainType) {
			out.order = append(out.order, c.MainType)
		}
	}
	return out
}

// Lookup returns the classification for a structural key.
// Exact entries win over suffix families such as "*Melee".
func (t *Taxonomy) Lookup(key string) (Classification, bool) {
	if c, ok := t.exact[key]; ok {
		return c, true
	}
	for _, r := range t.suffixes {
		if len(key) > len(r.suffix) && strings.HasSuffix(key, r.suffix) {
			c := r.class
			c.Key = key
			return c, true
		}
	}
	return Classification{}, false
}

// MainTypes returns the main types in declared order.
func (t *Taxonomy) MainTypes() []MainType {
	return append([]MainType(nil), t.order...)
}

// First returns the first declared main type.
func (t *Taxonomy) First() MainType {
	if len(t.order) == 0 {
		return ""
	}
	return t.order[0]
}

// IsKnown reports whether the main type is part of the taxonomy.
func (t *Taxonomy) IsKnown(mt MainType) bool {
	for _, m := range t.order {
		if m == mt {
			return true
		}
	}
	return false
}

// IsLevelless reports whether a scope carries only synthetic zero levels.
func (t *Taxonomy) IsLevelless(s Scope) bool {
	return t.levellessMain[s.MainType] || t.levellessSub[s.SubType]
}

// Entries returns every exact mapping, sorted by key.
func (t *Taxonomy) Entries() []Classification {
	out := make([]Classification, 0, len(t.exact))
	for _, c := range t.exact {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// TitleCase converts a camelCase structural key into a display label,
// e.g. "lightArmor" becomes "Light Armor".
func TitleCase(key string) string {
	if key == "" {
		return ""
	}
	var b strings.Builder
	runes := []rune(key)
	for i, r := range runes {
		if i > 0 && unicode.IsUpper(r) {
			prev := runes[i-1]
			if unicode.IsLower(prev) || unicode.IsDigit(prev) {
				b.WriteRune(' ')
			}
		}
		if i == 0 {
			r = unicode.ToUpper(r)
		}
		b.WriteRune(r)
	}
	return b.String()
}
