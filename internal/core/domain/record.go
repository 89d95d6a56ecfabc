package domain

import "sort"

// DefaultSource is assigned to records whose raw item has no source.
const DefaultSource = "Unknown"

// Common attribute keys shared by every record variant.
const (
	FieldID          = "id"
	FieldName        = "name"
	FieldMainType    = "mainType"
	FieldSubType     = "subType"
	FieldCategory    = "category"
	FieldLevel       = "level"
	FieldRank        = "rank"
	FieldTraits      = "traits"
	FieldSource      = "source"
	FieldDescription = "description"
)

// Origin locates the raw item a record was built from.
type Origin struct {
	// Document is the manifest identifier of the source document.
	Document string

	// Path is the JSON path of the item within the document.
	Path string
}

// Record is a normalised catalog entry.
// Records are built once per load and never mutated afterwards.
type Record struct {
	ID          string
	Name        string
	MainType    MainType
	SubType     string
	Category    string
	Level       int
	Traits      []string
	Source      string
	Description string
	Origin      Origin

	// Details holds the fields known for the record's main type.
	// It is nil for main types added through configuration.
	Details Details

	// Extra carries every remaining raw attribute unmodified.
	Extra map[string]any
}

// Details is the main-type specific part of a record.
type Details interface {
	// Kind returns the main type this variant belongs to.
	Kind() MainType

	// Field returns a known field by attribute key.
	Field(key string) (any, bool)

	// Keys returns the attribute keys this variant owns.
	Keys() []string
}

// Field resolves an attribute by key: common fields first, then the
// main-type details, then the pass-through extras.
func (r Record) Field(key string) (any, bool) {
	switch key {
	case FieldID:
		return r.ID, true
	case FieldName:
		return r.Name, true
	case FieldMainType:
		return string(r.MainType), true
	case FieldSubType:
		return r.SubType, r.SubType != ""
	case FieldCategory:
		return r.Category, r.Category != ""
	case FieldLevel:
		return r.Level, true
	case FieldTraits:
		return r.Traits, true
	case FieldSource:
		return r.Source, true
	case FieldDescription:
		return r.Description, r.Description != ""
	}
	if r.Details != nil {
		if v, ok := r.Details.Field(key); ok {
			return v, true
		}
	}
	v, ok := r.Extra[key]
	return v, ok
}

// Attributes returns the flat attribute map of the record.
// The result is a fresh map; mutating it does not affect the record.
func (r Record) Attributes() map[string]any {
	out := make(map[string]any, len(r.Extra)+12)
	for k, v := range r.Extra {
		out[k] = v
	}
	if r.Details != nil {
		for _, k := range r.Details.Keys() {
			if v, ok := r.Details.Field(k); ok {
				out[k] = v
			}
		}
	}
	out[FieldID] = r.ID
	out[FieldName] = r.Name
	out[FieldMainType] = string(r.MainType)
	out[FieldLevel] = r.Level
	out[FieldTraits] = r.Traits
	out[FieldSource] = r.Source
	if r.SubType != "" {
		out[FieldSubType] = r.SubType
	}
	if r.Category != "" {
		out[FieldCategory] = r.Category
	}
	if r.Description != "" {
		out[FieldDescription] = r.Description
	}
	return out
}

// HasTrait reports whether the record carries the exact trait.
func (r Record) HasTrait(trait string) bool {
	for _, t := range r.Traits {
		if t == trait {
			return true
		}
	}
	return false
}

// ExtraKeys returns the pass-through attribute keys in sorted order.
func (r Record) ExtraKeys() []string {
	keys := make([]string, 0, len(r.Extra))
	for k := range r.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// EquipmentDetails holds the fields known for equipment records.
type EquipmentDetails struct {
	Price string
	Bulk  string
	Hands string
	Group string
}

// Kind returns MainTypeEquipment.
func (EquipmentDetails) Kind() MainType { return MainTypeEquipment }

// Keys returns the equipment attribute keys.
func (EquipmentDetails) Keys() []string { return []string{"price", "bulk", "hands", "group"} }

// Field returns a known equipment field.
func (d EquipmentDetails) Field(key string) (any, bool) {
	switch key {
	case "price":
		return d.Price, d.Price != ""
	case "bulk":
		return d.Bulk, d.Bulk != ""
	case "hands":
		return d.Hands, d.Hands != ""
	case "group":
		return d.Group, d.Group != ""
	}
	return nil, false
}

// Heightening is one heightened entry of a spell.
type Heightening struct {
	Level  string
	Effect string
}

// SpellDetails holds the fields known for spell records.
type SpellDetails struct {
	Traditions []string
	Actions    string
	Range      string
	Area       string
	Duration   string
	Defense    string
	Heightened []Heightening
}

// Kind returns MainTypeSpells.
func (SpellDetails) Kind() MainType { return MainTypeSpells }

// Keys returns the spell attribute keys.
func (SpellDetails) Keys() []string {
	return []string{"traditions", "actions", "range", "area", "duration", "defense", "heightened"}
}

// Field returns a known spell field.
func (d SpellDetails) Field(key string) (any, bool) {
	switch key {
	case "traditions":
		return d.Traditions, len(d.Traditions) > 0
	case "actions":
		return d.Actions, d.Actions != ""
	case "range":
		return d.Range, d.Range != ""
	case "area":
		return d.Area, d.Area != ""
	case "duration":
		return d.Duration, d.Duration != ""
	case "defense":
		return d.Defense, d.Defense != ""
	case "heightened":
		if len(d.Heightened) == 0 {
			return nil, false
		}
		out := make([]any, len(d.Heightened))
		for i, h := range d.Heightened {
			out[i] = map[string]any{"level": h.Level, "effect": h.Effect}
		}
		return out, true
	}
	return nil, false
}

// SkillDetails holds the fields known for skill records.
type SkillDetails struct {
	KeyAttribute string
}

// Kind returns MainTypeSkills.
func (SkillDetails) Kind() MainType { return MainTypeSkills }

// Keys returns the skill attribute keys.
func (SkillDetails) Keys() []string { return []string{"keyAttribute"} }

// Field returns a known skill field.
func (d SkillDetails) Field(key string) (any, bool) {
	if key == "keyAttribute" {
		return d.KeyAttribute, d.KeyAttribute != ""
	}
	return nil, false
}
