package services

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/google/uuid"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// recordNamespace scopes deterministic record IDs.
var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://grimoire.custodia-labs.dev/records"))

// RecordID derives a stable ID from the item's document and path.
func RecordID(o domain.Origin) string {
	return uuid.NewSHA1(recordNamespace, []byte(o.Document+"#"+o.Path)).String()
}

// BuildRecord turns a normalised candidate item into an immutable record.
// Known fields of the main type move into the details variant; everything
// else is carried in Extra.
func BuildRecord(c domain.Candidate, item domain.RawItem) domain.Record {
	rest := item.Clone()
	take := func(key string) (any, bool) {
		v, ok := rest[key]
		if ok {
			delete(rest, key)
		}
		return v, ok
	}

	r := domain.Record{
		ID:       RecordID(c.Origin),
		MainType: c.Classification.MainType,
		SubType:  c.Classification.SubType,
		Origin:   c.Origin,
	}

	name, _ := take(domain.FieldName)
	r.Name, _ = name.(string)

	if v, ok := take(domain.FieldLevel); ok {
		r.Level, _ = v.(int)
	}
	if v, ok := take(domain.FieldTraits); ok {
		r.Traits, _ = v.([]string)
	}
	if r.Traits == nil {
		r.Traits = []string{}
	}
	if v, ok := take(domain.FieldSource); ok {
		r.Source, _ = v.(string)
	}
	if r.Source == "" {
		r.Source = domain.DefaultSource
	}

	if s, ok := rest[domain.FieldCategory].(string); ok && s != "" {
		r.Category = s
		delete(rest, domain.FieldCategory)
	} else {
		r.Category = c.Classification.Label()
	}
	if s, ok := rest[domain.FieldDescription].(string); ok {
		r.Description = s
		delete(rest, domain.FieldDescription)
	}

	switch r.MainType {
	case domain.MainTypeEquipment:
		r.Details = domain.EquipmentDetails{
			Price: takeScalar(rest, "price"),
			Bulk:  takeScalar(rest, "bulk"),
			Hands: takeScalar(rest, "hands"),
			Group: takeScalar(rest, "group"),
		}
	case domain.MainTypeSpells:
		r.Details = domain.SpellDetails{
			Traditions: takeStrings(rest, "traditions"),
			Actions:    takeScalar(rest, "actions"),
			Range:      takeScalar(rest, "range"),
			Area:       takeScalar(rest, "area"),
			Duration:   takeScalar(rest, "duration"),
			Defense:    takeScalar(rest, "defense"),
			Heightened: takeHeightened(rest, "heightened"),
		}
	case domain.MainTypeSkills:
		r.Details = domain.SkillDetails{
			KeyAttribute: takeScalar(rest, "keyAttribute"),
		}
	}

	if len(rest) > 0 {
		r.Extra = map[string]any(rest)
	}
	return r
}

// takeScalar moves a scalar field out of rest as a string.
// Non-scalar values stay in rest untouched.
func takeScalar(rest domain.RawItem, key string) string {
	v, ok := rest[key]
	if !ok {
		return ""
	}
	s, ok := scalarString(v)
	if !ok {
		return ""
	}
	delete(rest, key)
	return s
}

func takeStrings(rest domain.RawItem, key string) []string {
	v, ok := rest[key]
	if !ok {
		return nil
	}
	switch x := v.(type) {
	case []any:
		out := make([]string, 0, len(x))
		for _, e := range x {
			s, ok := scalarString(e)
			if !ok {
				return nil
			}
			out = append(out, s)
		}
		delete(rest, key)
		return out
	case string:
		delete(rest, key)
		return []string{x}
	}
	return nil
}

// takeHeightened accepts either [{level, effect}] or {"+1": "effect"}.
func takeHeightened(rest domain.RawItem, key string) []domain.Heightening {
	v, ok := rest[key]
	if !ok {
		return nil
	}
	var out []domain.Heightening
	switch x := v.(type) {
	case []any:
		for _, e := range x {
			obj, ok := e.(map[string]any)
			if !ok {
				return nil
			}
			lvl, _ := scalarString(obj["level"])
			eff, _ := scalarString(obj["effect"])
			out = append(out, domain.Heightening{Level: lvl, Effect: eff})
		}
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			eff, ok := scalarString(x[k])
			if !ok {
				return nil
			}
			out = append(out, domain.Heightening{Level: k, Effect: eff})
		}
	default:
		return nil
	}
	delete(rest, key)
	return out
}

// scalarString renders JSON scalars as strings.
func scalarString(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", true
	case string:
		return x, true
	case bool:
		return strconv.FormatBool(x), true
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case fmt.Stringer:
		return x.String(), true
	default:
		return "", false
	}
}
