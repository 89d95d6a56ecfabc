// Package item normalises raw catalog items: it derives the single
// ordering level from level or rank, fills the default source and
// coerces traits into a string sequence.
package item

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.ItemNormaliser = (*Normaliser)(nil)

// Normaliser applies the field rules in order: level from rank, default
// level, default source, traits as a sequence.
type Normaliser struct{}

// New creates a new item normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// Normalise returns a normalised copy of raw.
func (n *Normaliser) Normalise(raw domain.RawItem) domain.RawItem {
	item := raw.Clone()

	lvl := item[domain.FieldLevel]
	if lvl == nil {
		lvl = item[domain.FieldRank]
	}
	item[domain.FieldLevel] = Level(lvl)

	if src := stringValue(item[domain.FieldSource]); src != "" {
		item[domain.FieldSource] = src
	} else {
		item[domain.FieldSource] = domain.DefaultSource
	}

	item[domain.FieldTraits] = Traits(item[domain.FieldTraits])
	return item
}

// Level coerces a raw level or rank into a non-negative integer.
// Floats truncate, numeric strings parse, anything else is 0.
func Level(v any) int {
	var n int
	switch x := v.(type) {
	case int:
		n = x
	case int64:
		n = int(x)
	case int32:
		n = int(x)
	case float64:
		n = truncate(x)
	case float32:
		n = truncate(float64(x))
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return 0
		}
		n = truncate(f)
	case string:
		s := strings.TrimSpace(x)
		if i, err := strconv.Atoi(s); err == nil {
			n = i
		} else if f, err := strconv.ParseFloat(s, 64); err == nil {
			n = truncate(f)
		}
	}
	if n < 0 {
		return 0
	}
	return n
}

func truncate(f float64) int {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return int(f)
}

// Traits coerces a raw traits value into a string slice. A scalar becomes
// a one-element slice; nil and empty strings are dropped. Never returns nil.
func Traits(v any) []string {
	out := []string{}
	switch x := v.(type) {
	case nil:
	case []string:
		for _, s := range x {
			if s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, e := range x {
			if s := stringValue(e); s != "" {
				out = append(out, s)
			}
		}
	default:
		if s := stringValue(x); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func stringValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case map[string]any, []any:
		return ""
	default:
		return fmt.Sprint(x)
	}
}
