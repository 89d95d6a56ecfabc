package services

import (
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/custodia-labs/grimoire/internal/core/domain"
)

// SortRecords returns a stably sorted copy of records.
// Records with equal keys keep their input order.
func SortRecords(records []domain.Record, spec domain.SortSpec) []domain.Record {
	out := append([]domain.Record(nil), records...)
	if spec.Key == "" {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, _ := out[i].Field(spec.Key)
		b, _ := out[j].Field(spec.Key)
		c := CompareValues(a, b)
		if spec.Direction == domain.Descending {
			c = -c
		}
		return c < 0
	})
	return out
}

// CompareValues compares two field values. When both coerce to numbers
// they compare numerically, otherwise by their string forms.
// Missing values compare as the empty string.
func CompareValues(a, b any) int {
	if x, ok := numeric(a); ok {
		if y, ok := numeric(b); ok {
			switch {
			case x < y:
				return -1
			case x > y:
				return 1
			default:
				return 0
			}
		}
	}
	return strings.Compare(sortString(a), sortString(b))
}

func numeric(v any) (float64, bool) {
	switch x := v.(type) {
	case int:
		return float64(x), true
	case int64:
		return float64(x), true
	case float64:
		return x, !math.IsNaN(x)
	case string:
		s := strings.TrimSpace(x)
		if s == "" {
			return 0, false
		}
		f, err := strconv.ParseFloat(s, 64)
		if err != nil || math.IsNaN(f) {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}

func sortString(v any) string {
	s, ok := FormatValue(v)
	if !ok {
		return ""
	}
	return s
}
