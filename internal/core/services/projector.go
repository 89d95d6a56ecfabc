package services

import (
	"strconv"
	"strings"
	"sync"

	"github.com/ohler55/ojg"
	"github.com/ohler55/ojg/jp"
	"github.com/ohler55/ojg/oj"

	"github.com/custodia-labs/grimoire/internal/core/domain"
	"github.com/custodia-labs/grimoire/internal/logger"
)

// ListSeparator joins array values for display.
const ListSeparator = ", "

// Projector maps records to display tuples using a column schema.
// Column keys starting with "$" are JSONPath expressions evaluated
// against the record attributes; parsed expressions are cached.
type Projector struct {
	mu    sync.RWMutex
	exprs map[string]jp.Expr
}

// NewProjector creates a column projector.
func NewProjector() *Projector {
	return &Projector{exprs: make(map[string]jp.Expr)}
}

// Project returns one display value per column.
func (p *Projector) Project(r domain.Record, cols []domain.Column) []string {
	row := make([]string, len(cols))
	var attrs map[string]any
	for i, c := range cols {
		var (
			v  any
			ok bool
		)
		if strings.HasPrefix(c.Key, "$") {
			if attrs == nil {
				attrs = r.Attributes()
			}
			v, ok = p.eval(c.Key, attrs)
		} else {
			v, ok = r.Field(c.Key)
		}
		row[i] = domain.Placeholder
		if !ok {
			continue
		}
		if s, present := FormatValue(v); present {
			row[i] = s
		}
	}
	return row
}

func (p *Projector) eval(path string, attrs map[string]any) (any, bool) {
	x, err := p.expr(path)
	if err != nil {
		logger.Debug("Invalid column path %q: %v", path, err)
		return nil, false
	}
	results := x.Get(attrs)
	switch len(results) {
	case 0:
		return nil, false
	case 1:
		return results[0], true
	default:
		return results, true
	}
}

func (p *Projector) expr(path string) (jp.Expr, error) {
	p.mu.RLock()
	x, ok := p.exprs[path]
	p.mu.RUnlock()
	if ok {
		return x, nil
	}
	x, err := jp.ParseString(path)
	if err != nil {
		return nil, err
	}
	p.mu.Lock()
	p.exprs[path] = x
	p.mu.Unlock()
	return x, nil
}

// FormatValue renders a field value for display. Arrays are joined with
// ListSeparator and objects render as compact JSON. The boolean is false
// for nil and empty values.
func FormatValue(v any) (string, bool) {
	switch x := v.(type) {
	case nil:
		return "", false
	case string:
		return x, x != ""
	case int:
		return strconv.Itoa(x), true
	case int64:
		return strconv.FormatInt(x, 10), true
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(x), true
	case []string:
		return joinNonEmpty(x)
	case []any:
		parts := make([]string, 0, len(x))
		for _, e := range x {
			if s, ok := FormatValue(e); ok {
				parts = append(parts, s)
			}
		}
		return joinNonEmpty(parts)
	default:
		s := oj.JSON(x, &ojg.Options{Sort: true})
		return s, s != "" && s != "null" && s != "{}"
	}
}

func joinNonEmpty(parts []string) (string, bool) {
	s := strings.Join(parts, ListSeparator)
	return s, s != ""
}
