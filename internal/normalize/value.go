package normalize

import (
	"fmt"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/shopspring/decimal"
)

var json = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// Decode parses an upstream body into a generic tree. Numbers stay exact as json.Number.
func Decode(body []byte) (any, error) {
	var v any
	if err := json.Unmarshal(body, &v); err != nil {
		return nil, fmt.Errorf("failed to decode upstream body: %w", err)
	}
	return v, nil
}

// Lookup walks a dotted path through decoded JSON. An empty path returns v itself.
// Null values count as absent.
func Lookup(v any, path string) (any, bool) {
	if v == nil {
		return nil, false
	}
	if path == "" {
		return v, true
	}
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok {
				return nil, false
			}
			cur = next
		case []any:
			idx, err := strconv.Atoi(seg)
			if err != nil || idx < 0 || idx >= len(node) {
				return nil, false
			}
			cur = node[idx]
		default:
			return nil, false
		}
		if cur == nil {
			return nil, false
		}
	}
	return cur, true
}

// first returns the first present, non-blank value of a rule.
func (r Rule) first(rec any) (any, bool) {
	for _, p := range r.Paths {
		v, ok := Lookup(rec, p)
		if !ok {
			continue
		}
		if s, isStr := v.(string); isStr && strings.TrimSpace(s) == "" {
			continue
		}
		return v, true
	}
	return nil, false
}

func (r Rule) str(rec any) string {
	v, ok := r.first(rec)
	if !ok {
		return ""
	}
	return asString(v)
}

func (r Rule) decimal(rec any) (decimal.Decimal, bool) {
	v, ok := r.first(rec)
	if !ok {
		return decimal.Zero, false
	}
	d, ok := asDecimal(v)
	if !ok {
		return decimal.Zero, false
	}
	if r.Shift != 0 {
		d = d.Shift(r.Shift)
	}
	return d, true
}

// float returns the scaled value or 0.
func (r Rule) float(rec any) float64 {
	d, _ := r.decimal(rec)
	f, _ := d.Float64()
	return f
}

// optFloat returns nil when the field is absent or not numeric.
func (r Rule) optFloat(rec any) *float64 {
	d, ok := r.decimal(rec)
	if !ok {
		return nil
	}
	f, _ := d.Float64()
	return &f
}

// count returns the value truncated to an integer, or 0.
func (r Rule) count(rec any) int64 {
	d, _ := r.decimal(rec)
	return d.IntPart()
}

func (r Rule) truthy(rec any) bool {
	v, ok := r.first(rec)
	if !ok {
		return false
	}
	switch t := v.(type) {
	case bool:
		return t
	case string:
		return !strings.EqualFold(t, "false") && t != "0"
	case map[string]any:
		return true
	case []any:
		return len(t) > 0
	default:
		d, ok := asDecimal(v)
		return ok && !d.IsZero()
	}
}

func asString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(t)
	default:
		return ""
	}
}

func asDecimal(v any) (decimal.Decimal, bool) {
	switch t := v.(type) {
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(t))
		return d, err == nil
	case fmt.Stringer:
		d, err := decimal.NewFromString(t.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(t), true
	case int64:
		return decimal.NewFromInt(t), true
	case int:
		return decimal.NewFromInt(int64(t)), true
	default:
		return decimal.Zero, false
	}
}
