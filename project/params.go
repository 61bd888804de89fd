package project

import (
	"encoding/json"
	"fmt"
	"math"
)

// Params is the free-form parameter mapping of a condition or action. JSON
// decodes numbers as float64 and YAML as int, so readers go through the typed
// accessors below instead of asserting directly.
type Params map[string]any

// Number returns the numeric parameter key. A missing key yields def. A key
// holding something that is not a number reports ok=false so the caller can
// treat the rule as malformed.
func (p Params) Number(key string, def float64) (float64, bool) {
	raw, present := p[key]
	if !present || raw == nil {
		return def, true
	}
	return toFloat(raw)
}

// Int is Number truncated toward zero.
func (p Params) Int(key string, def int) (int, bool) {
	v, ok := p.Number(key, float64(def))
	if !ok || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	return int(v), true
}

// String returns the parameter as text; numbers are formatted.
func (p Params) String(key, def string) string {
	raw, present := p[key]
	if !present || raw == nil {
		return def
	}
	switch v := raw.(type) {
	case string:
		return v
	default:
		return fmt.Sprint(v)
	}
}

// Has reports whether key was authored.
func (p Params) Has(key string) bool {
	_, ok := p[key]
	return ok
}

func toFloat(raw any) (float64, bool) {
	switch v := raw.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case uint:
		return float64(v), true
	case uint8:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case json.Number:
		f, err := v.Float64()
		return f, err == nil
	default:
		return 0, false
	}
}
