// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// asString converts a scalar JSON value to a string. Integral numbers are
// formatted without a fractional part. Objects, arrays and null yield "".
func asString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return strconv.FormatInt(i, 10)
		}
		if f, err := val.Float64(); err == nil {
			return formatFloat(f)
		}
		return val.String()
	case float64:
		return formatFloat(val)
	case float32:
		return formatFloat(float64(val))
	case int:
		return strconv.Itoa(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case bool:
		return strconv.FormatBool(val)
	default:
		return ""
	}
}

func formatFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return ""
	}
	if f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// asNumber coerces a JSON number or numeric string. ok is false for
// anything that is not a finite number.
func asNumber(v any) (float64, bool) {
	var f float64
	switch val := v.(type) {
	case json.Number:
		parsed, err := val.Float64()
		if err != nil {
			return 0, false
		}
		f = parsed
	case float64:
		f = val
	case float32:
		f = float64(val)
	case int:
		f = float64(val)
	case int64:
		f = float64(val)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(val), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// positive returns a pointer to the coerced value when it is strictly
// positive, and nil otherwise.
func positive(v any) *float64 {
	f, ok := asNumber(v)
	if !ok || f <= 0 {
		return nil
	}
	return &f
}

// firstString returns the first non-empty string among keys.
func firstString(raw map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := asString(raw[k]); s != "" {
			return s
		}
	}
	return ""
}

// stringField returns raw[key] when it is a string.
func stringField(raw map[string]any, key string) string {
	s, _ := raw[key].(string)
	return s
}

// firstPresent returns the value of the first key that is present and not
// null.
func firstPresent(raw map[string]any, keys ...string) any {
	for _, k := range keys {
		if v, ok := raw[k]; ok && v != nil {
			return v
		}
	}
	return nil
}

// firstPositive returns the first value among keys that coerces to a
// strictly positive number.
func firstPositive(raw map[string]any, keys ...string) *float64 {
	for _, k := range keys {
		if p := positive(raw[k]); p != nil {
			return p
		}
	}
	return nil
}
