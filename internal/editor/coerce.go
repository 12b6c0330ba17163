package editor

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// Num coerces arbitrary form input to a finite number. Anything that
// does not parse — or parses to NaN/Inf — becomes 0; coercion never
// rejects.
func Num(v any) float64 {
	var n float64
	switch t := v.(type) {
	case nil:
		return 0
	case float64:
		n = t
	case float32:
		n = float64(t)
	case int:
		n = float64(t)
	case int32:
		n = float64(t)
	case int64:
		n = float64(t)
	case json.Number:
		parsed, err := t.Float64()
		if err != nil {
			return 0
		}
		n = parsed
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return 0
		}
		parsed, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return 0
		}
		n = parsed
	default:
		return 0
	}
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return 0
	}
	return n
}

// Int coerces like Num and truncates to an integer (stock counts).
func Int(v any) int64 {
	return int64(Num(v))
}

// Str coerces form input to a trimmed string.
func Str(v any) string {
	s, _ := v.(string)
	return strings.TrimSpace(s)
}
