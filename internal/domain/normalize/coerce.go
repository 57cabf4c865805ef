package normalize

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// truncate bounds s to max bytes. The result is always a prefix of s; the
// cut backs off to a rune boundary so the output stays valid UTF-8.
func truncate(s string, max int) string {
	if max <= 0 || len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}

// stringField coerces an arbitrary JSON value to a bounded string.
// Numbers and bools are formatted, nil becomes "".
func stringField(v any, max int) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return truncate(t, max)
	case float64:
		if t == math.Trunc(t) && math.Abs(t) < 1e15 {
			return truncate(strconv.FormatInt(int64(t), 10), max)
		}
		return truncate(strconv.FormatFloat(t, 'g', -1, 64), max)
	case bool:
		return truncate(strconv.FormatBool(t), max)
	default:
		return truncate(fmt.Sprintf("%v", t), max)
	}
}

// intField coerces an arbitrary JSON value to an int. Absent values and
// failed coercions yield 0; the finding itself is never dropped over a bad
// line number. Negative values are passed through as reported.
func intField(v any) int {
	switch t := v.(type) {
	case float64:
		return int(t)
	case int:
		return t
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(t))
		if err != nil {
			return 0
		}
		return n
	default:
		return 0
	}
}

// firstNonEmpty returns the first key in keys whose coerced string value is
// non-empty, truncated to max. Emptiness is decided on the raw value, so a
// whitespace-only candidate still wins over later keys.
func firstNonEmpty(issue map[string]any, keys []string, max int) string {
	for _, k := range keys {
		if s := stringField(issue[k], 0); s != "" {
			return truncate(s, max)
		}
	}
	return ""
}
