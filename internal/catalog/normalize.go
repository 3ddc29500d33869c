package catalog

import (
	"encoding/json"
	"iter"
	"slices"
	"strconv"
	"strings"
)

// NormalizeList converts records of a single media kind, keeping upstream
// order and dropping records the normalizer rejects.
func NormalizeList(n Normalizer, records []any, kind MediaKind, limit int) []MovieSummary {
	seq := FilterMap(slices.Values(records), func(raw any) (MovieSummary, bool) {
		return n.Summary(raw, kind)
	})
	return collect(Take(seq, limit))
}

// NormalizeMixed converts records whose media kind is read per record,
// skipping records that are neither movies nor series.
func NormalizeMixed(n Normalizer, records []any, limit int) []MovieSummary {
	seq := FilterMap(slices.Values(records), func(raw any) (MovieSummary, bool) {
		kind, ok := n.Kind(raw)
		if !ok {
			return MovieSummary{}, false
		}
		return n.Summary(raw, kind)
	})
	return collect(Take(seq, limit))
}

func collect(seq iter.Seq[MovieSummary]) []MovieSummary {
	out := make([]MovieSummary, 0)
	for v := range seq {
		out = append(out, v)
	}
	return out
}

// Records returns the []any stored under key, or nil.
func Records(payload map[string]any, key string) []any {
	items, _ := payload[key].([]any)
	return items
}

// Object returns raw as a JSON object.
func Object(raw any) (map[string]any, bool) {
	switch v := raw.(type) {
	case map[string]any:
		return v, true
	case Details:
		return v, true
	default:
		return nil, false
	}
}

// GetInt reads a JSON number stored under key.
func GetInt(m map[string]any, key string) (int, bool) {
	val, ok := m[key]
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return int(v), true
	case int:
		return v, true
	case json.Number:
		i, err := strconv.Atoi(v.String())
		if err != nil {
			return 0, false
		}
		return i, true
	default:
		return 0, false
	}
}

// GetString reads a non-blank string stored under key.
func GetString(m map[string]any, key string) (string, bool) {
	s, ok := m[key].(string)
	if !ok || strings.TrimSpace(s) == "" {
		return "", false
	}
	return s, true
}

// FirstString returns the first non-blank string among keys, or nil.
func FirstString(m map[string]any, keys ...string) *string {
	for _, key := range keys {
		if s, ok := GetString(m, key); ok {
			return strPtr(s)
		}
	}
	return nil
}

// Nested returns the object stored under key.
func Nested(m map[string]any, key string) map[string]any {
	obj, _ := m[key].(map[string]any)
	return obj
}

// OptionalString converts "" to nil.
func OptionalString(s string) *string {
	if s == "" {
		return nil
	}
	return strPtr(s)
}

// OptionalYear accepts a numeric year only when it has four digits.
func OptionalYear(year int) *int {
	if year < 1000 || year > 9999 {
		return nil
	}
	return intPtr(year)
}
