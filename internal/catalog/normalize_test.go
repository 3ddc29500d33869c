package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// kindNormalizer reads "kind" and "id" only; enough to exercise the list helpers.
type kindNormalizer struct{}

func (kindNormalizer) Records(payload map[string]any) []any { return Records(payload, "items") }

func (kindNormalizer) Kind(raw any) (MediaKind, bool) {
	obj, ok := Object(raw)
	if !ok {
		return "", false
	}
	switch obj["kind"] {
	case "movie":
		return KindMovie, true
	case "tv":
		return KindTV, true
	default:
		return "", false
	}
}

func (kindNormalizer) Summary(raw any, _ MediaKind) (MovieSummary, bool) {
	obj, ok := Object(raw)
	if !ok {
		return MovieSummary{}, false
	}
	id, ok := GetInt(obj, "id")
	if !ok {
		return MovieSummary{}, false
	}
	return MovieSummary{ID: id}, true
}

func (kindNormalizer) PosterRef(Details) string           { return "" }
func (kindNormalizer) PosterURL(ref string) (string, bool) { return ref, ref != "" }

func ids(items []MovieSummary) []int {
	out := make([]int, len(items))
	for i, item := range items {
		out[i] = item.ID
	}
	return out
}

func TestNormalizeListDropsMalformed(t *testing.T) {
	records := []any{
		map[string]any{"id": float64(1)},
		"not an object",
		nil,
		map[string]any{"title": "no id"},
		map[string]any{"id": float64(2)},
	}

	got := NormalizeList(kindNormalizer{}, records, KindMovie, 10)
	assert.Equal(t, []int{1, 2}, ids(got))
}

func TestNormalizeListNeverNil(t *testing.T) {
	got := NormalizeList(kindNormalizer{}, nil, KindMovie, 10)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNormalizeMixedSkipsOtherKinds(t *testing.T) {
	records := []any{
		map[string]any{"id": float64(1), "kind": "person"},
		map[string]any{"id": float64(2), "kind": "movie"},
		map[string]any{"id": float64(3), "kind": "tv"},
		map[string]any{"id": float64(4), "kind": "movie"},
	}

	assert.Equal(t, []int{2, 3}, ids(NormalizeMixed(kindNormalizer{}, records, 2)))
}

func TestMapHelpers(t *testing.T) {
	m := map[string]any{
		"n":     float64(7),
		"s":     "value",
		"blank": "  ",
		"obj":   map[string]any{"k": "v"},
	}

	n, ok := GetInt(m, "n")
	assert.True(t, ok)
	assert.Equal(t, 7, n)

	_, ok = GetInt(m, "s")
	assert.False(t, ok)

	_, ok = GetString(m, "blank")
	assert.False(t, ok)

	assert.Equal(t, "value", *FirstString(m, "missing", "blank", "s"))
	assert.Nil(t, FirstString(m, "missing", "blank"))
	assert.Equal(t, "v", Nested(m, "obj")["k"])
	assert.Nil(t, Nested(m, "s"))
	assert.Nil(t, OptionalString(""))
	assert.Nil(t, OptionalYear(0))
	assert.Equal(t, 2001, *OptionalYear(2001))
}

func TestListKinds(t *testing.T) {
	assert.Equal(t, KindMovie, ListPopularMovies.Kind())
	assert.Equal(t, KindTV, ListPopularSeries.Kind())
	assert.Equal(t, MediaKind(""), ListPopularNow.Kind())
	assert.Equal(t, "coming_soon", ListComingSoon.String())
	assert.Equal(t, KindTV, ParseMediaKind("tv"))
	assert.Equal(t, KindMovie, ParseMediaKind(""))
}
