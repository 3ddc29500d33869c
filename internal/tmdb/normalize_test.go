package tmdb

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/cinerelay/internal/catalog"
)

func TestSummaryMovie(t *testing.T) {
	p := New()
	raw := map[string]any{
		"id":             float64(603),
		"title":          "Матрица",
		"original_title": "The Matrix",
		"release_date":   "1999-03-30",
		"vote_count":     float64(25000),
		"poster_path":    "/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg",
	}

	got, ok := p.Summary(raw, catalog.KindMovie)
	require.True(t, ok)
	assert.Equal(t, 603, got.ID)
	assert.Equal(t, "Матрица", *got.Name)
	assert.Equal(t, "The Matrix", *got.AlternativeName)
	assert.Equal(t, 1999, *got.Year)
	assert.Equal(t, 25000, got.Votes)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/f89U3ADr1oiB1s9GkdPOEpXUk5H.jpg", *got.Poster)
}

func TestSummaryTVReadsSeriesFields(t *testing.T) {
	p := New(WithImageBaseURL("https://img.example/w300/"))
	raw := map[string]any{
		"id":             float64(1399),
		"title":          "ignored",
		"original_name":  "Game of Thrones",
		"first_air_date": "2011-04-17",
		"poster_path":    "u3bZgnGQ9T01sWNhyveQz0wH0Hl.jpg",
	}

	got, ok := p.Summary(raw, catalog.KindTV)
	require.True(t, ok)
	assert.Equal(t, "Game of Thrones", *got.Name)
	assert.Equal(t, "Game of Thrones", *got.AlternativeName)
	assert.Equal(t, 2011, *got.Year)
	assert.Equal(t, 0, got.Votes)
	assert.Equal(t, "https://img.example/w300/u3bZgnGQ9T01sWNhyveQz0wH0Hl.jpg", *got.Poster)
}

func TestSummaryMissingFields(t *testing.T) {
	p := New()

	got, ok := p.Summary(map[string]any{"id": float64(7), "release_date": "19", "poster_path": "  "}, catalog.KindMovie)
	require.True(t, ok)
	assert.Nil(t, got.Name)
	assert.Nil(t, got.AlternativeName)
	assert.Nil(t, got.Year)
	assert.Nil(t, got.Poster)
	assert.Zero(t, got.Votes)

	_, ok = p.Summary(map[string]any{"title": "no id"}, catalog.KindMovie)
	assert.False(t, ok)
	_, ok = p.Summary("junk", catalog.KindMovie)
	assert.False(t, ok)
}

func TestKind(t *testing.T) {
	p := New()

	kind, ok := p.Kind(map[string]any{"media_type": "tv"})
	assert.True(t, ok)
	assert.Equal(t, catalog.KindTV, kind)

	_, ok = p.Kind(map[string]any{"media_type": "person"})
	assert.False(t, ok)
	_, ok = p.Kind(nil)
	assert.False(t, ok)
}

func TestTrendingNormalizesMixedKinds(t *testing.T) {
	p := New()
	payload := map[string]any{
		"results": []any{
			map[string]any{"id": float64(1), "media_type": "movie", "title": "Фильм", "release_date": "2024-01-01"},
			map[string]any{"id": float64(2), "media_type": "person", "name": "Актёр"},
			map[string]any{"id": float64(3), "media_type": "tv", "name": "Сериал", "first_air_date": "2023-05-05"},
		},
	}

	got := catalog.NormalizeMixed(p, p.Records(payload), 12)
	require.Len(t, got, 2)
	assert.Equal(t, "Фильм", *got[0].Name)
	assert.Equal(t, "Сериал", *got[1].Name)
	assert.Equal(t, 2023, *got[1].Year)
}

func TestPosterRef(t *testing.T) {
	p := New()

	details := catalog.Details{"poster_path": "/abc.jpg"}
	ref := p.PosterRef(details)
	assert.Equal(t, "/abc.jpg", ref)

	resolved, ok := p.PosterURL(ref)
	assert.True(t, ok)
	assert.Equal(t, "https://image.tmdb.org/t/p/w500/abc.jpg", resolved)

	_, ok = p.PosterURL("")
	assert.False(t, ok)
}
