package tmdb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/cinerelay/internal/catalog"
)

func fixedClock() time.Time {
	return time.Date(2025, time.March, 14, 12, 0, 0, 0, time.UTC)
}

func TestListQueries(t *testing.T) {
	p := New(WithClock(fixedClock))

	tests := []struct {
		list         catalog.List
		path         string
		allowMissing bool
	}{
		{catalog.ListPopularNow, "/trending/all/day", false},
		{catalog.ListPopularMovies, "/movie/popular", false},
		{catalog.ListPopularSeries, "/tv/popular", false},
		{catalog.ListComingSoon, "/movie/upcoming", true},
	}

	for _, tt := range tests {
		t.Run(tt.list.String(), func(t *testing.T) {
			q := p.ListQuery(tt.list, 4)
			assert.Equal(t, tt.path, q.Path)
			assert.Equal(t, tt.allowMissing, q.AllowMissing)
			assert.Equal(t, "ru-RU", q.Params.Get("language"))
		})
	}
}

func TestUpcomingFallbackQuery(t *testing.T) {
	p := New(WithClock(fixedClock))

	q := p.UpcomingFallbackQuery(4)
	assert.Equal(t, "/discover/movie", q.Path)
	assert.False(t, q.AllowMissing)
	assert.Equal(t, "2025-03-14", q.Params.Get("primary_release_date.gte"))
	assert.Equal(t, "popularity.desc", q.Params.Get("sort_by"))
}

func TestSearchQuery(t *testing.T) {
	q := New().SearchQuery("Матрица", 10)

	assert.Equal(t, "/search/multi", q.Path)
	assert.Equal(t, "Матрица", q.Params.Get("query"))
	assert.Equal(t, "false", q.Params.Get("include_adult"))
	assert.Equal(t, "1", q.Params.Get("page"))
}

func TestGenreQueryYearFilters(t *testing.T) {
	p := New()

	single := p.GenreQuery("53", catalog.YearFilter{Start: 2020, End: 2020}, 20)
	assert.Equal(t, "/discover/movie", single.Path)
	assert.Equal(t, "53", single.Params.Get("with_genres"))
	assert.Equal(t, "2020", single.Params.Get("primary_release_year"))
	assert.Empty(t, single.Params.Get("primary_release_date.gte"))

	ranged := p.GenreQuery("53", catalog.YearFilter{Start: 2020, End: 2025}, 20)
	assert.Equal(t, "2020-01-01", ranged.Params.Get("primary_release_date.gte"))
	assert.Equal(t, "2025-12-31", ranged.Params.Get("primary_release_date.lte"))
	assert.Empty(t, ranged.Params.Get("primary_release_year"))

	none := p.GenreQuery("53", catalog.YearFilter{}, 20)
	assert.Empty(t, none.Params.Get("primary_release_year"))
	assert.Empty(t, none.Params.Get("primary_release_date.gte"))
}

func TestGenreLookupRoundTrip(t *testing.T) {
	p := New()
	year, err := catalog.ParseYearFilter("2020-2025")
	require.NoError(t, err)

	upper, ok := p.Genres().Lookup("Триллер")
	require.True(t, ok)
	lower, ok := p.Genres().Lookup("  триллер ")
	require.True(t, ok)

	assert.Equal(t, p.GenreQuery(upper, year, 20), p.GenreQuery(lower, year, 20))
}

func TestGenreTable(t *testing.T) {
	genres := New().Genres()

	assert.Equal(t, 11, genres.Len())
	assert.Equal(t, "Боевик", genres.Names()[0])

	id, ok := genres.Lookup("фантастика")
	require.True(t, ok)
	assert.Equal(t, catalog.GenreID("878"), id)

	_, ok = genres.Lookup("несуществующий жанр")
	assert.False(t, ok)
}

func TestDetailsQuery(t *testing.T) {
	p := New(WithLanguage(""))

	movie := p.DetailsQuery(603, catalog.KindMovie)
	assert.Equal(t, "/movie/603", movie.Path)
	assert.False(t, movie.Params.Has("language"))

	series := p.DetailsQuery(1399, catalog.KindTV)
	assert.Equal(t, "/tv/1399", series.Path)
}

func TestCredential(t *testing.T) {
	assert.True(t, Credential("key").Configured())
	assert.False(t, Credential("").Configured())
}
