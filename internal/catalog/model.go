// Package catalog defines the canonical movie model served to the frontend and
// the strategy interfaces each upstream catalog provider implements.
package catalog

import "net/url"

// MediaKind discriminates movie records from series records.
type MediaKind string

const (
	KindMovie MediaKind = "movie"
	KindTV    MediaKind = "tv"
)

// ParseMediaKind maps a request value to a MediaKind. Anything other than
// "tv" (or "series") is a movie.
func ParseMediaKind(s string) MediaKind {
	switch s {
	case "tv", "series":
		return KindTV
	default:
		return KindMovie
	}
}

// MovieSummary is the provider-independent list entry returned to the frontend.
// Nil pointers serialise as JSON null.
type MovieSummary struct {
	ID              int     `json:"id"`
	Name            *string `json:"name"`
	AlternativeName *string `json:"alternativeName"`
	Year            *int    `json:"year"`
	Votes           int     `json:"votes"`
	Poster          *string `json:"poster"`
}

// Details is the upstream full record passed through unmodified, apart from the
// injected poster_url and view_link fields.
type Details map[string]any

// List names a curated home-page list.
type List int

const (
	ListPopularNow List = iota
	ListPopularMovies
	ListPopularSeries
	ListComingSoon
)

func (l List) String() string {
	switch l {
	case ListPopularNow:
		return "popular_now"
	case ListPopularMovies:
		return "popular_movies"
	case ListPopularSeries:
		return "popular_series"
	case ListComingSoon:
		return "coming_soon"
	default:
		return "unknown"
	}
}

// Kind returns the fixed media kind of a list, or "" when the list mixes kinds.
func (l List) Kind() MediaKind {
	switch l {
	case ListPopularMovies, ListComingSoon:
		return KindMovie
	case ListPopularSeries:
		return KindTV
	default:
		return ""
	}
}

// Query is a provider-specific upstream request: a path relative to the API
// base URL plus query parameters.
type Query struct {
	Path         string
	Params       url.Values
	AllowMissing bool
}

func strPtr(s string) *string {
	return &s
}

func intPtr(i int) *int {
	return &i
}
