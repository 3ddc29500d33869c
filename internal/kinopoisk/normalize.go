package kinopoisk

import (
	"github.com/lepinkainen/cinerelay/internal/catalog"
)

func (p *Provider) Records(payload map[string]any) []any {
	return catalog.Records(payload, "docs")
}

// Kind prefers the type field and falls back to the isSeries flag.
func (p *Provider) Kind(raw any) (catalog.MediaKind, bool) {
	obj, ok := catalog.Object(raw)
	if !ok {
		return "", false
	}
	switch obj["type"] {
	case "movie", "cartoon":
		return catalog.KindMovie, true
	case "tv-series", "animated-series", "anime":
		return catalog.KindTV, true
	}
	if isSeries, ok := obj["isSeries"].(bool); ok {
		if isSeries {
			return catalog.KindTV, true
		}
		return catalog.KindMovie, true
	}
	return "", false
}

// Summary ignores kind: kinopoisk uses the same field names for movies and series.
func (p *Provider) Summary(raw any, _ catalog.MediaKind) (catalog.MovieSummary, bool) {
	obj, ok := catalog.Object(raw)
	if !ok {
		return catalog.MovieSummary{}, false
	}
	id, ok := catalog.GetInt(obj, "id")
	if !ok {
		return catalog.MovieSummary{}, false
	}

	votes, _ := catalog.GetInt(catalog.Nested(obj, "votes"), "kp")

	return catalog.MovieSummary{
		ID:              id,
		Name:            catalog.FirstString(obj, "name", "alternativeName", "enName"),
		AlternativeName: catalog.FirstString(obj, "alternativeName", "enName"),
		Year:            year(obj),
		Votes:           votes,
		Poster:          catalog.OptionalString(catalog.ResolvePoster(p.imageBaseURL, posterRef(obj))),
	}, true
}

func (p *Provider) PosterRef(details catalog.Details) string {
	return posterRef(details)
}

func (p *Provider) PosterURL(ref string) (string, bool) {
	resolved := catalog.ResolvePoster(p.imageBaseURL, ref)
	return resolved, resolved != ""
}

func year(obj map[string]any) *int {
	if y, ok := catalog.GetInt(obj, "year"); ok {
		if parsed := catalog.OptionalYear(y); parsed != nil {
			return parsed
		}
	}
	premiere, _ := catalog.GetString(catalog.Nested(obj, "premiere"), "world")
	return catalog.ParseYear(premiere)
}

func posterRef(obj map[string]any) string {
	poster := catalog.Nested(obj, "poster")
	if ref, ok := catalog.GetString(poster, "url"); ok {
		return ref
	}
	ref, _ := catalog.GetString(poster, "previewUrl")
	return ref
}
