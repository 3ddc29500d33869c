package tmdb

import (
	"github.com/lepinkainen/cinerelay/internal/catalog"
)

func (p *Provider) Records(payload map[string]any) []any {
	return catalog.Records(payload, "results")
}

// Kind reads the media_type discriminator of trending and multi-search records.
func (p *Provider) Kind(raw any) (catalog.MediaKind, bool) {
	obj, ok := catalog.Object(raw)
	if !ok {
		return "", false
	}
	switch obj["media_type"] {
	case "movie":
		return catalog.KindMovie, true
	case "tv":
		return catalog.KindTV, true
	default:
		return "", false
	}
}

func (p *Provider) Summary(raw any, kind catalog.MediaKind) (catalog.MovieSummary, bool) {
	obj, ok := catalog.Object(raw)
	if !ok {
		return catalog.MovieSummary{}, false
	}
	id, ok := catalog.GetInt(obj, "id")
	if !ok {
		return catalog.MovieSummary{}, false
	}

	nameKey, originalKey, dateKey := "title", "original_title", "release_date"
	if kind == catalog.KindTV {
		nameKey, originalKey, dateKey = "name", "original_name", "first_air_date"
	}

	date, _ := catalog.GetString(obj, dateKey)
	votes, _ := catalog.GetInt(obj, "vote_count")
	poster, _ := catalog.GetString(obj, "poster_path")

	return catalog.MovieSummary{
		ID:              id,
		Name:            catalog.FirstString(obj, nameKey, originalKey),
		AlternativeName: catalog.FirstString(obj, originalKey),
		Year:            catalog.ParseYear(date),
		Votes:           votes,
		Poster:          catalog.OptionalString(catalog.ResolvePoster(p.imageBaseURL, poster)),
	}, true
}

func (p *Provider) PosterRef(details catalog.Details) string {
	ref, _ := catalog.GetString(details, "poster_path")
	return ref
}

func (p *Provider) PosterURL(ref string) (string, bool) {
	resolved := catalog.ResolvePoster(p.imageBaseURL, ref)
	return resolved, resolved != ""
}
