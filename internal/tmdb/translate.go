package tmdb

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/lepinkainen/cinerelay/internal/catalog"
)

const dateLayout = "2006-01-02"

// TMDB pages are fixed at 20 records, so limits are applied after normalization.

func (p *Provider) ListQuery(list catalog.List, _ int) catalog.Query {
	switch list {
	case catalog.ListPopularMovies:
		return p.query("/movie/popular", p.firstPage())
	case catalog.ListPopularSeries:
		return p.query("/tv/popular", p.firstPage())
	case catalog.ListComingSoon:
		q := p.query("/movie/upcoming", p.firstPage())
		q.AllowMissing = true
		return q
	default:
		return p.query("/trending/all/day", nil)
	}
}

func (p *Provider) BroadQuery(_ int) catalog.Query {
	return p.query("/trending/all/week", nil)
}

func (p *Provider) UpcomingFallbackQuery(_ int) catalog.Query {
	params := p.firstPage()
	params.Set("primary_release_date.gte", p.now().Format(dateLayout))
	params.Set("sort_by", "popularity.desc")
	return p.query("/discover/movie", params)
}

func (p *Provider) SearchQuery(text string, _ int) catalog.Query {
	params := p.firstPage()
	params.Set("query", text)
	params.Set("include_adult", "false")
	return p.query("/search/multi", params)
}

func (p *Provider) GenreQuery(genre catalog.GenreID, year catalog.YearFilter, _ int) catalog.Query {
	params := p.firstPage()
	params.Set("with_genres", string(genre))
	params.Set("sort_by", "popularity.desc")
	switch {
	case year.IsZero():
	case year.IsRange():
		params.Set("primary_release_date.gte", fmt.Sprintf("%04d-01-01", year.Start))
		params.Set("primary_release_date.lte", fmt.Sprintf("%04d-12-31", year.End))
	default:
		params.Set("primary_release_year", strconv.Itoa(year.Start))
	}
	return p.query("/discover/movie", params)
}

func (p *Provider) DetailsQuery(id int, kind catalog.MediaKind) catalog.Query {
	if kind == catalog.KindTV {
		return p.query(fmt.Sprintf("/tv/%d", id), nil)
	}
	return p.query(fmt.Sprintf("/movie/%d", id), nil)
}

func (p *Provider) firstPage() url.Values {
	params := url.Values{}
	params.Set("page", "1")
	return params
}

// query attaches the language parameter shared by every TMDB call.
func (p *Provider) query(path string, params url.Values) catalog.Query {
	if params == nil {
		params = url.Values{}
	}
	if p.language != "" {
		params.Set("language", p.language)
	}
	return catalog.Query{Path: path, Params: params}
}
