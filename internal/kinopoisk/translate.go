package kinopoisk

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/lepinkainen/cinerelay/internal/catalog"
)

const (
	moviePath  = "/v1.4/movie"
	searchPath = "/v1.4/movie/search"

	// premiere.world ranges use dd.mm.yyyy dates.
	premiereLayout = "02.01.2006"
)

func (p *Provider) ListQuery(list catalog.List, limit int) catalog.Query {
	params := listParams(limit, "votes.kp")
	year := p.now().Year()

	switch list {
	case catalog.ListPopularMovies:
		params.Set("type", "movie")
	case catalog.ListPopularSeries:
		params.Set("type", "tv-series")
	case catalog.ListComingSoon:
		params = listParams(limit, "votes.await")
		params.Set("type", "movie")
		params.Set("year", fmt.Sprintf("%d-%d", year, year+1))
		return catalog.Query{Path: moviePath, Params: params, AllowMissing: true}
	default:
		params.Set("year", strconv.Itoa(year))
	}
	return catalog.Query{Path: moviePath, Params: params}
}

func (p *Provider) BroadQuery(limit int) catalog.Query {
	return catalog.Query{Path: moviePath, Params: listParams(limit, "votes.kp")}
}

func (p *Provider) UpcomingFallbackQuery(limit int) catalog.Query {
	today := p.now()
	params := listParams(limit, "votes.kp")
	params.Set("type", "movie")
	params.Set("premiere.world", today.Format(premiereLayout)+"-"+today.AddDate(1, 0, 0).Format(premiereLayout))
	return catalog.Query{Path: moviePath, Params: params}
}

func (p *Provider) SearchQuery(text string, limit int) catalog.Query {
	params := url.Values{}
	params.Set("query", text)
	params.Set("page", "1")
	params.Set("limit", strconv.Itoa(limit))
	return catalog.Query{Path: searchPath, Params: params}
}

func (p *Provider) GenreQuery(genre catalog.GenreID, year catalog.YearFilter, limit int) catalog.Query {
	params := listParams(limit, "votes.kp")
	params.Set("genres.name", string(genre))
	if !year.IsZero() {
		params.Set("year", year.String())
	}
	return catalog.Query{Path: moviePath, Params: params}
}

// DetailsQuery ignores kind: kinopoisk ids are unique across movies and series.
func (p *Provider) DetailsQuery(id int, _ catalog.MediaKind) catalog.Query {
	return catalog.Query{Path: fmt.Sprintf("%s/%d", moviePath, id), Params: url.Values{}}
}

func listParams(limit int, sortField string) url.Values {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(limit))
	params.Set("page", "1")
	params.Set("sortField", sortField)
	params.Set("sortType", "-1")
	params.Set("notNullFields", "poster.url")
	return params
}
