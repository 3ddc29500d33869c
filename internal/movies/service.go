// Package movies combines the catalog provider strategies and the upstream
// client into one operation per public endpoint.
package movies

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

const (
	PopularNowLimit  = 12
	PopularListLimit = 4
	ComingSoonLimit  = 4
	TextSearchLimit  = 10
	GenreSearchLimit = 20
	BroadQueryLimit  = 50
)

// Fetcher issues upstream requests. *upstream.Client implements it.
type Fetcher interface {
	Fetch(ctx context.Context, path string, params url.Values, allowMissing bool) (map[string]any, error)
	HasCredential() bool
}

// ListResponse is the body of every list-shaped endpoint.
type ListResponse struct {
	Results []catalog.MovieSummary `json:"results"`
	Detail  string                 `json:"detail,omitempty"`
}

// GenreResponse is the body of the genre search endpoint.
type GenreResponse struct {
	ResultsCount int                    `json:"results_count"`
	Results      []catalog.MovieSummary `json:"results"`
	Detail       string                 `json:"detail,omitempty"`
}

// Service implements the public operations for one catalog provider.
type Service struct {
	provider       catalog.Provider
	fetcher        Fetcher
	storageBaseURL string
}

// NewService creates a Service. storageBaseURL prefixes watch links.
func NewService(provider catalog.Provider, fetcher Fetcher, storageBaseURL string) *Service {
	return &Service{
		provider:       provider,
		fetcher:        fetcher,
		storageBaseURL: storageBaseURL,
	}
}

// Provider returns the active catalog provider.
func (s *Service) Provider() catalog.Provider {
	return s.provider
}

// PopularNow returns the trending list, mixing movies and series.
func (s *Service) PopularNow(ctx context.Context) (ListResponse, error) {
	if resp, degraded := s.degraded(); degraded {
		return resp, nil
	}

	payload, err := s.fetch(ctx, s.provider.ListQuery(catalog.ListPopularNow, PopularNowLimit))
	if err != nil {
		return s.softList(EndpointPopularNow, err)
	}
	return ListResponse{Results: catalog.NormalizeMixed(s.provider, s.provider.Records(payload), PopularNowLimit)}, nil
}

// PopularMovies returns the most popular movies.
func (s *Service) PopularMovies(ctx context.Context) (ListResponse, error) {
	return s.popularByKind(ctx, catalog.ListPopularMovies, EndpointPopularMovies)
}

// PopularSeries returns the most popular series.
func (s *Service) PopularSeries(ctx context.Context) (ListResponse, error) {
	return s.popularByKind(ctx, catalog.ListPopularSeries, EndpointPopularSeries)
}

// popularByKind backfills a short kind-filtered list from the broad popularity
// query, filtered locally by kind.
func (s *Service) popularByKind(ctx context.Context, list catalog.List, endpoint Endpoint) (ListResponse, error) {
	if resp, degraded := s.degraded(); degraded {
		return resp, nil
	}

	kind := list.Kind()
	payload, err := s.fetch(ctx, s.provider.ListQuery(list, PopularListLimit))
	if err != nil {
		return s.softList(endpoint, err)
	}
	results := catalog.NormalizeList(s.provider, s.provider.Records(payload), kind, PopularListLimit)
	if len(results) >= PopularListLimit {
		return ListResponse{Results: results}, nil
	}

	broad, err := s.fetch(ctx, s.provider.BroadQuery(BroadQueryLimit))
	if err != nil {
		slog.Warn("Backfill query failed, returning primary results",
			"list", list.String(), "results", len(results), "error", err)
		return ListResponse{Results: results}, nil
	}

	seen := make(map[int]bool, len(results))
	for _, item := range results {
		seen[item.ID] = true
	}
	backfill := catalog.FilterMap(slices.Values(s.provider.Records(broad)), func(raw any) (catalog.MovieSummary, bool) {
		if rawKind, ok := s.provider.Kind(raw); !ok || rawKind != kind {
			return catalog.MovieSummary{}, false
		}
		item, ok := s.provider.Summary(raw, kind)
		if !ok || seen[item.ID] {
			return catalog.MovieSummary{}, false
		}
		seen[item.ID] = true
		return item, true
	})
	for item := range catalog.Take(backfill, PopularListLimit-len(results)) {
		results = append(results, item)
	}
	return ListResponse{Results: results}, nil
}

// ComingSoon returns upcoming movie releases. When the upcoming endpoint
// reports not found, a release-date discovery query is used instead.
func (s *Service) ComingSoon(ctx context.Context) (ListResponse, error) {
	if resp, degraded := s.degraded(); degraded {
		return resp, nil
	}

	payload, err := s.fetch(ctx, s.provider.ListQuery(catalog.ListComingSoon, ComingSoonLimit))
	if err != nil {
		return s.softList(EndpointComingSoon, err)
	}
	if len(payload) == 0 {
		slog.Debug("Upcoming releases not found, using discovery fallback", "provider", s.provider.Name())
		payload, err = s.fetch(ctx, s.provider.UpcomingFallbackQuery(ComingSoonLimit))
		if err != nil {
			return s.softList(EndpointComingSoon, err)
		}
	}
	return ListResponse{Results: catalog.NormalizeList(s.provider, s.provider.Records(payload), catalog.KindMovie, ComingSoonLimit)}, nil
}

// SearchByText searches movies and series by title. Records of other kinds
// are skipped and iteration stops at the cap. Length validation belongs to
// the caller; blank text yields no results without an upstream call.
func (s *Service) SearchByText(ctx context.Context, text string) (ListResponse, error) {
	if resp, degraded := s.degraded(); degraded {
		return resp, nil
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return ListResponse{Results: []catalog.MovieSummary{}}, nil
	}

	payload, err := s.fetch(ctx, s.provider.SearchQuery(text, TextSearchLimit))
	if err != nil {
		return s.softList(EndpointSearchText, err)
	}
	return ListResponse{Results: catalog.NormalizeMixed(s.provider, s.provider.Records(payload), TextSearchLimit)}, nil
}

// SearchByGenre searches movies by genre display name and optional year
// filter. Unknown genres yield an empty result without an upstream call.
func (s *Service) SearchByGenre(ctx context.Context, genreName string, year catalog.YearFilter) (GenreResponse, error) {
	if resp, degraded := s.degraded(); degraded {
		return GenreResponse{Results: resp.Results, Detail: resp.Detail}, nil
	}

	genre, ok := s.provider.Genres().Lookup(genreName)
	if !ok {
		slog.Debug("Unknown genre", "genre", genreName)
		return GenreResponse{Results: []catalog.MovieSummary{}}, nil
	}

	payload, err := s.fetch(ctx, s.provider.GenreQuery(genre, year, GenreSearchLimit))
	if err != nil {
		resp, err := s.softList(EndpointSearchGenre, err)
		return GenreResponse{Results: resp.Results, Detail: resp.Detail}, err
	}
	results := catalog.NormalizeList(s.provider, s.provider.Records(payload), catalog.KindMovie, GenreSearchLimit)
	return GenreResponse{ResultsCount: len(results), Results: results}, nil
}

// Details returns the full upstream record with poster_url injected.
func (s *Service) Details(ctx context.Context, id int, kind catalog.MediaKind) (catalog.Details, error) {
	return s.details(ctx, EndpointDetails, id, kind)
}

// Watch returns Details plus the view_link into film storage.
func (s *Service) Watch(ctx context.Context, id int, kind catalog.MediaKind) (catalog.Details, error) {
	details, err := s.details(ctx, EndpointWatch, id, kind)
	if err != nil {
		return nil, err
	}
	details["view_link"] = s.ViewLink(id)
	return details, nil
}

// ViewLink returns the watch link for id.
func (s *Service) ViewLink(id int) string {
	return s.storageBaseURL + strconv.Itoa(id)
}

// Genres returns the display genre names in picker order.
func (s *Service) Genres() []string {
	return s.provider.Genres().Names()
}

func (s *Service) details(ctx context.Context, endpoint Endpoint, id int, kind catalog.MediaKind) (catalog.Details, error) {
	if !s.fetcher.HasCredential() {
		return nil, apperrors.NewCredentialMissingError(s.provider.Name())
	}

	payload, err := s.fetch(ctx, s.provider.DetailsQuery(id, kind))
	if err != nil {
		if Resolve(endpoint, err) == OutcomeNotFound {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("%s %d", kind, id), err)
		}
		return nil, err
	}

	details := catalog.Details(payload)
	if ref := s.provider.PosterRef(details); ref != "" {
		if posterURL, ok := s.provider.PosterURL(ref); ok {
			details["poster_url"] = posterURL
		}
	}
	return details, nil
}

func (s *Service) fetch(ctx context.Context, q catalog.Query) (map[string]any, error) {
	return s.fetcher.Fetch(ctx, q.Path, q.Params, q.AllowMissing)
}

// degraded short-circuits every list operation when no credential is configured.
func (s *Service) degraded() (ListResponse, bool) {
	if s.fetcher.HasCredential() {
		return ListResponse{}, false
	}
	return ListResponse{
		Results: []catalog.MovieSummary{},
		Detail:  apperrors.NewCredentialMissingError(s.provider.Name()).Error(),
	}, true
}

func (s *Service) softList(endpoint Endpoint, err error) (ListResponse, error) {
	if Resolve(endpoint, err) != OutcomeSoftEmpty {
		return ListResponse{}, err
	}
	slog.Warn("Upstream failure softened to empty results", "endpoint", string(endpoint), "error", err)
	return ListResponse{Results: []catalog.MovieSummary{}, Detail: err.Error()}, nil
}
