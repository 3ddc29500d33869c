package server

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
	"github.com/lepinkainen/cinerelay/internal/movies"
)

const minQueryLength = 2

var endpoints = []string{
	"/popular_now",
	"/popular_movies",
	"/popular_series",
	"/coming_soon",
	"/search_by_genre?genre_name=&year=",
	"/movies?q=",
	"/movies?genre=&year=",
	"/movies/{id}",
	"/movies/{id}/watch",
	"/genres",
	"/poster?url=",
}

// upstreamContext keeps upstream calls running when the client goes away;
// each attempt is still bounded by the HTTP client timeout.
func upstreamContext(r *http.Request) context.Context {
	return context.WithoutCancel(r.Context())
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]any{
		"name":      "cinerelay",
		"provider":  s.opts.ProviderName,
		"endpoints": endpoints,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) listHandler(op func(context.Context) (movies.ListResponse, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp, err := op(upstreamContext(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	}
}

func (s *Server) handleSearchByGenre(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	genre := strings.TrimSpace(query.Get("genre_name"))
	if genre == "" {
		respondError(w, apperrors.NewValidationError("genre_name", "genre_name is required"))
		return
	}
	s.searchByGenre(w, r, genre, query.Get("year"))
}

func (s *Server) handleMovies(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	text := strings.TrimSpace(query.Get("q"))
	genre := strings.TrimSpace(query.Get("genre"))

	switch {
	case text != "" && genre != "":
		respondError(w, apperrors.NewValidationError("q", "use either q or genre, not both"))
	case text != "":
		if utf8.RuneCountInString(text) < minQueryLength {
			respondError(w, apperrors.NewValidationError("q", "q must be at least 2 characters"))
			return
		}
		resp, err := s.movies.SearchByText(upstreamContext(r), text)
		if err != nil {
			respondError(w, err)
			return
		}
		respondJSON(w, http.StatusOK, resp)
	case genre != "":
		s.searchByGenre(w, r, genre, query.Get("year"))
	default:
		respondError(w, apperrors.NewValidationError("q", "provide q (title search) or genre (genre search)"))
	}
}

func (s *Server) searchByGenre(w http.ResponseWriter, r *http.Request, genre, rawYear string) {
	year, err := catalog.ParseYearFilter(rawYear)
	if err != nil {
		respondError(w, err)
		return
	}
	resp, err := s.movies.SearchByGenre(upstreamContext(r), genre, year)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDetails(w http.ResponseWriter, r *http.Request) {
	s.detailsHandler(w, r, s.movies.Details)
}

func (s *Server) handleWatch(w http.ResponseWriter, r *http.Request) {
	s.detailsHandler(w, r, s.movies.Watch)
}

func (s *Server) detailsHandler(w http.ResponseWriter, r *http.Request, op func(context.Context, int, catalog.MediaKind) (catalog.Details, error)) {
	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil || id <= 0 {
		respondError(w, apperrors.NewValidationError("id", "id must be a positive integer"))
		return
	}
	kind := catalog.ParseMediaKind(r.URL.Query().Get("kind"))

	details, err := op(upstreamContext(r), id, kind)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, details)
}

func (s *Server) handleGenres(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string][]string{"genres": s.movies.Genres()})
}

func (s *Server) handlePoster(w http.ResponseWriter, r *http.Request) {
	img, err := s.posters.Fetch(upstreamContext(r), r.URL.Query().Get("url"))
	if err != nil {
		respondError(w, err)
		return
	}
	w.Header().Set("Content-Type", img.ContentType)
	w.Header().Set("Content-Length", strconv.Itoa(len(img.Body)))
	w.Header().Set("Cache-Control", s.posters.CacheControl())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img.Body)
}
