// Package server exposes the movie operations over HTTP.
package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	"github.com/lepinkainen/cinerelay/internal/movies"
	"github.com/lepinkainen/cinerelay/internal/poster"
)

// MovieService is implemented by *movies.Service.
type MovieService interface {
	PopularNow(ctx context.Context) (movies.ListResponse, error)
	PopularMovies(ctx context.Context) (movies.ListResponse, error)
	PopularSeries(ctx context.Context) (movies.ListResponse, error)
	ComingSoon(ctx context.Context) (movies.ListResponse, error)
	SearchByText(ctx context.Context, text string) (movies.ListResponse, error)
	SearchByGenre(ctx context.Context, genreName string, year catalog.YearFilter) (movies.GenreResponse, error)
	Details(ctx context.Context, id int, kind catalog.MediaKind) (catalog.Details, error)
	Watch(ctx context.Context, id int, kind catalog.MediaKind) (catalog.Details, error)
	Genres() []string
}

// PosterRelay is implemented by *poster.Relay.
type PosterRelay interface {
	Fetch(ctx context.Context, rawURL string) (poster.Image, error)
	CacheControl() string
}

// Options configures the HTTP boundary.
type Options struct {
	Addr         string
	ProviderName string
	CORSOrigins  []string
}

// Server serves the public API.
type Server struct {
	movies     MovieService
	posters    PosterRelay
	opts       Options
	router     *mux.Router
	httpServer *http.Server
}

// New creates a Server with all routes registered.
func New(svc MovieService, relay PosterRelay, opts Options) *Server {
	s := &Server{
		movies:  svc,
		posters: relay,
		opts:    opts,
	}
	s.router = s.routes()
	s.httpServer = &http.Server{
		Addr:              opts.Addr,
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
		// Upstream retries can take several timeouts back to back.
		WriteTimeout: 2 * time.Minute,
	}
	return s
}

// Handler returns the root HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start listens until Shutdown is called. It returns http.ErrServerClosed
// after a graceful shutdown.
func (s *Server) Start() error {
	slog.Info("Starting server", "addr", s.opts.Addr, "provider", s.opts.ProviderName)
	return s.httpServer.ListenAndServe()
}

// Shutdown stops accepting requests and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}

func (s *Server) routes() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger, corsMiddleware(s.opts.CORSOrigins))

	r.HandleFunc("/", s.handleIndex).Methods(http.MethodGet)
	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	// The frontend has been deployed behind proxies with and without the
	// /api and /api/v1 prefixes.
	s.registerAPI(r.PathPrefix("/api/v1").Subrouter())
	s.registerAPI(r.PathPrefix("/api").Subrouter())
	s.registerAPI(r)

	r.MethodNotAllowedHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondDetail(w, http.StatusMethodNotAllowed, "method not allowed")
	})
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		respondDetail(w, http.StatusNotFound, "not found")
	})
	return r
}

func (s *Server) registerAPI(r *mux.Router) {
	r.HandleFunc("/popular_now", s.listHandler(s.movies.PopularNow)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/popular_movies", s.listHandler(s.movies.PopularMovies)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/popular_series", s.listHandler(s.movies.PopularSeries)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/coming_soon", s.listHandler(s.movies.ComingSoon)).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/search_by_genre", s.handleSearchByGenre).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/movies", s.handleMovies).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/movies/{id:[0-9]+}", s.handleDetails).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/movies/{id:[0-9]+}/watch", s.handleWatch).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/genres", s.handleGenres).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/poster", s.handlePoster).Methods(http.MethodGet, http.MethodOptions)
}
