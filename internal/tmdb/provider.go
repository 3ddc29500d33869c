// Package tmdb adapts TheMovieDB v3 API to the catalog provider interfaces.
package tmdb

import (
	_ "embed"
	"time"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	"github.com/lepinkainen/cinerelay/internal/upstream"
)

const (
	// Name identifies the provider in configuration and logs.
	Name = "tmdb"

	DefaultBaseURL       = "https://api.themoviedb.org/3"
	DefaultImageBaseURL  = "https://image.tmdb.org/t/p/w500"
	DefaultLanguage      = "ru-RU"
	DefaultRatePerSecond = 40
)

//go:embed genres.yaml
var genreTable []byte

// Provider implements catalog.Provider for TMDB.
type Provider struct {
	imageBaseURL string
	language     string
	now          func() time.Time
	genres       *catalog.GenreMap
}

var _ catalog.Provider = (*Provider)(nil)

// New creates a TMDB provider with the embedded genre table.
func New(opts ...Option) *Provider {
	p := &Provider{
		imageBaseURL: DefaultImageBaseURL,
		language:     DefaultLanguage,
		now:          time.Now,
		genres:       catalog.MustLoadGenreMap(genreTable),
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// Option is a functional option for configuring the Provider.
type Option func(*Provider)

// WithImageBaseURL sets the base URL relative poster paths are resolved against.
func WithImageBaseURL(base string) Option {
	return func(p *Provider) {
		if base != "" {
			p.imageBaseURL = base
		}
	}
}

// WithLanguage sets the language parameter sent with every request. An empty
// language omits the parameter.
func WithLanguage(lang string) Option {
	return func(p *Provider) {
		p.language = lang
	}
}

// WithClock overrides the clock used for date-relative queries.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// Credential returns TMDB's api_key query parameter credential.
func Credential(key string) upstream.Credential {
	return upstream.QueryCredential{Param: "api_key", Key: key}
}

func (p *Provider) Name() string {
	return Name
}

func (p *Provider) Genres() *catalog.GenreMap {
	return p.genres
}
