// Package kinopoisk adapts the kinopoisk.dev v1.4 API to the catalog provider
// interfaces.
package kinopoisk

import (
	_ "embed"
	"time"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	"github.com/lepinkainen/cinerelay/internal/upstream"
)

const (
	// Name identifies the provider in configuration and logs.
	Name = "kinopoisk"

	DefaultBaseURL       = "https://api.kinopoisk.dev"
	DefaultImageBaseURL  = "https://avatars.mds.yandex.net"
	DefaultRatePerSecond = 10
)

//go:embed genres.yaml
var genreTable []byte

// Provider implements catalog.Provider for kinopoisk.dev.
type Provider struct {
	imageBaseURL string
	now          func() time.Time
	genres       *catalog.GenreMap
}

var _ catalog.Provider = (*Provider)(nil)

// New creates a kinopoisk provider with the embedded genre table.
func New(opts ...Option) *Provider {
	p := &Provider{
		imageBaseURL: DefaultImageBaseURL,
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

// WithImageBaseURL sets the base URL for the rare relative poster reference.
func WithImageBaseURL(base string) Option {
	return func(p *Provider) {
		if base != "" {
			p.imageBaseURL = base
		}
	}
}

// WithClock overrides the clock used for year windows and premiere ranges.
func WithClock(now func() time.Time) Option {
	return func(p *Provider) {
		if now != nil {
			p.now = now
		}
	}
}

// Credential returns kinopoisk.dev's X-API-KEY header credential.
func Credential(key string) upstream.Credential {
	return upstream.HeaderCredential{Header: "X-API-KEY", Key: key}
}

func (p *Provider) Name() string {
	return Name
}

func (p *Provider) Genres() *catalog.GenreMap {
	return p.genres
}
