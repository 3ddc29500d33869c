package cmd

import (
	"fmt"

	"github.com/lepinkainen/cinerelay/internal/catalog"
	"github.com/lepinkainen/cinerelay/internal/config"
	"github.com/lepinkainen/cinerelay/internal/kinopoisk"
	"github.com/lepinkainen/cinerelay/internal/movies"
	"github.com/lepinkainen/cinerelay/internal/poster"
	"github.com/lepinkainen/cinerelay/internal/ratelimit"
	"github.com/lepinkainen/cinerelay/internal/tmdb"
	"github.com/lepinkainen/cinerelay/internal/upstream"
)

// newProvider selects the single active catalog provider.
func newProvider(cfg config.Config) (catalog.Provider, upstream.Credential, error) {
	switch cfg.Provider {
	case tmdb.Name:
		provider := tmdb.New(
			tmdb.WithImageBaseURL(cfg.ImageBaseURL),
			tmdb.WithLanguage(cfg.Language),
		)
		return provider, tmdb.Credential(cfg.APIKey), nil
	case kinopoisk.Name:
		provider := kinopoisk.New(kinopoisk.WithImageBaseURL(cfg.ImageBaseURL))
		return provider, kinopoisk.Credential(cfg.APIKey), nil
	default:
		return nil, nil, fmt.Errorf("unknown provider %q", cfg.Provider)
	}
}

func newService(cfg config.Config) (*movies.Service, error) {
	provider, credential, err := newProvider(cfg)
	if err != nil {
		return nil, err
	}

	client := upstream.NewClient(provider.Name(), cfg.APIBaseURL,
		upstream.WithHTTPClient(upstream.NewHTTPClient(cfg.Timeout, cfg.SSLVerify)),
		upstream.WithCredential(credential),
		upstream.WithRetryAttempts(cfg.RetryAttempts),
		upstream.WithRetryDelay(cfg.RetryDelay),
		upstream.WithRateLimiter(ratelimit.New(provider.Name(), cfg.RatePerSecond)),
	)
	return movies.NewService(provider, client, cfg.StorageBaseURL), nil
}

func newRelay(cfg config.Config) *poster.Relay {
	return poster.NewRelay(cfg.Poster.AllowedHosts,
		poster.WithTimeout(cfg.Timeout),
		poster.WithMaxAge(cfg.Poster.MaxAge),
	)
}
