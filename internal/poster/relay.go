// Package poster relays poster images from an allow-list of image hosts.
package poster

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
)

const (
	defaultTimeout  = 15 * time.Second
	defaultMaxBytes = 10 << 20
	defaultMaxAge   = 24 * time.Hour
)

// DefaultAllowedHosts are the image hosts used by the supported providers.
var DefaultAllowedHosts = []string{
	"image.tmdb.org",
	"avatars.mds.yandex.net",
	"st.kp.yandex.net",
	"imagetmdb.com",
	"kinopoiskapiunofficial.tech",
}

var errRedirectNotAllowed = errors.New("redirect to a host outside the allow-list")

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Image is a relayed image body.
type Image struct {
	Body        []byte
	ContentType string
}

// Relay fetches images from allow-listed hosts only.
type Relay struct {
	allowed    map[string]bool
	httpClient HTTPDoer
	maxBytes   int64
	maxAge     time.Duration
}

// NewRelay creates a relay for allowedHosts. Host matching is exact and
// case-insensitive; subdomains are not implied.
func NewRelay(allowedHosts []string, opts ...Option) *Relay {
	r := &Relay{
		allowed:  make(map[string]bool, len(allowedHosts)),
		maxBytes: defaultMaxBytes,
		maxAge:   defaultMaxAge,
	}
	for _, host := range allowedHosts {
		host = strings.ToLower(strings.TrimSpace(host))
		if host != "" {
			r.allowed[host] = true
		}
	}
	r.httpClient = &http.Client{
		Timeout:       defaultTimeout,
		CheckRedirect: r.checkRedirect,
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Option is a functional option for configuring the Relay.
type Option func(*Relay)

// WithHTTPClient sets a custom HTTP client. The client is responsible for
// its own redirect policy.
func WithHTTPClient(c HTTPDoer) Option {
	return func(r *Relay) {
		if c != nil {
			r.httpClient = c
		}
	}
}

// WithTimeout sets the timeout of the default HTTP client.
func WithTimeout(timeout time.Duration) Option {
	return func(r *Relay) {
		if client, ok := r.httpClient.(*http.Client); ok && timeout > 0 {
			client.Timeout = timeout
		}
	}
}

// WithMaxBytes caps the relayed body size.
func WithMaxBytes(n int64) Option {
	return func(r *Relay) {
		if n > 0 {
			r.maxBytes = n
		}
	}
}

// WithMaxAge sets the shared-cache lifetime advertised to clients.
func WithMaxAge(d time.Duration) Option {
	return func(r *Relay) {
		if d > 0 {
			r.maxAge = d
		}
	}
}

// CacheControl returns the Cache-Control value for relayed images.
func (r *Relay) CacheControl() string {
	return fmt.Sprintf("public, max-age=%d", int(r.maxAge.Seconds()))
}

// Validate parses rawURL and checks it against the allow-list.
func (r *Relay) Validate(rawURL string) (*url.URL, error) {
	rawURL = strings.TrimSpace(rawURL)
	if rawURL == "" {
		return nil, apperrors.NewValidationError("url", "url is required")
	}
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, apperrors.NewValidationError("url", "url is not a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, apperrors.NewValidationError("url", "url must be an absolute http or https URL")
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return nil, apperrors.NewValidationError("url", "url has no host")
	}
	if !r.allowed[host] {
		return nil, apperrors.NewForbiddenError(host)
	}
	return u, nil
}

// Fetch validates rawURL and returns the image body and content type as sent
// by the image host. Disallowed hosts fail before any network call.
func (r *Relay) Fetch(ctx context.Context, rawURL string) (Image, error) {
	u, err := r.Validate(rawURL)
	if err != nil {
		return Image{}, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Image{}, apperrors.NewValidationError("url", "url is not a valid URL")
	}

	slog.Debug("Relaying poster", "host", u.Host, "path", u.Path)

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return Image{}, apperrors.NewUpstreamTransportError(u.Path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return Image{}, apperrors.NewUpstreamStatusError(resp.StatusCode, u.Path)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, r.maxBytes+1))
	if err != nil {
		return Image{}, apperrors.NewUpstreamTransportError(u.Path, fmt.Errorf("read image: %w", err))
	}
	if int64(len(body)) > r.maxBytes {
		return Image{}, apperrors.NewUpstreamTransportError(u.Path, fmt.Errorf("image exceeds %d bytes", r.maxBytes))
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = mimetype.Detect(body).String()
	}

	return Image{Body: body, ContentType: contentType}, nil
}

func (r *Relay) checkRedirect(req *http.Request, via []*http.Request) error {
	if len(via) >= 5 {
		return errors.New("stopped after 5 redirects")
	}
	if !r.allowed[strings.ToLower(req.URL.Hostname())] {
		return errRedirectNotAllowed
	}
	return nil
}
