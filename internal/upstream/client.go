// Package upstream performs HTTP calls to the configured catalog API.
package upstream

import (
	"crypto/tls"
	"net/http"
	"strings"
	"time"

	"github.com/lepinkainen/cinerelay/internal/ratelimit"
)

const (
	defaultTimeout       = 15 * time.Second
	defaultRetryAttempts = 3
	defaultRetryDelay    = time.Second
)

// HTTPDoer is an interface for making HTTP requests.
type HTTPDoer interface {
	Do(*http.Request) (*http.Response, error)
}

// Client fetches JSON objects from one catalog API.
type Client struct {
	name          string
	baseURL       string
	httpClient    HTTPDoer
	credential    Credential
	rateLimiter   *ratelimit.Limiter
	retryAttempts int
	retryDelay    time.Duration
}

// NewClient creates a client for the API rooted at baseURL. name identifies
// the provider in logs and errors.
func NewClient(name, baseURL string, opts ...Option) *Client {
	client := &Client{
		name:          name,
		baseURL:       strings.TrimSuffix(baseURL, "/"),
		httpClient:    NewHTTPClient(defaultTimeout, true),
		retryAttempts: defaultRetryAttempts,
		retryDelay:    defaultRetryDelay,
	}

	for _, opt := range opts {
		opt(client)
	}

	return client
}

// NewHTTPClient builds the shared transport: every upstream response must
// complete within timeout. verifyTLS=false skips certificate verification and
// is meant only for networks that intercept TLS.
func NewHTTPClient(timeout time.Duration, verifyTLS bool) *http.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	transport := http.DefaultTransport.(*http.Transport).Clone()
	if !verifyTLS {
		transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true} //nolint:gosec // opt-in via ssl_verify
	}
	return &http.Client{Timeout: timeout, Transport: transport}
}

// Option is a functional option for configuring the Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c HTTPDoer) Option {
	return func(client *Client) {
		if c != nil {
			client.httpClient = c
		}
	}
}

// WithCredential sets how the API key is attached to requests.
func WithCredential(cred Credential) Option {
	return func(client *Client) {
		client.credential = cred
	}
}

// WithRetryAttempts sets the total number of attempts for transient failures.
func WithRetryAttempts(attempts int) Option {
	return func(client *Client) {
		if attempts > 0 {
			client.retryAttempts = attempts
		}
	}
}

// WithRetryDelay sets the fixed pause between attempts.
func WithRetryDelay(delay time.Duration) Option {
	return func(client *Client) {
		if delay >= 0 {
			client.retryDelay = delay
		}
	}
}

// WithRateLimiter paces outbound requests. A nil limiter disables pacing.
func WithRateLimiter(limiter *ratelimit.Limiter) Option {
	return func(client *Client) {
		client.rateLimiter = limiter
	}
}

// Name returns the provider name.
func (c *Client) Name() string {
	return c.name
}

// HasCredential reports whether an API key is configured.
func (c *Client) HasCredential() bool {
	return c.credential != nil && c.credential.Configured()
}
