package upstream

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lepinkainen/cinerelay/internal/ratelimit"
)

func TestClientOptionsApply(t *testing.T) {
	customHTTP := &http.Client{}
	limiter := ratelimit.New("tmdb", 2)
	cred := HeaderCredential{Header: "X-API-KEY", Key: "k"}

	client := NewClient(
		"kinopoisk",
		"https://example.test/",
		WithHTTPClient(customHTTP),
		WithCredential(cred),
		WithRetryAttempts(5),
		WithRetryDelay(2*time.Second),
		WithRateLimiter(limiter),
	)

	require.Equal(t, "https://example.test", client.baseURL)
	require.Equal(t, customHTTP, client.httpClient)
	require.Equal(t, cred, client.credential)
	require.Equal(t, 5, client.retryAttempts)
	require.Equal(t, 2*time.Second, client.retryDelay)
	require.Equal(t, limiter, client.rateLimiter)
	require.Equal(t, "kinopoisk", client.Name())
	require.True(t, client.HasCredential())
}

func TestClientDefaults(t *testing.T) {
	client := NewClient("tmdb", "https://api.themoviedb.org/3", WithRetryAttempts(0), WithHTTPClient(nil))

	assert.Equal(t, defaultRetryAttempts, client.retryAttempts)
	assert.Equal(t, defaultRetryDelay, client.retryDelay)
	assert.NotNil(t, client.httpClient)
	assert.False(t, client.HasCredential())
}

func TestNewHTTPClientTLSToggle(t *testing.T) {
	verified := NewHTTPClient(5*time.Second, true)
	assert.Equal(t, 5*time.Second, verified.Timeout)
	transport := verified.Transport.(*http.Transport)
	if transport.TLSClientConfig != nil {
		assert.False(t, transport.TLSClientConfig.InsecureSkipVerify)
	}

	insecure := NewHTTPClient(0, false)
	assert.Equal(t, defaultTimeout, insecure.Timeout)
	cfg := insecure.Transport.(*http.Transport).TLSClientConfig
	require.NotNil(t, cfg)
	assert.True(t, cfg.InsecureSkipVerify)
}

func TestCredentials(t *testing.T) {
	req, err := http.NewRequest(http.MethodGet, "https://example.test/x?page=1", nil)
	require.NoError(t, err)

	QueryCredential{Param: "api_key", Key: "abc"}.Apply(req)
	assert.Equal(t, "abc", req.URL.Query().Get("api_key"))
	assert.Equal(t, "1", req.URL.Query().Get("page"))

	HeaderCredential{Header: "X-API-KEY", Key: "xyz"}.Apply(req)
	assert.Equal(t, "xyz", req.Header.Get("X-API-KEY"))

	assert.False(t, QueryCredential{Param: "api_key"}.Configured())
	assert.False(t, HeaderCredential{Header: "X-API-KEY", Key: " "}.Configured())
}
