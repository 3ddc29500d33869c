package poster

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/lepinkainen/cinerelay/internal/errors"
	"github.com/lepinkainen/cinerelay/internal/testutil"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0x0d, 'I', 'H', 'D', 'R'}

// rewriteDoer sends every request to the fake server, keeping the path.
type rewriteDoer struct {
	target *url.URL
	client *http.Client
}

func (d rewriteDoer) Do(req *http.Request) (*http.Response, error) {
	req.URL.Scheme = d.target.Scheme
	req.URL.Host = d.target.Host
	return d.client.Do(req)
}

func newTestRelay(t *testing.T, u *testutil.Upstream, opts ...Option) *Relay {
	t.Helper()
	target, err := url.Parse(u.URL())
	require.NoError(t, err)
	opts = append([]Option{WithHTTPClient(rewriteDoer{target: target, client: u.Client()})}, opts...)
	return NewRelay(DefaultAllowedHosts, opts...)
}

func TestFetchRejectsDisallowedHost(t *testing.T) {
	u := testutil.NewUpstream(t)
	relay := newTestRelay(t, u)

	for _, raw := range []string{
		"https://evil.example.com/poster.jpg",
		"https://image.tmdb.org.evil.example.com/p.jpg",
		"http://127.0.0.1/p.jpg",
	} {
		_, err := relay.Fetch(context.Background(), raw)
		require.Error(t, err, raw)
		assert.True(t, apperrors.IsForbidden(err), raw)
	}
	assert.Equal(t, 0, u.CallCount())
}

func TestFetchRejectsMalformedURL(t *testing.T) {
	u := testutil.NewUpstream(t)
	relay := newTestRelay(t, u)

	for _, raw := range []string{"", "not a url", "ftp://image.tmdb.org/p.jpg", "/t/p/w500/p.jpg", "https://", "%zz"} {
		_, err := relay.Fetch(context.Background(), raw)
		require.Error(t, err, raw)
		assert.True(t, apperrors.IsValidationError(err), raw)
	}
	assert.Equal(t, 0, u.CallCount())
}

func TestFetchPassesThroughBodyAndType(t *testing.T) {
	u := testutil.NewUpstream(t)
	u.HandleResponse("/t/p/w500/poster.jpg", testutil.Response{Body: []byte("jpeg-bytes"), ContentType: "image/jpeg"})
	relay := newTestRelay(t, u)

	img, err := relay.Fetch(context.Background(), "https://IMAGE.tmdb.org/t/p/w500/poster.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte("jpeg-bytes"), img.Body)
	assert.Equal(t, "image/jpeg", img.ContentType)
	assert.Equal(t, 1, u.CallCount())
}

func TestFetchSniffsMissingContentType(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header()["Content-Type"] = nil
		_, _ = w.Write(pngHeader)
	}))
	defer server.Close()

	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	relay := NewRelay([]string{"st.kp.yandex.net"}, WithHTTPClient(rewriteDoer{target: target, client: server.Client()}))

	img, err := relay.Fetch(context.Background(), "https://st.kp.yandex.net/images/film.png")
	require.NoError(t, err)
	assert.Equal(t, "image/png", img.ContentType)
}

func TestFetchUpstreamFailures(t *testing.T) {
	u := testutil.NewUpstream(t)
	u.HandleResponse("/big.jpg", testutil.Response{Body: make([]byte, 64), ContentType: "image/jpeg"})
	relay := newTestRelay(t, u, WithMaxBytes(32))

	_, err := relay.Fetch(context.Background(), "https://image.tmdb.org/missing.jpg")
	require.Error(t, err)
	assert.Equal(t, http.StatusNotFound, apperrors.UpstreamStatus(err))

	_, err = relay.Fetch(context.Background(), "https://image.tmdb.org/big.jpg")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
}

func TestFetchTransportFailure(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	target, err := url.Parse(server.URL)
	require.NoError(t, err)
	server.Close()

	relay := NewRelay(DefaultAllowedHosts, WithHTTPClient(rewriteDoer{target: target, client: &http.Client{Timeout: time.Second}}))
	_, err = relay.Fetch(context.Background(), "https://image.tmdb.org/p.jpg")
	require.Error(t, err)
	assert.True(t, apperrors.IsUpstreamError(err))
	assert.Equal(t, 0, apperrors.UpstreamStatus(err))
}

func TestCacheControl(t *testing.T) {
	assert.Equal(t, "public, max-age=86400", NewRelay(nil).CacheControl())
	assert.Equal(t, "public, max-age=60", NewRelay(nil, WithMaxAge(time.Minute)).CacheControl())
}

func TestCheckRedirect(t *testing.T) {
	relay := NewRelay([]string{"image.tmdb.org"})

	ok, _ := http.NewRequest(http.MethodGet, "https://image.tmdb.org/x.jpg", nil)
	assert.NoError(t, relay.checkRedirect(ok, nil))

	evil, _ := http.NewRequest(http.MethodGet, "http://169.254.169.254/latest", nil)
	assert.ErrorIs(t, relay.checkRedirect(evil, nil), errRedirectNotAllowed)
}
