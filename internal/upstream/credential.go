package upstream

import (
	"net/http"
	"strings"
)

// Credential attaches the API key to an outgoing request.
type Credential interface {
	Apply(req *http.Request)
	Configured() bool
}

// QueryCredential sends the key as a query parameter (TMDB's api_key).
type QueryCredential struct {
	Param string
	Key   string
}

// Apply adds the key to the request URL.
func (c QueryCredential) Apply(req *http.Request) {
	q := req.URL.Query()
	q.Set(c.Param, c.Key)
	req.URL.RawQuery = q.Encode()
}

// Configured reports whether a non-blank key is present.
func (c QueryCredential) Configured() bool {
	return strings.TrimSpace(c.Key) != ""
}

// HeaderCredential sends the key in a request header (kinopoisk's X-API-KEY).
type HeaderCredential struct {
	Header string
	Key    string
}

// Apply sets the credential header.
func (c HeaderCredential) Apply(req *http.Request) {
	req.Header.Set(c.Header, c.Key)
}

// Configured reports whether a non-blank key is present.
func (c HeaderCredential) Configured() bool {
	return strings.TrimSpace(c.Key) != ""
}
