// Package testutil provides a fake catalog API for tests.
package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"
)

// Response is a canned upstream reply.
type Response struct {
	Status      int
	Body        any
	ContentType string
}

// Call records one request received by the fake upstream.
type Call struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// Upstream is an httptest server serving canned responses per path and
// recording every request. Unregistered paths answer 404. It is closed
// automatically when the test completes.
type Upstream struct {
	t      *testing.T
	server *httptest.Server

	mu     sync.Mutex
	routes map[string]Response
	calls  []Call
}

// NewUpstream starts a fake upstream server.
func NewUpstream(t *testing.T) *Upstream {
	t.Helper()

	u := &Upstream{
		t:      t,
		routes: make(map[string]Response),
	}
	u.server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.server.Close)
	return u
}

// URL returns the base URL of the server.
func (u *Upstream) URL() string {
	return u.server.URL
}

// Client returns an HTTP client for the server.
func (u *Upstream) Client() *http.Client {
	return u.server.Client()
}

// Handle registers a JSON response for path.
func (u *Upstream) Handle(path string, status int, body any) {
	u.HandleResponse(path, Response{Status: status, Body: body})
}

// HandleResponse registers a response for path. A []byte body is written
// verbatim; anything else is JSON encoded.
func (u *Upstream) HandleResponse(path string, resp Response) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[path] = resp
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	u.mu.Lock()
	u.calls = append(u.calls, Call{
		Path:   r.URL.Path,
		Query:  r.URL.Query(),
		Header: r.Header.Clone(),
	})
	resp, ok := u.routes[r.URL.Path]
	u.mu.Unlock()

	if !ok {
		http.NotFound(w, r)
		return
	}

	status := resp.Status
	if status == 0 {
		status = http.StatusOK
	}

	if raw, isRaw := resp.Body.([]byte); isRaw {
		if resp.ContentType != "" {
			w.Header().Set("Content-Type", resp.ContentType)
		}
		w.WriteHeader(status)
		_, _ = w.Write(raw)
		return
	}

	contentType := resp.ContentType
	if contentType == "" {
		contentType = "application/json"
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	if resp.Body != nil {
		if err := json.NewEncoder(w).Encode(resp.Body); err != nil {
			u.t.Errorf("encode fake upstream response: %v", err)
		}
	}
}

// Calls returns a copy of every recorded request.
func (u *Upstream) Calls() []Call {
	u.mu.Lock()
	defer u.mu.Unlock()
	out := make([]Call, len(u.calls))
	copy(out, u.calls)
	return out
}

// CallCount returns the number of requests received.
func (u *Upstream) CallCount() int {
	u.mu.Lock()
	defer u.mu.Unlock()
	return len(u.calls)
}

// CallsTo returns the requests received for path.
func (u *Upstream) CallsTo(path string) []Call {
	var out []Call
	for _, c := range u.Calls() {
		if c.Path == path {
			out = append(out, c)
		}
	}
	return out
}

// LastQuery returns the query of the most recent request for path, or nil.
func (u *Upstream) LastQuery(path string) url.Values {
	calls := u.CallsTo(path)
	if len(calls) == 0 {
		return nil
	}
	return calls[len(calls)-1].Query
}
