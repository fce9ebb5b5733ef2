// Package testutil holds helpers shared by tests that talk to a fake instance data registry.
package testutil

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
)

// CapturedRequest records what the fake registry saw.
type CapturedRequest struct {
	Method      string
	Path        string
	RawQuery    string
	Auth        string
	RequestID   string
	UserAgent   string
	ContentType string
	Body        string
}

// Recorder keeps the last request the fake registry received.
type Recorder struct {
	mu   sync.Mutex
	last CapturedRequest
	hits atomic.Int32
}

// Last returns a copy of the most recent request.
func (r *Recorder) Last() CapturedRequest {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.last
}

// Hits is the number of requests received so far.
func (r *Recorder) Hits() int32 {
	return r.hits.Load()
}

func (r *Recorder) record(req *http.Request) {
	r.hits.Add(1)
	body, _ := io.ReadAll(req.Body)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.last = CapturedRequest{
		Method:      req.Method,
		Path:        req.URL.Path,
		RawQuery:    req.URL.RawQuery,
		Auth:        req.Header.Get("Authorization"),
		RequestID:   req.Header.Get("X-Request-Id"),
		UserAgent:   req.Header.Get("User-Agent"),
		ContentType: req.Header.Get("Content-Type"),
		Body:        string(body),
	}
}

// FakeRegistry starts a server that answers every request with status and body. The server
// is closed when the test ends.
func FakeRegistry(t *testing.T, status int, body string) (*httptest.Server, *Recorder) {
	t.Helper()

	rec := &Recorder{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.record(r)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, body)
	}))
	t.Cleanup(server.Close)

	return server, rec
}
