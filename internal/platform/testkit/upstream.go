package testkit

import (
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
)

// Recorded is one request captured by an Upstream
type Recorded struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

// Upstream is an httptest server that records every request and answers with a fixed status
type Upstream struct {
	*httptest.Server

	mu     sync.Mutex
	status int
	reqs   []Recorded
}

// NewUpstream starts an Upstream answering status; it is closed on test cleanup
func NewUpstream(t *testing.T, status int) *Upstream {
	t.Helper()
	u := &Upstream{status: status}
	u.Server = httptest.NewServer(http.HandlerFunc(u.serve))
	t.Cleanup(u.Close)
	return u
}

func (u *Upstream) serve(w http.ResponseWriter, r *http.Request) {
	b, _ := io.ReadAll(r.Body)
	u.mu.Lock()
	u.reqs = append(u.reqs, Recorded{
		Method: r.Method,
		Path:   r.URL.Path,
		Header: r.Header.Clone(),
		Body:   b,
	})
	status := u.status
	u.mu.Unlock()
	w.WriteHeader(status)
	_, _ = io.WriteString(w, `{"object":"list"}`)
}

// SetStatus changes the status returned for subsequent requests
func (u *Upstream) SetStatus(status int) {
	u.mu.Lock()
	u.status = status
	u.mu.Unlock()
}

// Requests returns a copy of the recorded requests in arrival order
func (u *Upstream) Requests() []Recorded {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]Recorded(nil), u.reqs...)
}

// Only asserts exactly one request was recorded and returns it
func (u *Upstream) Only(t *testing.T) Recorded {
	t.Helper()
	reqs := u.Requests()
	if len(reqs) != 1 {
		t.Fatalf("expected exactly 1 upstream request, got %d", len(reqs))
	}
	return reqs[0]
}
