package engine

import (
	"net/http"
	"sync"
	"time"
)

// Hop is one request made while downloading a feed. URL is host and path
// only, so query credentials never reach logs or the console.
type Hop struct {
	URL      string
	Status   int
	Duration time.Duration
}

// hopRecorder sits outermost in the client chain and records each request,
// including those refused by the inner transports (Status 0).
type hopRecorder struct {
	base http.RoundTripper

	mu   sync.Mutex
	hops []Hop
}

func (t *hopRecorder) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()
	resp, err := t.base.RoundTrip(req)

	hop := Hop{URL: req.URL.Host + req.URL.Path, Duration: time.Since(start)}
	if err == nil {
		hop.Status = resp.StatusCode
	}
	t.mu.Lock()
	t.hops = append(t.hops, hop)
	t.mu.Unlock()
	return resp, err
}

func (t *hopRecorder) snapshot() []Hop {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Hop(nil), t.hops...)
}
