package engine

import (
	"fmt"
	"net"
	"net/http"
	"strings"
	"sync/atomic"

	"golang.org/x/net/publicsuffix"
)

// BudgetError is returned when a feed download needs more requests than
// allowed, usually because of a redirect loop.
type BudgetError struct {
	Source string
	Max    int64
}

func (e *BudgetError) Error() string {
	return fmt.Sprintf("feed %s: gave up after %d requests", e.Source, e.Max)
}

// BoundaryError is returned when a feed redirect points outside the
// registrable domain of the requested URL.
type BoundaryError struct {
	Source string
	Host   string
	Root   string
}

func (e *BoundaryError) Error() string {
	if e.Host == "" {
		return fmt.Sprintf("feed %s: redirect without host", e.Source)
	}
	return fmt.Sprintf("feed %s: redirect to %s leaves %s", e.Source, e.Host, e.Root)
}

// budgetTransport counts every request of one download, redirects included.
type budgetTransport struct {
	base   http.RoundTripper
	source string
	max    int64
	used   int64
}

func (t *budgetTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if n := atomic.AddInt64(&t.used, 1); t.max > 0 && n > t.max {
		return nil, &BudgetError{Source: t.source, Max: t.max}
	}
	return t.base.RoundTrip(req)
}

// boundaryTransport keeps a download on the feed's own registrable domain.
type boundaryTransport struct {
	base   http.RoundTripper
	source string
	root   string
}

func (t *boundaryTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	host := strings.ToLower(req.URL.Hostname())
	if host == "" {
		return nil, &BoundaryError{Source: t.source}
	}
	if t.root != "" && registrableDomain(host) != t.root && !strings.HasSuffix(host, "."+t.root) {
		return nil, &BoundaryError{Source: t.source, Host: host, Root: t.root}
	}
	return t.base.RoundTrip(req)
}

// registrableDomain is the eTLD+1 of host, or host itself for IPs and
// single-label names.
func registrableDomain(host string) string {
	host = strings.ToLower(host)
	if net.ParseIP(host) != nil {
		return host
	}
	root, err := publicsuffix.EffectiveTLDPlusOne(host)
	if err != nil {
		return host
	}
	return root
}
