package engine

import (
	"crypto/tls"
	"net/http"
	"time"
)

const defaultTimeout = 15 * time.Second

func newBaseTransport() *http.Transport {
	return &http.Transport{
		Proxy: http.ProxyFromEnvironment,
		TLSClientConfig: &tls.Config{
			MinVersion: tls.VersionTLS12,
		},
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          16,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// newFeedClient builds a client for a single feed download. Requests pass
// through the hop recorder, the request budget and the domain boundary in
// that order. source names the feed in errors.
func newFeedClient(source, root string, timeout time.Duration, base http.RoundTripper) (*http.Client, *hopRecorder) {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if base == nil {
		base = newBaseTransport()
	}
	hops := &hopRecorder{
		base: &budgetTransport{
			source: source,
			max:    maxFeedRequests,
			base: &boundaryTransport{
				source: source,
				root:   root,
				base:   base,
			},
		},
	}
	return &http.Client{Timeout: timeout, Transport: hops}, hops
}
