package engine

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	appver "github.com/MOYARU/storyscan/internal/version"
)

// maxFeedRequests bounds one download including redirects.
const maxFeedRequests = 5

// FetchResult is a downloaded feed document and how it was obtained.
type FetchResult struct {
	URL         *url.URL
	ContentType string
	Body        []byte
	Compressed  bool
	Hops        []Hop
	Elapsed     time.Duration
}

// Requests is the number of requests the download took.
func (r *FetchResult) Requests() int {
	return len(r.Hops)
}

// Redirects lists the hops that answered with a redirect.
func (r *FetchResult) Redirects() []Hop {
	var out []Hop
	for _, h := range r.Hops {
		if h.Status >= 300 && h.Status < 400 {
			out = append(out, h)
		}
	}
	return out
}

// IsRemote reports whether src names an http(s) feed rather than a file.
func IsRemote(src string) bool {
	lower := strings.ToLower(src)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// Fetcher downloads feed documents. Redirects may not leave the registrable
// domain of the requested URL.
type Fetcher struct {
	Timeout time.Duration
	// Transport replaces the default network transport, mainly for tests.
	Transport http.RoundTripper
	Log       logrus.FieldLogger
}

func (f *Fetcher) Fetch(ctx context.Context, target string) (*FetchResult, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Host == "" {
		return nil, fmt.Errorf("invalid feed URL: %s", target)
	}

	source := u.Host + u.Path
	client, hops := newFeedClient(source, registrableDomain(u.Hostname()), f.Timeout, f.Transport)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", appver.UserAgent())
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.5")

	start := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("failed to fetch feed: %s returned %s", source, resp.Status)
	}

	body, compressed, err := readFeedBody(resp, source)
	if err != nil {
		return nil, err
	}

	res := &FetchResult{
		URL:         resp.Request.URL,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
		Compressed:  compressed,
		Hops:        hops.snapshot(),
		Elapsed:     time.Since(start),
	}
	if f.Log != nil {
		f.Log.WithFields(logrus.Fields{
			"source":     source,
			"bytes":      len(body),
			"compressed": compressed,
			"requests":   res.Requests(),
			"elapsed":    res.Elapsed.String(),
		}).Info("feed downloaded")
	}
	return res, nil
}

// IsYAML guesses the document format from the content type, then from the
// final URL's extension.
func (r *FetchResult) IsYAML() bool {
	ct := strings.ToLower(r.ContentType)
	if strings.Contains(ct, "yaml") {
		return true
	}
	if strings.Contains(ct, "json") {
		return false
	}
	if r.URL == nil {
		return false
	}
	path := strings.ToLower(r.URL.Path)
	return strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml")
}
