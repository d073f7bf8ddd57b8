package engine

import (
	"compress/gzip"
	"fmt"
	"io"
	"net/http"
)

const maxFeedBytes = 16 << 20 // 16 MiB

// readFeedBody reads a feed response, gunzipping it when the server says
// so. It reports whether the transfer was compressed.
func readFeedBody(resp *http.Response, source string) ([]byte, bool, error) {
	reader := io.Reader(resp.Body)
	compressed := resp.Header.Get("Content-Encoding") == "gzip"
	if compressed {
		zr, err := gzip.NewReader(resp.Body)
		if err != nil {
			return nil, false, fmt.Errorf("feed %s: bad gzip body: %w", source, err)
		}
		defer zr.Close()
		reader = zr
	}

	body, err := io.ReadAll(io.LimitReader(reader, maxFeedBytes+1))
	if err != nil {
		return nil, compressed, fmt.Errorf("feed %s: failed to read body: %w", source, err)
	}
	if len(body) > maxFeedBytes {
		return nil, compressed, fmt.Errorf("feed %s: body exceeds %d bytes", source, maxFeedBytes)
	}
	return body, compressed, nil
}
