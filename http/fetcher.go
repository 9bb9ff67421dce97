// Package http provides the HTTP implementation of aniscrape.Fetcher:
// a plain request/response fetch primitive with a per-request timeout.
// There are no retries at this layer; resumability across runs is the
// retry mechanism.
package http

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"aniscrape"
)

// DefaultFetchTimeout bounds a single request when no timeout is
// configured.
const DefaultFetchTimeout = 30 * time.Second

// Browser-like default headers; some catalog mirrors refuse requests
// without them.
const (
	defaultUserAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"
	defaultAccept         = "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8"
	defaultAcceptLanguage = "en-US,en;q=0.5"
)

// Ensure Fetcher implements aniscrape.Fetcher at compile time.
var _ aniscrape.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML content over HTTP. A Fetcher is a session:
// each pipeline worker gets its own from a Pool, so none is ever shared
// across concurrent requests.
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// Fetch retrieves the document at url. Transport errors, timeouts and
// non-2xx statuses all come back as EUNAVAILABLE; callers treat the
// three identically.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", aniscrape.Errorf(aniscrape.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", defaultAccept)
	req.Header.Set("Accept-Language", defaultAcceptLanguage)

	resp, err := f.client.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return "", aniscrape.Errorf(aniscrape.EUNAVAILABLE, "timeout fetching %s", url)
		}
		return "", aniscrape.Errorf(aniscrape.EUNAVAILABLE, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", aniscrape.Errorf(aniscrape.EUNAVAILABLE, "HTTP %d for %s", resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", aniscrape.Errorf(aniscrape.EUNAVAILABLE, "read %s: %v", url, err)
	}

	return string(body), nil
}

// Close releases resources. Connections belong to the owning Pool's
// shared transport, so this is a no-op.
func (f *Fetcher) Close() error {
	return nil
}
