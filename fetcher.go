package aniscrape

import "context"

// Fetcher retrieves raw HTML from URLs.
// A Fetcher is not safe for concurrent use unless documented otherwise;
// workers obtain their own instance from Sessions.
type Fetcher interface {
	// Fetch retrieves the document at url.
	// The context controls timeout and cancellation. Transport errors,
	// non-2xx statuses and timeouts all return an EUNAVAILABLE error;
	// callers treat them identically and never retry at this layer.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases any resources held by the Fetcher.
	Close() error
}

// Sessions provisions per-worker Fetchers over a shared connection
// pool. The pool must be sized for the pipeline's total fan-out
// (outer workers × episode workers plus headroom) or concurrent
// workers starve each other of connections.
type Sessions interface {
	NewSession() Fetcher
}
