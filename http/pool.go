package http

import (
	"net/http"
	"time"

	"aniscrape"
)

// Ensure Pool implements aniscrape.Sessions at compile time.
var _ aniscrape.Sessions = (*Pool)(nil)

// Pool provisions per-worker Fetchers over one shared connection pool.
//
// The transport's connection capacity must cover the pipeline's full
// fan-out: with N entry workers each running M episode workers, N×M
// requests can be in flight to the same host at once. An undersized
// pool makes the workers starve each other of connections, which
// presents as a deadlock under load.
type Pool struct {
	transport *http.Transport
	timeout   time.Duration
	userAgent string
}

// Option configures a Pool.
type Option func(*Pool)

// WithTimeout sets the per-request timeout for every session.
// Defaults to DefaultFetchTimeout.
func WithTimeout(d time.Duration) Option {
	return func(p *Pool) {
		p.timeout = d
	}
}

// WithUserAgent overrides the User-Agent header sent by every session.
func WithUserAgent(ua string) Option {
	return func(p *Pool) {
		p.userAgent = ua
	}
}

// NewPool creates a Pool whose shared transport is sized for
// concurrency simultaneous in-flight requests plus headroom.
func NewPool(concurrency int, opts ...Option) *Pool {
	if concurrency < 1 {
		concurrency = 1
	}
	size := concurrency + 10

	p := &Pool{
		transport: &http.Transport{
			MaxIdleConns:        size,
			MaxIdleConnsPerHost: size,
			MaxConnsPerHost:     size,
		},
		timeout:   DefaultFetchTimeout,
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// NewSession returns a Fetcher for exclusive use by one worker. The
// underlying connections are shared through the Pool's transport.
func (p *Pool) NewSession() aniscrape.Fetcher {
	return &Fetcher{
		client: &http.Client{
			Transport: p.transport,
			Timeout:   p.timeout,
		},
		userAgent: p.userAgent,
	}
}

// Close shuts down idle connections held by the shared transport.
func (p *Pool) Close() {
	p.transport.CloseIdleConnections()
}
