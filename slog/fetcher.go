// Package slog provides log/slog-backed logging decorators for the
// domain interfaces.
package slog

import (
	"context"
	"log/slog"
	"time"

	"aniscrape"
)

// Ensure LoggingFetcher implements aniscrape.Fetcher.
var _ aniscrape.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging per fetch.
type LoggingFetcher struct {
	next   aniscrape.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next aniscrape.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// Ensure LoggingSessions implements aniscrape.Sessions.
var _ aniscrape.Sessions = (*LoggingSessions)(nil)

// LoggingSessions wraps a Sessions so every session it hands out is a
// LoggingFetcher.
type LoggingSessions struct {
	next   aniscrape.Sessions
	logger *slog.Logger
}

// NewLoggingSessions creates a new LoggingSessions.
func NewLoggingSessions(next aniscrape.Sessions, logger *slog.Logger) *LoggingSessions {
	return &LoggingSessions{next: next, logger: logger}
}

// NewSession returns a logging wrapper around the next session.
func (s *LoggingSessions) NewSession() aniscrape.Fetcher {
	return NewLoggingFetcher(s.next.NewSession(), s.logger)
}
