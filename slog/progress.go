package slog

import (
	"log/slog"

	"aniscrape"
)

// Ensure LoggingProgressStore implements aniscrape.ProgressStore.
var _ aniscrape.ProgressStore = (*LoggingProgressStore)(nil)

// LoggingProgressStore wraps a ProgressStore with debug logging for
// completion marks.
type LoggingProgressStore struct {
	next   aniscrape.ProgressStore
	logger *slog.Logger
}

// NewLoggingProgressStore creates a new LoggingProgressStore.
func NewLoggingProgressStore(next aniscrape.ProgressStore, logger *slog.Logger) *LoggingProgressStore {
	return &LoggingProgressStore{next: next, logger: logger}
}

// Contains delegates to the wrapped store.
func (p *LoggingProgressStore) Contains(id string) bool {
	return p.next.Contains(id)
}

// Add delegates to the wrapped store and logs the completion.
func (p *LoggingProgressStore) Add(id string) (err error) {
	defer func() {
		p.logger.Debug("progress add",
			"id", id,
			"done", p.next.Len(),
			"err", err,
		)
	}()
	return p.next.Add(id)
}

// Len delegates to the wrapped store.
func (p *LoggingProgressStore) Len() int {
	return p.next.Len()
}
