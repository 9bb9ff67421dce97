package aniscrape

import "context"

// RecordStore persists anime records and the derived index artifacts
// for the current snapshot generation.
type RecordStore interface {
	// SaveRecord writes one record. The record's file identity is
	// derived from its URL and title and is stable across runs.
	SaveRecord(ctx context.Context, rec *AnimeRecord) error

	// LoadRecords reads back every record in the snapshot. Files that
	// fail to parse are skipped; the second result is how many were.
	LoadRecords(ctx context.Context) ([]*AnimeRecord, int, error)

	// WriteIndex writes the index file at the snapshot root.
	WriteIndex(ctx context.Context, idx *Index) error

	// WriteStatistics writes the statistics file at the snapshot root.
	WriteStatistics(ctx context.Context, stats *Statistics) error
}

// ProgressStore is a durable set of completed entry URLs enabling
// resumable runs. Membership implies the entry's record is already on
// disk: callers add a URL only after its record write succeeded.
// Implementations must serialize concurrent Add calls.
type ProgressStore interface {
	Contains(id string) bool
	Add(id string) error
	Len() int
}

// Codec serializes output artifacts. The default is JSON; the seam
// exists so a token-oriented format can be swapped in without touching
// the stores.
type Codec interface {
	Marshal(v any) ([]byte, error)
	Unmarshal(data []byte, v any) error

	// Ext returns the file extension including the dot (".json").
	Ext() string
}
