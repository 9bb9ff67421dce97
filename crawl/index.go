package crawl

import (
	"context"
	"log/slog"
	"math"
	"sort"
	"strings"

	"aniscrape"
)

// IndexBuilder reads every persisted record back and derives the index
// and statistics artifacts. It works from disk rather than in-memory
// results so a resumed run indexes records written by earlier runs too.
type IndexBuilder struct {
	store  aniscrape.RecordStore
	logger *slog.Logger
}

// NewIndexBuilder creates an IndexBuilder over store.
func NewIndexBuilder(store aniscrape.RecordStore, logger *slog.Logger) *IndexBuilder {
	return &IndexBuilder{store: store, logger: logger}
}

// Build aggregates all records and writes the index and statistics
// files. runID is stamped into the statistics.
func (b *IndexBuilder) Build(ctx context.Context, runID string) (*aniscrape.Statistics, error) {
	records, unparseable, err := b.store.LoadRecords(ctx)
	if err != nil {
		return nil, err
	}
	if unparseable > 0 {
		b.logger.Warn("skipped unparseable records", "count", unparseable)
	}

	idx := &aniscrape.Index{
		TotalAnime: len(records),
		AnimeList:  make([]aniscrape.IndexEntry, 0, len(records)),
	}
	for _, rec := range records {
		idx.AnimeList = append(idx.AnimeList, aniscrape.IndexEntry{
			Title:             rec.Title,
			URL:               rec.URL,
			TotalEpisodes:     rec.TotalEpisodes,
			AvailableEpisodes: rec.AvailableEpisodes,
		})
		idx.TotalEpisodes += rec.TotalEpisodes
		for _, ep := range rec.Episodes {
			idx.TotalVideoSources += len(ep.VideoSources)
		}
	}
	sort.Slice(idx.AnimeList, func(i, j int) bool {
		return strings.ToLower(idx.AnimeList[i].Title) < strings.ToLower(idx.AnimeList[j].Title)
	})

	stats := &aniscrape.Statistics{
		RunID:              runID,
		TotalAnime:         idx.TotalAnime,
		TotalEpisodes:      idx.TotalEpisodes,
		TotalVideoSources:  idx.TotalVideoSources,
		UnparseableRecords: unparseable,
	}
	if idx.TotalAnime > 0 {
		avg := float64(idx.TotalEpisodes) / float64(idx.TotalAnime)
		stats.AvgEpisodesPerAnime = math.Round(avg*10) / 10
	}

	if err := b.store.WriteIndex(ctx, idx); err != nil {
		return nil, err
	}
	if err := b.store.WriteStatistics(ctx, stats); err != nil {
		return nil, err
	}

	b.logger.Info("index written",
		"anime", idx.TotalAnime,
		"episodes", idx.TotalEpisodes,
		"video_sources", idx.TotalVideoSources)
	return stats, nil
}
