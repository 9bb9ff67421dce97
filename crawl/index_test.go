package crawl_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniscrape"
	"aniscrape/crawl"
	"aniscrape/mock"
)

func record(title, url string, total, available int, sourcesPerEpisode int) *aniscrape.AnimeRecord {
	episodes := make([]aniscrape.Episode, total)
	for i := range episodes {
		sources := make([]string, 0, sourcesPerEpisode)
		for j := 0; j < sourcesPerEpisode; j++ {
			sources = append(sources, "https://cdn.example.com/embed/")
		}
		episodes[i] = aniscrape.Episode{VideoSources: sources, HasVideos: sourcesPerEpisode > 0}
	}
	return &aniscrape.AnimeRecord{
		Title:             title,
		URL:               url,
		TotalEpisodes:     total,
		AvailableEpisodes: available,
		Episodes:          episodes,
	}
}

func TestIndexBuilder_Build(t *testing.T) {
	t.Parallel()

	var written *aniscrape.Index
	store := &mock.RecordStore{
		LoadRecordsFn: func(ctx context.Context) ([]*aniscrape.AnimeRecord, int, error) {
			return []*aniscrape.AnimeRecord{
				record("zeta", "https://example.com/anime/zeta/", 2, 2, 1),
				record("Alpha", "https://example.com/anime/alpha/", 4, 3, 2),
			}, 0, nil
		},
		WriteIndexFn: func(ctx context.Context, idx *aniscrape.Index) error {
			written = idx
			return nil
		},
		WriteStatisticsFn: func(ctx context.Context, stats *aniscrape.Statistics) error {
			return nil
		},
	}

	stats, err := crawl.NewIndexBuilder(store, discardLogger()).Build(context.Background(), "run-1")
	require.NoError(t, err)

	require.NotNil(t, written)
	assert.Equal(t, 2, written.TotalAnime)
	assert.Equal(t, 6, written.TotalEpisodes)
	assert.Equal(t, 10, written.TotalVideoSources)

	// Sorted case-insensitively by title.
	require.Len(t, written.AnimeList, 2)
	assert.Equal(t, "Alpha", written.AnimeList[0].Title)
	assert.Equal(t, "zeta", written.AnimeList[1].Title)

	assert.Equal(t, "run-1", stats.RunID)
	assert.Equal(t, 2, stats.TotalAnime)
	assert.Equal(t, 6, stats.TotalEpisodes)
	assert.Equal(t, 10, stats.TotalVideoSources)
	assert.InDelta(t, 3.0, stats.AvgEpisodesPerAnime, 0.001)
}

func TestIndexBuilder_Build_Empty(t *testing.T) {
	t.Parallel()

	store := &mock.RecordStore{
		WriteIndexFn:      func(ctx context.Context, idx *aniscrape.Index) error { return nil },
		WriteStatisticsFn: func(ctx context.Context, stats *aniscrape.Statistics) error { return nil },
	}

	stats, err := crawl.NewIndexBuilder(store, discardLogger()).Build(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Zero(t, stats.TotalAnime)
	assert.Zero(t, stats.AvgEpisodesPerAnime)
}

func TestIndexBuilder_Build_CountsUnparseable(t *testing.T) {
	t.Parallel()

	store := &mock.RecordStore{
		LoadRecordsFn: func(ctx context.Context) ([]*aniscrape.AnimeRecord, int, error) {
			return []*aniscrape.AnimeRecord{
				record("A", "https://example.com/anime/a/", 1, 1, 1),
			}, 2, nil
		},
		WriteIndexFn:      func(ctx context.Context, idx *aniscrape.Index) error { return nil },
		WriteStatisticsFn: func(ctx context.Context, stats *aniscrape.Statistics) error { return nil },
	}

	stats, err := crawl.NewIndexBuilder(store, discardLogger()).Build(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, 2, stats.UnparseableRecords)
	assert.Equal(t, 1, stats.TotalAnime)
}
