package crawl_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aniscrape"
	"aniscrape/crawl"
	"aniscrape/mock"
)

func runnerConfig() crawl.Config {
	return crawl.Config{
		BaseURL:        "https://example.com",
		ListPath:       "/anime/list-mode/",
		Mode:           crawl.ModeQuick,
		QuickLimit:     20,
		MaxEpisodes:    9999,
		MaxPages:       5000,
		Workers:        2,
		EpisodeWorkers: 2,
	}
}

func TestRunner_Run(t *testing.T) {
	t.Parallel()

	const (
		listURL = "https://example.com/anime/list-mode/"
		urlA    = "https://example.com/anime/a/"
	)
	pages := map[string]string{
		listURL:        "list",
		urlA:           "detail",
		urlA + "ep-1/": "video",
	}
	extractor := &mock.Extractor{
		ExtractAnimeListFn: func(html, baseURL string) []aniscrape.Anime {
			return []aniscrape.Anime{{Title: "A", URL: urlA}}
		},
		ExtractAnimeDetailFn: func(html, baseURL string) *aniscrape.AnimeDetail {
			return &aniscrape.AnimeDetail{Episodes: []aniscrape.EpisodeRef{{Number: "1", URL: urlA + "ep-1/"}}}
		},
		ExtractVideoSourcesFn: func(html, baseURL string) []string {
			if html == "video" {
				return []string{"https://cdn.example.com/embed/1"}
			}
			return nil
		},
	}

	var wroteIndex, wroteStats bool
	store := &mock.RecordStore{
		WriteIndexFn: func(ctx context.Context, idx *aniscrape.Index) error {
			wroteIndex = true
			return nil
		},
		WriteStatisticsFn: func(ctx context.Context, s *aniscrape.Statistics) error {
			wroteStats = true
			return nil
		},
	}

	runner := crawl.NewRunner(&mock.Sessions{Fetcher: routedFetcher(pages, nil)}, extractor, store, &mock.ProgressStore{}, discardLogger(), runnerConfig())
	stats, err := runner.Run(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, stats.RunID)
	assert.Equal(t, 1, stats.TotalAnime)
	assert.Equal(t, 1, stats.TotalEpisodes)
	assert.Equal(t, 1, stats.TotalVideoSources)
	assert.True(t, wroteIndex)
	assert.True(t, wroteStats)
}

func TestRunner_RunList(t *testing.T) {
	t.Parallel()

	const urlA = "https://example.com/anime/a/"
	var listFetches int
	fetcher := &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (string, error) {
			if url == "https://example.com/anime/list-mode/" {
				listFetches++
			}
			return "detail", nil
		},
	}
	extractor := &mock.Extractor{
		ExtractAnimeDetailFn: func(html, baseURL string) *aniscrape.AnimeDetail {
			return &aniscrape.AnimeDetail{}
		},
	}
	store := &mock.RecordStore{
		WriteIndexFn:      func(ctx context.Context, idx *aniscrape.Index) error { return nil },
		WriteStatisticsFn: func(ctx context.Context, s *aniscrape.Statistics) error { return nil },
	}

	runner := crawl.NewRunner(&mock.Sessions{Fetcher: fetcher}, extractor, store, &mock.ProgressStore{}, discardLogger(), runnerConfig())
	stats, err := runner.RunList(context.Background(), []aniscrape.Anime{{Title: "A", URL: urlA}})
	require.NoError(t, err)

	assert.Equal(t, 1, stats.TotalAnime)
	assert.Zero(t, listFetches, "supplied list must skip discovery")

	_, err = runner.RunList(context.Background(), nil)
	assert.Equal(t, aniscrape.EINVALID, aniscrape.ErrorCode(err))
}

func TestRunner_Run_NoEntries(t *testing.T) {
	t.Parallel()

	pages := map[string]string{"https://example.com/anime/list-mode/": "empty"}
	extractor := &mock.Extractor{
		ExtractAnimeListFn: func(html, baseURL string) []aniscrape.Anime { return nil },
	}

	runner := crawl.NewRunner(&mock.Sessions{Fetcher: routedFetcher(pages, nil)}, extractor, &mock.RecordStore{}, &mock.ProgressStore{}, discardLogger(), runnerConfig())
	_, err := runner.Run(context.Background())
	assert.Equal(t, aniscrape.ENOTFOUND, aniscrape.ErrorCode(err))
}

func TestRunner_Run_AppliesLimits(t *testing.T) {
	t.Parallel()

	makeEntries := func(n int) []aniscrape.Anime {
		var out []aniscrape.Anime
		for i := 0; i < n; i++ {
			out = append(out, aniscrape.Anime{
				Title: fmt.Sprintf("A%d", i),
				URL:   fmt.Sprintf("https://example.com/anime/a%d/", i),
			})
		}
		return out
	}

	t.Run("quick limit", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractAnimeListFn: func(html, baseURL string) []aniscrape.Anime { return makeEntries(30) },
			ExtractAnimeDetailFn: func(html, baseURL string) *aniscrape.AnimeDetail {
				return &aniscrape.AnimeDetail{}
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "page", nil },
		}
		store := &mock.RecordStore{
			WriteIndexFn:      func(ctx context.Context, idx *aniscrape.Index) error { return nil },
			WriteStatisticsFn: func(ctx context.Context, s *aniscrape.Statistics) error { return nil },
		}

		runner := crawl.NewRunner(&mock.Sessions{Fetcher: fetcher}, extractor, store, &mock.ProgressStore{}, discardLogger(), runnerConfig())
		stats, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 20, stats.TotalAnime, "quick mode caps the entry list")
	})

	t.Run("explicit limit wins", func(t *testing.T) {
		t.Parallel()

		extractor := &mock.Extractor{
			ExtractAnimeListFn: func(html, baseURL string) []aniscrape.Anime { return makeEntries(30) },
			ExtractAnimeDetailFn: func(html, baseURL string) *aniscrape.AnimeDetail {
				return &aniscrape.AnimeDetail{}
			},
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (string, error) { return "page", nil },
		}
		store := &mock.RecordStore{
			WriteIndexFn:      func(ctx context.Context, idx *aniscrape.Index) error { return nil },
			WriteStatisticsFn: func(ctx context.Context, s *aniscrape.Statistics) error { return nil },
		}

		cfg := runnerConfig()
		cfg.Limit = 5
		runner := crawl.NewRunner(&mock.Sessions{Fetcher: fetcher}, extractor, store, &mock.ProgressStore{}, discardLogger(), cfg)
		stats, err := runner.Run(context.Background())
		require.NoError(t, err)
		assert.Equal(t, 5, stats.TotalAnime)
	})
}
