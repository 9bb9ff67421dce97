package crawl

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"aniscrape"
)

// Pipeline fans a bounded pool of workers out over discovered entries.
// Each worker fetches the entry's detail page, resolves its episodes
// through a nested bounded pool, persists the combined record, and
// marks the entry complete. A failed entry is counted and skipped,
// never retried and never fatal to the run.
type Pipeline struct {
	sessions  aniscrape.Sessions
	extractor aniscrape.Extractor
	store     aniscrape.RecordStore
	progress  aniscrape.ProgressStore
	pacer     *Pacer
	stats     *Stats
	logger    *slog.Logger

	workers        int
	episodeWorkers int
	maxEpisodes    int
}

// NewPipeline creates a Pipeline. workers bounds concurrent entries;
// episodeWorkers bounds concurrent episode fetches within one entry.
func NewPipeline(sessions aniscrape.Sessions, extractor aniscrape.Extractor, store aniscrape.RecordStore, progress aniscrape.ProgressStore, pacer *Pacer, stats *Stats, logger *slog.Logger, workers, episodeWorkers, maxEpisodes int) *Pipeline {
	if workers < 1 {
		workers = 1
	}
	if episodeWorkers < 1 {
		episodeWorkers = 1
	}
	return &Pipeline{
		sessions:       sessions,
		extractor:      extractor,
		store:          store,
		progress:       progress,
		pacer:          pacer,
		stats:          stats,
		logger:         logger,
		workers:        workers,
		episodeWorkers: episodeWorkers,
		maxEpisodes:    maxEpisodes,
	}
}

// Run processes every entry. It returns an error only when the context
// is cancelled; per-entry failures are absorbed into the stats.
func (p *Pipeline) Run(ctx context.Context, entries []aniscrape.Anime) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	total := len(entries)
	for i, entry := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p.processEntry(ctx, entry, i+1, total)
			return nil
		})
	}
	return g.Wait()
}

func (p *Pipeline) processEntry(ctx context.Context, entry aniscrape.Anime, seq, total int) {
	if p.progress.Contains(entry.URL) {
		p.logger.Debug("already scraped, skipping", "title", entry.Title, "url", entry.URL)
		return
	}

	session := p.sessions.NewSession()
	defer session.Close()

	if err := p.pacer.Wait(ctx); err != nil {
		return
	}
	html, err := session.Fetch(ctx, entry.URL)
	if err != nil {
		p.stats.addFailure()
		p.logger.Warn("entry fetch failed",
			"seq", seq, "total", total, "title", entry.Title, "err", err)
		return
	}

	detail := p.extractor.ExtractAnimeDetail(html, entry.URL)
	if detail == nil {
		p.stats.addFailure()
		p.logger.Warn("entry page unparseable",
			"seq", seq, "total", total, "title", entry.Title)
		return
	}

	refs := detail.Episodes
	if p.maxEpisodes > 0 && len(refs) > p.maxEpisodes {
		refs = refs[:p.maxEpisodes]
	}

	episodes := p.resolveEpisodes(ctx, refs)

	rec := &aniscrape.AnimeRecord{
		Title:             entry.Title,
		URL:               entry.URL,
		Description:       detail.Description,
		Genres:            detail.Genres,
		Status:            detail.Status,
		Rating:            detail.Rating,
		TotalEpisodes:     len(episodes),
		AvailableEpisodes: countWithVideos(episodes),
		Episodes:          episodes,
		ScrapedAt:         time.Now().UTC(),
	}
	if rec.Genres == nil {
		rec.Genres = []string{}
	}

	if err := p.store.SaveRecord(ctx, rec); err != nil {
		p.stats.addFailure()
		p.logger.Error("record save failed", "title", entry.Title, "err", err)
		return
	}
	// Progress is recorded only after the record is on disk, so a
	// crash between the two re-scrapes the entry instead of losing it.
	if err := p.progress.Add(entry.URL); err != nil {
		p.logger.Error("progress update failed", "title", entry.Title, "err", err)
	}

	p.stats.addAnime(len(episodes))
	p.logger.Info("scraped",
		"seq", seq, "total", total, "title", entry.Title,
		"episodes", rec.TotalEpisodes, "with_videos", rec.AvailableEpisodes)
}

func countWithVideos(episodes []aniscrape.Episode) int {
	n := 0
	for _, ep := range episodes {
		if ep.HasVideos {
			n++
		}
	}
	return n
}
