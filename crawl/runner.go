package crawl

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"aniscrape"
)

// Mode selects how much of the catalog a run covers.
type Mode string

const (
	// ModeQuick fetches one list page and a capped number of entries.
	ModeQuick Mode = "quick"
	// ModeFull walks every partition and page of the catalog.
	ModeFull Mode = "full"
)

// Config carries the knobs for one crawl run.
type Config struct {
	BaseURL  string
	ListPath string
	Mode     Mode

	// Limit truncates the entry list when positive. QuickLimit applies
	// instead in quick mode when Limit is zero.
	Limit      int
	QuickLimit int

	MaxEpisodes int
	MaxPages    int

	Workers        int
	EpisodeWorkers int
	Delay          time.Duration
}

// Runner wires discovery, the entry pipeline and the index builder
// into one run.
type Runner struct {
	sessions  aniscrape.Sessions
	extractor aniscrape.Extractor
	store     aniscrape.RecordStore
	progress  aniscrape.ProgressStore
	logger    *slog.Logger
	cfg       Config
}

// NewRunner creates a Runner.
func NewRunner(sessions aniscrape.Sessions, extractor aniscrape.Extractor, store aniscrape.RecordStore, progress aniscrape.ProgressStore, logger *slog.Logger, cfg Config) *Runner {
	return &Runner{
		sessions:  sessions,
		extractor: extractor,
		store:     store,
		progress:  progress,
		logger:    logger,
		cfg:       cfg,
	}
}

// Run discovers the entry list and executes the complete crawl,
// returning the final statistics.
func (r *Runner) Run(ctx context.Context) (*aniscrape.Statistics, error) {
	runID := uuid.NewString()
	begin := time.Now()
	pacer := NewPacer(r.cfg.Delay)

	r.logger.Info("crawl starting",
		"run_id", runID,
		"mode", r.cfg.Mode,
		"workers", r.cfg.Workers,
		"episode_workers", r.cfg.EpisodeWorkers)

	discoverSession := r.sessions.NewSession()
	discoverer := NewDiscoverer(discoverSession, r.extractor, pacer, r.logger, r.cfg.BaseURL, r.cfg.ListPath, r.cfg.MaxPages)
	entries, err := discoverer.Discover(ctx, r.cfg.Mode == ModeQuick)
	discoverSession.Close()
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, aniscrape.Errorf(aniscrape.ENOTFOUND, "no anime found at %s%s", r.cfg.BaseURL, r.cfg.ListPath)
	}
	r.logger.Info("discovery complete", "entries", len(entries))

	return r.process(ctx, runID, begin, pacer, entries)
}

// RunList crawls a supplied entry list, skipping discovery.
func (r *Runner) RunList(ctx context.Context, entries []aniscrape.Anime) (*aniscrape.Statistics, error) {
	if len(entries) == 0 {
		return nil, aniscrape.Errorf(aniscrape.EINVALID, "entry list is empty")
	}
	runID := uuid.NewString()
	begin := time.Now()

	r.logger.Info("crawl starting",
		"run_id", runID,
		"entries", len(entries),
		"workers", r.cfg.Workers,
		"episode_workers", r.cfg.EpisodeWorkers)

	return r.process(ctx, runID, begin, NewPacer(r.cfg.Delay), entries)
}

func (r *Runner) process(ctx context.Context, runID string, begin time.Time, pacer *Pacer, entries []aniscrape.Anime) (*aniscrape.Statistics, error) {
	entries = r.applyLimit(entries)

	stats := &Stats{}
	pipeline := NewPipeline(r.sessions, r.extractor, r.store, r.progress, pacer, stats, r.logger,
		r.cfg.Workers, r.cfg.EpisodeWorkers, r.cfg.MaxEpisodes)
	if err := pipeline.Run(ctx, entries); err != nil {
		return nil, aniscrape.Errorf(aniscrape.EINTERNAL, "crawl interrupted: %v", err)
	}

	result, err := NewIndexBuilder(r.store, r.logger).Build(ctx, runID)
	if err != nil {
		return nil, err
	}

	snap := stats.Snapshot()
	r.logger.Info("crawl complete",
		"run_id", runID,
		"anime_scraped", snap.AnimeScraped,
		"episodes_found", snap.EpisodesFound,
		"video_urls_found", snap.VideoURLsFound,
		"failed", snap.Failed,
		"duration", time.Since(begin))
	return result, nil
}

// applyLimit truncates entries: an explicit limit wins, else the quick
// limit in quick mode, else no truncation.
func (r *Runner) applyLimit(entries []aniscrape.Anime) []aniscrape.Anime {
	switch {
	case r.cfg.Limit > 0 && len(entries) > r.cfg.Limit:
		r.logger.Info("applied limit", "limit", r.cfg.Limit)
		return entries[:r.cfg.Limit]
	case r.cfg.Mode == ModeQuick && r.cfg.QuickLimit > 0 && len(entries) > r.cfg.QuickLimit:
		r.logger.Info("applied quick limit", "limit", r.cfg.QuickLimit)
		return entries[:r.cfg.QuickLimit]
	}
	return entries
}
