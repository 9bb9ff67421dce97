// Command aniscrape crawls an anime catalog site into one JSON record
// per anime plus a derived index, under a rotating output directory.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/alecthomas/kong"

	"aniscrape"
	"aniscrape/crawl"
	"aniscrape/fs"
	"aniscrape/goquery"
	anihttp "aniscrape/http"
	aslog "aniscrape/slog"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct{}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{}
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("aniscrape"),
		kong.Description("Crawl an anime catalog site into structured JSON records"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.DefaultEnvars("ANISCRAPE"),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	level := slog.LevelInfo
	if cli.Verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	// Wire persistence. Resume reuses the current snapshot; otherwise
	// rotation is on unless explicitly disabled.
	snap := fs.NewSnapshot(cli.Output)
	if err := snap.Prepare(!cli.NoRotate && !cli.Resume); err != nil {
		return err
	}
	store := fs.NewStore(snap, fs.NewJSONCodec())
	progress, err := fs.OpenProgress(snap, logger)
	if err != nil {
		return err
	}

	// Wire fetching. The pool is sized for both worker levels running
	// at once.
	pool := anihttp.NewPool(cli.Workers*cli.EpisodeWorkers, anihttp.WithTimeout(cli.Timeout))
	defer pool.Close()

	runner := crawl.NewRunner(
		aslog.NewLoggingSessions(pool, logger),
		goquery.NewExtractor(),
		store,
		aslog.NewLoggingProgressStore(progress, logger),
		logger,
		crawl.Config{
			BaseURL:        cli.BaseURL,
			ListPath:       cli.ListPath,
			Mode:           crawl.Mode(cli.Mode),
			Limit:          cli.Limit,
			QuickLimit:     cli.QuickLimit,
			MaxEpisodes:    cli.MaxEpisodes,
			MaxPages:       cli.MaxPages,
			Workers:        cli.Workers,
			EpisodeWorkers: cli.EpisodeWorkers,
			Delay:          cli.Delay,
		},
	)

	var stats *aniscrape.Statistics
	if cli.Input != "" {
		entries, err := loadEntries(cli.Input)
		if err != nil {
			return err
		}
		stats, err = runner.RunList(ctx, entries)
		if err != nil {
			return err
		}
	} else {
		stats, err = runner.Run(ctx)
		if err != nil {
			return err
		}
	}

	fmt.Fprintf(stdout, "Scraped %d anime, %d episodes, %d video sources (avg %.1f episodes per anime)\n",
		stats.TotalAnime, stats.TotalEpisodes, stats.TotalVideoSources, stats.AvgEpisodesPerAnime)
	fmt.Fprintf(stdout, "Output: %s\n", snap.Dir())
	return nil
}

// loadEntries reads a JSON array of {title, url} pairs.
func loadEntries(path string) ([]aniscrape.Anime, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read entry list: %w", err)
	}
	var entries []aniscrape.Anime
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse entry list %s: %w", path, err)
	}
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, err
		}
	}
	return entries, nil
}
