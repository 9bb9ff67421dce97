package crawl

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"aniscrape"
)

// Discoverer walks the catalog's list pages and accumulates the full
// entry list, deduplicated by URL in discovery order.
//
// The catalog exposes two list layouts. An az-list path partitions
// entries into letter buckets, each bucket paginated separately. A
// list-mode path is one paginated sequence. Quick mode fetches only
// the first page of the configured path.
type Discoverer struct {
	fetcher   aniscrape.Fetcher
	extractor aniscrape.Extractor
	pacer     *Pacer
	logger    *slog.Logger

	baseURL  string
	listPath string
	maxPages int
}

// NewDiscoverer creates a Discoverer. maxPages bounds pages per
// partition regardless of what the pagination markup claims.
func NewDiscoverer(fetcher aniscrape.Fetcher, extractor aniscrape.Extractor, pacer *Pacer, logger *slog.Logger, baseURL, listPath string, maxPages int) *Discoverer {
	return &Discoverer{
		fetcher:   fetcher,
		extractor: extractor,
		pacer:     pacer,
		logger:    logger,
		baseURL:   baseURL,
		listPath:  listPath,
		maxPages:  maxPages,
	}
}

// Discover returns every unique entry found. With quick set only the
// first page of the list is fetched. Partial results are returned even
// when later pages fail; only a failure of the very first fetch is an
// error.
func (d *Discoverer) Discover(ctx context.Context, quick bool) ([]aniscrape.Anime, error) {
	acc := newAccumulator()

	if quick {
		url := d.baseURL + d.listPath
		html, err := d.fetcher.Fetch(ctx, url)
		if err != nil {
			return nil, err
		}
		acc.merge(d.extractor.ExtractAnimeList(html, url))
		return acc.entries, nil
	}

	if strings.Contains(d.listPath, "/az-list") {
		return d.discoverLetters(ctx, acc)
	}
	return d.discoverPages(ctx, acc)
}

// discoverLetters walks letter buckets "." and "0-9" then "A" through
// "Z". A bucket whose first page fails to fetch is skipped, not fatal.
func (d *Discoverer) discoverLetters(ctx context.Context, acc *accumulator) ([]aniscrape.Anime, error) {
	letters := []string{".", "0-9"}
	for c := 'A'; c <= 'Z'; c++ {
		letters = append(letters, string(c))
	}

	for _, letter := range letters {
		if err := ctx.Err(); err != nil {
			return acc.entries, aniscrape.Errorf(aniscrape.EINTERNAL, "discovery interrupted: %v", err)
		}

		firstURL := fmt.Sprintf("%s%s?show=%s", d.baseURL, d.listPath, letter)
		html, err := d.fetcher.Fetch(ctx, firstURL)
		if err != nil {
			d.logger.Warn("letter fetch failed, skipping", "letter", letter, "err", err)
			continue
		}

		maxPages := min(d.extractor.MaxPageNumber(html), d.maxPages)
		d.logger.Info("fetching letter", "letter", letter, "pages", maxPages)
		acc.merge(d.extractor.ExtractAnimeList(html, firstURL))

		for page := 2; page <= maxPages; page++ {
			if err := d.pacer.Wait(ctx); err != nil {
				return acc.entries, aniscrape.Errorf(aniscrape.EINTERNAL, "discovery interrupted: %v", err)
			}
			pageURL := fmt.Sprintf("%s%spage/%d/?show=%s", d.baseURL, d.listPath, page, letter)
			if !d.mergePage(ctx, acc, pageURL, page) {
				break
			}
		}

		d.logger.Info("letter done", "letter", letter, "total", acc.len())
	}
	return acc.entries, nil
}

// discoverPages walks a single paginated sequence.
func (d *Discoverer) discoverPages(ctx context.Context, acc *accumulator) ([]aniscrape.Anime, error) {
	firstURL := d.baseURL + d.listPath
	html, err := d.fetcher.Fetch(ctx, firstURL)
	if err != nil {
		return nil, err
	}

	maxPages := min(d.extractor.MaxPageNumber(html), d.maxPages)
	d.logger.Info("detected pages", "pages", maxPages)
	acc.merge(d.extractor.ExtractAnimeList(html, firstURL))

	for page := 2; page <= maxPages; page++ {
		if err := d.pacer.Wait(ctx); err != nil {
			return acc.entries, aniscrape.Errorf(aniscrape.EINTERNAL, "discovery interrupted: %v", err)
		}
		pageURL := fmt.Sprintf("%s%spage/%d/", d.baseURL, d.listPath, page)
		if !d.mergePage(ctx, acc, pageURL, page) {
			break
		}
	}
	return acc.entries, nil
}

// mergePage fetches one follow-up page and merges its entries,
// reporting whether the walk should continue. A failed fetch, an empty
// extraction, or a page contributing nothing new all stop the walk:
// pagination markup overstates page counts often enough that reaching
// the claimed maximum cannot be the only exit.
func (d *Discoverer) mergePage(ctx context.Context, acc *accumulator, pageURL string, page int) bool {
	html, err := d.fetcher.Fetch(ctx, pageURL)
	if err != nil {
		d.logger.Warn("page fetch failed, stopping", "page", page, "err", err)
		return false
	}
	list := d.extractor.ExtractAnimeList(html, pageURL)
	if len(list) == 0 {
		d.logger.Info("page empty, stopping", "page", page)
		return false
	}
	added := acc.merge(list)
	d.logger.Info("page merged", "page", page, "new", added, "total", acc.len())
	return added > 0
}

// accumulator deduplicates entries by URL, preserving first-seen order.
type accumulator struct {
	seen    map[string]struct{}
	entries []aniscrape.Anime
}

func newAccumulator() *accumulator {
	return &accumulator{seen: make(map[string]struct{})}
}

// merge adds unseen entries and returns how many were new. Entries
// without a URL are dropped.
func (a *accumulator) merge(list []aniscrape.Anime) int {
	added := 0
	for _, entry := range list {
		if entry.URL == "" {
			continue
		}
		if _, ok := a.seen[entry.URL]; ok {
			continue
		}
		a.seen[entry.URL] = struct{}{}
		a.entries = append(a.entries, entry)
		added++
	}
	return added
}

func (a *accumulator) len() int {
	return len(a.entries)
}
