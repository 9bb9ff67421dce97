package aniscrape

// Extractor extracts structured data from raw catalog HTML.
//
// Implementations must be pure: deterministic for identical input,
// no I/O, and tolerant of malformed markup — missing structure yields
// an empty result, never an error. All returned URLs are resolved
// against the supplied base URL.
type Extractor interface {
	// ExtractAnimeList finds catalog entries in a list page. It tries
	// an ordered sequence of structural patterns and returns the output
	// of the first pattern that yields anything; patterns are never
	// merged. Entries are deduplicated by URL, first seen wins.
	ExtractAnimeList(html string, baseURL string) []Anime

	// ExtractAnimeDetail extracts metadata and the episode list from an
	// anime detail page. Each metadata field resolves through its own
	// ordered selector candidates; the episode list short-circuits on
	// the first structural pattern that matches. Episodes with no
	// parseable number fall back to a 1-based running counter.
	ExtractAnimeDetail(html string, baseURL string) *AnimeDetail

	// ExtractVideoSources collects embedded video source URLs from an
	// episode page. Unlike the list and detail extractors it unions its
	// signal sources (iframes, script text, deferred-source attributes),
	// deduplicated by resolved URL in first-seen order.
	ExtractVideoSources(html string, baseURL string) []string

	// MaxPageNumber reports the highest page number advertised by the
	// page's pagination markup, or 1 when there is none.
	MaxPageNumber(html string) int
}
