package crawl

import (
	"context"
	"sort"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	"aniscrape"
)

// resolveEpisodes fetches every episode page through a nested bounded
// pool and returns the resolved episodes sorted by number. A failed
// episode fetch yields an episode with no sources and FetchError set;
// it never aborts its siblings.
//
// Each episode task opens its own session: a Fetcher is exclusive to
// one worker, never shared across concurrent fetches.
func (p *Pipeline) resolveEpisodes(ctx context.Context, refs []aniscrape.EpisodeRef) []aniscrape.Episode {
	if len(refs) == 0 {
		return []aniscrape.Episode{}
	}

	episodes := make([]aniscrape.Episode, 0, len(refs))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(min(p.episodeWorkers, len(refs)))

	for _, ref := range refs {
		g.Go(func() error {
			session := p.sessions.NewSession()
			defer session.Close()

			ep := p.resolveEpisode(ctx, session, ref)
			mu.Lock()
			episodes = append(episodes, ep)
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait() // workers never return errors

	sortEpisodes(episodes)
	return episodes
}

func (p *Pipeline) resolveEpisode(ctx context.Context, session aniscrape.Fetcher, ref aniscrape.EpisodeRef) aniscrape.Episode {
	ep := aniscrape.Episode{
		Number:       ref.Number,
		URL:          ref.URL,
		Title:        ref.Title,
		VideoSources: []string{},
	}

	if err := p.pacer.Wait(ctx); err != nil {
		ep.FetchError = err.Error()
		return ep
	}
	html, err := session.Fetch(ctx, ref.URL)
	if err != nil {
		ep.FetchError = aniscrape.ErrorMessage(err)
		return ep
	}

	sources := p.extractor.ExtractVideoSources(html, ref.URL)
	if len(sources) > 0 {
		ep.VideoSources = sources
		ep.HasVideos = true
		p.stats.addVideoURLs(len(sources))
	}
	return ep
}

// sortEpisodes orders episodes by number, parsing the number as an
// unsigned integer and treating anything else ("12.5", "OVA") as 0.
// The sort is stable so non-numeric episodes keep discovery order
// among themselves at the front.
func sortEpisodes(episodes []aniscrape.Episode) {
	sort.SliceStable(episodes, func(i, j int) bool {
		return episodeSortKey(episodes[i].Number) < episodeSortKey(episodes[j].Number)
	})
}

func episodeSortKey(number string) int {
	if number == "" {
		return 0
	}
	for _, r := range number {
		if r < '0' || r > '9' {
			return 0
		}
	}
	n, err := strconv.Atoi(number)
	if err != nil {
		return 0
	}
	return n
}
