package crawl

import "sync"

// Stats accumulates run counters across pipeline workers.
type Stats struct {
	mu             sync.Mutex
	animeScraped   int
	episodesFound  int
	videoURLsFound int
	failed         int
}

func (s *Stats) addAnime(episodes int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.animeScraped++
	s.episodesFound += episodes
}

func (s *Stats) addVideoURLs(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.videoURLsFound += n
}

func (s *Stats) addFailure() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failed++
}

// Snapshot is a point-in-time copy of the counters.
type Snapshot struct {
	AnimeScraped   int
	EpisodesFound  int
	VideoURLsFound int
	Failed         int
}

// Snapshot returns a copy of the current counters.
func (s *Stats) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{
		AnimeScraped:   s.animeScraped,
		EpisodesFound:  s.episodesFound,
		VideoURLsFound: s.videoURLsFound,
		Failed:         s.failed,
	}
}
