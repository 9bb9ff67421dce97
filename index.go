package aniscrape

// IndexEntry is the index's summary projection of one persisted record.
type IndexEntry struct {
	Title             string `json:"title"`
	URL               string `json:"url"`
	TotalEpisodes     int    `json:"total_episodes"`
	AvailableEpisodes int    `json:"available_episodes"`
}

// Index summarizes every record in the current snapshot. AnimeList is
// sorted by case-insensitive title.
type Index struct {
	TotalAnime        int          `json:"total_anime"`
	TotalEpisodes     int          `json:"total_episodes"`
	TotalVideoSources int          `json:"total_video_sources"`
	AnimeList         []IndexEntry `json:"anime_list"`
}

// Statistics holds aggregate numbers for one crawl run.
type Statistics struct {
	RunID               string  `json:"run_id,omitempty"`
	TotalAnime          int     `json:"total_anime"`
	TotalEpisodes       int     `json:"total_episodes"`
	TotalVideoSources   int     `json:"total_video_sources"`
	AvgEpisodesPerAnime float64 `json:"avg_episodes_per_anime"`
	UnparseableRecords  int     `json:"unparseable_records,omitempty"`
}
