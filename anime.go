package aniscrape

import "time"

// Anime is one entry of the catalog list: a title and the URL of the
// anime's detail page. URL is the natural identifier; discovery
// deduplicates on it.
type Anime struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// Validate returns an error if the entry is unusable as pipeline input.
func (a *Anime) Validate() error {
	if a.URL == "" {
		return Errorf(EINVALID, "anime URL required")
	}
	if a.Title == "" {
		return Errorf(EINVALID, "anime title required")
	}
	return nil
}

// AnimeDetail holds the metadata extracted from one anime detail page,
// including the not-yet-resolved episode list. Description, Status and
// Rating are empty when the page does not expose them.
type AnimeDetail struct {
	Title       string
	Description string
	Genres      []string
	Status      string
	Rating      string
	Episodes    []EpisodeRef
}

// EpisodeRef is an episode discovered on a detail page, before its own
// page has been fetched. Number is kept as a string because sites label
// episodes freely ("12", "12.5", "OVA"). Title is optional.
type EpisodeRef struct {
	Number string
	URL    string
	Title  string
}

// Episode is a fully resolved episode: an EpisodeRef plus the video
// sources found on its page. A failed fetch yields an Episode with no
// sources and FetchError set; it never aborts sibling episodes.
type Episode struct {
	Number       string   `json:"episode_number"`
	URL          string   `json:"episode_url"`
	Title        string   `json:"episode_title,omitempty"`
	VideoSources []string `json:"video_sources"`
	HasVideos    bool     `json:"has_videos"`
	FetchError   string   `json:"fetch_error,omitempty"`
}

// AnimeRecord is the unit of persistence: one anime with its resolved
// episode list and derived counts. Records are immutable once written.
type AnimeRecord struct {
	Title             string    `json:"title"`
	URL               string    `json:"url"`
	Description       string    `json:"description,omitempty"`
	Genres            []string  `json:"genres"`
	Status            string    `json:"status,omitempty"`
	Rating            string    `json:"rating,omitempty"`
	TotalEpisodes     int       `json:"total_episodes"`
	AvailableEpisodes int       `json:"available_episodes"`
	Episodes          []Episode `json:"episodes"`
	ScrapedAt         time.Time `json:"scraped_at"`
}

// Validate returns an error if the record violates its invariants.
func (r *AnimeRecord) Validate() error {
	if r.URL == "" {
		return Errorf(EINVALID, "record URL required")
	}
	if r.Title == "" {
		return Errorf(EINVALID, "record title required")
	}
	if r.AvailableEpisodes > r.TotalEpisodes {
		return Errorf(EINVALID, "available episodes (%d) exceed total (%d)", r.AvailableEpisodes, r.TotalEpisodes)
	}
	return nil
}
