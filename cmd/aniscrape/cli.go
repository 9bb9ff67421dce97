package main

import "time"

// CLI defines the command-line surface. Every flag can also be set
// through an ANISCRAPE_ environment variable.
type CLI struct {
	BaseURL  string `help:"Catalog base URL." default:"https://zoroto.com.in"`
	ListPath string `help:"Discovery path under the base URL." default:"/anime/list-mode/"`
	Mode     string `help:"Run mode: one first page or the whole catalog." enum:"quick,full" default:"quick"`

	Limit       int `help:"Maximum entries to scrape, 0 for no limit." default:"0"`
	QuickLimit  int `help:"Entry cap applied in quick mode." default:"20"`
	MaxEpisodes int `help:"Maximum episodes fetched per entry." default:"9999"`
	MaxPages    int `help:"Maximum list pages walked per partition." default:"5000"`

	Workers        int           `help:"Concurrent entries." default:"7"`
	EpisodeWorkers int           `help:"Concurrent episode fetches per entry." default:"5"`
	Delay          time.Duration `help:"Minimum delay between requests." default:"300ms"`
	Timeout        time.Duration `help:"Per-request timeout." default:"30s"`

	Input    string `help:"JSON file of {title, url} entries to scrape instead of discovering." type:"existingfile"`
	Output   string `help:"Output base directory." default:"scraped_data"`
	Format   string `help:"Output format." enum:"json" default:"json"`
	NoRotate bool   `help:"Keep writing into the current snapshot instead of rotating."`
	Resume   bool   `help:"Resume the current snapshot, skipping completed entries."`
	Verbose  bool   `help:"Enable debug logging."`
}
