package goquery

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aniscrape"
)

// descriptionLimit caps extracted descriptions, matching the catalog
// records' flat-file budget rather than any markup property.
const descriptionLimit = 500

var (
	titleCandidates       = []string{"h1.entry-title", "h1", ".title", ".anime-title"}
	descriptionCandidates = []string{".entry-content", "[itemprop=description]", ".synopsis", ".description"}
	statusCandidates      = []string{".status", ".anime-status", "[itemprop=status]"}
	ratingCandidates      = []string{".rating strong", "[itemprop=ratingValue]", ".rating", ".score"}
)

var (
	epNumClassRe   = regexp.MustCompile(`(?i)num|number`)
	epTitleClassRe = regexp.MustCompile(`(?i)title|name`)
	epListClassRe  = regexp.MustCompile(`(?i)episode|eps`)
	epURLNumRe     = regexp.MustCompile(`(?i)episode[-_ ]?(\d+)`)
	epHrefRe       = regexp.MustCompile(`(?i)episode`)
	digitsRe       = regexp.MustCompile(`(\d+)`)
)

// ExtractAnimeDetail extracts metadata and the episode list from an
// anime detail page. Metadata fields each resolve through an ordered
// list of selector candidates, first match wins. The episode list
// short-circuits across three structural patterns: the theme's
// div.eplister container, episode-classed ul/ol lists, and finally any
// link whose URL mentions an episode.
func (e *Extractor) ExtractAnimeDetail(html string, baseURL string) *aniscrape.AnimeDetail {
	detail := &aniscrape.AnimeDetail{}
	doc := parse(html)
	if doc == nil {
		return detail
	}

	detail.Title = firstText(doc, titleCandidates)
	detail.Description = truncateRunes(firstText(doc, descriptionCandidates), descriptionLimit)
	detail.Status = firstText(doc, statusCandidates)
	detail.Rating = firstText(doc, ratingCandidates)
	detail.Genres = extractGenres(doc)

	patterns := []func(*goquery.Document, string) []aniscrape.EpisodeRef{
		extractEplister,
		extractEpisodeLists,
		extractEpisodeLinks,
	}
	for _, pattern := range patterns {
		if eps := pattern(doc, baseURL); len(eps) > 0 {
			detail.Episodes = eps
			break
		}
	}
	return detail
}

func extractGenres(doc *goquery.Document) []string {
	var genres []string
	seen := make(map[string]bool)

	doc.Find("a[href*='/genre/']").Each(func(_ int, link *goquery.Selection) {
		genre := strings.TrimSpace(link.Text())
		if genre == "" || seen[genre] {
			return
		}
		genres = append(genres, genre)
		seen[genre] = true
	})
	return genres
}

// extractEplister handles the theme's episode container. The number and
// title live in classed child elements of each anchor; a missing number
// falls back to the URL, then to a running counter.
func extractEplister(doc *goquery.Document, baseURL string) []aniscrape.EpisodeRef {
	eplister := doc.Find("div.eplister").First()
	if eplister.Length() == 0 {
		return nil
	}

	var eps []aniscrape.EpisodeRef
	eplister.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if href == "" {
			return
		}

		number := classedText(link, epNumClassRe)
		title := classedText(link, epTitleClassRe)
		if number == "" {
			number = numberFromURL(href, len(eps)+1)
		}

		eps = append(eps, aniscrape.EpisodeRef{
			Number: number,
			URL:    resolveURL(baseURL, href),
			Title:  title,
		})
	})
	return eps
}

// extractEpisodeLists handles ul/ol lists with an episode-like class.
func extractEpisodeLists(doc *goquery.Document, baseURL string) []aniscrape.EpisodeRef {
	var eps []aniscrape.EpisodeRef

	doc.Find("ul, ol").Each(func(_ int, list *goquery.Selection) {
		class, ok := list.Attr("class")
		if !ok || !epListClassRe.MatchString(class) {
			return
		}
		list.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href := link.AttrOr("href", "")
			lower := strings.ToLower(href)
			if href == "" || (!strings.Contains(lower, "episode") && !strings.Contains(lower, "ep")) {
				return
			}

			text := strings.TrimSpace(link.Text())
			number := ""
			if m := digitsRe.FindStringSubmatch(text); m != nil {
				number = m[1]
			} else {
				number = strconv.Itoa(len(eps) + 1)
			}
			title := ""
			if text != number {
				title = text
			}

			eps = append(eps, aniscrape.EpisodeRef{
				Number: number,
				URL:    resolveURL(baseURL, href),
				Title:  title,
			})
		})
	})
	return eps
}

// extractEpisodeLinks is the last resort: any anchor whose URL mentions
// an episode, deduplicated by href.
func extractEpisodeLinks(doc *goquery.Document, baseURL string) []aniscrape.EpisodeRef {
	var eps []aniscrape.EpisodeRef
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if href == "" || !epHrefRe.MatchString(href) || seen[href] {
			return
		}
		seen[href] = true

		eps = append(eps, aniscrape.EpisodeRef{
			Number: numberFromURL(href, len(eps)+1),
			URL:    resolveURL(baseURL, href),
			Title:  strings.TrimSpace(link.Text()),
		})
	})
	return eps
}

// classedText returns the trimmed text of the first div/span child
// whose class matches re.
func classedText(link *goquery.Selection, re *regexp.Regexp) string {
	text := ""
	link.Find("div, span").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		class, ok := s.Attr("class")
		if !ok || !re.MatchString(class) {
			return true
		}
		text = strings.TrimSpace(s.Text())
		return false
	})
	return text
}

// numberFromURL parses an episode number out of a URL, falling back to
// the supplied 1-based counter value.
func numberFromURL(href string, counter int) string {
	if m := epURLNumRe.FindStringSubmatch(href); m != nil {
		return m[1]
	}
	return strconv.Itoa(counter)
}
