package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aniscrape"
)

// URL path segments that mark navigation links rather than anime pages.
var listSkipSegments = []string{"/genre/", "/tag/", "/type/", "/status/", "/list-mode"}

var (
	cardClassRe = regexp.MustCompile(`(?i)anime|card|item|movie`)
	animeSlugRe = regexp.MustCompile(`/anime/[^/]+/?$`)
)

// ExtractAnimeList finds catalog entries in a list page. Patterns are
// tried in order and the first one that yields entries wins:
//
//  1. list-mode markup: plain <li><a> rows linking into /anime/
//  2. card markup: article.bs > div.bsx (the theme's catalog cards)
//  3. generic cards: div/li with an anime/card/item/movie class
//  4. any link whose URL has the /anime/<slug> shape
//
// Entries are deduplicated by raw href within a pattern; URLs are
// resolved against baseURL before being returned.
func (e *Extractor) ExtractAnimeList(html string, baseURL string) []aniscrape.Anime {
	doc := parse(html)
	if doc == nil {
		return nil
	}

	patterns := []func(*goquery.Document, string) []aniscrape.Anime{
		extractListMode,
		extractThemeCards,
		extractGenericCards,
		extractAnimeLinks,
	}
	for _, pattern := range patterns {
		if list := pattern(doc, baseURL); len(list) > 0 {
			return list
		}
	}
	return nil
}

// extractListMode handles the /anime/list-mode/ page, which lists every
// anime as a plain <li><a> row.
func extractListMode(doc *goquery.Document, baseURL string) []aniscrape.Anime {
	var list []aniscrape.Anime
	seen := make(map[string]bool)

	doc.Find("li").Each(func(_ int, li *goquery.Selection) {
		link := li.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href := link.AttrOr("href", "")
		// Only actual anime URLs, not categories or genres.
		if !strings.Contains(href, "/anime/") || strings.Count(href, "/") < 4 {
			return
		}
		title := strings.TrimSpace(link.Text())
		if len(title) <= 1 || seen[href] {
			return
		}
		lower := strings.ToLower(href)
		for _, skip := range listSkipSegments {
			if strings.Contains(lower, skip) {
				return
			}
		}
		list = append(list, aniscrape.Anime{Title: title, URL: resolveURL(baseURL, href)})
		seen[href] = true
	})
	return list
}

// extractThemeCards handles the theme's card grid: article.bs wrapping
// div.bsx with a single anchor. The title lives in the anchor's title
// attribute, falling back to a nested heading.
func extractThemeCards(doc *goquery.Document, baseURL string) []aniscrape.Anime {
	var list []aniscrape.Anime
	seen := make(map[string]bool)

	doc.Find("article.bs").Each(func(_ int, article *goquery.Selection) {
		link := article.Find("div.bsx a").First()
		if link.Length() == 0 {
			return
		}
		href := link.AttrOr("href", "")
		title := link.AttrOr("title", "")
		if title == "" {
			title = strings.TrimSpace(link.Find("h2, h3, span").First().Text())
		}
		if href == "" || title == "" || seen[href] {
			return
		}
		list = append(list, aniscrape.Anime{Title: title, URL: resolveURL(baseURL, href)})
		seen[href] = true
	})
	return list
}

// extractGenericCards handles unknown layouts with card-like containers.
func extractGenericCards(doc *goquery.Document, baseURL string) []aniscrape.Anime {
	var list []aniscrape.Anime
	seen := make(map[string]bool)

	doc.Find("div, li").Each(func(_ int, card *goquery.Selection) {
		class, ok := card.Attr("class")
		if !ok || !cardClassRe.MatchString(class) {
			return
		}
		link := card.Find("a[href]").First()
		if link.Length() == 0 {
			return
		}
		href := link.AttrOr("href", "")
		title := link.AttrOr("title", "")
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if !strings.Contains(href, "/anime/") || title == "" || seen[href] {
			return
		}
		list = append(list, aniscrape.Anime{Title: title, URL: resolveURL(baseURL, href)})
		seen[href] = true
	})
	return list
}

// extractAnimeLinks is the last resort: any anchor whose URL looks like
// an anime page.
func extractAnimeLinks(doc *goquery.Document, baseURL string) []aniscrape.Anime {
	var list []aniscrape.Anime
	seen := make(map[string]bool)

	doc.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
		href := link.AttrOr("href", "")
		if !animeSlugRe.MatchString(href) || seen[href] {
			return
		}
		title := link.AttrOr("title", "")
		if title == "" {
			title = strings.TrimSpace(link.Text())
		}
		if len(title) <= 2 {
			return
		}
		list = append(list, aniscrape.Anime{Title: title, URL: resolveURL(baseURL, href)})
		seen[href] = true
	})
	return list
}
