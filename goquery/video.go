package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// embedURLRe matches absolute URLs in script text that look like video
// embeds or players.
var embedURLRe = regexp.MustCompile(`(?i)https?://[^"'<>\s]+(?:embed|streaming|player|video)[^"'<>\s]*`)

// ExtractVideoSources collects embedded video source URLs from an
// episode page. Unlike the list and detail extractors this one unions
// three independent signals rather than short-circuiting:
//
//   - iframe src, data-src and data-lazy-src attributes
//   - embed-looking URLs inside inline script text
//   - any element carrying a data-src attribute
//
// Results are deduplicated by resolved absolute URL, preserving
// first-seen order.
func (e *Extractor) ExtractVideoSources(html string, baseURL string) []string {
	doc := parse(html)
	if doc == nil {
		return nil
	}

	var urls []string
	seen := make(map[string]bool)
	add := func(u string) {
		if u == "" || !strings.Contains(u, "http") || seen[u] {
			return
		}
		urls = append(urls, u)
		seen[u] = true
	}

	doc.Find("iframe").Each(func(_ int, iframe *goquery.Selection) {
		src := iframe.AttrOr("src", "")
		if src == "" {
			src = iframe.AttrOr("data-src", "")
		}
		if src == "" {
			src = iframe.AttrOr("data-lazy-src", "")
		}
		if src != "" {
			add(resolveURL(baseURL, src))
		}
	})

	doc.Find("script").Each(func(_ int, script *goquery.Selection) {
		for _, match := range embedURLRe.FindAllString(script.Text(), -1) {
			add(match)
		}
	})

	doc.Find("[data-src]").Each(func(_ int, elem *goquery.Selection) {
		if src := elem.AttrOr("data-src", ""); strings.Contains(src, "http") {
			add(resolveURL(baseURL, src))
		}
	})

	return urls
}
