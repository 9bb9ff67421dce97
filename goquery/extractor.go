// Package goquery implements content extraction for catalog pages
// using CSS selection. Every extractor is pure: it never performs I/O
// and never fails on malformed markup — missing structure yields an
// empty result.
//
// The list and detail extractors are short-circuiting priority chains:
// an ordered list of structural patterns is tried in sequence and the
// first non-empty result wins. Patterns are never merged, so a weaker
// heuristic cannot contaminate the output of a stronger one.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"aniscrape"
)

// Ensure Extractor implements aniscrape.Extractor at compile time.
var _ aniscrape.Extractor = (*Extractor)(nil)

// Extractor extracts catalog entries, anime details and video sources
// from raw HTML. It is stateless and safe for concurrent use.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// parse builds a goquery document from raw HTML. goquery's HTML parser
// is lenient; a nil document only occurs on reader errors, which cannot
// happen with a string reader, but the callers still tolerate it.
func parse(html string) *goquery.Document {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return doc
}

// resolveURL resolves href against baseURL. Unparseable inputs fall
// back to the raw href so the extractors never fail.
func resolveURL(baseURL, href string) string {
	base, err := url.Parse(baseURL)
	if err != nil {
		return href
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return href
	}
	return base.ResolveReference(ref).String()
}

// firstText returns the trimmed text of the first element matching any
// of the selector candidates, in candidate order.
func firstText(doc *goquery.Document, candidates []string) string {
	for _, sel := range candidates {
		if s := doc.Find(sel).First(); s.Length() > 0 {
			if text := strings.TrimSpace(s.Text()); text != "" {
				return text
			}
		}
	}
	return ""
}

// truncateRunes caps s at n runes without splitting a rune.
func truncateRunes(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
