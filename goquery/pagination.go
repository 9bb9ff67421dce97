package goquery

import (
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// MaxPageNumber reports the highest page number advertised by the
// page's div.pagination block: numbered page links, /page/N hrefs, and
// the current-page marker. Pages without pagination report 1.
func (e *Extractor) MaxPageNumber(html string) int {
	doc := parse(html)
	if doc == nil {
		return 1
	}

	pagination := doc.Find("div.pagination").First()
	if pagination.Length() == 0 {
		return 1
	}

	maxPage := 1
	pagination.Find("a.page-numbers").Each(func(_ int, link *goquery.Selection) {
		if n, err := strconv.Atoi(strings.TrimSpace(link.Text())); err == nil && n > maxPage {
			maxPage = n
		}
		if n := pageFromHref(link.AttrOr("href", "")); n > maxPage {
			maxPage = n
		}
	})

	current := pagination.Find("span.current").First()
	if n, err := strconv.Atoi(strings.TrimSpace(current.Text())); err == nil && n > maxPage {
		maxPage = n
	}

	return maxPage
}

// pageFromHref parses the page number out of a /page/N/ style href.
func pageFromHref(href string) int {
	idx := strings.LastIndex(href, "/page/")
	if idx == -1 {
		return 0
	}
	part := href[idx+len("/page/"):]
	part = strings.TrimSuffix(part, "/")
	if i := strings.IndexAny(part, "/?"); i != -1 {
		part = part[:i]
	}
	n, err := strconv.Atoi(part)
	if err != nil {
		return 0
	}
	return n
}
