package scrape

import (
	"context"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// AvailableQuarters scrapes the EDGAR full-index directory listing and
// returns the set of "<year>/QTR<n>" paths that actually exist, so the index
// downloader does not probe quarters EDGAR never published.
func (c *Client) AvailableQuarters(ctx context.Context) (map[string]bool, error) {
	body, err := c.fetch(ctx, IndexURL+"/")
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	years := make([]string, 0)
	doc.Find("a").Each(func(i int, sel *goquery.Selection) {
		href, ok := sel.Attr("href")
		if !ok {
			return
		}
		name := strings.Trim(strings.TrimSuffix(href, "/"), "/")
		if len(name) == 4 && isDigits(name) {
			years = append(years, name)
		}
	})

	quarters := make(map[string]bool)
	for _, year := range years {
		page, err := c.fetch(ctx, IndexURL+"/"+year+"/")
		if err != nil {
			if ctx.Err() != nil {
				return nil, ctx.Err()
			}
			continue
		}
		ydoc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
		if err != nil {
			continue
		}
		ydoc.Find("a").Each(func(i int, sel *goquery.Selection) {
			href, ok := sel.Attr("href")
			if !ok {
				return
			}
			name := strings.Trim(strings.TrimSuffix(href, "/"), "/")
			if strings.HasPrefix(name, "QTR") {
				quarters[year+"/"+name] = true
			}
		})
	}
	return quarters, nil
}

func isDigits(s string) bool {
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return len(s) > 0
}
