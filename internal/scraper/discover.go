package scraper

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
)

// Discoverer enumerates film-detail URLs from the paginated program listing.
type Discoverer struct {
	fetcher  Fetcher
	base     *url.URL
	maxPages int
	log      *zap.Logger
}

// NewDiscoverer creates a Discoverer for the listing at
// {base}/program/films?page={n}. maxPages caps pagination as a safety limit
// against listings that never stop yielding pages.
func NewDiscoverer(fetcher Fetcher, baseURL string, maxPages int, log *zap.Logger) (*Discoverer, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if maxPages < 1 {
		maxPages = 25
	}
	return &Discoverer{fetcher: fetcher, base: base, maxPages: maxPages, log: log}, nil
}

// DiscoverFilms fetches listing pages sequentially from page 1 and collects
// every film-detail URL, deduplicated across pages. Discovery stops when a
// page fails to fetch (logged, treated as end of pagination), contributes no
// new URLs, or the page cap is reached. The returned slice is unordered.
// afterPage, when non-nil, runs after each fetched page (politeness delay).
func (d *Discoverer) DiscoverFilms(ctx context.Context, afterPage func()) []string {
	seen := make(map[string]struct{})

	for page := 1; page <= d.maxPages; page++ {
		pageURL := fmt.Sprintf("%s/program/films?page=%d", strings.TrimRight(d.base.String(), "/"), page)

		body, err := d.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			d.log.Warn("listing fetch failed, stopping discovery",
				zap.Int("page", page), zap.Error(err))
			break
		}

		added := d.collectFilmLinks(body, seen)
		d.log.Debug("listing page scanned",
			zap.Int("page", page), zap.Int("new_films", added))

		if afterPage != nil {
			afterPage()
		}
		if added == 0 {
			break
		}
	}

	urls := make([]string, 0, len(seen))
	for u := range seen {
		urls = append(urls, u)
	}
	return urls
}

// collectFilmLinks adds every film-detail link in the page to the working
// set and returns how many were new.
func (d *Discoverer) collectFilmLinks(body []byte, seen map[string]struct{}) int {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		d.log.Warn("listing page unparseable", zap.Error(err))
		return 0
	}

	added := 0
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !IsFilmDetailLink(href) {
			return
		}
		resolved := d.resolve(href)
		if resolved == "" {
			return
		}
		if _, ok := seen[resolved]; !ok {
			seen[resolved] = struct{}{}
			added++
		}
	})
	return added
}

// resolve strips any in-page fragment and resolves the href against the
// base URL.
func (d *Discoverer) resolve(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return d.base.ResolveReference(ref).String()
}
