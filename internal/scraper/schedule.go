package scraper

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// ScheduleExtractor produces Session records from a schedule-grid document
// (one page per festival date). The grid's markup is too loose for a single
// structural query, so two independent sweeps both contribute rows and the
// deduplicator collapses the overlap downstream.
type ScheduleExtractor struct {
	venues *VenueMatcher
	base   *url.URL
}

// NewScheduleExtractor creates a grid extractor that resolves film links
// against baseURL and recognizes venues by the given name prefixes.
func NewScheduleExtractor(baseURL string, venuePrefixes []string) (*ScheduleExtractor, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	return &ScheduleExtractor{venues: NewVenueMatcher(venuePrefixes), base: base}, nil
}

// Extract runs both sweeps over the document for the given calendar date
// (already known from the schedule URL). A page with no recognizable grid
// yields zero sessions, never an error.
func (e *ScheduleExtractor) Extract(doc *goquery.Document, date string) []film.Session {
	sessions := e.linkContextSweep(doc, date)
	return append(sessions, e.timeSlotSweep(doc, date)...)
}

// linkContextSweep visits every film-detail link on the page and mines the
// concatenated text of up to four ancestor containers for a time and a
// venue token. Time and venue fall back to the Unknown sentinel; the first
// 200 characters of context are kept for diagnostics.
func (e *ScheduleExtractor) linkContextSweep(doc *goquery.Document, date string) []film.Session {
	var sessions []film.Session
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		if !IsFilmDetailLink(href) {
			return
		}
		filmURL := e.resolve(href)
		filmID := film.IDFromURL(filmURL)
		if filmID == "" {
			return
		}

		context := ancestorContext(sel)

		timeText := FirstTimeToken(context)
		if timeText == "" {
			timeText = film.UnknownTime
		}
		venue := e.venues.First(context)
		if venue == "" {
			venue = film.UnknownVenue
		}

		sessions = append(sessions, film.Session{
			Date:      date,
			FilmTitle: strings.TrimSpace(sel.Text()),
			FilmID:    filmID,
			FilmURL:   filmURL,
			Venue:     venue,
			Time:      timeText,
			Context:   truncateContext(context),
			Method:    "link_context",
		})
	})
	return sessions
}

// timeSlotSweep anchors on text nodes that are nothing but a time token
// (the grid's slot headers), then attaches every film-detail link nested in
// the anchor's container, searching the container's own text for a venue.
func (e *ScheduleExtractor) timeSlotSweep(doc *goquery.Document, date string) []film.Session {
	var sessions []film.Session
	doc.Find("*").Each(func(_ int, sel *goquery.Selection) {
		timeText := ownTimeToken(sel)
		if timeText == "" {
			return
		}

		containerText := normalizeText(sel.Text())
		venue := e.venues.First(containerText)
		if venue == "" {
			venue = film.UnknownVenue
		}

		sel.Find("a[href]").Each(func(_ int, link *goquery.Selection) {
			href, _ := link.Attr("href")
			if !IsFilmDetailLink(href) {
				return
			}
			filmURL := e.resolve(href)
			filmID := film.IDFromURL(filmURL)
			if filmID == "" {
				return
			}
			sessions = append(sessions, film.Session{
				Date:      date,
				FilmTitle: strings.TrimSpace(link.Text()),
				FilmID:    filmID,
				FilmURL:   filmURL,
				Venue:     venue,
				Time:      timeText,
				Method:    "time_slot",
			})
		})
	})
	return sessions
}

// ownTimeToken returns the trimmed text of the selection's first direct text
// node that is exactly a time token, or "". Child elements' text does not
// count: the anchor must own the slot header itself.
func ownTimeToken(sel *goquery.Selection) string {
	if len(sel.Nodes) == 0 {
		return ""
	}
	for c := sel.Nodes[0].FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.TextNode {
			continue
		}
		text := strings.TrimSpace(c.Data)
		if IsExactTimeToken(text) {
			return text
		}
	}
	return ""
}

// ancestorContext concatenates the visible text of up to four ancestor
// containers, nearest last, matching how a human would read the cell the
// link sits in.
func ancestorContext(sel *goquery.Selection) string {
	context := ""
	parent := sel.Parent()
	for level := 0; level < maxAncestorLevels && parent.Length() > 0; level++ {
		text := normalizeText(parent.Text())
		if text != "" {
			context = text + " " + context
		}
		parent = parent.Parent()
	}
	return strings.TrimSpace(context)
}

// normalizeText collapses horizontal whitespace but keeps line breaks:
// venue tokens terminate at a newline, so flattening them would let a match
// run across unrelated grid cells.
func normalizeText(s string) string {
	var lines []string
	for _, line := range strings.Split(s, "\n") {
		if collapsed := strings.Join(strings.Fields(line), " "); collapsed != "" {
			lines = append(lines, collapsed)
		}
	}
	return strings.Join(lines, "\n")
}

// truncateContext bounds a diagnostic context snippet to its first 200
// characters.
func truncateContext(s string) string {
	runes := []rune(s)
	if len(runes) <= maxContextLen {
		return s
	}
	return string(runes[:maxContextLen])
}

// resolve strips any in-page fragment and resolves the href against the
// base URL.
func (e *ScheduleExtractor) resolve(href string) string {
	if i := strings.IndexByte(href, '#'); i >= 0 {
		href = href[:i]
	}
	ref, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return e.base.ResolveReference(ref).String()
}
