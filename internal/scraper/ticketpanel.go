package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// Selectors for the ticketing panel embedded in film-detail pages. The
// markup is utility-class driven, so rows are identified by their fixed
// padding/typography signature rather than semantic classes.
const (
	ticketPanelSelector = "#ticketing, .ticketing-panel, [data-panel='ticketing']"
	ticketRowSelector   = ".py-3.text-sm, .session-row"
	boldDateSelector    = "span.font-bold.whitespace-nowrap"
	nowrapSpanSelector  = "span.whitespace-nowrap"
	mobileVenueSelector = "span.md\\:hidden"
	wideVenueSelector   = ".hidden.md\\:block"
	accessIconSelector  = ".access-icon"
	srOnlySelector      = ".sr-only"
	accessibilityPrefix = "Accessibility: "
)

// PanelExtractor produces Session records from the ticketing panel of a
// single film's page (the per-film page shape). Panel dates omit the year,
// so the festival year completes them.
type PanelExtractor struct {
	year int
}

// NewPanelExtractor creates a ticket-panel session extractor.
func NewPanelExtractor(festivalYear int) *PanelExtractor {
	return &PanelExtractor{year: festivalYear}
}

// Extract enumerates the panel's screening rows. A row is kept only when
// both its date and time were recovered. A document with no discoverable
// panel yields zero sessions, never an error.
func (e *PanelExtractor) Extract(doc *goquery.Document, f film.Film) []film.Session {
	panel := doc.Find(ticketPanelSelector).First()
	if panel.Length() == 0 {
		return nil
	}

	var sessions []film.Session
	panel.Find(ticketRowSelector).Each(func(_ int, row *goquery.Selection) {
		date := strings.TrimSpace(row.Find(boldDateSelector).First().Text())
		timeText := extractRowTime(row)
		if date == "" || timeText == "" {
			return
		}
		// Normalize to the schedule grid's ISO form so the same screening
		// seen from both page shapes shares one dedup key. Unparseable
		// dates stay as scraped.
		if parsed := film.ParseSessionDate(date, e.year); !parsed.IsZero() {
			date = parsed.Format("2006-01-02")
		}

		venue := extractRowVenue(row)
		if venue == "" {
			venue = film.UnknownVenue
		}

		sessions = append(sessions, film.Session{
			Date:      date,
			FilmTitle: f.Title,
			FilmID:    f.FilmID,
			FilmURL:   f.FilmURL,
			Venue:     venue,
			Time:      timeText,
			Context:   extractRowAccessibility(row),
			Method:    "ticket_panel",
		})
	})
	return sessions
}

// extractRowTime returns the text of the first non-wrapping span that reads
// like a clock time (a colon plus an am/pm marker).
func extractRowTime(row *goquery.Selection) string {
	var out string
	row.Find(nowrapSpanSelector).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		lower := strings.ToLower(text)
		if strings.Contains(text, ":") && (strings.Contains(lower, "am") || strings.Contains(lower, "pm")) {
			out = text
			return false
		}
		return true
	})
	return out
}

// extractRowVenue prefers the small-viewport venue span. When that span
// actually carries a date/time token it was the wrong element, so the
// wide-viewport venue container's first nested element is used instead,
// skipping accessibility markers.
func extractRowVenue(row *goquery.Selection) string {
	mobile := strings.TrimSpace(row.Find(mobileVenueSelector).First().Text())
	if mobile != "" && !LooksLikeDateTime(mobile) {
		return mobile
	}

	var out string
	row.Find(wideVenueSelector).First().Children().EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := strings.TrimSpace(sel.Text())
		if text == "" || strings.Contains(strings.ToLower(text), "access") {
			return true
		}
		out = text
		return false
	})
	return out
}

// extractRowAccessibility joins each access icon's screen-reader-only label
// into a single annotated note.
func extractRowAccessibility(row *goquery.Selection) string {
	var labels []string
	row.Find(accessIconSelector).Each(func(_ int, icon *goquery.Selection) {
		label := strings.TrimSpace(icon.Find(srOnlySelector).Text())
		if label != "" {
			labels = append(labels, label)
		}
	})
	if len(labels) == 0 {
		return ""
	}
	return accessibilityPrefix + strings.Join(labels, ", ")
}
