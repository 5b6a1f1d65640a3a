package film

import (
	"strings"
)

const (
	// UnknownVenue is the sentinel used when a session's venue could not be
	// recovered from the page.
	UnknownVenue = "Unknown"

	// UnknownTime is the sentinel used when a session's time could not be
	// recovered from the page.
	UnknownTime = "Unknown"

	// NoSessionsContext marks a CombinedRecord that stands in for a film
	// with no discoverable screenings.
	NoSessionsContext = "No sessions found"
)

// Film represents one program entry scraped from a film-detail page.
// Absent fields are empty strings, never omitted.
type Film struct {
	FilmURL        string `json:"film_url"`
	FilmID         string `json:"film_id"`
	Title          string `json:"title"`
	Director       string `json:"director"`
	Year           string `json:"year"`
	Runtime        string `json:"runtime"`
	Countries      string `json:"countries"`
	Languages      string `json:"languages"`
	Genres         string `json:"genres"`
	PremiereStatus string `json:"premiere_status"`
	Strands        string `json:"strands"`
	Description    string `json:"description"`
	Synopsis       string `json:"synopsis"`
	ViewerAdvice   string `json:"viewer_advice"`
	ReviewQuotes   string `json:"review_quotes"`
}

// Session represents one scheduled screening instance. Date and Time carry
// the raw text as found on the page; normalization happens at consumption
// time (see ParseSessionDateTime).
type Session struct {
	Date      string `json:"date"`
	FilmTitle string `json:"film_title"`
	FilmID    string `json:"film_id"`
	FilmURL   string `json:"film_url"`
	Venue     string `json:"venue"`
	Time      string `json:"time"`
	Context   string `json:"context,omitempty"`
	Method    string `json:"extraction_method,omitempty"`
}

// Key identifies a session for deduplication. Two sessions with equal keys
// describe the same screening even when their context snippets differ.
type Key struct {
	Date   string
	FilmID string
	Venue  string
	Time   string
}

// Key returns the session's composite dedup key.
func (s Session) Key() Key {
	return Key{Date: s.Date, FilmID: s.FilmID, Venue: s.Venue, Time: s.Time}
}

// CombinedRecord is the join of exactly one Film with exactly one Session,
// or a sessionless placeholder. It is the unit written to the final dataset.
type CombinedRecord struct {
	Film
	SessionDate    string `json:"session_date"`
	SessionTime    string `json:"session_time"`
	SessionVenue   string `json:"session_venue"`
	SessionContext string `json:"session_context"`
}

// Combine copies a film's fields into a new CombinedRecord and overlays the
// session fields on top. The source Film is never mutated.
func Combine(f Film, s Session) CombinedRecord {
	return CombinedRecord{
		Film:           f,
		SessionDate:    s.Date,
		SessionTime:    s.Time,
		SessionVenue:   s.Venue,
		SessionContext: s.Context,
	}
}

// Sessionless returns the placeholder record for a film with no discoverable
// screenings. Session fields are empty except the context marker, so film
// coverage is never silently lost during the join.
func Sessionless(f Film) CombinedRecord {
	return CombinedRecord{
		Film:           f,
		SessionContext: NoSessionsContext,
	}
}

// IDFromURL derives a film's identity from the trailing path segment of its
// canonical URL. Fragments and trailing slashes are stripped first.
func IDFromURL(rawURL string) string {
	u := rawURL
	if i := strings.IndexByte(u, '#'); i >= 0 {
		u = u[:i]
	}
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndexByte(u, '/'); i >= 0 {
		u = u[i+1:]
	}
	return u
}

// AppendListItem builds the comma-joined set fields (countries, languages,
// genres, strands): insertion order is first-seen order and members are
// never duplicated.
func AppendListItem(list, item string) string {
	item = strings.TrimSpace(item)
	if item == "" {
		return list
	}
	if list == "" {
		return item
	}
	for _, member := range strings.Split(list, ",") {
		if strings.TrimSpace(member) == item {
			return list
		}
	}
	return list + ", " + item
}

// SplitList splits a comma-joined set field back into its members.
func SplitList(list string) []string {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	parts := strings.Split(list, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
