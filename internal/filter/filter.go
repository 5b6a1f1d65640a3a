// Package filter narrows a harvested dataset for the browse surface.
//
// Criteria combine with AND; within one criterion the listed values
// combine with OR. String matching is case-insensitive substring matching
// throughout, so "--genre doc" finds "Documentary".
package filter

import (
	"fmt"
	"strings"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// Filter holds the active browse criteria. A zero Filter matches every
// record.
type Filter struct {
	// Genres matches against the film's comma-joined genre set.
	Genres []string

	// Languages matches against the film's comma-joined language set.
	Languages []string

	// Strands matches against the film's comma-joined strand set.
	Strands []string

	// Venues matches against the session venue.
	Venues []string

	// Search is a free-text needle checked against title, director,
	// description and synopsis.
	Search string
}

// IsEmpty reports whether the filter has no active criteria.
func (f *Filter) IsEmpty() bool {
	return len(f.Genres) == 0 &&
		len(f.Languages) == 0 &&
		len(f.Strands) == 0 &&
		len(f.Venues) == 0 &&
		strings.TrimSpace(f.Search) == ""
}

// Matches reports whether a record passes every active criterion.
func (f *Filter) Matches(rec film.CombinedRecord) bool {
	if !matchesAny(rec.Genres, f.Genres) {
		return false
	}
	if !matchesAny(rec.Languages, f.Languages) {
		return false
	}
	if !matchesAny(rec.Strands, f.Strands) {
		return false
	}
	if !matchesAny(rec.SessionVenue, f.Venues) {
		return false
	}
	if needle := strings.ToLower(strings.TrimSpace(f.Search)); needle != "" {
		haystack := strings.ToLower(strings.Join([]string{
			rec.Title, rec.Director, rec.Description, rec.Synopsis,
		}, "\n"))
		if !strings.Contains(haystack, needle) {
			return false
		}
	}
	return true
}

// Apply returns the records that match. An empty filter returns the input
// slice unchanged.
func (f *Filter) Apply(records []film.CombinedRecord) []film.CombinedRecord {
	if f.IsEmpty() {
		return records
	}
	var out []film.CombinedRecord
	for _, rec := range records {
		if f.Matches(rec) {
			out = append(out, rec)
		}
	}
	return out
}

// String renders the active criteria for display above a results table.
func (f *Filter) String() string {
	if f.IsEmpty() {
		return "No active filters"
	}
	var parts []string
	if len(f.Genres) > 0 {
		parts = append(parts, fmt.Sprintf("Genres: %s", strings.Join(f.Genres, ", ")))
	}
	if len(f.Languages) > 0 {
		parts = append(parts, fmt.Sprintf("Languages: %s", strings.Join(f.Languages, ", ")))
	}
	if len(f.Strands) > 0 {
		parts = append(parts, fmt.Sprintf("Strands: %s", strings.Join(f.Strands, ", ")))
	}
	if len(f.Venues) > 0 {
		parts = append(parts, fmt.Sprintf("Venues: %s", strings.Join(f.Venues, ", ")))
	}
	if strings.TrimSpace(f.Search) != "" {
		parts = append(parts, fmt.Sprintf("Search: %q", f.Search))
	}
	return strings.Join(parts, " | ")
}

// matchesAny reports whether the field contains at least one wanted value,
// case-insensitively. No wanted values means the criterion is inactive.
func matchesAny(field string, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	fieldLower := strings.ToLower(field)
	for _, w := range wanted {
		if w = strings.ToLower(strings.TrimSpace(w)); w != "" && strings.Contains(fieldLower, w) {
			return true
		}
	}
	return false
}
