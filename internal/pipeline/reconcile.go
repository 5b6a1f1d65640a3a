package pipeline

import (
	"strings"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// Reconcile joins the film list with the session list into the final
// denormalized record set: one CombinedRecord per matched (film, session)
// pair, plus exactly one sessionless placeholder for every film with no
// match, so film coverage is never silently lost.
//
// Each session is assigned to at most one film: by exact film identifier
// when the identifier resolves, otherwise by case-insensitive title
// equality. When several films share a title, the first-discovered film
// claims the title key, so a session can never appear under two films.
// Sessions matching no known film are dropped.
func Reconcile(films []film.Film, sessions []film.Session) []film.CombinedRecord {
	byID := make(map[string]int, len(films))
	byTitle := make(map[string]int, len(films))
	for i, f := range films {
		if f.FilmID != "" {
			if _, ok := byID[f.FilmID]; !ok {
				byID[f.FilmID] = i
			}
		}
		if title := strings.ToLower(strings.TrimSpace(f.Title)); title != "" {
			if _, ok := byTitle[title]; !ok {
				byTitle[title] = i
			}
		}
	}

	matched := make([][]film.Session, len(films))
	for _, s := range sessions {
		if s.FilmID != "" {
			if i, ok := byID[s.FilmID]; ok {
				matched[i] = append(matched[i], s)
				continue
			}
		}
		if title := strings.ToLower(strings.TrimSpace(s.FilmTitle)); title != "" {
			if i, ok := byTitle[title]; ok {
				matched[i] = append(matched[i], s)
			}
		}
	}

	combined := make([]film.CombinedRecord, 0, len(films))
	for i, f := range films {
		if len(matched[i]) == 0 {
			combined = append(combined, film.Sessionless(f))
			continue
		}
		for _, s := range matched[i] {
			combined = append(combined, film.Combine(f, s))
		}
	}
	return combined
}
