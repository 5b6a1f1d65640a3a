package pipeline

import (
	"github.com/darrenkjr/filmharvest/internal/film"
)

// Deduplicate collapses sessions sharing the same (date, film id, venue,
// time) composite key, keeping the first record
// observed per key, in original discovery order. The schedule grid's two
// sweeps routinely produce near-duplicate rows; this is where they merge.
func Deduplicate(sessions []film.Session) []film.Session {
	seen := make(map[film.Key]struct{}, len(sessions))
	unique := make([]film.Session, 0, len(sessions))
	for _, s := range sessions {
		key := s.Key()
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, s)
	}
	return unique
}
