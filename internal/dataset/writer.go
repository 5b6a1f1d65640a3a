package dataset

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// completeHeader is the canonical denormalized schema: every film column
// followed by the session columns. The browse and stats commands read this
// file back, so the names here are a compatibility contract.
var completeHeader = []string{
	"film_url", "film_id", "title", "director", "year", "runtime",
	"countries", "languages", "genres", "premiere_status", "strands",
	"description", "synopsis", "viewer_advice", "review_quotes",
	"session_date", "session_time", "session_venue", "session_context",
}

var filmsHeader = completeHeader[:15]

var sessionsHeader = []string{
	"session_date", "session_time", "session_venue",
	"film_id", "film_title", "film_url", "context", "method",
}

// summaryHeader is the analyst-facing projection: enough to pick a
// screening without scrolling past synopsis-length prose.
var summaryHeader = []string{
	"title", "director", "year", "runtime", "countries", "genres",
	"premiere_status", "session_date", "session_venue", "session_time",
	"film_url",
}

func filmRow(f film.Film) []string {
	return []string{
		f.FilmURL, f.FilmID, f.Title, f.Director, f.Year, f.Runtime,
		f.Countries, f.Languages, f.Genres, f.PremiereStatus, f.Strands,
		f.Description, f.Synopsis, f.ViewerAdvice, f.ReviewQuotes,
	}
}

func sessionRow(s film.Session) []string {
	return []string{
		s.Date, s.Time, s.Venue,
		s.FilmID, s.FilmTitle, s.FilmURL, s.Context, s.Method,
	}
}

func completeRow(rec film.CombinedRecord) []string {
	return append(filmRow(rec.Film),
		rec.SessionDate, rec.SessionTime, rec.SessionVenue, rec.SessionContext)
}

func summaryRow(rec film.CombinedRecord) []string {
	return []string{
		rec.Title, rec.Director, rec.Year, rec.Runtime, rec.Countries,
		rec.Genres, rec.PremiereStatus,
		rec.SessionDate, rec.SessionVenue, rec.SessionTime, rec.FilmURL,
	}
}

// OutputPaths names the files one harvest produces under dir with the
// given basename.
type OutputPaths struct {
	Films    string
	Sessions string
	Complete string
	Summary  string
}

// Paths computes the output file paths without writing anything.
func Paths(dir, basename string) OutputPaths {
	join := func(suffix string) string {
		return filepath.Join(dir, basename+suffix+".csv")
	}
	return OutputPaths{
		Films:    join("_films"),
		Sessions: join("_sessions"),
		Complete: join("_complete"),
		Summary:  join("_summary"),
	}
}

// WriteAll writes the films, sessions, complete and summary CSV files,
// creating dir if needed. Any failure aborts the whole write.
func WriteAll(dir, basename string, films []film.Film, sessions []film.Session, combined []film.CombinedRecord) (OutputPaths, error) {
	paths := Paths(dir, basename)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return paths, fmt.Errorf("creating output directory: %w", err)
	}

	if err := writeCSV(paths.Films, filmsHeader, len(films), func(i int) []string {
		return filmRow(films[i])
	}); err != nil {
		return paths, err
	}
	if err := writeCSV(paths.Sessions, sessionsHeader, len(sessions), func(i int) []string {
		return sessionRow(sessions[i])
	}); err != nil {
		return paths, err
	}
	if err := writeCSV(paths.Complete, completeHeader, len(combined), func(i int) []string {
		return completeRow(combined[i])
	}); err != nil {
		return paths, err
	}
	if err := writeCSV(paths.Summary, summaryHeader, len(combined), func(i int) []string {
		return summaryRow(combined[i])
	}); err != nil {
		return paths, err
	}
	return paths, nil
}

func writeCSV(path string, header []string, rows int, row func(int) []string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}

	w := csv.NewWriter(f)
	writeErr := w.Write(header)
	for i := 0; writeErr == nil && i < rows; i++ {
		writeErr = w.Write(row(i))
	}
	if writeErr == nil {
		w.Flush()
		writeErr = w.Error()
	}
	if writeErr != nil {
		f.Close()
		return fmt.Errorf("writing %s: %w", path, writeErr)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", path, err)
	}
	return nil
}
