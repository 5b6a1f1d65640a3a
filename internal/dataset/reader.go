package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"

	"github.com/darrenkjr/filmharvest/internal/film"
)

// ReadComplete loads a complete-dataset CSV back into CombinedRecords.
// Columns are located by header name, so extra columns and reordering are
// tolerated; a file missing the film_url column is rejected as not being a
// complete dataset at all.
func ReadComplete(path string) ([]film.CombinedRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening dataset: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("reading dataset header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[name] = i
	}
	if _, ok := col["film_url"]; !ok {
		return nil, fmt.Errorf("%s: missing film_url column, not a complete dataset", path)
	}

	field := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var records []film.CombinedRecord
	for {
		row, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading dataset row: %w", err)
		}
		records = append(records, film.CombinedRecord{
			Film: film.Film{
				FilmURL:        field(row, "film_url"),
				FilmID:         field(row, "film_id"),
				Title:          field(row, "title"),
				Director:       field(row, "director"),
				Year:           field(row, "year"),
				Runtime:        field(row, "runtime"),
				Countries:      field(row, "countries"),
				Languages:      field(row, "languages"),
				Genres:         field(row, "genres"),
				PremiereStatus: field(row, "premiere_status"),
				Strands:        field(row, "strands"),
				Description:    field(row, "description"),
				Synopsis:       field(row, "synopsis"),
				ViewerAdvice:   field(row, "viewer_advice"),
				ReviewQuotes:   field(row, "review_quotes"),
			},
			SessionDate:    field(row, "session_date"),
			SessionTime:    field(row, "session_time"),
			SessionVenue:   field(row, "session_venue"),
			SessionContext: field(row, "session_context"),
		})
	}
	return records, nil
}
