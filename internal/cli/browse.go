package cli

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/darrenkjr/filmharvest/internal/calendar"
	"github.com/darrenkjr/filmharvest/internal/dataset"
	"github.com/darrenkjr/filmharvest/internal/film"
	"github.com/darrenkjr/filmharvest/internal/filter"
)

type browseFlags struct {
	dataset   string
	genres    []string
	languages []string
	strands   []string
	venues    []string
	search    string
	sessions  bool
	icsFile   string
	titles    []string
}

func newBrowseCmd() *cobra.Command {
	var flags browseFlags

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Filter and display a harvested dataset",
		Long: `browse reads a previously written complete dataset and renders matching
films as a table. With --sessions every screening row is shown; otherwise
one row per film. With --ics the selected films' sessions are exported as
an iCalendar file instead.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBrowse(cmd, flags)
		},
	}

	cmd.Flags().StringVar(&flags.dataset, "dataset", "", "Path to the complete dataset CSV (default from config)")
	cmd.Flags().StringSliceVar(&flags.genres, "genre", nil, "Filter by genre (repeatable)")
	cmd.Flags().StringSliceVar(&flags.languages, "language", nil, "Filter by language (repeatable)")
	cmd.Flags().StringSliceVar(&flags.strands, "strand", nil, "Filter by festival strand (repeatable)")
	cmd.Flags().StringSliceVar(&flags.venues, "venue", nil, "Filter by session venue (repeatable)")
	cmd.Flags().StringVar(&flags.search, "search", "", "Free-text search over title, director and synopsis")
	cmd.Flags().BoolVar(&flags.sessions, "sessions", false, "Show one row per screening instead of per film")
	cmd.Flags().StringVar(&flags.icsFile, "ics", "", "Write matching sessions to this iCalendar file")
	cmd.Flags().StringSliceVar(&flags.titles, "titles", nil, "Restrict the ICS export to these titles")

	return cmd
}

func runBrowse(cmd *cobra.Command, flags browseFlags) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	path := flags.dataset
	if path == "" {
		path = dataset.Paths(cfg.OutputDir, cfg.OutputBasename).Complete
	}
	records, err := dataset.ReadComplete(path)
	if err != nil {
		return err
	}

	f := &filter.Filter{
		Genres:    flags.genres,
		Languages: flags.languages,
		Strands:   flags.strands,
		Venues:    flags.venues,
		Search:    flags.search,
	}
	matched := f.Apply(records)

	if flags.icsFile != "" {
		return writeICS(cmd, flags, cfg.FestivalYear(), matched)
	}

	if !f.IsEmpty() {
		fmt.Fprintln(cmd.OutOrStdout(), f.String())
	}
	if flags.sessions {
		renderSessions(cmd, matched)
	} else {
		renderFilms(cmd, matched)
	}
	return nil
}

// writeICS exports the matched sessions, optionally narrowed to an explicit
// title shortlist, as an iCalendar file.
func writeICS(cmd *cobra.Command, flags browseFlags, year int, records []film.CombinedRecord) error {
	if len(flags.titles) > 0 {
		wanted := make(map[string]bool, len(flags.titles))
		for _, t := range flags.titles {
			wanted[strings.ToLower(strings.TrimSpace(t))] = true
		}
		var selected []film.CombinedRecord
		for _, rec := range records {
			if wanted[strings.ToLower(strings.TrimSpace(rec.Title))] {
				selected = append(selected, rec)
			}
		}
		records = selected
	}

	ics := calendar.GenerateICS(records, year, time.Local)
	if err := os.WriteFile(flags.icsFile, []byte(ics), 0o644); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Calendar written to %s\n", flags.icsFile)
	return nil
}

// renderFilms shows one row per film, collapsing the dataset's
// one-row-per-session shape by title.
func renderFilms(cmd *cobra.Command, records []film.CombinedRecord) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Title", "Director", "Year", "Runtime", "Genres", "Strands", "Sessions"})

	counts := map[string]int{}
	var order []film.CombinedRecord
	for _, rec := range records {
		key := strings.ToLower(rec.Title)
		if _, ok := counts[key]; !ok {
			order = append(order, rec)
			counts[key] = 0
		}
		if rec.SessionDate != "" {
			counts[key]++
		}
	}
	for _, rec := range order {
		t.AppendRow(table.Row{
			rec.Title, rec.Director, rec.Year, rec.Runtime,
			rec.Genres, rec.Strands, counts[strings.ToLower(rec.Title)],
		})
	}
	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "%d films\n", len(order))
}

// renderSessions shows one row per screening, skipping sessionless
// placeholder rows.
func renderSessions(cmd *cobra.Command, records []film.CombinedRecord) {
	t := newTable(cmd)
	t.AppendHeader(table.Row{"Date", "Time", "Venue", "Title", "Runtime"})

	shown := 0
	for _, rec := range records {
		if rec.SessionDate == "" {
			continue
		}
		t.AppendRow(table.Row{
			rec.SessionDate, rec.SessionTime, rec.SessionVenue,
			rec.Title, rec.Runtime,
		})
		shown++
	}
	t.Render()
	fmt.Fprintf(cmd.OutOrStdout(), "%d sessions\n", shown)
}

func newTable(cmd *cobra.Command) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	return t
}
