package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/darrenkjr/filmharvest/internal/dataset"
	"github.com/darrenkjr/filmharvest/internal/film"
)

func newStatsCmd() *cobra.Command {
	var datasetPath string

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize a harvested dataset",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			path := datasetPath
			if path == "" {
				path = dataset.Paths(cfg.OutputDir, cfg.OutputBasename).Complete
			}
			records, err := dataset.ReadComplete(path)
			if err != nil {
				return err
			}
			renderStats(cmd, records)
			return nil
		},
	}

	cmd.Flags().StringVar(&datasetPath, "dataset", "", "Path to the complete dataset CSV (default from config)")
	return cmd
}

func renderStats(cmd *cobra.Command, records []film.CombinedRecord) {
	type filmFacts struct {
		director    bool
		description bool
		sessions    int
	}
	films := map[string]*filmFacts{}
	venueCounts := map[string]int{}
	sessions := 0

	for _, rec := range records {
		key := rec.FilmURL
		if key == "" {
			key = strings.ToLower(rec.Title)
		}
		facts, ok := films[key]
		if !ok {
			facts = &filmFacts{
				director:    rec.Director != "",
				description: rec.Description != "",
			}
			films[key] = facts
		}
		if rec.SessionDate != "" {
			sessions++
			facts.sessions++
			venueCounts[rec.SessionVenue]++
		}
	}

	withDirector, withDescription, withSessions := 0, 0, 0
	for _, facts := range films {
		if facts.director {
			withDirector++
		}
		if facts.description {
			withDescription++
		}
		if facts.sessions > 0 {
			withSessions++
		}
	}

	t := newTable(cmd)
	t.AppendHeader(table.Row{"Metric", "Value"})
	t.AppendRows([]table.Row{
		{"Films", len(films)},
		{"Sessions", sessions},
		{"Combined records", len(records)},
		{"Films with director", withDirector},
		{"Films with description", withDescription},
		{"Films with sessions", withSessions},
		{"Films without sessions", len(films) - withSessions},
	})
	t.Render()

	if len(venueCounts) == 0 {
		return
	}
	venues := make([]string, 0, len(venueCounts))
	for v := range venueCounts {
		venues = append(venues, v)
	}
	sort.Slice(venues, func(i, j int) bool {
		if venueCounts[venues[i]] != venueCounts[venues[j]] {
			return venueCounts[venues[i]] > venueCounts[venues[j]]
		}
		return venues[i] < venues[j]
	})

	fmt.Fprintln(cmd.OutOrStdout(), "\nSessions by venue:")
	vt := newTable(cmd)
	vt.AppendHeader(table.Row{"Venue", "Sessions"})
	for _, v := range venues {
		vt.AppendRow(table.Row{v, venueCounts[v]})
	}
	vt.Render()
}
