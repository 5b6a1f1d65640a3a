package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darrenkjr/filmharvest/internal/film"
)

func TestDeduplicateCollapsesIdenticalKeys(t *testing.T) {
	sessions := []film.Session{
		{
			Date: "2025-08-10", FilmID: "echoes", FilmTitle: "Echoes",
			Venue: "ACMI Cinema 1", Time: "6:30pm",
			Context: "ACMI Cinema 1\n6:30pm Echoes", Method: "link_context",
		},
		{
			Date: "2025-08-10", FilmID: "echoes", FilmTitle: "Echoes",
			Venue: "ACMI Cinema 1", Time: "6:30pm",
			Context: "6:30pm", Method: "time_slot",
		},
		{
			Date: "2025-08-10", FilmID: "echoes", FilmTitle: "Echoes",
			Venue: "ACMI Cinema 1", Time: "9pm",
			Method: "time_slot",
		},
	}

	unique := Deduplicate(sessions)
	require.Len(t, unique, 2)

	// First record per key wins, context and all.
	assert.Equal(t, "link_context", unique[0].Method)
	assert.Equal(t, "ACMI Cinema 1\n6:30pm Echoes", unique[0].Context)
	assert.Equal(t, "9pm", unique[1].Time)
}

func TestDeduplicateKeepsDistinctSessions(t *testing.T) {
	sessions := []film.Session{
		{Date: "2025-08-10", FilmID: "echoes", Venue: "ACMI Cinema 1", Time: "6:30pm"},
		{Date: "2025-08-11", FilmID: "echoes", Venue: "ACMI Cinema 1", Time: "6:30pm"},
		{Date: "2025-08-10", FilmID: "echoes", Venue: "Forum Melbourne", Time: "6:30pm"},
		{Date: "2025-08-10", FilmID: "night-shift", Venue: "ACMI Cinema 1", Time: "6:30pm"},
	}

	unique := Deduplicate(sessions)
	assert.Equal(t, sessions, unique)
}

func TestDeduplicateEmpty(t *testing.T) {
	assert.Empty(t, Deduplicate(nil))
}
