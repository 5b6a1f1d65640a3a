package pipeline

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/darrenkjr/filmharvest/internal/config"
	"github.com/darrenkjr/filmharvest/internal/film"
	"github.com/darrenkjr/filmharvest/internal/scraper"
)

const listingPage = `<html><body>
<a href="/program/film/echoes/">Echoes</a>
<a href="/program/film/night-shift/">Night Shift</a>
</body></html>`

const echoesPage = `<html><body>
<h1>Echoes</h1>
<a href="/program/search?director=R.%20Okafor">R. Okafor</a>
<p>Australia / 2025 / 104 mins / English</p>
<p>A slow-burn portrait of a coastal town where every resident hears a
different broadcast from the same abandoned radio tower.</p>
<div id="ticketing">
  <div class="py-3 text-sm">
    <span class="font-bold whitespace-nowrap">Sun 10 Aug</span>
    <span class="whitespace-nowrap">6:30pm</span>
    <span class="md:hidden">ACMI Cinema 1</span>
  </div>
</div>
</body></html>`

const nightShiftPage = `<html><body>
<h1>Night Shift</h1>
<p>Three paramedics cover the same inner-city beat over one long weekend,
trading the van and the radio and very little sleep.</p>
</body></html>`

const schedulePage = `<html><body>
<div class="schedule-grid">
  <div>ACMI Cinema 1
    <div>Screening 6:30pm <a href="/program/film/echoes/">Echoes</a></div>
  </div>
</div>
</body></html>`

const emptySchedulePage = `<html><body><div class="schedule-grid"></div></body></html>`

// festivalSite serves a two-film program: one listing page, two film pages
// and a schedule grid with a single session on the festival's first day.
func festivalSite(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/program/films", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, listingPage)
			return
		}
		fmt.Fprint(w, `<html><body>No more films.</body></html>`)
	})
	mux.HandleFunc("/program/film/echoes/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, echoesPage)
	})
	mux.HandleFunc("/program/film/night-shift/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, nightShiftPage)
	})
	mux.HandleFunc("/program/schedule", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("day") == "2025-08-10" {
			fmt.Fprint(w, schedulePage)
			return
		}
		fmt.Fprint(w, emptySchedulePage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		BaseURL:         baseURL,
		UserAgent:       "filmharvest-test",
		HTTPTimeout:     5 * time.Second,
		FestivalStart:   "2025-08-10",
		FestivalEnd:     "2025-08-11",
		MaxListingPages: 5,
		SynopsisPolicy:  config.SynopsisJoinAll,
		SessionSource:   config.SessionSourceSchedule,
		VenuePrefixes:   []string{"ACMI"},
	}
}

func newTestPipeline(t *testing.T, cfg *config.Config) *Pipeline {
	t.Helper()
	fetcher := scraper.NewClient(scraper.ClientOptions{
		UserAgent: cfg.UserAgent,
		Timeout:   cfg.HTTPTimeout,
	})
	p, err := New(cfg, fetcher, zap.NewNop(), WithSleeper(func(time.Duration) {}))
	require.NoError(t, err)
	return p
}

func TestPipelineExecuteScheduleSource(t *testing.T) {
	srv := festivalSite(t)
	p := newTestPipeline(t, testConfig(srv.URL))

	run, err := p.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, run.Films, 2)
	assert.Equal(t, "echoes", run.Films[0].FilmID)
	assert.Equal(t, "Echoes", run.Films[0].Title)
	assert.Equal(t, "2025", run.Films[0].Year)
	assert.Equal(t, "night-shift", run.Films[1].FilmID)

	require.Len(t, run.Sessions, 1)
	s := run.Sessions[0]
	assert.Equal(t, "2025-08-10", s.Date)
	assert.Equal(t, "echoes", s.FilmID)
	assert.Equal(t, "ACMI Cinema 1", s.Venue)
	assert.Equal(t, "6:30pm", s.Time)

	require.Len(t, run.Combined, 2)
	byID := map[string]film.CombinedRecord{}
	for _, rec := range run.Combined {
		byID[rec.FilmID] = rec
	}
	assert.Equal(t, "2025-08-10", byID["echoes"].SessionDate)
	assert.Equal(t, film.NoSessionsContext, byID["night-shift"].SessionContext)
}

func TestPipelineExecuteTicketPanelSource(t *testing.T) {
	srv := festivalSite(t)
	cfg := testConfig(srv.URL)
	cfg.SessionSource = config.SessionSourceTicketPanel
	p := newTestPipeline(t, cfg)

	run, err := p.Execute(context.Background())
	require.NoError(t, err)

	// Schedule pages are never fetched; sessions come from the panel.
	require.Len(t, run.Sessions, 1)
	s := run.Sessions[0]
	assert.Equal(t, "echoes", s.FilmID)
	assert.Equal(t, "ticket_panel", s.Method)
	assert.Equal(t, "ACMI Cinema 1", s.Venue)
	assert.Equal(t, "6:30pm", s.Time)
}

func TestPipelineExecuteBothSourcesCollapse(t *testing.T) {
	srv := festivalSite(t)
	cfg := testConfig(srv.URL)
	cfg.SessionSource = config.SessionSourceBoth
	p := newTestPipeline(t, cfg)

	run, err := p.Execute(context.Background())
	require.NoError(t, err)

	// Panel and grid describe the same screening; the composite key
	// collapses them and the panel row, scraped first, wins.
	require.Len(t, run.Sessions, 1)
	assert.Equal(t, "ticket_panel", run.Sessions[0].Method)
}

func TestPipelineExecuteSurvivesBrokenFilmPage(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/program/films", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("page") == "1" {
			fmt.Fprint(w, listingPage)
			return
		}
		fmt.Fprint(w, `<html><body></body></html>`)
	})
	mux.HandleFunc("/program/film/echoes/", func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "gone", http.StatusInternalServerError)
	})
	mux.HandleFunc("/program/film/night-shift/", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, nightShiftPage)
	})
	mux.HandleFunc("/program/schedule", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprint(w, emptySchedulePage)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	p := newTestPipeline(t, testConfig(srv.URL))
	run, err := p.Execute(context.Background())
	require.NoError(t, err)

	require.Len(t, run.Films, 1)
	assert.Equal(t, "night-shift", run.Films[0].FilmID)
}
