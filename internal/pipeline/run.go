package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/darrenkjr/filmharvest/internal/config"
	"github.com/darrenkjr/filmharvest/internal/film"
	"github.com/darrenkjr/filmharvest/internal/scraper"
)

// Run accumulates the results of one harvest. The three containers are
// owned exclusively by the run; records are created once and never mutated
// after creation.
type Run struct {
	Films    []film.Film
	Sessions []film.Session
	Combined []film.CombinedRecord
}

// Pipeline wires the discoverer and extractors into the sequential harvest
// flow. Construction fails only on unusable configuration; fetch-time
// failures are handled page by page during Execute.
type Pipeline struct {
	cfg      *config.Config
	fetcher  scraper.Fetcher
	films    *scraper.FilmExtractor
	panel    *scraper.PanelExtractor
	schedule *scraper.ScheduleExtractor
	log      *zap.Logger
	sleep    func(time.Duration)
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithSleeper replaces the politeness-delay sleeper. Tests pass a no-op:
// the delays bound request rate against the live site, nothing more.
func WithSleeper(sleep func(time.Duration)) Option {
	return func(p *Pipeline) {
		p.sleep = sleep
	}
}

// New creates a Pipeline for the given configuration.
func New(cfg *config.Config, fetcher scraper.Fetcher, log *zap.Logger, opts ...Option) (*Pipeline, error) {
	schedule, err := scraper.NewScheduleExtractor(cfg.BaseURL, cfg.VenuePrefixes)
	if err != nil {
		return nil, fmt.Errorf("building schedule extractor: %w", err)
	}
	p := &Pipeline{
		cfg:      cfg,
		fetcher:  fetcher,
		films:    scraper.NewFilmExtractor(cfg.SynopsisPolicy),
		panel:    scraper.NewPanelExtractor(cfg.FestivalYear()),
		schedule: schedule,
		log:      log,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Execute performs a complete harvest: discovery, film extraction, session
// extraction, deduplication and reconciliation. Per-page failures are
// logged and skipped; the returned Run holds whatever the site yielded.
func (p *Pipeline) Execute(ctx context.Context) (*Run, error) {
	run := &Run{}

	urls, err := p.discover(ctx)
	if err != nil {
		return nil, err
	}
	p.log.Info("film discovery complete", zap.Int("films", len(urls)))

	p.scrapeFilmPages(ctx, run, urls)
	p.log.Info("film pages scraped", zap.Int("films", len(run.Films)))

	if p.cfg.SessionSource != config.SessionSourceTicketPanel {
		p.scrapeSchedules(ctx, run)
	}

	run.Sessions = Deduplicate(run.Sessions)
	p.log.Info("sessions deduplicated", zap.Int("sessions", len(run.Sessions)))

	run.Combined = Reconcile(run.Films, run.Sessions)
	p.log.Info("records reconciled", zap.Int("combined", len(run.Combined)))

	return run, nil
}

func (p *Pipeline) discover(ctx context.Context) ([]string, error) {
	d, err := scraper.NewDiscoverer(p.fetcher, p.cfg.BaseURL, p.cfg.MaxListingPages, p.log)
	if err != nil {
		return nil, fmt.Errorf("building discoverer: %w", err)
	}
	urls := d.DiscoverFilms(ctx, func() { p.sleep(p.cfg.ListingDelay) })
	sort.Strings(urls)
	return urls, nil
}

// scrapeFilmPages visits every discovered film page, extracting the Film
// record and, when the ticket panel is a configured session source, the
// panel's sessions as well.
func (p *Pipeline) scrapeFilmPages(ctx context.Context, run *Run, urls []string) {
	usePanel := p.cfg.SessionSource == config.SessionSourceTicketPanel ||
		p.cfg.SessionSource == config.SessionSourceBoth

	for _, filmURL := range urls {
		body, err := p.fetcher.Fetch(ctx, filmURL)
		if err != nil {
			p.log.Warn("film page fetch failed, skipping",
				zap.String("url", filmURL), zap.Error(err))
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			p.log.Warn("film page unparseable, skipping",
				zap.String("url", filmURL), zap.Error(err))
			continue
		}

		f := p.films.Extract(doc, filmURL)
		run.Films = append(run.Films, f)
		p.log.Debug("film scraped",
			zap.String("film_id", f.FilmID), zap.String("title", f.Title))

		if usePanel {
			sessions := p.panel.Extract(doc, f)
			run.Sessions = append(run.Sessions, sessions...)
			p.log.Debug("ticket panel scraped",
				zap.String("film_id", f.FilmID), zap.Int("sessions", len(sessions)))
		}

		p.sleep(p.cfg.FilmDelay)
	}
}

// scrapeSchedules walks one schedule-grid page per festival date.
func (p *Pipeline) scrapeSchedules(ctx context.Context, run *Run) {
	base := strings.TrimRight(p.cfg.BaseURL, "/")
	for _, date := range p.cfg.FestivalDates() {
		pageURL := fmt.Sprintf("%s/program/schedule?day=%s&cstyle=0&venueloc=1", base, date)

		body, err := p.fetcher.Fetch(ctx, pageURL)
		if err != nil {
			p.log.Warn("schedule page fetch failed, skipping date",
				zap.String("date", date), zap.Error(err))
			p.sleep(p.cfg.ScheduleDelay)
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
		if err != nil {
			p.log.Warn("schedule page unparseable, skipping date",
				zap.String("date", date), zap.Error(err))
			p.sleep(p.cfg.ScheduleDelay)
			continue
		}

		sessions := p.schedule.Extract(doc, date)
		run.Sessions = append(run.Sessions, sessions...)
		p.log.Debug("schedule date scraped",
			zap.String("date", date), zap.Int("sessions", len(sessions)))

		p.sleep(p.cfg.ScheduleDelay)
	}
}
