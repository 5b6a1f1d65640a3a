package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/darrenkjr/filmharvest/internal/dataset"
	"github.com/darrenkjr/filmharvest/internal/pipeline"
	"github.com/darrenkjr/filmharvest/internal/scraper"
)

func newScrapeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scrape",
		Short: "Harvest the program site and write the CSV dataset",
		Args:  cobra.NoArgs,
		RunE:  runScrape,
	}
}

func runScrape(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return fmt.Errorf("building logger: %w", err)
	}
	defer log.Sync()

	fetcher := scraper.NewClient(scraper.ClientOptions{
		UserAgent:  cfg.UserAgent,
		Timeout:    cfg.HTTPTimeout,
		RetryCount: cfg.RetryCount,
	})

	p, err := pipeline.New(cfg, fetcher, log)
	if err != nil {
		return err
	}

	run, err := p.Execute(cmd.Context())
	if err != nil {
		return fmt.Errorf("harvest failed: %w", err)
	}

	paths, err := dataset.WriteAll(cfg.OutputDir, cfg.OutputBasename,
		run.Films, run.Sessions, run.Combined)
	if err != nil {
		return fmt.Errorf("writing dataset: %w", err)
	}

	log.Info("dataset written",
		zap.String("films", paths.Films),
		zap.String("sessions", paths.Sessions),
		zap.String("complete", paths.Complete),
		zap.String("summary", paths.Summary))

	fmt.Fprintf(cmd.OutOrStdout(),
		"Harvested %d films and %d sessions into %d records.\nDataset: %s\n",
		len(run.Films), len(run.Sessions), len(run.Combined), paths.Complete)
	return nil
}
