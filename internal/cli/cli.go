package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/darrenkjr/filmharvest/internal/config"
)

var (
	flagConfig  string
	flagVerbose bool
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "filmharvest",
		Short: "Harvest a film festival's program into a browsable CSV dataset",
		Long: `filmharvest scrapes a festival's program site, reconciles films with
their screening sessions and writes the result as CSV files that the
browse and stats commands can query offline.`,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config file (default ./filmharvest.yaml)")
	cmd.PersistentFlags().BoolVar(&flagVerbose, "verbose", false, "Enable verbose logging")

	cmd.AddCommand(newScrapeCmd())
	cmd.AddCommand(newBrowseCmd())
	cmd.AddCommand(newStatsCmd())

	return cmd
}

// loadConfig reads the run configuration honoring the --config flag.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}
	return cfg, nil
}

// newLogger builds the process logger. Verbose runs get the development
// console encoder, everything else structured JSON.
func newLogger() (*zap.Logger, error) {
	if flagVerbose {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}
