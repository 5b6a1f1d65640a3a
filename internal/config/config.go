// Package config provides run configuration for the harvester.
//
// Configuration is loaded from an optional YAML file and FILMHARVEST_*
// environment variables via viper, then validated before the pipeline is
// constructed. Defaults target the Melbourne International Film Festival
// program site but every site-specific knob (base URL, festival date range,
// venue names) is overridable.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Synopsis policies. The two extraction variants in the wild disagreed on
// how the long-form synopsis is derived; the policy is now a single explicit
// choice made once at pipeline construction.
const (
	// SynopsisJoinAll joins every qualifying paragraph with a space.
	SynopsisJoinAll = "join-all"
	// SynopsisSecondParagraph takes exactly the second qualifying paragraph.
	SynopsisSecondParagraph = "second-paragraph"
)

// Session discovery sources.
const (
	// SessionSourceSchedule walks the per-date schedule-grid pages. This is
	// the canonical path.
	SessionSourceSchedule = "schedule"
	// SessionSourceTicketPanel reads the ticketing panel embedded in each
	// film-detail page.
	SessionSourceTicketPanel = "ticket-panel"
	// SessionSourceBoth runs both and lets the deduplicator collapse the
	// overlap.
	SessionSourceBoth = "both"
)

const dateLayout = "2006-01-02"

// Config holds every knob the pipeline reads. Delays are politeness
// throttles only; tests set them to zero.
type Config struct {
	BaseURL   string `mapstructure:"base_url"`
	UserAgent string `mapstructure:"user_agent"`

	HTTPTimeout time.Duration `mapstructure:"http_timeout"`
	RetryCount  int           `mapstructure:"retry_count"`

	FestivalStart string `mapstructure:"festival_start"`
	FestivalEnd   string `mapstructure:"festival_end"`

	MaxListingPages int `mapstructure:"max_listing_pages"`

	ListingDelay  time.Duration `mapstructure:"listing_delay"`
	FilmDelay     time.Duration `mapstructure:"film_delay"`
	ScheduleDelay time.Duration `mapstructure:"schedule_delay"`

	SynopsisPolicy string   `mapstructure:"synopsis_policy"`
	SessionSource  string   `mapstructure:"session_source"`
	VenuePrefixes  []string `mapstructure:"venue_prefixes"`

	OutputDir      string `mapstructure:"output_dir"`
	OutputBasename string `mapstructure:"output_basename"`
}

// SetDefaults registers default values on the given viper instance.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("base_url", "https://miff.com.au")
	v.SetDefault("user_agent", "filmharvest/1.0 (github.com/darrenkjr/filmharvest)")
	v.SetDefault("http_timeout", 30*time.Second)
	v.SetDefault("retry_count", 2)
	v.SetDefault("festival_start", "2025-08-07")
	v.SetDefault("festival_end", "2025-08-24")
	v.SetDefault("max_listing_pages", 25)
	v.SetDefault("listing_delay", 500*time.Millisecond)
	v.SetDefault("film_delay", time.Second)
	v.SetDefault("schedule_delay", 2*time.Second)
	v.SetDefault("synopsis_policy", SynopsisJoinAll)
	v.SetDefault("session_source", SessionSourceSchedule)
	v.SetDefault("venue_prefixes", []string{"ACMI", "Hoyts", "Capitol", "Forum", "Arts Centre"})
	v.SetDefault("output_dir", ".")
	v.SetDefault("output_basename", "miff_2025")
}

// Load reads configuration from the given file (optional) plus environment
// variables, applies defaults and validates the result.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	SetDefaults(v)

	v.SetEnvPrefix("FILMHARVEST")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
	} else {
		v.SetConfigName("filmharvest")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			// A missing default config file is fine; defaults apply.
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("reading config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the configuration for values the pipeline cannot run with.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.BaseURL) == "" {
		return fmt.Errorf("base_url is required")
	}
	switch c.SynopsisPolicy {
	case SynopsisJoinAll, SynopsisSecondParagraph:
	default:
		return fmt.Errorf("invalid synopsis_policy: %q (must be %q or %q)",
			c.SynopsisPolicy, SynopsisJoinAll, SynopsisSecondParagraph)
	}
	switch c.SessionSource {
	case SessionSourceSchedule, SessionSourceTicketPanel, SessionSourceBoth:
	default:
		return fmt.Errorf("invalid session_source: %q (must be %q, %q or %q)",
			c.SessionSource, SessionSourceSchedule, SessionSourceTicketPanel, SessionSourceBoth)
	}
	if c.MaxListingPages < 1 {
		return fmt.Errorf("max_listing_pages must be at least 1")
	}
	start, err := time.Parse(dateLayout, c.FestivalStart)
	if err != nil {
		return fmt.Errorf("invalid festival_start: %w", err)
	}
	end, err := time.Parse(dateLayout, c.FestivalEnd)
	if err != nil {
		return fmt.Errorf("invalid festival_end: %w", err)
	}
	if end.Before(start) {
		return fmt.Errorf("festival_end %s is before festival_start %s", c.FestivalEnd, c.FestivalStart)
	}
	return nil
}

// FestivalDates returns every calendar date in the closed festival range,
// formatted for the schedule endpoint's day parameter.
func (c *Config) FestivalDates() []string {
	start, err := time.Parse(dateLayout, c.FestivalStart)
	if err != nil {
		return nil
	}
	end, err := time.Parse(dateLayout, c.FestivalEnd)
	if err != nil {
		return nil
	}
	var dates []string
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates
}

// FestivalYear returns the year the festival runs in, used to resolve
// year-less session dates such as "7 Aug".
func (c *Config) FestivalYear() int {
	start, err := time.Parse(dateLayout, c.FestivalStart)
	if err != nil {
		return time.Now().Year()
	}
	return start.Year()
}
