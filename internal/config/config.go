package config

import (
	"path/filepath"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

const startDateFormat = "2006-01-02"

// Config holds all Funnelscope configuration, read from FUNNELSCOPE_*
// environment variables with sensible defaults.
type Config struct {
	// Generator settings.
	Users     int    `default:"12000"`
	Seed      int64  `default:"42"`
	StartDate string `split_words:"true" default:"2024-01-01"`

	// Event log location.
	DataDir    string `split_words:"true" default:"data"`
	EventsFile string `split_words:"true" default:"events.csv"`

	// Report output: "text" or "json" on stdout, plus an optional JSON
	// report file.
	ReportFormat string `split_words:"true" default:"text"`
	ReportPath   string `split_words:"true"`

	LogLevel string `split_words:"true" default:"info"`
}

// Load reads configuration from the environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("funnelscope", &cfg); err != nil {
		return Config{}, errors.Wrap(err, "config")
	}
	if cfg.Users <= 0 {
		return Config{}, errors.Errorf("config: users must be > 0, got %d", cfg.Users)
	}
	if cfg.ReportFormat != "text" && cfg.ReportFormat != "json" {
		return Config{}, errors.Errorf("config: report format must be text or json, got %q", cfg.ReportFormat)
	}
	if _, err := cfg.StartTime(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// EventsPath returns the full path of the CSV event log.
func (c Config) EventsPath() string {
	return filepath.Join(c.DataDir, c.EventsFile)
}

// StartTime parses StartDate as the base date for generated sessions.
func (c Config) StartTime() (time.Time, error) {
	t, err := time.Parse(startDateFormat, c.StartDate)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "config: parse start date %q", c.StartDate)
	}
	return t, nil
}
