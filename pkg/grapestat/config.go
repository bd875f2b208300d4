package grapestat

import (
	"fmt"
	"os"

	"github.com/ukaji3/grapestat-go/pkg/grapestat/source"
	"gopkg.in/yaml.v3"
)

// Config holds run settings. It is read from YAML and overridden by CLI flags.
type Config struct {
	// DataRoot receives raw downloads and output tables.
	DataRoot string `yaml:"data_root"`
	// BeginYear and EndYear bound the requested years, inclusive.
	BeginYear int `yaml:"begin_year"`
	EndYear   int `yaml:"end_year"`
	// SkipDownload reuses previously downloaded files.
	SkipDownload bool `yaml:"skip_download"`
	// Concurrency bounds parallel downloads.
	Concurrency int `yaml:"concurrency"`
	// ContinueOnError logs a failed year and moves on instead of aborting.
	ContinueOnError bool `yaml:"continue_on_error"`
	// SQLitePath, when set, also stores results in a SQLite database.
	SQLitePath string `yaml:"sqlite_path"`
	// CSVCharset is used when a report sheet is a .csv file.
	CSVCharset string `yaml:"csv_charset"`

	CrushIndexURL   string `yaml:"crush_index_url"`
	AcreageIndexURL string `yaml:"acreage_index_url"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		DataRoot:        "data",
		Concurrency:     4,
		CrushIndexURL:   source.CrushIndexURL,
		AcreageIndexURL: source.AcreageIndexURL,
	}
}

// LoadConfig reads a YAML file over the defaults. An empty path returns the
// defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks the year range and required settings.
func (c Config) Validate() error {
	if c.DataRoot == "" {
		return fmt.Errorf("data root is required")
	}
	if c.BeginYear <= 0 || c.EndYear <= 0 {
		return fmt.Errorf("begin and end year are required")
	}
	if c.BeginYear > c.EndYear {
		return fmt.Errorf("begin year %d after end year %d", c.BeginYear, c.EndYear)
	}
	return nil
}

// Years returns the requested years in ascending order.
func (c Config) Years() []int {
	var years []int
	for y := c.BeginYear; y <= c.EndYear; y++ {
		years = append(years, y)
	}
	return years
}
