package config

import (
	"errors"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"

	"clubsite/internal/dates"
	appLog "clubsite/internal/log"
)

// Config is the top-level build configuration, conventionally kept in
// donotbuild.yaml next to the site sources. A missing file is not an error;
// the build then runs with defaults.
type Config struct {
	// SiteURL is the canonical site base URL used as the channel link and
	// GUID prefix of every generated feed. No trailing slash.
	SiteURL string `yaml:"site_url" json:"site_url"`

	// Timezone is the IANA zone human-entered event dates are assumed to be
	// in before conversion to UTC (e.g. "Asia/Kolkata").
	Timezone string `yaml:"timezone" json:"timezone"`

	// OutputDir is the build output directory, relative to the source root.
	// It is deleted and recreated on every run.
	OutputDir string `yaml:"output_dir" json:"output_dir"`

	// ContentFiles are the YAML documents converted to JSON. The events
	// document among them additionally drives feed generation.
	ContentFiles []string `yaml:"content_files" json:"content_files"`

	// Exclude lists patterns for files that must not be copied to the
	// output: "*.ext" matches a filename suffix, patterns with other
	// wildcards match the filename by glob, anything else matches by
	// substring anywhere in the path.
	Exclude []string `yaml:"exclude" json:"exclude"`
}

// DefaultConfig returns an in-memory default configuration.
func DefaultConfig() *Config {
	return &Config{
		SiteURL:      "https://neotechclub.qzz.io",
		Timezone:     dates.DefaultZone,
		OutputDir:    "out",
		ContentFiles: []string{"schedule.yaml", "events.yaml", "team.yaml"},
		Exclude:      defaultExclusions(),
	}
}

func defaultExclusions() []string {
	return []string{"*.yaml", "*.yml", "README.md", "go.mod", "go.sum", ".git"}
}

// Normalize fills in missing/zero values with defaults so that a config file
// carrying only an exclude list still builds correctly.
func (c *Config) Normalize() {
	if c.SiteURL == "" {
		c.SiteURL = "https://neotechclub.qzz.io"
	}
	if c.Timezone == "" {
		c.Timezone = dates.DefaultZone
	}
	if c.OutputDir == "" {
		c.OutputDir = "out"
	}
	if len(c.ContentFiles) == 0 {
		c.ContentFiles = []string{"schedule.yaml", "events.yaml", "team.yaml"}
	}
	if c.Exclude == nil {
		c.Exclude = defaultExclusions()
	}
}

// Load loads configuration from the given YAML path.
//
// Behavior:
//   - If the file does not exist, log a warning and return defaults.
//   - If the file exists, read YAML, unmarshal and normalize.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			appLog.Info("config file not found, using defaults", "path", path)
			return DefaultConfig(), nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}
