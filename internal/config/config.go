package config

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds all application configuration
type Config struct {
	Version  int            `toml:"version"`
	Scraping ScrapingConfig `toml:"scraping"`
	Filter   FilterConfig   `toml:"filter"`
	Hooks    HookConfig     `toml:"hooks"`
	Scoring  ScoringConfig  `toml:"scoring"`
	Dataset  DatasetConfig  `toml:"dataset"`
	Watch    WatchConfig    `toml:"watch"`
}

type ScrapingConfig struct {
	Workers         int  `toml:"workers"`
	PostsPerProfile int  `toml:"posts_per_profile"`
	Headless        bool `toml:"headless"`
	// Random per-worker pause between profiles, in seconds. Both zero
	// disables the pause entirely.
	MinDelaySeconds int `toml:"min_delay_seconds"`
	MaxDelaySeconds int `toml:"max_delay_seconds"`
	TimeoutSeconds  int `toml:"timeout_seconds"`
}

type FilterConfig struct {
	MinLikes int `toml:"min_likes"`
	MinViews int `toml:"min_views"`
}

type HookConfig struct {
	MaxLength int `toml:"max_length"`
}

type ScoringConfig struct {
	ClarityWeight     float64 `toml:"clarity_weight"`
	EngagementWeight  float64 `toml:"engagement_weight"`
	EngagementCeiling int     `toml:"engagement_ceiling"`
}

type DatasetConfig struct {
	Output   string `toml:"output"`
	TopWords int    `toml:"top_words"`
}

type WatchConfig struct {
	IntervalHours int `toml:"interval_hours"`
}

// Default returns a Config with sensible defaults
func Default() *Config {
	return &Config{
		Version: 1,
		Scraping: ScrapingConfig{
			Workers:         2,
			PostsPerProfile: 50,
			Headless:        true,
			MinDelaySeconds: 3,
			MaxDelaySeconds: 10,
			TimeoutSeconds:  300,
		},
		Filter: FilterConfig{
			MinLikes: 1000,
			MinViews: 5000,
		},
		Hooks: HookConfig{
			MaxLength: 200,
		},
		Scoring: ScoringConfig{
			ClarityWeight:     0.5,
			EngagementWeight:  0.5,
			EngagementCeiling: 100000,
		},
		Dataset: DatasetConfig{
			Output:   "training_dataset.json",
			TopWords: 10,
		},
		Watch: WatchConfig{
			IntervalHours: 6,
		},
	}
}

// ConfigDir returns the platform-appropriate config directory
func ConfigDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "hookline"), nil
}

// ConfigPath returns the full path to the config file
func ConfigPath() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DataDir returns the directory holding the tracking database and dataset output
func DataDir() (string, error) {
	dir, err := ConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "data"), nil
}

// Load reads config from disk
func Load() (*Config, error) {
	path, err := ConfigPath()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Save writes config to disk
func (c *Config) Save() error {
	dir, err := ConfigDir()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	path, err := ConfigPath()
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0600)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(c)
}
