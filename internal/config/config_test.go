package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDefaultIsUsable(t *testing.T) {
	cfg := Default()

	require.Positive(t, cfg.Scraping.Workers)
	require.Positive(t, cfg.Scraping.PostsPerProfile)
	require.True(t, cfg.Scraping.Headless)
	require.Equal(t, 1000, cfg.Filter.MinLikes)
	require.Equal(t, 5000, cfg.Filter.MinViews)
	require.Equal(t, 200, cfg.Hooks.MaxLength)
	require.InDelta(t, 1.0, cfg.Scoring.ClarityWeight+cfg.Scoring.EngagementWeight, 1e-9)
	require.NotEmpty(t, cfg.Dataset.Output)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := Default()
	cfg.Scraping.Workers = 7
	cfg.Filter.MinLikes = 42
	cfg.Dataset.Output = "custom.json"
	require.NoError(t, cfg.Save())

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestLoadMissingFile(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	_, err := Load()
	require.True(t, os.IsNotExist(err))
}
