// Package cli implements the hookline command tree.
package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"hookline/internal/config"
	"hookline/internal/registry"
	"hookline/internal/store"
)

var dataDirFlag string

var rootCmd = &cobra.Command{
	Use:           "hookline",
	Short:         "hookline tracks TikTok profiles and builds a hook training dataset from their slideshow posts.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dataDirFlag, "data-dir", "",
		"Directory holding the tracking database and dataset output.")
}

// ExecuteContext runs the command tree. Fatal setup or persistence
// errors exit non-zero; per-profile scrape failures do not.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// loadConfig reads the config file, creating a default one on first run.
// A missing or unreadable config is never fatal.
func loadConfig() *config.Config {
	cfg, err := config.Load()
	if err == nil {
		return cfg
	}

	if os.IsNotExist(err) {
		cfg = config.Default()
		if saveErr := cfg.Save(); saveErr != nil {
			slog.Warn("could not save default config", "error", saveErr)
		} else if path, pathErr := config.ConfigPath(); pathErr == nil {
			slog.Info("created default config", "path", path)
		}
		return cfg
	}

	slog.Warn("could not load config, using defaults", "error", err)
	return config.Default()
}

func dataDir() (string, error) {
	if dataDirFlag != "" {
		return dataDirFlag, nil
	}
	return config.DataDir()
}

// openEnv opens the tracking database and constructs the registry and
// post store on it. The caller owns closing the returned database.
func openEnv() (*sql.DB, *registry.Registry, *store.Store, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to resolve data directory: %w", err)
	}

	db, err := store.Open(filepath.Join(dir, "hookline.db"))
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to open tracking database: %w", err)
	}

	reg, err := registry.New(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	st, err := store.New(db)
	if err != nil {
		db.Close()
		return nil, nil, nil, err
	}

	return db, reg, st, nil
}
