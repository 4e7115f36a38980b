package cli

import (
	"errors"
	"fmt"

	"github.com/pkg/browser"
	"github.com/spf13/cobra"

	"hookline/internal/config"
	"hookline/internal/registry"
)

func init() {
	rootCmd.AddCommand(openCmd)
}

var openCmd = &cobra.Command{
	Use:   "open <config|data|handle>",
	Short: "Open the config file, data directory, or a tracked profile's page.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		switch args[0] {
		case "config":
			path, err := config.ConfigPath()
			if err != nil {
				return err
			}
			return browser.OpenFile(path)
		case "data":
			dir, err := dataDir()
			if err != nil {
				return err
			}
			return browser.OpenFile(dir)
		default:
			db, reg, _, err := openEnv()
			if err != nil {
				return err
			}
			defer db.Close()

			p, err := reg.Get(args[0])
			if errors.Is(err, registry.ErrNotFound) {
				return fmt.Errorf("profile @%s is not tracked", registry.Normalize(args[0]))
			}
			if err != nil {
				return err
			}
			return browser.OpenURL(p.URL)
		}
	},
}
