package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"hookline/internal/fetcher"
	"hookline/internal/filter"
	"hookline/internal/runner"
)

var (
	scrapeProfiles []string
	scrapeAll      bool
	scrapeLimit    int
)

func init() {
	scrapeCmd.Flags().StringSliceVarP(&scrapeProfiles, "profiles", "p", nil,
		"Specific profiles to scrape.")
	scrapeCmd.Flags().BoolVar(&scrapeAll, "all", false,
		"Scrape all pending profiles.")
	scrapeCmd.Flags().IntVarP(&scrapeLimit, "limit", "l", 0,
		"Maximum posts to fetch per profile (overrides config).")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--profiles handle,...] [--all] [--limit n]",
	Short: "Scrape tracked profiles for slideshow posts.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		// --all and the default both drain pending profiles; --profiles
		// names an explicit set instead.
		handles := scrapeProfiles
		if scrapeAll {
			handles = nil
		}

		limit := cfg.Scraping.PostsPerProfile
		if scrapeLimit > 0 {
			limit = scrapeLimit
		}

		r := runner.New(reg, st,
			filter.New(cfg.Filter.MinLikes, cfg.Filter.MinViews),
			fetcher.NewTikTok(cfg.Scraping.Headless, time.Duration(cfg.Scraping.TimeoutSeconds)*time.Second),
			runner.Options{
				Workers:         cfg.Scraping.Workers,
				PostsPerProfile: limit,
				MinDelay:        time.Duration(cfg.Scraping.MinDelaySeconds) * time.Second,
				MaxDelay:        time.Duration(cfg.Scraping.MaxDelaySeconds) * time.Second,
			})

		summary, err := r.Run(cmd.Context(), handles)
		if err != nil {
			return err
		}

		if len(handles) == 0 && summary.Completed == 0 && len(summary.Failed) == 0 {
			fmt.Println("No pending profiles to scrape.")
			return nil
		}

		printSummary(summary)
		return nil
	},
}

func printSummary(s *runner.Summary) {
	fmt.Println()
	fmt.Println("Scrape summary")
	fmt.Printf("  Profiles completed: %d\n", s.Completed)
	fmt.Printf("  Profiles failed:    %d\n", len(s.Failed))
	for _, f := range s.Failed {
		fmt.Printf("    @%s: %s\n", f.Handle, f.Reason)
	}
	fmt.Printf("  Posts accepted:     %d\n", s.Accepted)
	fmt.Printf("  Posts rejected:     %d\n", s.Rejected)
	if s.Malformed > 0 {
		fmt.Printf("  Posts malformed:    %d\n", s.Malformed)
	}
}
