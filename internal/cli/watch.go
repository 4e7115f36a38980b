package cli

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/spf13/cobra"

	"hookline/internal/fetcher"
	"hookline/internal/filter"
	"hookline/internal/runner"
	"hookline/internal/scheduler"
)

var watchInterval int

func init() {
	watchCmd.Flags().IntVar(&watchInterval, "interval-hours", 0,
		"Hours between scrape runs (overrides config).")
	rootCmd.AddCommand(watchCmd)
}

var watchCmd = &cobra.Command{
	Use:   "watch [--interval-hours n]",
	Short: "Run in the foreground, re-scraping completed profiles on a schedule.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := loadConfig()

		db, reg, st, err := openEnv()
		if err != nil {
			return err
		}
		defer db.Close()

		r := runner.New(reg, st,
			filter.New(cfg.Filter.MinLikes, cfg.Filter.MinViews),
			fetcher.NewTikTok(cfg.Scraping.Headless, time.Duration(cfg.Scraping.TimeoutSeconds)*time.Second),
			runner.Options{
				Workers:         cfg.Scraping.Workers,
				PostsPerProfile: cfg.Scraping.PostsPerProfile,
				MinDelay:        time.Duration(cfg.Scraping.MinDelaySeconds) * time.Second,
				MaxDelay:        time.Duration(cfg.Scraping.MaxDelaySeconds) * time.Second,
			})

		interval := cfg.Watch.IntervalHours
		if watchInterval > 0 {
			interval = watchInterval
		}

		sched := scheduler.New()
		err = sched.AddScrapeJob(interval, func(ctx context.Context) error {
			// Completed profiles are re-claimed so each run refreshes
			// every tracked profile.
			if _, err := reg.RequeueCompleted(); err != nil {
				return err
			}
			summary, err := r.Run(ctx, nil)
			if err != nil {
				return err
			}
			slog.Info("scheduled scrape finished",
				"completed", summary.Completed,
				"failed", len(summary.Failed),
				"accepted", summary.Accepted)
			return nil
		})
		if err != nil {
			return err
		}

		sched.Start()
		fmt.Printf("Watching tracked profiles every %d hour(s). Ctrl-C to stop.\n", interval)

		<-cmd.Context().Done()
		<-sched.Stop().Done()
		return nil
	},
}
