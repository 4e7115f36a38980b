// Package scheduler runs periodic scrape jobs for the watch command.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job represents a scheduled task
type Job func(ctx context.Context) error

// Scheduler manages periodic tasks
type Scheduler struct {
	cron *cron.Cron
	jobs map[string]cron.EntryID
}

// New creates a new scheduler
func New() *Scheduler {
	return &Scheduler{
		cron: cron.New(),
		jobs: make(map[string]cron.EntryID),
	}
}

// AddJob adds a job with a cron schedule
func (s *Scheduler) AddJob(name, schedule string, job Job) error {
	entryID, err := s.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
		defer cancel()

		slog.Info("starting scheduled job", "job", name)
		start := time.Now()

		if err := job(ctx); err != nil {
			slog.Error("scheduled job failed", "job", name, "error", err)
		} else {
			slog.Info("scheduled job completed", "job", name, "duration", time.Since(start))
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule job %s: %w", name, err)
	}

	s.jobs[name] = entryID
	slog.Info("scheduled job", "job", name, "schedule", schedule)
	return nil
}

// AddScrapeJob schedules the scrape job every intervalHours hours.
func (s *Scheduler) AddScrapeJob(intervalHours int, job Job) error {
	if intervalHours <= 0 {
		intervalHours = 6
	}
	schedule := fmt.Sprintf("0 */%d * * *", intervalHours)
	return s.AddJob("scrape", schedule, job)
}

// Start begins running scheduled jobs
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts the scheduler and returns a context that is done once
// running jobs finish.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}
