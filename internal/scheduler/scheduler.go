// Package scheduler runs the report pass on a cron schedule for serve mode.
package scheduler

import (
	"context"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// Job is one schedulable unit of work.
type Job interface {
	Run(ctx context.Context) error
	Name() string
}

// Scheduler manages background jobs on cron schedules. Schedules use the
// six-field form with a seconds column, e.g. "0 0 10,19 * * *".
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

// New creates a new scheduler.
func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(cron.WithSeconds()),
		logger: logger.With(slog.String("component", "scheduler")),
	}
}

// AddJob registers a job under the given cron schedule. Each firing gets the
// context the scheduler was started with; job errors are logged, never
// propagated, so a failed run does not unschedule the job.
func (s *Scheduler) AddJob(ctx context.Context, schedule string, job Job) error {
	_, err := s.cron.AddFunc(schedule, func() {
		s.logger.InfoContext(ctx, "running job", slog.String("job", job.Name()))
		if err := job.Run(ctx); err != nil {
			s.logger.ErrorContext(ctx, "job failed",
				slog.String("job", job.Name()),
				slog.String("error", err.Error()),
			)
		}
	})
	if err != nil {
		return err
	}

	s.logger.Info("job registered",
		slog.String("job", job.Name()),
		slog.String("schedule", schedule),
	)
	return nil
}

// Start starts the scheduler and blocks until the context is cancelled, then
// waits for any running job to finish.
func (s *Scheduler) Start(ctx context.Context) {
	s.cron.Start()
	s.logger.Info("scheduler started")

	<-ctx.Done()

	stopCtx := s.cron.Stop()
	<-stopCtx.Done()
	s.logger.Info("scheduler stopped")
}
