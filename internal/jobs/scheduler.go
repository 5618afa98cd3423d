package jobs

import (
	"context"
	"log/slog"
	"time"
)

// Job is a unit of background work. Runs must be safe to repeat: the
// scheduler retries on the next tick after a failure rather than backing
// off or giving up.
type Job interface {
	Name() string
	Run(ctx context.Context) error
}

// JobFunc adapts a function to the Job interface.
type JobFunc struct {
	JobName string
	Fn      func(ctx context.Context) error
}

// Name implements Job.
func (j JobFunc) Name() string { return j.JobName }

// Run implements Job.
func (j JobFunc) Run(ctx context.Context) error { return j.Fn(ctx) }

// Scheduler runs a job immediately and then on a fixed interval until the
// context is cancelled. Runs are sequential; a slow run delays the next
// tick rather than overlapping it.
type Scheduler struct {
	job      Job
	interval time.Duration
	logger   *slog.Logger
	metrics  *Metrics
}

// NewScheduler creates a scheduler for the given job. logger and metrics
// may be nil.
func NewScheduler(job Job, interval time.Duration, logger *slog.Logger, metrics *Metrics) *Scheduler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Scheduler{
		job:      job,
		interval: interval,
		logger:   logger,
		metrics:  metrics,
	}
}

// Start blocks until ctx is cancelled. The first run happens immediately so
// a fresh deploy does not wait a full interval for its first snapshot.
func (s *Scheduler) Start(ctx context.Context) {
	s.logger.InfoContext(ctx, "scheduler started",
		"job", s.job.Name(),
		"interval", s.interval.String(),
	)

	s.RunOnce(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.InfoContext(ctx, "scheduler stopped", "job", s.job.Name())
			return
		case <-ticker.C:
			s.RunOnce(ctx)
		}
	}
}

// RunOnce executes a single run, recording duration and outcome. A failed
// run is logged and counted; the previous result stays in place until the
// next successful run.
func (s *Scheduler) RunOnce(ctx context.Context) error {
	start := time.Now()
	err := s.job.Run(ctx)
	elapsed := time.Since(start)

	if s.metrics != nil {
		s.metrics.ObserveJobDuration(s.job.Name(), elapsed.Seconds())
	}

	if err != nil {
		if s.metrics != nil {
			s.metrics.IncJobsTotal(s.job.Name(), StatusFailure)
			s.metrics.IncJobErrors(s.job.Name(), "run_error")
		}
		s.logger.ErrorContext(ctx, "job run failed",
			"job", s.job.Name(),
			"duration_ms", elapsed.Milliseconds(),
			"error", err,
		)
		return err
	}

	if s.metrics != nil {
		s.metrics.IncJobsTotal(s.job.Name(), StatusSuccess)
	}
	s.logger.InfoContext(ctx, "job run completed",
		"job", s.job.Name(),
		"duration_ms", elapsed.Milliseconds(),
	)
	return nil
}
