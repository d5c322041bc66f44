package scheduler

import (
	"context"
	"log"
	"time"
)

// Reporter is the slice of the report service the scheduler drives.
type Reporter interface {
	SendIntervalReport(ctx context.Context, window time.Duration) error
	SendDailyReport(ctx context.Context, day time.Time) error
}

// Scheduler fires the rolling contact report on a fixed interval and the
// daily digest at 23:59 local time. Both loops stop when the context is
// cancelled.
type Scheduler struct {
	reports  Reporter
	interval time.Duration
	logger   *log.Logger
}

func New(reports Reporter, interval time.Duration, logger *log.Logger) *Scheduler {
	if interval <= 0 {
		interval = 3 * time.Hour
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scheduler{reports: reports, interval: interval, logger: logger}
}

func (s *Scheduler) Run(ctx context.Context) {
	go s.runInterval(ctx)
	go s.runDaily(ctx)
}

func (s *Scheduler) runInterval(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.reports.SendIntervalReport(ctx, s.interval); err != nil {
				s.logger.Printf("interval report failed: %v", err)
			}
		}
	}
}

func (s *Scheduler) runDaily(ctx context.Context) {
	for {
		wait := untilDailyDigest(time.Now())
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			if err := s.reports.SendDailyReport(ctx, time.Now()); err != nil {
				s.logger.Printf("daily report failed: %v", err)
			}
		}
	}
}

// untilDailyDigest returns the wait until the next 23:59 local time.
func untilDailyDigest(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
