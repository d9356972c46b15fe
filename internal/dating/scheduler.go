package dating

import (
	"context"
	"log"
	"time"
)

type Scheduler struct {
	service Service
	hour    int
}

// NewScheduler runs feed regeneration once a day at hour (local time)
func NewScheduler(service Service, hour int) *Scheduler {
	if hour < 0 || hour > 23 {
		hour = 9
	}
	return &Scheduler{service: service, hour: hour}
}

func (s *Scheduler) Start(ctx context.Context) {
	go s.runDaily(ctx, s.hour, 0, s.service.RefreshActiveFeeds)
}

// nextRun returns the first hour:minute strictly after now
func nextRun(now time.Time, hour, minute int) time.Time {
	next := time.Date(now.Year(), now.Month(), now.Day(), hour, minute, 0, 0, now.Location())
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next
}

func (s *Scheduler) runDaily(ctx context.Context, hour, minute int, task func(context.Context) error) {
	for {
		now := time.Now()
		timer := time.NewTimer(nextRun(now, hour, minute).Sub(now))

		select {
		case <-timer.C:
			start := time.Now()
			if err := task(ctx); err != nil {
				log.Printf("Scheduled task failed: %v", err)
			} else {
				log.Printf("Scheduled task finished in %s", time.Since(start))
			}
		case <-ctx.Done():
			timer.Stop()
			return
		}
	}
}
