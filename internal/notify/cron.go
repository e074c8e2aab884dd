package notify

import (
	"context"
	"log"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"
)

// cronParser uses standard 5-field cron expressions (minute, hour, dom, month, dow).
var cronParser = cron.NewParser(cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow)

// nextCronDuration parses a 5-field cron expression and returns the duration
// until the next fire time. Returns 0 on parse error.
func nextCronDuration(expr string) time.Duration {
	sched, err := cronParser.Parse(expr)
	if err != nil {
		return 0
	}
	next := sched.Next(time.Now())
	d := time.Until(next)
	if d < 0 {
		return 0
	}
	return d
}

// ValidCron reports whether expr is a parseable 5-field cron expression.
func ValidCron(expr string) bool {
	_, err := cronParser.Parse(expr)
	return err == nil
}

// Scheduler posts a periodic activity digest on a cron schedule.
type Scheduler struct {
	db       *gorm.DB
	adapter  Adapter
	expr     string
	lastFire time.Time
}

// NewScheduler builds a digest scheduler. The first digest covers the 24
// hours before the first fire; later digests cover the gap since the last.
func NewScheduler(db *gorm.DB, adapter Adapter, expr string) *Scheduler {
	return &Scheduler{db: db, adapter: adapter, expr: expr}
}

// Run fires digests until the context is cancelled. A bad cron expression
// disables the scheduler silently at startup; callers validate first.
func (s *Scheduler) Run(ctx context.Context) {
	if !ValidCron(s.expr) {
		return
	}
	for {
		wait := nextCronDuration(s.expr)
		if wait == 0 {
			wait = time.Minute
		}
		select {
		case <-ctx.Done():
			return
		case <-time.After(wait):
			s.fire(ctx)
		}
	}
}

// fire builds and posts one digest. Errors are logged and swallowed; the
// schedule keeps running.
func (s *Scheduler) fire(ctx context.Context) {
	since := s.lastFire
	if since.IsZero() {
		since = time.Now().Add(-24 * time.Hour)
	}
	s.lastFire = time.Now()

	report, err := BuildDigest(s.db, since)
	if err != nil {
		log.Printf("notify: digest build failed: %v", err)
		return
	}
	if report == nil {
		return // no activity, no digest
	}
	if err := s.adapter.Send(ctx, FormatDigest(report)); err != nil {
		log.Printf("notify: digest send failed: %v", err)
	}
}
