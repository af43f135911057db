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

// SchedulerOpts holds configuration for the digest scheduler.
type SchedulerOpts struct {
	DB       *gorm.DB
	Notifier Notifier
	Owner    string
	Channel  string
	CronExpr string
}

// RunDigests posts a weekly digest on the configured cron schedule until
// ctx is cancelled. A quiet week posts nothing.
func RunDigests(ctx context.Context, opts SchedulerOpts) error {
	for {
		wait := nextCronDuration(opts.CronExpr)
		if wait == 0 {
			// Unparseable expression: retry hourly rather than spinning.
			wait = time.Hour
			log.Printf("notify: bad digest cron %q, retrying in %s", opts.CronExpr, wait)
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		report, err := BuildWeeklyReport(opts.DB, opts.Owner, time.Now())
		if err != nil {
			log.Printf("notify: build digest: %v", err)
			continue
		}
		if report == nil {
			continue
		}
		if err := opts.Notifier.Post(ctx, opts.Channel, FormatWeekly(report)); err != nil {
			log.Printf("notify: post digest: %v", err)
		}
	}
}
