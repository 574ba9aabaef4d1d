package scheduler

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Task is one unit of periodic work.
type Task func(ctx context.Context, now time.Time) error

// Options controls how the loop behaves.
type Options struct {
	Interval time.Duration

	// If true, the first task error ends Run. Otherwise errors are logged
	// and the loop keeps going.
	StopOnError bool
}

// Loop runs a single repeating task. The task always runs on the Run
// goroutine, so invocations never overlap; ticks that arrive while a task
// is still running are dropped rather than queued.
type Loop struct {
	Task    Task
	Options Options

	// Ticks replaces the internal time.Ticker when set. Tests drive the
	// loop by sending on it.
	Ticks <-chan time.Time
}

// Run blocks until ctx is cancelled, the Ticks channel is closed, or a
// task fails with StopOnError set.
func (l *Loop) Run(ctx context.Context) error {
	if l.Task == nil {
		return fmt.Errorf("scheduler: Task is required")
	}

	ticks := l.Ticks
	if ticks == nil {
		if l.Options.Interval <= 0 {
			return fmt.Errorf("scheduler: interval must be positive (got %s)", l.Options.Interval)
		}
		t := time.NewTicker(l.Options.Interval)
		defer t.Stop()
		ticks = t.C
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case now, ok := <-ticks:
			if !ok {
				return nil
			}
			if err := l.Task(ctx, now); err != nil {
				if l.Options.StopOnError {
					return err
				}
				log.WithError(err).Warn("scheduler: task failed")
			}
		}
	}
}
