package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunRequiresTask(t *testing.T) {
	l := &Loop{Options: Options{Interval: time.Second}}
	assert.Error(t, l.Run(context.Background()))
}

func TestRunRequiresInterval(t *testing.T) {
	l := &Loop{Task: func(context.Context, time.Time) error { return nil }}
	assert.Error(t, l.Run(context.Background()))
}

func TestRunManualTicks(t *testing.T) {
	ticks := make(chan time.Time)
	var got []time.Time

	l := &Loop{
		Task: func(_ context.Context, now time.Time) error {
			got = append(got, now)
			return nil
		},
		Ticks: ticks,
	}

	done := make(chan error, 1)
	go func() { done <- l.Run(context.Background()) }()

	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		ticks <- base.Add(time.Duration(i) * 5 * time.Second)
	}
	close(ticks)

	require.NoError(t, <-done)
	require.Len(t, got, 3)
	assert.Equal(t, base.Add(10*time.Second), got[2])
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	var n atomic.Int32

	l := &Loop{
		Task: func(context.Context, time.Time) error {
			if n.Add(1) == 3 {
				cancel()
			}
			return nil
		},
		Options: Options{Interval: time.Millisecond},
	}

	require.NoError(t, l.Run(ctx))
	assert.GreaterOrEqual(t, n.Load(), int32(3))
}

func TestRunErrors(t *testing.T) {
	boom := errors.New("boom")

	t.Run("logged and continued", func(t *testing.T) {
		ticks := make(chan time.Time, 2)
		calls := 0
		l := &Loop{
			Task: func(context.Context, time.Time) error {
				calls++
				return boom
			},
			Ticks: ticks,
		}
		ticks <- time.Now()
		ticks <- time.Now()
		close(ticks)

		assert.NoError(t, l.Run(context.Background()))
		assert.Equal(t, 2, calls)
	})

	t.Run("stop on error", func(t *testing.T) {
		ticks := make(chan time.Time, 2)
		calls := 0
		l := &Loop{
			Task: func(context.Context, time.Time) error {
				calls++
				return boom
			},
			Options: Options{StopOnError: true},
			Ticks:   ticks,
		}
		ticks <- time.Now()
		ticks <- time.Now()

		assert.ErrorIs(t, l.Run(context.Background()), boom)
		assert.Equal(t, 1, calls)
	})
}

func TestRunNeverOverlaps(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var inFlight, maxInFlight, calls atomic.Int32
	l := &Loop{
		Task: func(context.Context, time.Time) error {
			cur := inFlight.Add(1)
			if cur > maxInFlight.Load() {
				maxInFlight.Store(cur)
			}
			time.Sleep(3 * time.Millisecond)
			inFlight.Add(-1)
			if calls.Add(1) == 5 {
				cancel()
			}
			return nil
		},
		Options: Options{Interval: time.Millisecond},
	}

	require.NoError(t, l.Run(ctx))
	assert.Equal(t, int32(1), maxInFlight.Load())
}
