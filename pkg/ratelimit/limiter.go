package ratelimit

import (
	"context"
	"time"
)

// Limiter paces consecutive operations
type Limiter interface {
	// Wait blocks until the next operation may proceed or ctx is done
	Wait(ctx context.Context) error
}

// SleepFunc blocks for d or until ctx is done
type SleepFunc func(ctx context.Context, d time.Duration) error

// FixedDelay pauses for the same interval on every Wait. It does not adapt to
// server responses.
type FixedDelay struct {
	Delay time.Duration
	// Sleep defaults to a context-aware timer; tests replace it.
	Sleep SleepFunc
}

// NewFixedDelay creates a limiter that waits delay on every call
func NewFixedDelay(delay time.Duration) *FixedDelay {
	return &FixedDelay{Delay: delay, Sleep: Sleep}
}

// Wait pauses for the configured delay. A non-positive delay returns at once.
func (f *FixedDelay) Wait(ctx context.Context) error {
	if f.Delay <= 0 {
		return ctx.Err()
	}
	sleep := f.Sleep
	if sleep == nil {
		sleep = Sleep
	}
	return sleep(ctx, f.Delay)
}

// Sleep waits for the specified duration or until context is cancelled
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Nop never waits
type Nop struct{}

func (Nop) Wait(ctx context.Context) error { return ctx.Err() }
