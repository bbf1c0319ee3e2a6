// Package loop drives per-frame callbacks with an explicit continue
// predicate and a cancellation context.
package loop

import (
	"context"
	"errors"
	"time"
)

// Frame runs one iteration at time now and reports whether to continue.
type Frame func(now time.Duration) bool

// ErrTicksClosed is returned by Run when the tick source closes before the
// frame asks to stop.
var ErrTicksClosed = errors.New("loop: tick channel closed")

// Run calls frame once per received tick until frame returns false (nil
// error), ctx is cancelled (ctx.Err()), or ticks closes. Cancellation is
// checked before every frame, so no frame runs after it has been observed.
func Run(ctx context.Context, ticks <-chan time.Time, clock func() time.Duration, frame Frame) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case _, ok := <-ticks:
			if !ok {
				return ErrTicksClosed
			}
			// A tick and a cancellation can be ready together; cancellation wins.
			if err := ctx.Err(); err != nil {
				return err
			}
			if !frame(clock()) {
				return nil
			}
		}
	}
}

// Simulate runs frames back to back on a virtual clock advancing by step,
// starting at zero. It stops when frame returns false, after maxFrames
// (maxFrames <= 0 means no limit), or when ctx is cancelled. It returns the
// number of frames run.
func Simulate(ctx context.Context, step time.Duration, maxFrames int, frame Frame) (int, error) {
	var now time.Duration
	n := 0
	for maxFrames <= 0 || n < maxFrames {
		if err := ctx.Err(); err != nil {
			return n, err
		}
		n++
		if !frame(now) {
			return n, nil
		}
		now += step
	}
	return n, nil
}

// Ticker returns a tick channel firing every interval and its stop func.
func Ticker(interval time.Duration) (<-chan time.Time, func()) {
	t := time.NewTicker(interval)
	return t.C, t.Stop
}
