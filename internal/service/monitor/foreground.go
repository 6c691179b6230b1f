package monitor

import (
	"context"
	"errors"
	"time"

	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/timesource/hackatime"
)

// Foreground repeats passes on a fixed period while the app is running.
type Foreground struct {
	// pass runs each evaluation.
	pass *Pass
	// interval is the period between passes.
	interval time.Duration
}

// NewForeground creates a loop that runs pass every interval.
func NewForeground(pass *Pass, interval time.Duration) *Foreground {
	return &Foreground{
		pass:     pass,
		interval: interval,
	}
}

// Run performs a pass immediately and then on every tick until ctx is cancelled.
// Failed passes are logged and the loop keeps going.
func (f *Foreground) Run(ctx context.Context) error {
	ctx = logger.WithName(ctx, "monitor")

	logger.InfoKV(ctx, "Foreground monitor started", "interval", f.interval)

	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	for {
		f.runOnce(ctx)

		select {
		case <-ctx.Done():
			logger.Info(ctx, "Foreground monitor stopped")

			return nil
		case <-ticker.C:
		}
	}
}

func (f *Foreground) runOnce(ctx context.Context) {
	_, err := f.pass.Run(ctx)

	switch {
	case err == nil:
	case errors.Is(err, context.Canceled):
	case errors.Is(err, hackatime.ErrAuth):
		logger.WarnKV(ctx, "Skipping pass: API key missing or rejected", "error", err)
	default:
		logger.WarnKV(ctx, "Skipping pass", "error", err)
	}
}

// LatestReading returns the most recent successful reading.
func (f *Foreground) LatestReading() (alarm.Reading, bool) {
	return f.pass.LatestReading()
}
