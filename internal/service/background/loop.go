package background

import (
	"context"
	"time"

	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
)

// Loop runs the background task on a fixed period, staying idle while the
// foreground daemon is running.
type Loop struct {
	// task is the registered background pass.
	task monitor.TaskFunc
	// interval is the period between runs.
	interval time.Duration
	// foregroundAlive reports whether the foreground daemon owns the alarms.
	foregroundAlive func() bool
}

// NewLoop creates a loop for task.
func NewLoop(task monitor.TaskFunc, interval time.Duration, foregroundAlive func() bool) *Loop {
	if foregroundAlive == nil {
		foregroundAlive = func() bool { return false }
	}

	return &Loop{
		task:            task,
		interval:        interval,
		foregroundAlive: foregroundAlive,
	}
}

// Run executes the task immediately and then on every tick until ctx is cancelled.
func (l *Loop) Run(ctx context.Context) {
	ticker := time.NewTicker(l.interval)
	defer ticker.Stop()

	for {
		l.runOnce(ctx)

		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}

func (l *Loop) runOnce(ctx context.Context) {
	if l.foregroundAlive() {
		logger.Debug(ctx, "Foreground daemon is running, skipping background pass")

		return
	}

	result := l.task(ctx)

	logger.InfoKV(ctx, "Background pass finished", "result", result.String())
}
