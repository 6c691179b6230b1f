package monitor

import (
	"context"

	"github.com/oshokin/hackatime-alarm/internal/logger"
)

// Result tells the background scheduler what a task run produced.
type Result int

const (
	// ResultNoData means the pass succeeded and nothing fired.
	ResultNoData Result = iota
	// ResultNewData means at least one alarm fired.
	ResultNewData
	// ResultFailed means the pass could not complete.
	ResultFailed
)

// String implements fmt.Stringer.
func (r Result) String() string {
	switch r {
	case ResultNoData:
		return "no_data"
	case ResultNewData:
		return "new_data"
	case ResultFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// TaskFunc is a background task registered with the scheduler.
type TaskFunc func(ctx context.Context) Result

// DefineBackgroundTask builds the background pass. The store is reloaded
// before every run so changes made by other processes are picked up.
func DefineBackgroundTask(deps Dependencies) TaskFunc {
	pass := NewPass(deps)

	return func(ctx context.Context) Result {
		ctx = logger.WithName(ctx, "background-task")

		if err := deps.Store.Reload(ctx); err != nil {
			logger.ErrorKV(ctx, "Failed to reload alarms", "error", err)

			return ResultFailed
		}

		outcome, err := pass.Run(ctx)
		if err != nil {
			logger.WarnKV(ctx, "Background pass failed", "error", err)

			return ResultFailed
		}

		if len(outcome.Fired) > 0 {
			return ResultNewData
		}

		return ResultNoData
	}
}
