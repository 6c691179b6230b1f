// Package monitor runs evaluation passes: fetch today's coding time,
// evaluate the alarms and notify about the ones that fired.
package monitor

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/oshokin/hackatime-alarm/internal/clock"
	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/metrics"
	"github.com/oshokin/hackatime-alarm/internal/notify"
	"github.com/oshokin/hackatime-alarm/internal/timesource/hackatime"
)

// TimeSource reports today's elapsed coding time.
type TimeSource interface {
	FetchElapsedTime(ctx context.Context, credential string) (alarm.Reading, error)
}

// Store is the alarm state a pass reads and updates.
type Store interface {
	Credential(ctx context.Context) string
	Evaluate(ctx context.Context, reading alarm.Reading, today alarm.Date) []alarm.Firing
	Reload(ctx context.Context) error
}

// Dependencies are the collaborators of a pass.
type Dependencies struct {
	// Store holds the credential and the alarms.
	Store Store
	// Source fetches the elapsed time.
	Source TimeSource
	// Clock defines "today".
	Clock clock.Clock
	// Notifier delivers fired alarms.
	Notifier notify.Notifier
	// Metrics records pass results. Optional.
	Metrics *metrics.Metrics
}

// Outcome is the result of one successful pass.
type Outcome struct {
	// Reading is the elapsed time the pass evaluated.
	Reading alarm.Reading
	// Today is the day the alarms were judged against.
	Today alarm.Date
	// Fired lists the alarms that fired in this pass.
	Fired []alarm.Firing
}

// Pass performs evaluation passes and remembers the latest reading.
type Pass struct {
	// deps are the pass collaborators.
	deps Dependencies

	// mu protects latest.
	mu sync.RWMutex
	// latest is the most recent successful reading.
	latest *alarm.Reading
}

// NewPass creates a pass runner.
func NewPass(deps Dependencies) *Pass {
	if deps.Notifier == nil {
		deps.Notifier = notify.Log{}
	}

	return &Pass{deps: deps}
}

// Run performs a single pass. A failed fetch leaves the alarms untouched.
func (p *Pass) Run(ctx context.Context) (Outcome, error) {
	credential := p.deps.Store.Credential(ctx)

	reading, err := p.deps.Source.FetchElapsedTime(ctx, credential)
	if err != nil {
		p.deps.Metrics.ObserveFetch(fetchResult(err))

		return Outcome{}, fmt.Errorf("fetch elapsed time: %w", err)
	}

	p.deps.Metrics.ObserveFetch(metrics.FetchOK)
	p.deps.Metrics.ObserveReading(reading)

	p.mu.Lock()
	p.latest = &reading
	p.mu.Unlock()

	today := p.deps.Clock.Today()
	fired := p.deps.Store.Evaluate(ctx, reading, today)

	for i := range fired {
		f := &fired[i]

		p.deps.Metrics.ObserveFiring(f.Alarm.Kind)

		// Delivery failures are logged by the notifier and never undo the trigger.
		if notifyErr := p.deps.Notifier.Notify(ctx, notify.FromFiring(f)); notifyErr != nil {
			logger.WarnKV(ctx, "Alarm notification incomplete", "alarm_id", f.Alarm.ID, "error", notifyErr)
		}
	}

	logger.DebugKV(ctx, "Evaluation pass finished",
		"elapsed", reading.Elapsed(),
		"today", today,
		"fired", len(fired))

	return Outcome{
		Reading: reading,
		Today:   today,
		Fired:   fired,
	}, nil
}

// LatestReading returns the most recent successful reading.
func (p *Pass) LatestReading() (alarm.Reading, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.latest == nil {
		return alarm.Reading{}, false
	}

	return *p.latest, true
}

func fetchResult(err error) string {
	if errors.Is(err, hackatime.ErrAuth) {
		return metrics.FetchAuthError
	}

	return metrics.FetchNetworkError
}
