// Package app assembles the collaborators shared by the foreground daemon,
// the background host and offline CLI commands.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/oshokin/hackatime-alarm/internal/clock"
	"github.com/oshokin/hackatime-alarm/internal/config"
	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/metrics"
	"github.com/oshokin/hackatime-alarm/internal/notify"
	repo "github.com/oshokin/hackatime-alarm/internal/repository/alarms"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
	"github.com/oshokin/hackatime-alarm/internal/timesource/hackatime"
)

// Name is the application name reported to the desktop and the service manager.
const Name = "hackatime-alarm"

// DisplayName is the human readable application name.
const DisplayName = "Hackatime Alarm"

// Delivery selects the notification channels of a process.
type Delivery int

const (
	// DeliveryNone logs fired alarms only.
	DeliveryNone Delivery = iota
	// DeliveryBackground adds desktop notifications.
	DeliveryBackground
	// DeliveryForeground adds desktop notifications and the audible cue.
	DeliveryForeground
)

// App holds the wired collaborators of one process.
type App struct {
	// Config is the validated configuration.
	Config *config.Config
	// Repository persists alarms and the credential.
	Repository repo.Repository
	// Alarms is the single writer of the alarm snapshot.
	Alarms *alarms.Service
	// Source fetches coding time.
	Source *hackatime.Client
	// Clock defines the day boundary.
	Clock clock.Clock
	// Notifier delivers fired alarms.
	Notifier notify.Notifier
	// Metrics records monitor activity.
	Metrics *metrics.Metrics

	// closers are released by Close in reverse order.
	closers []io.Closer
}

// New opens storage and builds every collaborator for cfg.
func New(ctx context.Context, cfg *config.Config, delivery Delivery) (*App, error) {
	repository, err := repo.New(cfg.Storage.Driver, cfg.Storage.Path)
	if err != nil {
		return nil, fmt.Errorf("open storage: %w", err)
	}

	a := &App{
		Config:     cfg,
		Repository: repository,
		Source:     hackatime.New(ctx, cfg.APIURL, cfg.Timeout),
		Clock:      clock.NewSystem(cfg.Location()),
		Metrics:    metrics.New(),
		closers:    []io.Closer{repository},
	}

	a.Alarms, err = alarms.New(ctx, repository, alarms.WithCredentialOverride(cfg.APIKey))
	if err != nil {
		_ = a.Close()

		return nil, err
	}

	a.Notifier = a.buildNotifier(ctx, delivery)

	if err = a.Metrics.WatchAlarms(func() (domain.Collection, domain.Date) {
		return a.Alarms.List(ctx), a.Clock.Today()
	}); err != nil {
		_ = a.Close()

		return nil, fmt.Errorf("register alarm metrics: %w", err)
	}

	logger.DebugKV(ctx, "Application assembled",
		"storage_driver", cfg.Storage.Driver,
		"storage_path", cfg.Storage.Path,
		"timezone", cfg.Timezone)

	return a, nil
}

// Dependencies returns the collaborators of a monitoring pass.
func (a *App) Dependencies() monitor.Dependencies {
	return monitor.Dependencies{
		Store:    a.Alarms,
		Source:   a.Source,
		Clock:    a.Clock,
		Notifier: a.Notifier,
		Metrics:  a.Metrics,
	}
}

// Close releases storage and notification resources.
func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i].Close(); err != nil {
			errs = append(errs, err)
		}
	}

	a.closers = nil

	return errors.Join(errs...)
}

// buildNotifier enables the configured channels. Channels that cannot be
// opened are logged and left out.
func (a *App) buildNotifier(ctx context.Context, delivery Delivery) notify.Notifier {
	channels := notify.Multi{notify.Log{}}
	settings := a.Config.Notifications

	if delivery >= DeliveryBackground && settings.Desktop {
		desktop, err := notify.NewDesktop(DisplayName)
		if err != nil {
			logger.WarnKV(ctx, "Desktop notifications unavailable", "error", err)
		} else {
			channels = append(channels, desktop)
			a.closers = append(a.closers, desktop)
		}
	}

	if delivery >= DeliveryForeground && settings.Sound {
		sound, err := notify.NewSound(settings.SoundFile, settings.SoundDuration)
		if err != nil {
			logger.WarnKV(ctx, "Sound cue unavailable", "error", err)
		} else {
			channels = append(channels, sound)
			a.closers = append(a.closers, sound)
		}
	}

	return channels
}
