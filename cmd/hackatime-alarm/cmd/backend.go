package cmd

import (
	"context"
	"errors"
	"fmt"

	api "github.com/oshokin/hackatime-alarm/internal/api/grpc/alarm"
	"github.com/oshokin/hackatime-alarm/internal/config"
	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/platform/pidfile"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
)

var (
	// errDaemonRunning is returned when offline access would race the daemon.
	errDaemonRunning = errors.New("foreground daemon is running")
	// errDaemonUnreachable is returned when the daemon does not answer.
	errDaemonUnreachable = errors.New("daemon is not reachable, start it with \"serve\" or use --offline")
)

// backend is the alarm store as seen by the CLI.
type backend interface {
	List(ctx context.Context) (domain.Collection, error)
	Get(ctx context.Context, id string) (domain.Alarm, error)
	Add(ctx context.Context, name string, hours, minutes int) (domain.Alarm, error)
	GenerateInterval(ctx context.Context, stepHours, stepMinutes, count int) ([]domain.Alarm, error)
	ClearInterval(ctx context.Context) (int, error)
	Toggle(ctx context.Context, id string) (domain.Alarm, error)
	ResetTrigger(ctx context.Context, id string) (domain.Alarm, error)
	Remove(ctx context.Context, id string) error
	SetCredential(ctx context.Context, key string) error
	Status(ctx context.Context) (alarms.Status, error)
	Close() error
}

// openBackend connects to the daemon, or opens storage directly with --offline.
func openBackend(ctx context.Context) (backend, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	if offline {
		return openLocal(ctx, cfg)
	}

	return openRemote(ctx, cfg)
}

func openRemote(ctx context.Context, cfg *config.Config) (backend, error) {
	actor, err := api.DetectActor()
	if err != nil {
		logger.WarnKV(ctx, "Failed to detect actor", "error", err)
	}

	client, err := api.Dial(ctx, cfg.ServerAddress,
		api.WithCallTimeout(cfg.Timeout),
		api.WithActor(actor))
	if err != nil {
		return nil, err
	}

	if err = client.Ping(ctx); err != nil {
		_ = client.Close()

		return nil, fmt.Errorf("%w: %w", errDaemonUnreachable, err)
	}

	return client, nil
}

func openLocal(ctx context.Context, cfg *config.Config) (backend, error) {
	if pid, alive := pidfile.Alive(cfg.PIDFile); alive {
		return nil, fmt.Errorf("%w (pid %d), drop --offline to talk to it", errDaemonRunning, pid)
	}

	a, err := app.New(ctx, cfg, app.DeliveryNone)
	if err != nil {
		return nil, fmt.Errorf("initialise application: %w", err)
	}

	return &localBackend{app: a}, nil
}

// localBackend adapts the alarm service to the backend interface.
type localBackend struct {
	// app holds the storage-backed alarm service.
	app *app.App
}

func (l *localBackend) List(ctx context.Context) (domain.Collection, error) {
	return l.app.Alarms.List(ctx), nil
}

func (l *localBackend) Get(ctx context.Context, id string) (domain.Alarm, error) {
	return l.app.Alarms.Get(ctx, id)
}

func (l *localBackend) Add(ctx context.Context, name string, hours, minutes int) (domain.Alarm, error) {
	return l.app.Alarms.Add(ctx, name, hours, minutes)
}

func (l *localBackend) GenerateInterval(ctx context.Context, stepHours, stepMinutes, count int) ([]domain.Alarm, error) {
	return l.app.Alarms.GenerateInterval(ctx, stepHours, stepMinutes, count)
}

func (l *localBackend) ClearInterval(ctx context.Context) (int, error) {
	return l.app.Alarms.ClearInterval(ctx)
}

func (l *localBackend) Toggle(ctx context.Context, id string) (domain.Alarm, error) {
	return l.app.Alarms.Toggle(ctx, id)
}

func (l *localBackend) ResetTrigger(ctx context.Context, id string) (domain.Alarm, error) {
	return l.app.Alarms.ResetTrigger(ctx, id)
}

func (l *localBackend) Remove(ctx context.Context, id string) error {
	return l.app.Alarms.Remove(ctx, id)
}

func (l *localBackend) SetCredential(ctx context.Context, key string) error {
	return l.app.Alarms.SetCredential(ctx, key)
}

// Status reports the stored alarms. Offline status carries no reading
// unless the "check" command fetches one.
func (l *localBackend) Status(ctx context.Context) (alarms.Status, error) {
	return alarms.Status{
		Today:  l.app.Clock.Today(),
		Alarms: l.app.Alarms.List(ctx),
	}, nil
}

func (l *localBackend) Close() error {
	return l.app.Close()
}
