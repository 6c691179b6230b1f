// Package background hosts the background evaluation task as an OS service.
//
// The service runs one pass every background interval, reloading alarms from
// storage first, and skips passes while the foreground daemon is alive so that
// the two never evaluate the same alarms concurrently.
package background

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"

	"github.com/kardianos/service"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/platform/pidfile"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
)

// Actions accepted by Run.
const (
	ActionRun       = "run"
	ActionStatus    = "status"
	ActionInstall   = "install"
	ActionUninstall = "uninstall"
	ActionStart     = "start"
	ActionStop      = "stop"
	ActionRestart   = "restart"
)

// ServiceName is the name registered with the service manager.
const ServiceName = app.Name + "-background"

// errUnknownAction is returned for unsupported service actions.
var errUnknownAction = errors.New("unknown service action")

// Options controls the background host.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// Action is one of the Action* constants.
	Action string
}

// Actions lists every supported action.
func Actions() []string {
	return []string{ActionRun, ActionStatus, ActionInstall, ActionUninstall, ActionStart, ActionStop, ActionRestart}
}

// program implements service.Interface.
type program struct {
	// ctx is the parent context of the loop.
	ctx context.Context
	// cfg is the validated configuration.
	cfg *config.Config

	// cancel stops the loop.
	cancel context.CancelFunc
	// wg waits for the loop to exit.
	wg sync.WaitGroup
	// app holds the wired collaborators while running.
	app *app.App
}

// Start implements service.Interface. It must not block.
func (p *program) Start(service.Service) error {
	a, err := app.New(p.ctx, p.cfg, app.DeliveryBackground)
	if err != nil {
		return fmt.Errorf("initialise application: %w", err)
	}

	p.app = a

	loopCtx, cancel := context.WithCancel(p.ctx)
	p.cancel = cancel

	loop := NewLoop(
		monitor.DefineBackgroundTask(a.Dependencies()),
		p.cfg.BackgroundInterval,
		func() bool {
			_, alive := pidfile.Alive(p.cfg.PIDFile)
			return alive
		},
	)

	p.wg.Go(func() {
		loop.Run(loopCtx)
	})

	logger.InfoKV(p.ctx, "Background service started", "interval", p.cfg.BackgroundInterval)

	return nil
}

// Stop implements service.Interface.
func (p *program) Stop(service.Service) error {
	if p.cancel != nil {
		p.cancel()
	}

	p.wg.Wait()

	if p.app != nil {
		if err := p.app.Close(); err != nil {
			logger.WarnKV(p.ctx, "Failed to release resources", "error", err)
		}
	}

	logger.Info(p.ctx, "Background service stopped")

	return nil
}

// Run performs a service action. ActionRun blocks until the service manager
// or a signal stops the service.
func Run(ctx context.Context, opts *Options) (string, error) {
	ctx = logger.WithName(ctx, "background")

	if !slices.Contains(Actions(), opts.Action) {
		return "", fmt.Errorf("%w: %q", errUnknownAction, opts.Action)
	}

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return "", fmt.Errorf("load settings: %w", err)
	}

	svcConfig, err := serviceConfig(opts.ConfigPath)
	if err != nil {
		return "", err
	}

	prg := &program{
		ctx: ctx,
		cfg: cfg,
	}

	s, err := service.New(prg, svcConfig)
	if err != nil {
		return "", fmt.Errorf("create service: %w", err)
	}

	switch opts.Action {
	case ActionRun:
		if err = s.Run(); err != nil {
			return "", fmt.Errorf("run service: %w", err)
		}

		return "", nil
	case ActionStatus:
		status, statusErr := s.Status()
		if statusErr != nil {
			return "", fmt.Errorf("query service status: %w", statusErr)
		}

		return statusString(status), nil
	default:
		if err = service.Control(s, opts.Action); err != nil {
			return "", fmt.Errorf("%s service: %w", opts.Action, err)
		}

		logger.InfoKV(ctx, "Service action completed", "action", opts.Action, "service", ServiceName)

		return opts.Action + " ok", nil
	}
}

// serviceConfig describes the service so that the manager runs "service run"
// with the same configuration file.
func serviceConfig(configPath string) (*service.Config, error) {
	if configPath == "" {
		configPath = config.DefaultConfigFilename
	}

	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	return &service.Config{
		Name:             ServiceName,
		DisplayName:      app.DisplayName + " (background)",
		Description:      "Checks today's Hackatime coding time and notifies about reached alarms.",
		Arguments:        []string{"--config", absConfig, "service", ActionRun},
		WorkingDirectory: filepath.Dir(absConfig),
		Option: service.KeyValue{
			"UserService": true,
		},
	}, nil
}

func statusString(status service.Status) string {
	switch status {
	case service.StatusRunning:
		return "running"
	case service.StatusStopped:
		return "stopped"
	default:
		return "unknown"
	}
}
