// Package daemon runs the foreground monitor together with its control API
// and status surface.
package daemon

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"

	"google.golang.org/grpc"

	api "github.com/oshokin/hackatime-alarm/internal/api/grpc/alarm"
	"github.com/oshokin/hackatime-alarm/internal/api/rest"
	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/platform/pidfile"
	"github.com/oshokin/hackatime-alarm/internal/service/alarms"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
)

// Options controls the daemon process.
type Options struct {
	// ConfigPath specifies the path to settings YAML file.
	ConfigPath string
	// ListenAddress overrides the gRPC control API address.
	ListenAddress string
	// HTTPAddress overrides the status and metrics address.
	HTTPAddress string
	// DisableHTTP turns the status and metrics server off.
	DisableHTTP bool
}

// Run starts the monitor, the gRPC control API and the HTTP status server,
// and blocks until ctx is cancelled or one of them fails.
func Run(ctx context.Context, opts *Options) error {
	ctx = logger.WithName(ctx, "daemon")

	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	applyOverrides(cfg, opts)

	if err = pidfile.Write(cfg.PIDFile); err != nil {
		return fmt.Errorf("claim pid file: %w", err)
	}

	defer func() {
		if removeErr := pidfile.Remove(cfg.PIDFile); removeErr != nil {
			logger.WarnKV(ctx, "Failed to remove pid file", "error", removeErr)
		}
	}()

	a, err := app.New(ctx, cfg, app.DeliveryForeground)
	if err != nil {
		return fmt.Errorf("initialise application: %w", err)
	}

	defer func() {
		if closeErr := a.Close(); closeErr != nil {
			logger.WarnKV(ctx, "Failed to release resources", "error", closeErr)
		}
	}()

	pass := monitor.NewPass(a.Dependencies())
	foreground := monitor.NewForeground(pass, cfg.PollInterval)
	statusFn := StatusFunc(a, pass)

	lc := net.ListenConfig{}

	grpcListener, err := lc.Listen(ctx, "tcp", cfg.ServerAddress)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", cfg.ServerAddress, err)
	}

	grpcServer := grpc.NewServer(grpc.UnaryInterceptor(api.LoggingInterceptor))
	healthServer := api.Register(grpcServer, api.NewServer(a.Alarms, statusFn))

	var (
		httpServer   *http.Server
		httpListener net.Listener
	)

	if cfg.HTTPAddress != "" {
		httpListener, err = lc.Listen(ctx, "tcp", cfg.HTTPAddress)
		if err != nil {
			_ = grpcListener.Close()

			return fmt.Errorf("listen on %s: %w", cfg.HTTPAddress, err)
		}

		httpServer = &http.Server{
			Handler:           rest.NewRouter(ctx, a.Alarms, statusFn, a.Metrics.Handler()),
			ReadHeaderTimeout: cfg.Timeout,
		}
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		wg    sync.WaitGroup
		errCh = make(chan error, 3)
	)

	wg.Go(func() {
		if runErr := foreground.Run(runCtx); runErr != nil {
			errCh <- fmt.Errorf("run monitor: %w", runErr)
		}
	})

	wg.Go(func() {
		if serveErr := grpcServer.Serve(grpcListener); serveErr != nil && !errors.Is(serveErr, grpc.ErrServerStopped) {
			errCh <- fmt.Errorf("serve gRPC: %w", serveErr)
		}
	})

	if httpServer != nil {
		wg.Go(func() {
			if serveErr := httpServer.Serve(httpListener); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
				errCh <- fmt.Errorf("serve HTTP: %w", serveErr)
			}
		})
	}

	logger.InfoKV(ctx, "Daemon started",
		"grpc_address", cfg.ServerAddress,
		"http_address", cfg.HTTPAddress,
		"poll_interval", cfg.PollInterval,
		"storage", cfg.Storage.Path)

	var runErr error

	select {
	case <-runCtx.Done():
	case runErr = <-errCh:
	}

	logger.Info(ctx, "Shutting down daemon")

	cancel()
	healthServer.Shutdown()
	grpcServer.GracefulStop()

	if httpServer != nil {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.WithoutCancel(ctx), cfg.Timeout)
		if shutdownErr := httpServer.Shutdown(shutdownCtx); shutdownErr != nil {
			logger.WarnKV(ctx, "HTTP server forced to shut down", "error", shutdownErr)
		}

		shutdownCancel()
	}

	wg.Wait()

	logger.Info(ctx, "Daemon stopped")

	return runErr
}

// StatusFunc reports the status of a running monitor.
func StatusFunc(a *app.App, pass *monitor.Pass) func(ctx context.Context) alarms.Status {
	return func(ctx context.Context) alarms.Status {
		st := alarms.Status{
			Today:  a.Clock.Today(),
			Alarms: a.Alarms.List(ctx),
		}

		if reading, ok := pass.LatestReading(); ok {
			st.Reading = &reading
		}

		return st
	}
}

func applyOverrides(cfg *config.Config, opts *Options) {
	if opts.ListenAddress != "" {
		cfg.ServerAddress = opts.ListenAddress
	}

	if opts.HTTPAddress != "" {
		cfg.HTTPAddress = opts.HTTPAddress
	}

	if opts.DisableHTTP {
		cfg.HTTPAddress = ""
	}
}
