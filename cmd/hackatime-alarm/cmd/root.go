package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/logger"
	"github.com/oshokin/hackatime-alarm/internal/version"
)

var (
	// configPath to the configuration YAML file.
	configPath string
	// logLevel overrides the configured log level.
	logLevel string
	// offline makes alarm commands work on storage instead of the daemon.
	offline bool
	// jsonOutput prints results as JSON.
	jsonOutput bool

	// rootCmd represents the base command.
	rootCmd = &cobra.Command{
		Use:   "hackatime-alarm",
		Short: "Alarms on today's Hackatime coding time.",
		Long: `Watches today's coding time reported by Hackatime and notifies when
configured alarms are reached.

Run "serve" to start the foreground monitor with its control API, or install
the background service with "service install". Alarm commands talk to the
running daemon and fall back to storage with --offline.`,
		SilenceUsage:      true,
		PersistentPreRunE: configureLogging,
	}
)

// Execute runs the hackatime-alarm CLI and exits with non-zero status on error.
func Execute() {
	version.AttachCobraVersionCommand(rootCmd)

	// Setup graceful shutdown handling.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)

	err := rootCmd.ExecuteContext(ctx)

	stop()

	if err != nil {
		os.Exit(1)
	}
}

// configureLogging applies the configured log level and format. --log-level
// wins over the configuration file.
func configureLogging(*cobra.Command, []string) error {
	level, format := logLevel, ""

	// Commands report configuration errors themselves.
	if cfg, err := config.Load(configPath); err == nil {
		format = cfg.LogFormat

		if level == "" {
			level = cfg.LogLevel
		}
	}

	if err := logger.Configure(level, format); err != nil {
		return err
	}

	logger.NewGRPCLogger().Install()

	return nil
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", config.DefaultConfigFilename, "path to configuration file")
	flags.StringVarP(&logLevel, "log-level", "l", "", "log level (debug, info, warn, error)")
	flags.BoolVar(&offline, "offline", false, "operate on storage directly instead of the running daemon")
	flags.BoolVar(&jsonOutput, "json", false, "print results as JSON")
}
