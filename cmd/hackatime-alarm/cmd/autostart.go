package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/oshokin/hackatime-alarm/internal/platform/autostart"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
)

var (
	autostartCmd = &cobra.Command{
		Use:   "autostart",
		Short: "Start the foreground monitor on login.",
	}

	autostartEnableCmd = &cobra.Command{
		Use:   "enable",
		Short: "Register the monitor as a login item.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := autostartManager()
			if err != nil {
				return err
			}

			return manager.Enable(cmd.Context())
		},
	}

	autostartDisableCmd = &cobra.Command{
		Use:   "disable",
		Short: "Remove the login item.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := autostartManager()
			if err != nil {
				return err
			}

			return manager.Disable(cmd.Context())
		},
	}

	autostartStatusCmd = &cobra.Command{
		Use:   "status",
		Short: "Report whether the login item is installed.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			manager, err := autostartManager()
			if err != nil {
				return err
			}

			state := "disabled"
			if manager.Enabled() {
				state = "enabled"
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), state)

			return err
		},
	}
)

// autostartManager describes a login item running "serve" with the current configuration.
func autostartManager() (*autostart.Manager, error) {
	absConfig, err := filepath.Abs(configPath)
	if err != nil {
		return nil, fmt.Errorf("resolve config path: %w", err)
	}

	return autostart.New(app.Name, app.DisplayName, "--config", absConfig, "serve")
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	autostartCmd.AddCommand(autostartEnableCmd, autostartDisableCmd, autostartStatusCmd)
	rootCmd.AddCommand(autostartCmd)
}
