package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/oshokin/hackatime-alarm/internal/service/background"
)

var serviceCmd = &cobra.Command{
	Use:   "service <action>",
	Short: "Control the background evaluation service.",
	Long: `Installs and controls the background service that checks the alarms every
background interval while the foreground monitor is not running.

Actions: ` + strings.Join(background.Actions(), ", ") + `.
The "run" action is what the service manager executes.`,
	Args:      cobra.ExactArgs(1),
	ValidArgs: background.Actions(),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := background.Run(cmd.Context(), &background.Options{
			ConfigPath: configPath,
			Action:     args[0],
		})
		if err != nil {
			return err
		}

		if out != "" {
			_, _ = fmt.Fprintln(cmd.OutOrStdout(), out)
		}

		return nil
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(serviceCmd)
}
