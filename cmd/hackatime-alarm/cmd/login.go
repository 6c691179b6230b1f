package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

var loginCmd = &cobra.Command{
	Use:   "login <api-key>",
	Short: "Store the Hackatime API key.",
	Long: `Stores the Hackatime API key next to the alarms. The api_key setting and the
HACKATIME_ALARM_API_KEY environment variable take precedence when set.`,
	Args: cobra.ExactArgs(1),
	RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
		if err := b.SetCredential(ctx, args[0]); err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), map[string]bool{"stored": true}, func(w io.Writer) error {
			_, err := fmt.Fprintln(w, "API key stored.")

			return err
		})
	}),
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(loginCmd)
}
