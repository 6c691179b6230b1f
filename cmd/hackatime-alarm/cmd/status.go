package cmd

import (
	"context"
	"io"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show today's coding time and the alarms.",
	Args:  cobra.NoArgs,
	RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, _ []string) error {
		st, err := b.Status(ctx)
		if err != nil {
			return err
		}

		return printResult(cmd.OutOrStdout(), &st, func(w io.Writer) error {
			return printStatus(w, &st)
		})
	}),
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(statusCmd)
}
