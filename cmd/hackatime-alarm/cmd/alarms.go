package cmd

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	domain "github.com/oshokin/hackatime-alarm/internal/domain/alarm"
)

var (
	// targetHours is the hour part of a new alarm.
	targetHours int
	// targetMinutes is the minute part of a new alarm.
	targetMinutes int
	// stepHours is the hour part of the interval spacing.
	stepHours int
	// stepMinutes is the minute part of the interval spacing.
	stepMinutes int
	// intervalCount is the number of interval alarms.
	intervalCount int

	alarmsCmd = &cobra.Command{
		Use:   "alarms",
		Short: "Manage coding time alarms.",
	}

	alarmsListCmd = &cobra.Command{
		Use:   "list",
		Short: "List alarms in order.",
		Args:  cobra.NoArgs,
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, _ []string) error {
			st, err := b.Status(ctx)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), st.Alarms, func(w io.Writer) error {
				return printAlarms(w, st.Alarms, st.Today)
			})
		}),
	}

	alarmsAddCmd = &cobra.Command{
		Use:     "add <name>",
		Short:   "Add a manual alarm.",
		Example: `  hackatime-alarm alarms add "Deep work" --hours 2 --minutes 30`,
		Args:    cobra.ExactArgs(1),
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
			created, err := b.Add(ctx, args[0], targetHours, targetMinutes)
			if err != nil {
				return err
			}

			return printAlarm(cmd.OutOrStdout(), "Added", &created)
		}),
	}

	alarmsIntervalCmd = &cobra.Command{
		Use:     "interval",
		Short:   "Replace interval alarms with a new evenly spaced batch.",
		Example: `  hackatime-alarm alarms interval --step-hours 1 --count 4`,
		Args:    cobra.NoArgs,
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, _ []string) error {
			created, err := b.GenerateInterval(ctx, stepHours, stepMinutes, intervalCount)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), created, func(w io.Writer) error {
				_, _ = fmt.Fprintf(w, "Generated %d interval alarms.\n", len(created))

				return printAlarms(w, created, "")
			})
		}),
	}

	alarmsClearIntervalCmd = &cobra.Command{
		Use:   "clear-interval",
		Short: "Remove every interval alarm.",
		Args:  cobra.NoArgs,
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, _ []string) error {
			removed, err := b.ClearInterval(ctx)
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), map[string]int{"removed": removed}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Removed %d interval alarms.\n", removed)

				return err
			})
		}),
	}

	alarmsToggleCmd = &cobra.Command{
		Use:   "toggle <id>",
		Short: "Enable or disable an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
			updated, err := b.Toggle(ctx, args[0])
			if err != nil {
				return err
			}

			verb := "Disabled"
			if updated.Enabled {
				verb = "Enabled"
			}

			return printAlarm(cmd.OutOrStdout(), verb, &updated)
		}),
	}

	alarmsResetCmd = &cobra.Command{
		Use:   "reset <id>",
		Short: "Clear the trigger of an alarm so it can fire again today.",
		Args:  cobra.ExactArgs(1),
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
			updated, err := b.ResetTrigger(ctx, args[0])
			if err != nil {
				return err
			}

			return printAlarm(cmd.OutOrStdout(), "Reset", &updated)
		}),
	}

	alarmsRemoveCmd = &cobra.Command{
		Use:   "remove <id>",
		Short: "Delete an alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
			if err := b.Remove(ctx, args[0]); err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), map[string]string{"removed": args[0]}, func(w io.Writer) error {
				_, err := fmt.Fprintf(w, "Removed %s.\n", args[0])

				return err
			})
		}),
	}

	alarmsShowCmd = &cobra.Command{
		Use:   "show <id>",
		Short: "Show one alarm.",
		Args:  cobra.ExactArgs(1),
		RunE: withBackend(func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error {
			found, err := b.Get(ctx, args[0])
			if err != nil {
				return err
			}

			return printResult(cmd.OutOrStdout(), &found, func(w io.Writer) error {
				return printAlarms(w, []domain.Alarm{found}, "")
			})
		}),
	}
)

// withBackend opens the backend for the duration of run.
func withBackend(
	run func(ctx context.Context, cmd *cobra.Command, b backend, args []string) error,
) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		b, err := openBackend(ctx)
		if err != nil {
			return err
		}

		defer func() {
			_ = b.Close()
		}()

		return run(ctx, cmd, b, args)
	}
}

func printAlarm(w io.Writer, verb string, a *domain.Alarm) error {
	return printResult(w, a, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "%s %q (%s) %s.\n", verb, a.Name, a.Target(), a.ID)

		return err
	})
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	alarmsAddCmd.Flags().IntVarP(&targetHours, "hours", "H", 0, "target hours (0-23)")
	alarmsAddCmd.Flags().IntVarP(&targetMinutes, "minutes", "M", 0, "target minutes (0-59)")

	alarmsIntervalCmd.Flags().IntVar(&stepHours, "step-hours", 0, "hours between alarms")
	alarmsIntervalCmd.Flags().IntVar(&stepMinutes, "step-minutes", 0, "minutes between alarms")
	alarmsIntervalCmd.Flags().IntVarP(&intervalCount, "count", "n", 1, "number of alarms (1-50)")

	alarmsCmd.AddCommand(
		alarmsListCmd,
		alarmsShowCmd,
		alarmsAddCmd,
		alarmsIntervalCmd,
		alarmsClearIntervalCmd,
		alarmsToggleCmd,
		alarmsResetCmd,
		alarmsRemoveCmd,
	)

	rootCmd.AddCommand(alarmsCmd)
}
