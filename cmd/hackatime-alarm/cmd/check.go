package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/oshokin/hackatime-alarm/internal/config"
	"github.com/oshokin/hackatime-alarm/internal/domain/alarm"
	"github.com/oshokin/hackatime-alarm/internal/platform/pidfile"
	"github.com/oshokin/hackatime-alarm/internal/service/app"
	"github.com/oshokin/hackatime-alarm/internal/service/monitor"
)

// checkResult is the JSON form of a single pass.
type checkResult struct {
	// Today is the day the alarms were judged against.
	Today alarm.Date `json:"today"`
	// Reading is the fetched elapsed time.
	Reading alarm.Reading `json:"reading"`
	// Fired lists the alarms that fired.
	Fired []alarm.Alarm `json:"fired"`
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one evaluation pass now.",
	Long: `Fetches today's coding time once, evaluates the alarms and sends desktop
notifications for the ones that fired. Refused while the foreground monitor
is running, since it owns the alarms.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load(configPath)
		if err != nil {
			return fmt.Errorf("load settings: %w", err)
		}

		if pid, alive := pidfile.Alive(cfg.PIDFile); alive {
			return fmt.Errorf("%w (pid %d)", errDaemonRunning, pid)
		}

		a, err := app.New(ctx, cfg, app.DeliveryBackground)
		if err != nil {
			return fmt.Errorf("initialise application: %w", err)
		}

		defer func() {
			_ = a.Close()
		}()

		outcome, err := monitor.NewPass(a.Dependencies()).Run(ctx)
		if err != nil {
			return err
		}

		result := checkResult{
			Today:   outcome.Today,
			Reading: outcome.Reading,
			Fired:   make([]alarm.Alarm, 0, len(outcome.Fired)),
		}

		for i := range outcome.Fired {
			result.Fired = append(result.Fired, outcome.Fired[i].Alarm)
		}

		return printResult(cmd.OutOrStdout(), &result, func(w io.Writer) error {
			_, _ = fmt.Fprintf(w, "Today (%s): %s\n", outcome.Today, outcome.Reading.Elapsed())

			for i := range outcome.Fired {
				f := &outcome.Fired[i]

				_, _ = fmt.Fprintf(w, "Fired: %s\n", f.Message())
			}

			return nil
		})
	},
}

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(checkCmd)
}
