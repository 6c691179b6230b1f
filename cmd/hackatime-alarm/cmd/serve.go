package cmd

import (
	"github.com/spf13/cobra"

	"github.com/oshokin/hackatime-alarm/internal/service/daemon"
)

var (
	// listenAddress overrides the gRPC control API address.
	listenAddress string
	// httpAddress overrides the status and metrics address.
	httpAddress string
	// disableHTTP turns the status and metrics server off.
	disableHTTP bool

	serveCmd = &cobra.Command{
		Use:   "serve",
		Short: "Run the foreground monitor with its control API.",
		Long: `Polls Hackatime every poll interval, fires alarms with desktop notifications
and an audible cue, and serves the gRPC control API used by the alarm
commands. Status and Prometheus metrics are served over HTTP unless disabled.

Only one foreground monitor may run at a time; the background service stays
idle while it is alive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return daemon.Run(cmd.Context(), &daemon.Options{
				ConfigPath:    configPath,
				ListenAddress: listenAddress,
				HTTPAddress:   httpAddress,
				DisableHTTP:   disableHTTP,
			})
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	serveCmd.Flags().StringVar(&listenAddress, "listen", "", "gRPC listen address, overrides server_addr")
	serveCmd.Flags().StringVar(&httpAddress, "http", "", "HTTP status address, overrides http_addr")
	serveCmd.Flags().BoolVar(&disableHTTP, "no-http", false, "disable the HTTP status server")

	rootCmd.AddCommand(serveCmd)
}
