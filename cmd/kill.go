package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

var flagKillServer bool

var killCmd = &cobra.Command{
	Use:   "kill [target]",
	Short: "Kill a session, or the whole server with --server",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		if flagKillServer {
			return srv.KillServer(cmd.Context())
		}
		if len(args) == 0 {
			return fmt.Errorf("kill: a target session is required unless --server is set")
		}
		if err := srv.KillSession(cmd.Context(), args[0]); err != nil {
			return err
		}
		telemetry.Metrics.SessionsKilled.Add(cmd.Context(), 1,
			metric.WithAttributes(attribute.String("session.target", args[0])))
		return nil
	},
}

func init() {
	killCmd.Flags().BoolVar(&flagKillServer, "server", false, "kill the tmux server and every session on it")
	rootCmd.AddCommand(killCmd)
}
