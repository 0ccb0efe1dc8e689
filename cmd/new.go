package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/obsidiansystems/libtmux/tmux"
)

var (
	flagKillExisting bool
	flagAttachNew    bool
	flagStartDir     string
	flagWindowName   string
	flagWindowCmd    string
)

var newCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a detached session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		sess, err := srv.NewSession(cmd.Context(), tmux.NewSessionOptions{
			Name:           args[0],
			KillExisting:   flagKillExisting,
			Attach:         flagAttachNew,
			StartDirectory: flagStartDir,
			WindowName:     flagWindowName,
			WindowCommand:  flagWindowCmd,
		})
		if err != nil {
			return err
		}
		telemetry.Metrics.SessionsCreated.Add(cmd.Context(), 1,
			metric.WithAttributes(attribute.String("session.name", sess.Name())))
		fmt.Printf("%s\t%s\n", sess.ID(), sess.Name())
		return nil
	},
}

func init() {
	newCmd.Flags().BoolVar(&flagKillExisting, "kill-existing", false, "replace a session of the same name")
	newCmd.Flags().BoolVar(&flagAttachNew, "attach", false, "attach the current client to the new session")
	newCmd.Flags().StringVar(&flagStartDir, "start-dir", "", "working directory for the first window")
	newCmd.Flags().StringVar(&flagWindowName, "window-name", "", "name for the first window")
	newCmd.Flags().StringVar(&flagWindowCmd, "command", "", "command to run in the first window")
	rootCmd.AddCommand(newCmd)
}
