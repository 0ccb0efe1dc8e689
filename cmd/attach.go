package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"
)

var attachCmd = &cobra.Command{
	Use:   "attach <name>",
	Short: "Attach the terminal to a session",
	Long: `Attach the terminal to a session. Inside a tmux client this
switches the client instead, since nesting attach would fail.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		if insideTmux() {
			return srv.SwitchClient(cmd.Context(), args[0])
		}
		// Hand the terminal over to tmux directly; capturing its
		// output would break the attached client.
		bin, argv, err := srv.CommandArgs("attach-session", "-t"+args[0])
		if err != nil {
			return err
		}
		shutdownTelemetry()
		c := exec.CommandContext(cmd.Context(), bin, argv...)
		c.Stdin = os.Stdin
		c.Stdout = os.Stdout
		c.Stderr = os.Stderr
		return c.Run()
	},
}

func init() {
	rootCmd.AddCommand(attachCmd)
}
