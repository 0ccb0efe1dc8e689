package cmd

import (
	"os"
	"os/exec"

	"github.com/spf13/cobra"

	"github.com/obsidiansystems/libtmux/internal/picker"
)

var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Interactively browse sessions and windows",
	Long: `Open an interactive browser over the server's sessions and
windows. Selecting an entry attaches to it (or switches the client
when already inside tmux); sessions can be created, killed and
expanded in place.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		browser := picker.Browser{Server: srv}
		choice, err := browser.Run(cmd.Context())
		if err != nil || choice == nil {
			return err
		}
		if choice.Window != nil {
			if err := choice.Window.Select(cmd.Context()); err != nil {
				return err
			}
		}
		name := choice.Session.Name()
		if insideTmux() {
			return srv.SwitchClient(cmd.Context(), name)
		}
		bin, argv, err := srv.CommandArgs("attach-session", "-t"+name)
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
	rootCmd.AddCommand(browseCmd)
}
