package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var captureCmd = &cobra.Command{
	Use:   "capture <pane>",
	Short: "Print the visible content of a pane",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		panes, err := srv.Panes(cmd.Context())
		if err != nil {
			return err
		}
		pane, err := resolvePane(panes, args[0])
		if err != nil {
			return err
		}
		content, err := pane.Capture(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Println(content)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(captureCmd)
}
