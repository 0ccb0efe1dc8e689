package cmd

import (
	"github.com/spf13/cobra"
)

var switchCmd = &cobra.Command{
	Use:   "switch <name>",
	Short: "Switch the attached client to another session",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return getServer().SwitchClient(cmd.Context(), args[0])
	},
}

func init() {
	rootCmd.AddCommand(switchCmd)
}
