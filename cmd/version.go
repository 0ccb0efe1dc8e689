package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print tmuxctl and tmux server versions",
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Printf("tmuxctl %s\n", Version)
		v, err := getServer().Version(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Printf("tmux %s\n", v)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
