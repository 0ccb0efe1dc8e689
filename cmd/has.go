package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var hasCmd = &cobra.Command{
	Use:   "has <name>",
	Short: "Report whether a session exists (exit 1 when absent)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		ok, err := srv.HasSession(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		if !ok {
			fmt.Println("absent")
			shutdownTelemetry()
			os.Exit(1)
		}
		fmt.Println("present")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hasCmd)
}
