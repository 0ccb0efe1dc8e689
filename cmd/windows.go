package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagWindowSession string

var windowsCmd = &cobra.Command{
	Use:   "windows",
	Short: "List windows, across all sessions or for one session",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		windows, err := srv.Windows(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tID\tINDEX\tNAME\tACTIVE")
		for _, win := range windows {
			if flagWindowSession != "" && win.SessionName() != flagWindowSession {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", win.SessionName(), win.ID(), win.Index(), win.Name(), win.Record["window_active"])
		}
		return w.Flush()
	},
}

func init() {
	windowsCmd.Flags().StringVar(&flagWindowSession, "session", "", "restrict to one session by name")
	rootCmd.AddCommand(windowsCmd)
}
