package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var flagPaneSession string

var panesCmd = &cobra.Command{
	Use:   "panes",
	Short: "List panes, across all sessions or for one session",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		panes, err := srv.Panes(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "SESSION\tWINDOW\tPANE\tCOMMAND\tPATH")
		for _, p := range panes {
			if flagPaneSession != "" && p.SessionName() != flagPaneSession {
				continue
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", p.SessionName(), p.WindowID(), p.ID(), p.CurrentCommand(), p.CurrentPath())
		}
		return w.Flush()
	},
}

func init() {
	panesCmd.Flags().StringVar(&flagPaneSession, "session", "", "restrict to one session by name")
	rootCmd.AddCommand(panesCmd)
}
