package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/obsidiansystems/libtmux/tmux"
)

var flagAttached bool

var lsCmd = &cobra.Command{
	Use:   "ls",
	Short: "List sessions on the server",
	RunE: func(cmd *cobra.Command, args []string) error {
		srv := getServer()
		var (
			sessions []*tmux.Session
			err      error
		)
		if flagAttached {
			sessions, err = srv.AttachedSessions(cmd.Context())
		} else {
			sessions, err = srv.Sessions(cmd.Context())
		}
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tWINDOWS\tATTACHED")
		for _, s := range sessions {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", s.ID(), s.Name(), s.Record["session_windows"], s.Record["session_attached"])
		}
		return w.Flush()
	},
}

func init() {
	lsCmd.Flags().BoolVar(&flagAttached, "attached", false, "only sessions with at least one client attached")
	rootCmd.AddCommand(lsCmd)
}
