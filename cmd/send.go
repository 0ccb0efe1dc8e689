package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/obsidiansystems/libtmux/tmux"
)

var flagSendEnter bool

var sendCmd = &cobra.Command{
	Use:   "send <pane> <keys>",
	Short: "Send keys to a pane",
	Long: `Send keys to a pane. The pane is addressed either by pane id
("%3") or by session:window.pane ("work:1.0").`,
	Args: cobra.ExactArgs(2),
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
		return pane.SendKeys(cmd.Context(), args[1], flagSendEnter)
	},
}

// resolvePane finds a pane by id ("%3") or by session:window.pane
// coordinates ("work:1.0") in a server snapshot.
func resolvePane(panes []*tmux.Pane, target string) (*tmux.Pane, error) {
	if strings.HasPrefix(target, "%") {
		for _, p := range panes {
			if p.ID() == target {
				return p, nil
			}
		}
		return nil, fmt.Errorf("no pane with id %s", target)
	}
	sess, rest, ok := strings.Cut(target, ":")
	if !ok {
		return nil, fmt.Errorf("pane target %q: want %%id or session:window.pane", target)
	}
	winIdx, paneIdx, ok := strings.Cut(rest, ".")
	if !ok {
		return nil, fmt.Errorf("pane target %q: want %%id or session:window.pane", target)
	}
	for _, p := range panes {
		if p.SessionName() == sess && p.Record["window_index"] == winIdx && p.Index() == paneIdx {
			return p, nil
		}
	}
	return nil, fmt.Errorf("no pane %s in session %s", rest, sess)
}

func init() {
	sendCmd.Flags().BoolVar(&flagSendEnter, "enter", false, "press Enter after the keys")
	rootCmd.AddCommand(sendCmd)
}
