package tmux

import "strings"

// fieldSeparator joins #{...} tokens in -F format strings and splits
// the lines tmux echoes back. Two adjacent C0 control bytes cannot
// appear in session names, paths, or window titles, where a single
// common delimiter like ":" or "\t" would collide.
const fieldSeparator = "\x1f\x1e"

// SessionFields is the schema requested from list-sessions and from
// new-session -P.
var SessionFields = []string{
	"session_name",
	"session_windows",
	"session_width",
	"session_height",
	"session_id",
	"session_created",
	"session_attached",
	"session_grouped",
	"session_group",
}

// WindowFields is the schema requested from list-windows. Listings
// prepend session-identifying fields for relational lookup.
var WindowFields = []string{
	"window_id",
	"window_name",
	"window_width",
	"window_height",
	"window_layout",
	"window_panes",
	"window_index",
	"window_flags",
	"window_active",
}

// PaneFields is the schema requested from list-panes.
var PaneFields = []string{
	"pane_id",
	"pane_index",
	"pane_width",
	"pane_height",
	"pane_title",
	"pane_active",
	"pane_dead",
	"pane_in_mode",
	"pane_synchronized",
	"pane_tty",
	"pane_pid",
	"pane_start_command",
	"pane_current_path",
	"pane_current_command",
	"history_size",
	"history_limit",
	"history_bytes",
}

// preserveEmpty lists fields kept in a Record even when tmux reports
// them empty. A pane whose process is exiting may have no working
// directory to report; the empty value means "could not be determined"
// and must stay distinguishable from the field being absent.
var preserveEmpty = map[string]bool{
	"pane_current_path": true,
}

// Record maps format field names to the values tmux returned for one
// entity. Fields tmux reported empty are omitted, except those on the
// preserve list.
type Record map[string]string

// formatString builds the -F argument requesting the given fields, in
// order, as separator-joined #{name} substitution tokens.
func formatString(fields []string) string {
	tokens := make([]string, len(fields))
	for i, f := range fields {
		tokens[i] = "#{" + f + "}"
	}
	return strings.Join(tokens, fieldSeparator)
}

// decodeLine zips one output line against the field list the format
// string requested. tmux returns values in the order asked for.
func decodeLine(line string, fields []string) Record {
	values := strings.Split(line, fieldSeparator)
	rec := make(Record, len(fields))
	for i, f := range fields {
		if i >= len(values) {
			break
		}
		if values[i] == "" && !preserveEmpty[f] {
			continue
		}
		rec[f] = values[i]
	}
	return rec
}

func decodeLines(lines []string, fields []string) []Record {
	recs := make([]Record, 0, len(lines))
	for _, line := range lines {
		if line == "" {
			continue
		}
		recs = append(recs, decodeLine(line, fields))
	}
	return recs
}
