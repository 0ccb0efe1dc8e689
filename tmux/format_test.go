package tmux

import (
	"reflect"
	"strings"
	"testing"
)

func TestFormatString(t *testing.T) {
	got := formatString([]string{"session_id", "session_name"})
	want := "#{session_id}" + fieldSeparator + "#{session_name}"
	if got != want {
		t.Errorf("formatString() = %q, want %q", got, want)
	}
}

func TestDecodeLineRoundTrip(t *testing.T) {
	fields := []string{"session_id", "session_name", "session_attached"}
	values := map[string]string{
		"session_id":       "$3",
		"session_name":     "work",
		"session_attached": "1",
	}
	got := decodeLine(joinFields(fields, values), fields)
	if !reflect.DeepEqual(map[string]string(got), values) {
		t.Errorf("decodeLine() = %v, want %v", got, values)
	}
}

func TestDecodeLineDropsEmptyValues(t *testing.T) {
	fields := []string{"window_id", "window_name", "window_flags"}
	line := joinFields(fields, map[string]string{
		"window_id":   "@1",
		"window_name": "bash",
		// window_flags empty
	})
	got := decodeLine(line, fields)
	if _, ok := got["window_flags"]; ok {
		t.Errorf("empty window_flags should be dropped, got %v", got)
	}
	if got["window_id"] != "@1" || got["window_name"] != "bash" {
		t.Errorf("unexpected record %v", got)
	}
}

func TestDecodeLinePreservesEmptyCurrentPath(t *testing.T) {
	fields := []string{"pane_id", "pane_current_path", "pane_current_command"}
	line := joinFields(fields, map[string]string{
		"pane_id": "%0",
		// pane_current_path empty: the pane's process is dying and
		// tmux could not determine a cwd
		"pane_current_command": "bash",
	})
	got := decodeLine(line, fields)
	v, ok := got["pane_current_path"]
	if !ok {
		t.Fatalf("pane_current_path should be preserved when empty, got %v", got)
	}
	if v != "" {
		t.Errorf("pane_current_path = %q, want empty", v)
	}
}

func TestDecodeLineShortLine(t *testing.T) {
	fields := []string{"a", "b", "c"}
	got := decodeLine("only"+fieldSeparator+"two", fields)
	if len(got) != 2 {
		t.Errorf("decodeLine() = %v, want two entries", got)
	}
	if _, ok := got["c"]; ok {
		t.Errorf("field beyond the line's values should be absent, got %v", got)
	}
}

func TestDecodeLinesSkipsBlankLines(t *testing.T) {
	fields := []string{"session_name"}
	got := decodeLines([]string{"dev", "", "prod"}, fields)
	if len(got) != 2 {
		t.Fatalf("decodeLines() = %d records, want 2", len(got))
	}
}

func TestSeparatorSurvivesCommonDelimiters(t *testing.T) {
	// Paths and names full of tmux's own delimiters must split cleanly.
	fields := []string{"session_name", "pane_current_path"}
	values := map[string]string{
		"session_name":      "a:b.c",
		"pane_current_path": "/home/user/dir with spaces:and.colons",
	}
	got := decodeLine(joinFields(fields, values), fields)
	if got["pane_current_path"] != values["pane_current_path"] {
		t.Errorf("path mangled: %q", got["pane_current_path"])
	}
	if strings.Contains(values["pane_current_path"], fieldSeparator) {
		t.Fatal("separator collides with a plausible path")
	}
}
