package cmd

import (
	"testing"

	"github.com/obsidiansystems/libtmux/tmux"
)

func testPanes() []*tmux.Pane {
	return []*tmux.Pane{
		{Record: tmux.Record{
			"pane_id": "%0", "pane_index": "0",
			"session_name": "work", "window_index": "0", "window_id": "@1",
		}},
		{Record: tmux.Record{
			"pane_id": "%3", "pane_index": "1",
			"session_name": "work", "window_index": "1", "window_id": "@2",
		}},
		{Record: tmux.Record{
			"pane_id": "%7", "pane_index": "0",
			"session_name": "scratch", "window_index": "0", "window_id": "@5",
		}},
	}
}

func TestResolvePaneByID(t *testing.T) {
	p, err := resolvePane(testPanes(), "%3")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "%3" {
		t.Fatalf("resolved %s, want %%3", p.ID())
	}
}

func TestResolvePaneByCoordinates(t *testing.T) {
	p, err := resolvePane(testPanes(), "work:1.1")
	if err != nil {
		t.Fatal(err)
	}
	if p.ID() != "%3" {
		t.Fatalf("resolved %s, want %%3", p.ID())
	}
}

func TestResolvePaneUnknownID(t *testing.T) {
	if _, err := resolvePane(testPanes(), "%99"); err == nil {
		t.Fatal("expected an error for an unknown pane id")
	}
}

func TestResolvePaneMalformedTarget(t *testing.T) {
	for _, target := range []string{"work", "work:1", "1.0"} {
		if _, err := resolvePane(testPanes(), target); err == nil {
			t.Fatalf("expected an error for target %q", target)
		}
	}
}
