package tmux

import (
	"context"
	"strings"
)

// Pane is a snapshot of one tmux pane. Listings carry the identifying
// fields of the enclosing session and window. pane_current_path is
// kept even when tmux reports it empty; see preserveEmpty.
type Pane struct {
	Record
	server *Server
}

// ID returns the pane id, e.g. "%5".
func (p *Pane) ID() string {
	return p.Record["pane_id"]
}

// Index returns the pane's index within its window.
func (p *Pane) Index() string {
	return p.Record["pane_index"]
}

// WindowID returns the id of the window the pane was listed under.
func (p *Pane) WindowID() string {
	return p.Record["window_id"]
}

// SessionID returns the id of the session the pane was listed under.
func (p *Pane) SessionID() string {
	return p.Record["session_id"]
}

// SessionName returns the name of the session the pane was listed
// under.
func (p *Pane) SessionName() string {
	return p.Record["session_name"]
}

// CurrentPath returns the pane's working directory. Empty when tmux
// could not determine it, e.g. for a dying process.
func (p *Pane) CurrentPath() string {
	return p.Record["pane_current_path"]
}

// CurrentCommand returns the command currently running in the pane.
func (p *Pane) CurrentCommand() string {
	return p.Record["pane_current_command"]
}

// Active reports whether this was the window's current pane at listing
// time.
func (p *Pane) Active() bool {
	return p.Record["pane_active"] == "1"
}

// Server returns the owning server handle.
func (p *Pane) Server() *Server {
	return p.server
}

// SendKeys types keys into the pane. With enter set, an Enter keypress
// follows the keys; leave it unset for raw key names like "C-c" that
// should arrive alone.
func (p *Pane) SendKeys(ctx context.Context, keys string, enter bool) error {
	args := []string{"send-keys", "-t" + p.ID(), keys}
	if enter {
		args = append(args, "Enter")
	}
	res, err := p.server.Cmd(ctx, args...)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// Capture returns the pane's visible content. -p prints to stdout and
// -J joins wrapped lines back together.
func (p *Pane) Capture(ctx context.Context) (string, error) {
	res, err := p.server.Cmd(ctx, "capture-pane", "-t"+p.ID(), "-p", "-J")
	if err != nil {
		return "", err
	}
	if res.Failed() {
		return "", execError(res)
	}
	return strings.Join(res.Stdout, "\n"), nil
}

// Kill destroys the pane.
func (p *Pane) Kill(ctx context.Context) error {
	res, err := p.server.Cmd(ctx, "kill-pane", "-t"+p.ID())
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}
