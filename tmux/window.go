package tmux

import "context"

// Window is a snapshot of one tmux window, identified by id and index
// within its session. Listings also carry session_name/session_id so
// the window can be correlated to its session without a second round
// trip.
type Window struct {
	Record
	server *Server
}

// ID returns the window id, e.g. "@3". On servers too old to report
// window_id the window name stands in.
func (w *Window) ID() string {
	return w.Record["window_id"]
}

// Name returns the window name.
func (w *Window) Name() string {
	return w.Record["window_name"]
}

// Index returns the window's index within its session.
func (w *Window) Index() string {
	return w.Record["window_index"]
}

// SessionID returns the id of the session the window was listed under.
func (w *Window) SessionID() string {
	return w.Record["session_id"]
}

// SessionName returns the name of the session the window was listed
// under.
func (w *Window) SessionName() string {
	return w.Record["session_name"]
}

// Active reports whether this was the session's current window at
// listing time.
func (w *Window) Active() bool {
	return w.Record["window_active"] == "1"
}

// Server returns the owning server handle.
func (w *Window) Server() *Server {
	return w.server
}

// Panes lists this window's panes, filtered client-side from the full
// cross-session listing.
func (w *Window) Panes(ctx context.Context) ([]*Pane, error) {
	all, err := w.server.Panes(ctx)
	if err != nil {
		return nil, err
	}
	var panes []*Pane
	for _, p := range all {
		if p.WindowID() == w.ID() {
			panes = append(panes, p)
		}
	}
	return panes, nil
}

// Rename changes the window name. The snapshot keeps the old name.
func (w *Window) Rename(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	res, err := w.server.Cmd(ctx, "rename-window", "-t"+w.ID(), name)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// Select makes this the session's current window.
func (w *Window) Select(ctx context.Context) error {
	res, err := w.server.Cmd(ctx, "select-window", "-t"+w.ID())
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// Kill destroys the window and every pane in it.
func (w *Window) Kill(ctx context.Context) error {
	res, err := w.server.Cmd(ctx, "kill-window", "-t"+w.ID())
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}
