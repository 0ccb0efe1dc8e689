package tmux

import (
	"context"
	"fmt"
)

// Session is a snapshot of one tmux session, decoded from a single
// listing line. Attribute values reflect the moment of the listing;
// re-list to refresh.
type Session struct {
	Record
	server *Server
}

// ID returns the server-assigned session id, e.g. "$1". Stable for
// the session's lifetime, unlike the name.
func (s *Session) ID() string {
	return s.Record["session_id"]
}

// Name returns the session's human-assigned name.
func (s *Session) Name() string {
	return s.Record["session_name"]
}

// Attached reports whether at least one client was attached when the
// session was listed.
func (s *Session) Attached() bool {
	return s.Record["session_attached"] != "0" && s.Record["session_attached"] != ""
}

// Server returns the owning server handle.
func (s *Session) Server() *Server {
	return s.server
}

// Windows lists this session's windows. The full cross-session listing
// is fetched and filtered client-side by session id; one round trip,
// no dependency on server-side filter flags.
func (s *Session) Windows(ctx context.Context) ([]*Window, error) {
	all, err := s.server.Windows(ctx)
	if err != nil {
		return nil, err
	}
	var windows []*Window
	for _, w := range all {
		if w.SessionID() == s.ID() {
			windows = append(windows, w)
		}
	}
	return windows, nil
}

// Panes lists every pane in this session, across all its windows.
func (s *Session) Panes(ctx context.Context) ([]*Pane, error) {
	all, err := s.server.Panes(ctx)
	if err != nil {
		return nil, err
	}
	var panes []*Pane
	for _, p := range all {
		if p.SessionID() == s.ID() {
			panes = append(panes, p)
		}
	}
	return panes, nil
}

// Rename gives the session a new name. The snapshot keeps the old
// name; re-list to observe the change.
func (s *Session) Rename(ctx context.Context, name string) error {
	if err := checkName(name); err != nil {
		return err
	}
	res, err := s.server.Cmd(ctx, "rename-session", "-t"+s.ID(), name)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// Kill destroys the session.
func (s *Session) Kill(ctx context.Context) error {
	return s.server.KillSession(ctx, s.ID())
}

// Switch moves the attached client to this session.
func (s *Session) Switch(ctx context.Context) error {
	res, err := s.server.Cmd(ctx, "switch-client", "-t"+s.ID())
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// Attach attaches the current terminal to this session.
func (s *Session) Attach(ctx context.Context) error {
	res, err := s.server.Cmd(ctx, "attach-session", "-t"+s.ID())
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// NewWindow creates a window in this session and returns its snapshot,
// decoded from new-window -P -F output. An empty name lets tmux pick
// one.
func (s *Session) NewWindow(ctx context.Context, name string) (*Window, error) {
	fields := append([]string{"session_name", "session_id"}, WindowFields...)
	args := []string{"new-window", "-P", "-F" + formatString(fields), "-t" + s.ID()}
	if name != "" {
		if err := checkName(name); err != nil {
			return nil, err
		}
		args = append(args, "-n", name)
	}
	res, err := s.server.Cmd(ctx, args...)
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return nil, execError(res)
	}
	if len(res.Stdout) == 0 {
		return nil, fmt.Errorf("tmux new-window: -P produced no output")
	}
	rec := decodeLine(res.Stdout[0], fields)
	if _, ok := rec["window_id"]; !ok {
		rec["window_id"] = rec["window_name"]
	}
	return &Window{Record: rec, server: s.server}, nil
}
