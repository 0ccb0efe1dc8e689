// Package tmux is a typed client for the tmux command-line control
// interface. It launches tmux as a subprocess, requests structured
// output with -F format strings, and decodes the result into a
// Server → Session → Window → Pane object graph.
//
// Objects are snapshots: every listing re-queries the live server,
// which stays the single source of truth. Another client renaming a
// session invalidates previously fetched objects; callers re-list.
package tmux

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"

	goversion "github.com/hashicorp/go-version"
)

// Server is a handle on one tmux server, addressed by socket name or
// path. The zero value talks to the default tmux socket via the
// "tmux" binary on PATH. No subprocess is spawned until a command
// runs.
type Server struct {
	// SocketName is passed as -L when set.
	SocketName string
	// SocketPath is passed as -S when set.
	SocketPath string
	// ConfigFile is passed as -f when set.
	ConfigFile string
	// Colors selects the color depth: 256 (-2), 88 (-8), or 0 to let
	// tmux decide. Any other value is a ConfigError.
	Colors int
	// Bin is the tmux binary to invoke. Defaults to "tmux".
	Bin string
	// Logger receives debug lines for each invocation. Defaults to
	// slog.Default.
	Logger *slog.Logger

	runner Runner

	// Last-listing caches for windows and panes. Not authoritative,
	// every Windows/Panes call re-queries tmux, but the clear-then-
	// extend sequence needs the lock when a handle is shared.
	mu      sync.Mutex
	windows []Record
	panes   []Record

	versionOnce sync.Once
	version     *goversion.Version
	versionErr  error
}

// NewServer returns a handle on the tmux server reachable through the
// default socket.
func NewServer() *Server {
	return &Server{}
}

// NewServerWithRunner returns a Server that executes commands through
// the given Runner instead of os/exec. Intended for tests.
func NewServerWithRunner(r Runner) *Server {
	return &Server{runner: r}
}

func (s *Server) bin() string {
	if s.Bin != "" {
		return s.Bin
	}
	return "tmux"
}

func (s *Server) log() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}

// globalArgs builds the connection flags prepended to every command,
// in fixed order: socket name, socket path, config file, color depth.
func (s *Server) globalArgs() ([]string, error) {
	var args []string
	if s.SocketName != "" {
		args = append(args, "-L"+s.SocketName)
	}
	if s.SocketPath != "" {
		args = append(args, "-S"+s.SocketPath)
	}
	if s.ConfigFile != "" {
		args = append(args, "-f"+s.ConfigFile)
	}
	switch s.Colors {
	case 0:
	case 256:
		args = append(args, "-2")
	case 88:
		args = append(args, "-8")
	default:
		return nil, &ConfigError{Msg: fmt.Sprintf("colors must be 88 or 256, got %d", s.Colors)}
	}
	return args, nil
}

// Cmd executes one tmux command with the server's connection flags
// prepended. The invocation blocks until the subprocess exits; a
// non-zero exit is reported in the Result, not as an error. The
// returned error covers configuration problems and spawn failures
// only.
func (s *Server) Cmd(ctx context.Context, args ...string) (Result, error) {
	global, err := s.globalArgs()
	if err != nil {
		return Result{}, err
	}
	full := append(global, args...)

	r := s.runner
	if r == nil {
		r = execRunner{}
	}
	res, err := r.Run(ctx, s.bin(), full...)
	if err != nil {
		return res, fmt.Errorf("tmux %v: %w", args, err)
	}
	s.log().Debug("tmux command", "args", full, "exit", res.ExitCode)
	return res, nil
}

// CommandArgs returns the binary and full argument vector for a tmux
// command, connection flags included, without running it. For callers
// that hand the terminal over to tmux (attach-session) instead of
// capturing its output.
func (s *Server) CommandArgs(args ...string) (string, []string, error) {
	global, err := s.globalArgs()
	if err != nil {
		return "", nil, err
	}
	return s.bin(), append(global, args...), nil
}

// listRecords runs a listing command with a -F format string for the
// given fields and decodes each stdout line into a Record.
func (s *Server) listRecords(ctx context.Context, fields []string, args ...string) ([]Record, error) {
	args = append(args, "-F"+formatString(fields))
	res, err := s.Cmd(ctx, args...)
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return nil, execError(res)
	}
	return decodeLines(res.Stdout, fields), nil
}

// Sessions lists every session on the server.
func (s *Server) Sessions(ctx context.Context) ([]*Session, error) {
	recs, err := s.listRecords(ctx, SessionFields, "list-sessions")
	if err != nil {
		return nil, err
	}
	sessions := make([]*Session, 0, len(recs))
	for _, rec := range recs {
		sessions = append(sessions, &Session{Record: rec, server: s})
	}
	return sessions, nil
}

// AttachedSessions returns the sessions with at least one attached
// client. An empty result is not an error; it means nothing is
// attached right now.
func (s *Server) AttachedSessions(ctx context.Context) ([]*Session, error) {
	recs, err := s.listRecords(ctx, SessionFields, "list-sessions")
	if err != nil {
		return nil, err
	}
	var attached []*Session
	for _, rec := range recs {
		if rec["session_attached"] == "0" {
			continue
		}
		attached = append(attached, &Session{Record: rec, server: s})
	}
	return attached, nil
}

// Windows lists windows across every session (list-windows -a).
// Filtering to one session is done client-side by the caller; no
// server-side filter flag is used, so behavior is uniform across tmux
// versions.
func (s *Server) Windows(ctx context.Context) ([]*Window, error) {
	fields := append([]string{"session_name", "session_id"}, WindowFields...)
	recs, err := s.listRecords(ctx, fields, "list-windows", "-a")
	if err != nil {
		return nil, err
	}
	for _, rec := range recs {
		// tmux before 1.8 has no window_id; substitute the name so
		// windows remain addressable. Degradation, not an error.
		if _, ok := rec["window_id"]; !ok {
			rec["window_id"] = rec["window_name"]
		}
	}

	s.mu.Lock()
	s.windows = s.windows[:0]
	s.windows = append(s.windows, recs...)
	s.mu.Unlock()

	windows := make([]*Window, 0, len(recs))
	for _, rec := range recs {
		windows = append(windows, &Window{Record: rec, server: s})
	}
	return windows, nil
}

// Panes lists panes across every session (list-panes -a).
func (s *Server) Panes(ctx context.Context) ([]*Pane, error) {
	fields := append([]string{
		"session_name",
		"session_id",
		"window_index",
		"window_id",
		"window_name",
	}, PaneFields...)
	recs, err := s.listRecords(ctx, fields, "list-panes", "-a")
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.panes = s.panes[:0]
	s.panes = append(s.panes, recs...)
	s.mu.Unlock()

	panes := make([]*Pane, 0, len(recs))
	for _, rec := range recs {
		panes = append(panes, &Pane{Record: rec, server: s})
	}
	return panes, nil
}

// HasSession reports whether a session with the given name exists.
// has-session exiting non-zero means "no such session", not a command
// failure. On tmux 2.1+ the target is prefixed with "=" for an exact
// match instead of tmux's default fnmatch semantics; on older servers
// the unprefixed form is sent.
func (s *Server) HasSession(ctx context.Context, name string) (bool, error) {
	if err := checkName(name); err != nil {
		return false, err
	}
	target := name
	if ok, err := s.HasMinVersion(ctx, "2.1"); err == nil && ok {
		target = "=" + name
	}
	res, err := s.Cmd(ctx, "has-session", "-t"+target)
	if err != nil {
		return false, err
	}
	return res.ExitCode == 0, nil
}

// KillServer stops the tmux server and every session on it.
func (s *Server) KillServer(ctx context.Context) error {
	res, err := s.Cmd(ctx, "kill-server")
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// KillSession destroys the session matching target. The target may be
// a session id ("$1") or a name; tmux applies fnmatch to names, so
// "dev" also matches "devel" unless an exact id is used.
func (s *Server) KillSession(ctx context.Context, target string) error {
	res, err := s.Cmd(ctx, "kill-session", "-t"+target)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// SwitchClient switches the attached client to the target session.
func (s *Server) SwitchClient(ctx context.Context, target string) error {
	if err := checkName(target); err != nil {
		return err
	}
	res, err := s.Cmd(ctx, "switch-client", "-t"+target)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// AttachSession attaches the current terminal to the target session,
// or to the most recently used session when target is empty.
func (s *Server) AttachSession(ctx context.Context, target string) error {
	var args []string
	if target != "" {
		if err := checkName(target); err != nil {
			return err
		}
		args = append(args, "-t"+target)
	}
	res, err := s.Cmd(ctx, append([]string{"attach-session"}, args...)...)
	if err != nil {
		return err
	}
	if res.Failed() {
		return execError(res)
	}
	return nil
}

// NewSessionOptions configures Server.NewSession.
type NewSessionOptions struct {
	// Name is the session name (-s). Empty lets tmux number the
	// session.
	Name string
	// KillExisting destroys any live session with the same name before
	// creating the new one. Without it, a name collision is an
	// ExistsError.
	KillExisting bool
	// Attach creates the session in the foreground. The default is a
	// detached session (-d).
	Attach bool
	// StartDirectory is the working directory for the new session (-c).
	StartDirectory string
	// WindowName names the initial window (-n).
	WindowName string
	// WindowCommand runs a command in the initial window. The window
	// closes when the command exits.
	WindowCommand string
}

// NewSession creates a session and returns its snapshot, decoded from
// new-session -P -F output.
//
// The existence probe and the create are two separate commands, so a
// concurrent external actor can create a same-named session between
// them. That window is accepted; the create's own stderr still
// surfaces the collision.
func (s *Server) NewSession(ctx context.Context, opts NewSessionOptions) (*Session, error) {
	if opts.Name != "" {
		if err := checkName(opts.Name); err != nil {
			return nil, err
		}
		exists, err := s.HasSession(ctx, opts.Name)
		if err != nil {
			return nil, err
		}
		if exists {
			if !opts.KillExisting {
				return nil, &ExistsError{Name: opts.Name}
			}
			if err := s.KillSession(ctx, opts.Name); err != nil {
				return nil, err
			}
			s.log().Info("killed existing session", "name", opts.Name)
		}
	}

	args := []string{"new-session", "-P", "-F" + formatString(SessionFields)}
	if opts.Name != "" {
		args = append(args, "-s"+opts.Name)
	}
	if !opts.Attach {
		args = append(args, "-d")
	}
	if opts.StartDirectory != "" {
		args = append(args, "-c", opts.StartDirectory)
	}
	if opts.WindowName != "" {
		args = append(args, "-n", opts.WindowName)
	}

	// tmux 2.6+ gives unattached sessions a tiny default area when no
	// client is present; request a sane geometry in that case.
	if os.Getenv("TMUX") == "" {
		if ok, err := s.HasMinVersion(ctx, "2.6"); err == nil && ok {
			args = append(args, "-x", "800", "-y", "600")
		}
	}

	if opts.WindowCommand != "" {
		args = append(args, opts.WindowCommand)
	}

	// tmux refuses to create a detached session from inside an
	// attached client unless TMUX is unset. Clear it for this one call
	// and restore it on every exit path.
	if prev, ok := os.LookupEnv("TMUX"); ok {
		os.Unsetenv("TMUX")
		defer os.Setenv("TMUX", prev)
	}

	res, err := s.Cmd(ctx, args...)
	if err != nil {
		return nil, err
	}
	if res.Failed() {
		return nil, execError(res)
	}
	if len(res.Stdout) == 0 {
		return nil, fmt.Errorf("tmux new-session: -P produced no output")
	}

	rec := decodeLine(res.Stdout[0], SessionFields)
	s.log().Debug("created session", "name", rec["session_name"], "id", rec["session_id"])
	return &Session{Record: rec, server: s}, nil
}
