package tmux

import (
	"context"
	"errors"
	"os"
	"reflect"
	"testing"
)

func sessionLine(values map[string]string) string {
	return joinFields(SessionFields, values)
}

func TestGlobalFlagOrder(t *testing.T) {
	srv, runner := newFakeServer(nil)
	srv.SocketName = "dev"
	srv.SocketPath = "/tmp/tmux-dev"
	srv.ConfigFile = "/home/user/.tmux.conf"
	srv.Colors = 256

	if _, err := srv.Cmd(context.Background(), "list-sessions"); err != nil {
		t.Fatalf("Cmd() error: %v", err)
	}

	want := []string{"tmux", "-Ldev", "-S/tmp/tmux-dev", "-f/home/user/.tmux.conf", "-2", "list-sessions"}
	if !reflect.DeepEqual(runner.calls[0], want) {
		t.Errorf("argv = %v, want %v", runner.calls[0], want)
	}
}

func TestColors88Flag(t *testing.T) {
	srv, runner := newFakeServer(nil)
	srv.Colors = 88
	if _, err := srv.Cmd(context.Background(), "kill-server"); err != nil {
		t.Fatalf("Cmd() error: %v", err)
	}
	if runner.calls[0][1] != "-8" {
		t.Errorf("argv = %v, want -8 first", runner.calls[0])
	}
}

func TestInvalidColorsFailsBeforeSpawn(t *testing.T) {
	srv, runner := newFakeServer(nil)
	srv.Colors = 100
	_, err := srv.Cmd(context.Background(), "list-sessions")
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("Cmd() error = %v, want ConfigError", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("subprocess spawned despite invalid configuration: %v", runner.calls)
	}
}

func TestSessionsIdempotent(t *testing.T) {
	line := sessionLine(map[string]string{
		"session_id":       "$1",
		"session_name":     "dev",
		"session_windows":  "2",
		"session_attached": "1",
	})
	srv, _ := newFakeServer(map[string]Result{
		"list-sessions": {Stdout: []string{line}},
	})
	ctx := context.Background()

	first, err := srv.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	second, err := srv.Sessions(ctx)
	if err != nil {
		t.Fatalf("Sessions() error: %v", err)
	}
	if len(first) != 1 || len(second) != 1 {
		t.Fatalf("got %d and %d sessions, want 1 and 1", len(first), len(second))
	}
	if !reflect.DeepEqual(first[0].Record, second[0].Record) {
		t.Errorf("consecutive listings differ: %v vs %v", first[0].Record, second[0].Record)
	}
	if first[0].ID() != "$1" || first[0].Name() != "dev" {
		t.Errorf("session = %s %s, want $1 dev", first[0].ID(), first[0].Name())
	}
}

func TestSessionsListingError(t *testing.T) {
	srv, _ := newFakeServer(map[string]Result{
		"list-sessions": {Stderr: []string{"no server running on /tmp/tmux-1000/default"}, ExitCode: 1},
	})
	_, err := srv.Sessions(context.Background())
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("Sessions() error = %v, want ExecError", err)
	}
	if execErr.Stderr == "" {
		t.Error("ExecError should carry the raw stderr text")
	}
}

func TestAttachedSessionsFilter(t *testing.T) {
	mk := func(id, name, attached string) string {
		return sessionLine(map[string]string{
			"session_id":       id,
			"session_name":     name,
			"session_attached": attached,
		})
	}
	srv, _ := newFakeServer(map[string]Result{
		"list-sessions": {Stdout: []string{
			mk("$0", "a", "0"),
			mk("$1", "b", "1"),
			mk("$2", "c", "0"),
		}},
	})
	got, err := srv.AttachedSessions(context.Background())
	if err != nil {
		t.Fatalf("AttachedSessions() error: %v", err)
	}
	if len(got) != 1 || got[0].Name() != "b" {
		t.Fatalf("AttachedSessions() = %v, want just b", got)
	}
}

func TestAttachedSessionsNoneIsNotAnError(t *testing.T) {
	srv, _ := newFakeServer(map[string]Result{
		"list-sessions": {Stdout: []string{
			sessionLine(map[string]string{"session_id": "$0", "session_name": "a", "session_attached": "0"}),
		}},
	})
	got, err := srv.AttachedSessions(context.Background())
	if err != nil {
		t.Fatalf("AttachedSessions() error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("AttachedSessions() = %v, want empty", got)
	}
}

func TestHasSessionExitCode(t *testing.T) {
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 1, Stderr: []string{"can't find session mysession"}},
	})
	ok, err := srv.HasSession(context.Background(), "mysession")
	if err != nil {
		t.Fatalf("HasSession() error: %v", err)
	}
	if ok {
		t.Error("HasSession() = true for a failing probe, want false")
	}

	runner.responses["has-session"] = Result{ExitCode: 0}
	ok, err = srv.HasSession(context.Background(), "mysession")
	if err != nil {
		t.Fatalf("HasSession() error: %v", err)
	}
	if !ok {
		t.Error("HasSession() = false for a passing probe, want true")
	}
}

func TestHasSessionExactTargetOnModernTmux(t *testing.T) {
	srv, runner := newFakeServer(map[string]Result{
		"-V": {Stdout: []string{"tmux 3.4"}},
	})
	if _, err := srv.HasSession(context.Background(), "dev"); err != nil {
		t.Fatalf("HasSession() error: %v", err)
	}
	last := runner.calls[len(runner.calls)-1]
	if last[len(last)-1] != "-t=dev" {
		t.Errorf("argv = %v, want exact-match target -t=dev", last)
	}
}

func TestHasSessionPlainTargetOnOldTmux(t *testing.T) {
	srv, runner := newFakeServer(map[string]Result{
		"-V": {Stdout: []string{"tmux 1.8"}},
	})
	if _, err := srv.HasSession(context.Background(), "dev"); err != nil {
		t.Fatalf("HasSession() error: %v", err)
	}
	last := runner.calls[len(runner.calls)-1]
	if last[len(last)-1] != "-tdev" {
		t.Errorf("argv = %v, want plain target -tdev", last)
	}
}

func TestBadNameRejectedWithoutSubprocess(t *testing.T) {
	for _, name := range []string{"", "with.dot", "with:colon"} {
		srv, runner := newFakeServer(nil)
		_, err := srv.HasSession(context.Background(), name)
		var badName *BadNameError
		if !errors.As(err, &badName) {
			t.Errorf("HasSession(%q) error = %v, want BadNameError", name, err)
		}
		if len(runner.calls) != 0 {
			t.Errorf("HasSession(%q) spawned a subprocess: %v", name, runner.calls)
		}

		// An empty name is legal for NewSession; tmux numbers the session.
		if name == "" {
			continue
		}
		_, err = srv.NewSession(context.Background(), NewSessionOptions{Name: name})
		if !errors.As(err, &badName) {
			t.Errorf("NewSession(%q) error = %v, want BadNameError", name, err)
		}
		if len(runner.calls) != 0 {
			t.Errorf("NewSession(%q) spawned a subprocess: %v", name, runner.calls)
		}
	}
}

func TestValidNamesAccepted(t *testing.T) {
	for _, name := range []string{"dev", "my session", "work-2", "$1"} {
		if err := checkName(name); err != nil {
			t.Errorf("checkName(%q) = %v, want nil", name, err)
		}
	}
}

func TestNewSessionEndToEnd(t *testing.T) {
	created := sessionLine(map[string]string{
		"session_id":       "$1",
		"session_name":     "mysession",
		"session_windows":  "1",
		"session_attached": "0",
	})
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 1, Stderr: []string{"can't find session"}},
		"new-session": {Stdout: []string{created}},
	})

	sess, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "mysession"})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if sess.ID() != "$1" || sess.Name() != "mysession" {
		t.Errorf("session = %s %s, want $1 mysession", sess.ID(), sess.Name())
	}

	argv := runner.calls[len(runner.calls)-1]
	var hasName, hasDetach bool
	for _, a := range argv {
		if a == "-smysession" {
			hasName = true
		}
		if a == "-d" {
			hasDetach = true
		}
	}
	if !hasName || !hasDetach {
		t.Errorf("new-session argv = %v, want -smysession and -d", argv)
	}
}

func TestNewSessionAlreadyExists(t *testing.T) {
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 0},
	})
	_, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "mysession"})
	var existsErr *ExistsError
	if !errors.As(err, &existsErr) {
		t.Fatalf("NewSession() error = %v, want ExistsError", err)
	}
	// Only the version probe and the existence probe may have run.
	for _, sub := range runner.subcommands() {
		if sub == "new-session" || sub == "kill-session" {
			t.Errorf("unexpected %s invocation after a positive probe", sub)
		}
	}
}

func TestNewSessionKillExisting(t *testing.T) {
	created := sessionLine(map[string]string{
		"session_id":   "$2",
		"session_name": "mysession",
	})
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 0},
		"new-session": {Stdout: []string{created}},
	})
	sess, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "mysession", KillExisting: true})
	if err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if sess.ID() != "$2" {
		t.Errorf("session id = %s, want $2", sess.ID())
	}

	subs := runner.subcommands()
	killIdx, newIdx := -1, -1
	for i, sub := range subs {
		switch sub {
		case "kill-session":
			killIdx = i
		case "new-session":
			newIdx = i
		}
	}
	if killIdx == -1 || newIdx == -1 || killIdx > newIdx {
		t.Errorf("invocations = %v, want kill-session before new-session", subs)
	}
}

func TestNewSessionUnsetsAndRestoresTMUX(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")

	created := sessionLine(map[string]string{
		"session_id":   "$5",
		"session_name": "bg",
	})
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 1},
		"new-session": {Stdout: []string{created}},
	})
	var envDuringCreate string
	runner.onRun = func(argv []string) {
		if subcommandOf(argv[1:]) == "new-session" {
			envDuringCreate = os.Getenv("TMUX")
		}
	}

	if _, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "bg"}); err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	if envDuringCreate != "" {
		t.Errorf("TMUX = %q during new-session, want unset", envDuringCreate)
	}
	if got := os.Getenv("TMUX"); got != "/tmp/tmux-1000/default,12345,0" {
		t.Errorf("TMUX = %q after NewSession, want restored", got)
	}
}

func TestNewSessionRestoresTMUXOnFailure(t *testing.T) {
	t.Setenv("TMUX", "/tmp/tmux-1000/default,12345,0")

	srv, _ := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 1},
		"new-session": {ExitCode: 1, Stderr: []string{"create session failed"}},
	})
	_, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "bg"})
	if err == nil {
		t.Fatal("NewSession() should fail when tmux reports an error")
	}
	if got := os.Getenv("TMUX"); got != "/tmp/tmux-1000/default,12345,0" {
		t.Errorf("TMUX = %q after failed NewSession, want restored", got)
	}
}

func TestNewSessionDefaultGeometryOutsideClient(t *testing.T) {
	t.Setenv("TMUX", "")
	created := sessionLine(map[string]string{"session_id": "$1", "session_name": "x"})
	srv, runner := newFakeServer(map[string]Result{
		"has-session": {ExitCode: 1},
		"new-session": {Stdout: []string{created}},
	})
	if _, err := srv.NewSession(context.Background(), NewSessionOptions{Name: "x"}); err != nil {
		t.Fatalf("NewSession() error: %v", err)
	}
	argv := runner.calls[len(runner.calls)-1]
	var hasGeometry bool
	for _, a := range argv {
		if a == "-x" {
			hasGeometry = true
		}
	}
	if !hasGeometry {
		t.Errorf("new-session argv = %v, want -x/-y geometry on tmux >= 2.6", argv)
	}
}

func TestKillSessionStderr(t *testing.T) {
	srv, _ := newFakeServer(map[string]Result{
		"kill-session": {ExitCode: 1, Stderr: []string{"can't find session nope"}},
	})
	err := srv.KillSession(context.Background(), "nope")
	var execErr *ExecError
	if !errors.As(err, &execErr) {
		t.Fatalf("KillSession() error = %v, want ExecError", err)
	}
}
