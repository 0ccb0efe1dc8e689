package tmux

import (
	"fmt"
	"strings"
)

// BadNameError reports a session or window name that tmux would reject
// or misparse. Names must be non-empty and free of the "." and ":"
// target delimiters. The check runs before any subprocess is spawned.
type BadNameError struct {
	Name string
}

func (e *BadNameError) Error() string {
	if e.Name == "" {
		return "tmux: name may not be empty"
	}
	return fmt.Sprintf("tmux: bad name %q: may not contain '.' or ':'", e.Name)
}

// ExistsError reports a creation request for a name that already
// resolves to a live session, when the caller did not ask for the
// existing one to be killed first.
type ExistsError struct {
	Name string
}

func (e *ExistsError) Error() string {
	return fmt.Sprintf("tmux: session %q already exists", e.Name)
}

// ExecError carries the stderr output of a failed tmux command. No
// further classification is attempted; the raw text is what tmux said.
type ExecError struct {
	Args     []string
	Stderr   string
	ExitCode int
}

func (e *ExecError) Error() string {
	return fmt.Sprintf("tmux: %s: %s", strings.Join(e.Args, " "), e.Stderr)
}

// ConfigError reports invalid static server configuration, caught
// before any process is spawned.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string {
	return "tmux: " + e.Msg
}

func execError(res Result) error {
	return &ExecError{Args: res.Args, Stderr: res.StderrText(), ExitCode: res.ExitCode}
}

// checkName validates a proposed session or window name. Violations
// fail immediately, saving a process invocation on a request tmux is
// guaranteed to reject or misinterpret.
func checkName(name string) error {
	if name == "" || strings.ContainsAny(name, ".:") {
		return &BadNameError{Name: name}
	}
	return nil
}
