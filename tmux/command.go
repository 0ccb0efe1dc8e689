package tmux

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
)

// Runner executes a single external command and captures its output.
// The library talks to tmux exclusively through this interface so that
// tests can substitute a scripted implementation and observe exactly
// which invocations were made.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (Result, error)
}

// Result is the outcome of one tmux invocation. Stdout and Stderr hold
// the captured output split into lines with the trailing newline
// stripped, so a final blank entry never appears.
type Result struct {
	// Args is the full argument vector, including the binary name.
	Args []string
	// Stdout holds the captured standard output, one entry per line.
	Stdout []string
	// Stderr holds the captured standard error, one entry per line.
	Stderr []string
	// ExitCode is the process exit status.
	ExitCode int
}

// Failed reports whether tmux wrote anything to stderr. tmux reports
// command errors on stderr; the exit code alone is not a reliable
// failure signal for every subcommand.
func (r Result) Failed() bool {
	return len(r.Stderr) > 0
}

// StderrText returns the stderr lines rejoined into a single string.
func (r Result) StderrText() string {
	return strings.Join(r.Stderr, "\n")
}

// DefaultRunner returns the os/exec-backed Runner a zero-value Server
// uses. Exposed so callers can wrap it, e.g. with instrumentation.
func DefaultRunner() Runner {
	return execRunner{}
}

// execRunner is the default Runner. Each call spawns one OS process
// and blocks until it exits; there is no pooling and no retry.
type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) (Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	res := Result{Args: append([]string{name}, args...)}
	err := cmd.Run()
	res.Stdout = splitLines(stdout.String())
	res.Stderr = splitLines(stderr.String())
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			res.ExitCode = exitErr.ExitCode()
			return res, nil
		}
		// The process never ran (binary missing, context canceled).
		return res, err
	}
	return res, nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}
