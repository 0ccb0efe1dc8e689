package tmux

import (
	"context"
	"strings"
)

// fakeRunner scripts tmux invocations for tests. Responses are keyed
// by subcommand ("list-sessions", "has-session", "-V"); anything
// unscripted succeeds with empty output. Every invocation's argv is
// recorded.
type fakeRunner struct {
	responses map[string]Result
	calls     [][]string

	// onRun, when set, observes each invocation as it happens.
	onRun func(args []string)
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) (Result, error) {
	argv := append([]string{name}, args...)
	f.calls = append(f.calls, argv)
	if f.onRun != nil {
		f.onRun(argv)
	}
	res := f.responses[subcommandOf(args)]
	res.Args = argv
	return res, nil
}

// subcommandOf returns the first non-flag argument, or the version
// probe flag when that is all there is.
func subcommandOf(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	if len(args) > 0 && args[len(args)-1] == "-V" {
		return "-V"
	}
	return ""
}

// subcommands lists the subcommand of every recorded invocation.
func (f *fakeRunner) subcommands() []string {
	var out []string
	for _, argv := range f.calls {
		out = append(out, subcommandOf(argv[1:]))
	}
	return out
}

// newFakeServer builds a Server wired to a fakeRunner. A version probe
// response is installed unless the test scripts its own.
func newFakeServer(responses map[string]Result) (*Server, *fakeRunner) {
	if responses == nil {
		responses = map[string]Result{}
	}
	if _, ok := responses["-V"]; !ok {
		responses["-V"] = Result{Stdout: []string{"tmux 3.4"}}
	}
	r := &fakeRunner{responses: responses}
	return NewServerWithRunner(r), r
}

// joinFields fabricates one listing line: the values for each field in
// order, joined with the wire separator. Missing fields become empty
// values, exactly as tmux emits them.
func joinFields(fields []string, values map[string]string) string {
	parts := make([]string, len(fields))
	for i, f := range fields {
		parts[i] = values[f]
	}
	return strings.Join(parts, fieldSeparator)
}
