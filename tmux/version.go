package tmux

import (
	"context"
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"
)

// devVersion stands in for tmux builds that report no numeric version
// ("master"): treat them as newer than any released threshold.
const devVersion = "99.0"

// parseVersion normalizes the token from `tmux -V` into a comparable
// version. tmux emits forms a strict semantic parser rejects: "3.3a",
// "next-3.4", "master", "openbsd-6.8".
func parseVersion(s string) (*goversion.Version, error) {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "tmux ")
	if s == "master" {
		return goversion.NewVersion(devVersion)
	}
	s = strings.TrimPrefix(s, "next-")
	s = strings.TrimPrefix(s, "openbsd-")
	// Patch letters ("3.3a") release after the base version; they never
	// change gated behavior, so compare on major.minor only.
	s = strings.TrimRight(s, "abcdefghijklmnopqrstuvwxyz")
	v, err := goversion.NewVersion(s)
	if err != nil {
		return nil, fmt.Errorf("tmux: unparseable version %q: %w", s, err)
	}
	return v, nil
}

// Version returns the server's tmux version, probing `tmux -V` on the
// first call. The binary cannot change version mid-process, so the
// result is cached for the lifetime of the handle.
func (s *Server) Version(ctx context.Context) (*goversion.Version, error) {
	s.versionOnce.Do(func() {
		res, err := s.Cmd(ctx, "-V")
		if err != nil {
			s.versionErr = err
			return
		}
		if res.Failed() {
			s.versionErr = execError(res)
			return
		}
		if len(res.Stdout) == 0 {
			s.versionErr = fmt.Errorf("tmux: -V produced no output")
			return
		}
		s.version, s.versionErr = parseVersion(res.Stdout[0])
	})
	return s.version, s.versionErr
}

// HasMinVersion reports whether the server's tmux is at least the
// given version, e.g. "2.1". Ordering is numeric per component, never
// lexical: 2.10 is newer than 2.1.
func (s *Server) HasMinVersion(ctx context.Context, min string) (bool, error) {
	v, err := s.Version(ctx)
	if err != nil {
		return false, err
	}
	m, err := goversion.NewVersion(min)
	if err != nil {
		return false, fmt.Errorf("tmux: invalid version threshold %q: %w", min, err)
	}
	return v.GreaterThanOrEqual(m), nil
}
