package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaults(t *testing.T) {
	cfg := Defaults()
	if cfg.TmuxBin != "tmux" {
		t.Errorf("TmuxBin = %q, want tmux", cfg.TmuxBin)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q, want warn", cfg.LogLevel)
	}
	if cfg.Colors != 0 {
		t.Errorf("Colors = %d, want 0 (tmux default)", cfg.Colors)
	}
}

func TestMergeFile(t *testing.T) {
	cfg := Defaults()
	mergeFile(cfg, &Config{SocketName: "work", Colors: 256})
	if cfg.SocketName != "work" {
		t.Errorf("SocketName = %q, want work", cfg.SocketName)
	}
	if cfg.Colors != 256 {
		t.Errorf("Colors = %d, want 256", cfg.Colors)
	}
	// untouched fields keep their defaults
	if cfg.TmuxBin != "tmux" {
		t.Errorf("TmuxBin = %q, want tmux", cfg.TmuxBin)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	cfg := Defaults()
	mergeFile(cfg, &Config{SocketName: "from-file", Colors: 88})

	t.Setenv("TMUXCTL_SOCKET_NAME", "from-env")
	t.Setenv("TMUXCTL_COLORS", "256")
	mergeEnv(cfg)

	if cfg.SocketName != "from-env" {
		t.Errorf("SocketName = %q, want from-env", cfg.SocketName)
	}
	if cfg.Colors != 256 {
		t.Errorf("Colors = %d, want 256", cfg.Colors)
	}
}

// chdir changes the working directory for the duration of the test,
// restoring it afterwards (stand-in for t.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}

func TestLoadRejectsInvalidColors(t *testing.T) {
	t.Setenv("TMUXCTL_COLORS", "100")
	chdir(t, t.TempDir())
	if _, err := Load(); err == nil {
		t.Error("Load() should reject colors other than 88/256")
	}
}

func TestLoadReadsConfigFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".tmuxctl.yaml")
	if err := os.WriteFile(path, []byte("socket_name: dev\nlog_level: debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("TMUXCTL_SOCKET_NAME", "")
	t.Setenv("TMUXCTL_LOG_LEVEL", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.SocketName != "dev" {
		t.Errorf("SocketName = %q, want dev", cfg.SocketName)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Path != ".tmuxctl.yaml" {
		t.Errorf("Path = %q, want .tmuxctl.yaml", cfg.Path)
	}
}
