// Package config loads tmuxctl configuration from file and environment.
//
// Precedence (highest to lowest):
//  1. Environment variables (TMUXCTL_*)
//  2. Config file
//  3. Built-in defaults
//
// Config file search order:
//  1. .tmuxctl.yaml in current directory
//  2. ~/.config/tmuxctl/config.yaml
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config holds all tmuxctl configuration.
type Config struct {
	// Server connection
	SocketName string `yaml:"socket_name"` // tmux -L
	SocketPath string `yaml:"socket_path"` // tmux -S
	ConfigFile string `yaml:"config_file"` // tmux -f
	Colors     int    `yaml:"colors"`      // 88, 256, or 0 for tmux's default
	TmuxBin    string `yaml:"tmux_bin"`    // tmux binary, defaults to "tmux"

	// Logging
	LogLevel string `yaml:"log_level"` // debug, info, warn, error

	// OTEL
	OTELEndpoint string `yaml:"otel_endpoint"`
	OTELHeaders  string `yaml:"otel_headers"` // Comma-separated key=value pairs

	// Path is the config file that was loaded (empty if none).
	Path string `yaml:"-"`
}

// Defaults returns a Config with all default values.
func Defaults() *Config {
	return &Config{
		TmuxBin:  "tmux",
		LogLevel: "warn",
	}
}

// Load reads configuration from file and environment variables.
// Environment variables always override file values.
func Load() (*Config, error) {
	cfg := Defaults()

	if path, data, err := findConfigFile(); err == nil {
		var fileCfg Config
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			return nil, fmt.Errorf("parsing config file %s: %w", path, err)
		}
		cfg.Path = path
		mergeFile(cfg, &fileCfg)
	}

	mergeEnv(cfg)

	switch cfg.Colors {
	case 0, 88, 256:
	default:
		return nil, fmt.Errorf("invalid colors value %d (want 88 or 256)", cfg.Colors)
	}

	return cfg, nil
}

// findConfigFile searches for a config file and returns its path and contents.
func findConfigFile() (string, []byte, error) {
	// 1. Current directory
	if data, err := os.ReadFile(".tmuxctl.yaml"); err == nil {
		return ".tmuxctl.yaml", data, nil
	}

	// 2. XDG config dir / ~/.config
	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ".config", "tmuxctl", "config.yaml")
		if data, err := os.ReadFile(path); err == nil {
			return path, data, nil
		}
	}

	return "", nil, fmt.Errorf("no config file found")
}

// mergeFile applies non-zero file values onto cfg.
func mergeFile(cfg *Config, file *Config) {
	if file.SocketName != "" {
		cfg.SocketName = file.SocketName
	}
	if file.SocketPath != "" {
		cfg.SocketPath = file.SocketPath
	}
	if file.ConfigFile != "" {
		cfg.ConfigFile = file.ConfigFile
	}
	if file.Colors != 0 {
		cfg.Colors = file.Colors
	}
	if file.TmuxBin != "" {
		cfg.TmuxBin = file.TmuxBin
	}
	if file.LogLevel != "" {
		cfg.LogLevel = file.LogLevel
	}
	if file.OTELEndpoint != "" {
		cfg.OTELEndpoint = file.OTELEndpoint
	}
	if file.OTELHeaders != "" {
		cfg.OTELHeaders = file.OTELHeaders
	}
}

// mergeEnv applies environment variables onto cfg. Env always wins.
func mergeEnv(cfg *Config) {
	if v := os.Getenv("TMUXCTL_SOCKET_NAME"); v != "" {
		cfg.SocketName = v
	}
	if v := os.Getenv("TMUXCTL_SOCKET_PATH"); v != "" {
		cfg.SocketPath = v
	}
	if v := os.Getenv("TMUXCTL_CONFIG_FILE"); v != "" {
		cfg.ConfigFile = v
	}
	if v := os.Getenv("TMUXCTL_COLORS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Colors = n
		}
	}
	if v := os.Getenv("TMUXCTL_TMUX_BIN"); v != "" {
		cfg.TmuxBin = v
	}
	if v := os.Getenv("TMUXCTL_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"); v != "" {
		cfg.OTELEndpoint = v
	}
	if v := os.Getenv("OTEL_EXPORTER_OTLP_HEADERS"); v != "" {
		cfg.OTELHeaders = v
	}
}
