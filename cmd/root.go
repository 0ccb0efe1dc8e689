// Package cmd implements the tmuxctl command tree.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/obsidiansystems/libtmux/internal/config"
	"github.com/obsidiansystems/libtmux/internal/otel"
	"github.com/obsidiansystems/libtmux/tmux"
)

// Version is injected by the linker at release builds.
var Version = "dev"

var (
	// Global flags. Flags override config file and environment.
	flagSocketName string
	flagSocketPath string
	flagTmuxConf   string
	flagColors     int
	flagTmuxBin    string
	flagDebug      bool
)

var (
	cfg       *config.Config
	telemetry *otel.Telemetry
)

var rootCmd = &cobra.Command{
	Use:   "tmuxctl",
	Short: "Typed command-line client for tmux sessions, windows and panes",
	Long: `tmuxctl drives a tmux server through its command-line control
interface: it lists sessions, windows and panes as structured records,
creates and kills sessions, and sends keys or captures content from
individual panes.

The server is addressed like tmux itself: by socket name (-L), socket
path (-S), or the defaults. Settings can also come from .tmuxctl.yaml
or TMUXCTL_* environment variables.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load()
		if err != nil {
			return err
		}
		setupLogging()
		otel.Version = Version
		telemetry, err = otel.Init(cmd.Context(), otel.OTELConfig{
			Endpoint: cfg.OTELEndpoint,
			Headers:  cfg.OTELHeaders,
		})
		if err != nil {
			return fmt.Errorf("otel init: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		shutdownTelemetry()
	},
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagSocketName, "socket-name", "L", "", "tmux socket name (tmux -L)")
	rootCmd.PersistentFlags().StringVarP(&flagSocketPath, "socket-path", "S", "", "tmux socket path (tmux -S)")
	rootCmd.PersistentFlags().StringVar(&flagTmuxConf, "tmux-config", "", "tmux config file (tmux -f)")
	rootCmd.PersistentFlags().IntVar(&flagColors, "colors", 0, "color depth: 88 or 256")
	rootCmd.PersistentFlags().StringVar(&flagTmuxBin, "tmux-bin", "", "tmux binary to invoke")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")
}

func setupLogging() {
	level := slog.LevelWarn
	if flagDebug {
		level = slog.LevelDebug
	} else {
		switch cfg.LogLevel {
		case "debug":
			level = slog.LevelDebug
		case "info":
			level = slog.LevelInfo
		case "error":
			level = slog.LevelError
		}
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
}

func shutdownTelemetry() {
	if telemetry != nil {
		telemetry.Shutdown(context.Background())
	}
}

// getServer builds the server handle from flags and config; flags win.
func getServer() *tmux.Server {
	srv := tmux.NewServerWithRunner(telemetry.InstrumentRunner(tmux.DefaultRunner()))
	srv.SocketName = firstNonEmpty(flagSocketName, cfg.SocketName)
	srv.SocketPath = firstNonEmpty(flagSocketPath, cfg.SocketPath)
	srv.ConfigFile = firstNonEmpty(flagTmuxConf, cfg.ConfigFile)
	srv.Bin = firstNonEmpty(flagTmuxBin, cfg.TmuxBin)
	srv.Colors = flagColors
	if srv.Colors == 0 {
		srv.Colors = cfg.Colors
	}
	return srv
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

// insideTmux reports whether tmuxctl itself runs inside a tmux client.
func insideTmux() bool {
	return os.Getenv("TMUX") != ""
}
