package otel

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "tmuxctl"

// Metrics holds all OTEL metric instruments for tmuxctl.
// All instruments are safe for concurrent use.
type Metrics struct {
	// Commands counts tmux invocations, partitioned by subcommand and
	// status via attributes.
	Commands metric.Int64Counter
	// CommandDuration records wall-clock seconds per tmux invocation.
	CommandDuration metric.Float64Histogram
	// SessionsCreated counts sessions created through tmuxctl.
	SessionsCreated metric.Int64Counter
	// SessionsKilled counts sessions killed through tmuxctl.
	SessionsKilled metric.Int64Counter
}

// NewMetrics creates all metric instruments. Returns no-op instruments
// when no MeterProvider is registered (safe to call unconditionally).
func NewMetrics() (*Metrics, error) {
	meter := otel.Meter(meterName)
	m := &Metrics{}
	var err error

	m.Commands, err = meter.Int64Counter("tmux.commands",
		metric.WithDescription("Total tmux subprocess invocations"),
		metric.WithUnit("{invocation}"))
	if err != nil {
		return nil, err
	}

	m.CommandDuration, err = meter.Float64Histogram("tmux.command.duration",
		metric.WithDescription("Wall-clock duration of tmux invocations"),
		metric.WithUnit("s"))
	if err != nil {
		return nil, err
	}

	m.SessionsCreated, err = meter.Int64Counter("tmux.sessions.created",
		metric.WithDescription("Sessions created through tmuxctl"))
	if err != nil {
		return nil, err
	}

	m.SessionsKilled, err = meter.Int64Counter("tmux.sessions.killed",
		metric.WithDescription("Sessions killed through tmuxctl"))
	if err != nil {
		return nil, err
	}

	return m, nil
}
