package otel

import (
	"context"
	"strings"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/obsidiansystems/libtmux/tmux"
)

// InstrumentRunner wraps a tmux.Runner so every subprocess invocation
// produces a span and feeds the command counter and duration
// histogram. With no exporter configured the wrapper costs almost
// nothing.
func (t *Telemetry) InstrumentRunner(next tmux.Runner) tmux.Runner {
	return &instrumentedRunner{next: next, tracer: t.Tracer, metrics: t.Metrics}
}

type instrumentedRunner struct {
	next    tmux.Runner
	tracer  trace.Tracer
	metrics *Metrics
}

func (r *instrumentedRunner) Run(ctx context.Context, name string, args ...string) (tmux.Result, error) {
	sub := subcommand(args)
	ctx, span := r.tracer.Start(ctx, "tmux."+sub)
	defer span.End()

	start := time.Now()
	res, err := r.next.Run(ctx, name, args...)
	elapsed := time.Since(start)

	status := "ok"
	switch {
	case err != nil:
		status = "spawn_error"
		span.SetStatus(codes.Error, err.Error())
	case res.Failed():
		status = "error"
		span.SetStatus(codes.Error, res.StderrText())
	}
	span.SetAttributes(
		attribute.String("tmux.subcommand", sub),
		attribute.Int("tmux.exit_code", res.ExitCode),
		attribute.String("tmux.status", status),
	)

	attrs := metric.WithAttributes(
		attribute.String("subcommand", sub),
		attribute.String("status", status),
	)
	r.metrics.Commands.Add(ctx, 1, attrs)
	r.metrics.CommandDuration.Record(ctx, elapsed.Seconds(), attrs)

	return res, err
}

// subcommand extracts the tmux subcommand from an argument vector,
// skipping the global connection flags.
func subcommand(args []string) string {
	for _, a := range args {
		if !strings.HasPrefix(a, "-") {
			return a
		}
	}
	return "version"
}
