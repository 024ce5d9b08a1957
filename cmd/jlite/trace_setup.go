package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"jlite/internal/trace"
)

// setupTracing initializes the tracer from resolved settings and attaches it
// to the command context. It returns a cleanup function that flushes and
// closes the tracer.
func setupTracing(cmd *cobra.Command, st *settings) (func(), error) {
	level, err := trace.ParseLevel(st.traceLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid trace level: %w", err)
	}

	if level == trace.LevelOff {
		cmd.SetContext(trace.WithTracer(cmd.Context(), trace.Nop))
		return func() {}, nil
	}

	format, err := trace.ParseFormat(st.traceFormat)
	if err != nil {
		return nil, err
	}

	// --trace out.ndjson,- пишет в несколько мест сразу
	outputs := strings.Split(st.traceOutput, ",")
	tracers := make([]trace.Tracer, 0, len(outputs))
	for _, output := range outputs {
		output = strings.TrimSpace(output)
		cfg := trace.Config{
			Level:      level,
			Format:     format,
			OutputPath: output,
		}
		if output == "" || output == "-" {
			cfg.Output = cmd.ErrOrStderr()
		}
		t, err := trace.New(cfg)
		if err != nil {
			for _, opened := range tracers {
				_ = opened.Close()
			}
			return nil, fmt.Errorf("failed to create tracer: %w", err)
		}
		tracers = append(tracers, t)
	}
	var tracer trace.Tracer = tracers[0]
	if len(tracers) > 1 {
		tracer = trace.NewMultiTracer(level, tracers...)
	}

	ctx := trace.WithTracer(cmd.Context(), tracer)
	cmd.SetContext(ctx)

	cleanup := func() {
		if err := tracer.Flush(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: flush error: %v\n", err)
		}
		if err := tracer.Close(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "trace: close error: %v\n", err)
		}
	}
	return cleanup, nil
}
