// Package trace records what the jlite pipeline did and how long it took.
//
// Work is described by spans. Each span has a Scope:
//
//   - ScopeDriver: a batch or one input file
//   - ScopePass: a phase (parse, registry, check, lower, validate, print)
//   - ScopeModule: one method while checking or lowering
//   - ScopeNode: single statements, debug only
//
// A Level picks the scopes that reach the output; spans that end with an
// error pass at LevelError and above.
//
//	span := trace.Begin(t, trace.ScopePass, "lower", parent)
//	defer span.End("")
package trace

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives events. Implementations must be safe for concurrent use.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	Close() error
	Level() Level
	Enabled() bool
}

// Nop drops everything.
var Nop Tracer = nop{}

type nop struct{}

func (nop) Emit(*Event)   {}
func (nop) Flush() error  { return nil }
func (nop) Close() error  { return nil }
func (nop) Level() Level  { return LevelOff }
func (nop) Enabled() bool { return false }

// Config describes one stream output. Output wins over OutputPath and is
// never closed by the tracer; a file opened from OutputPath is.
type Config struct {
	Level      Level
	Format     Format
	Output     io.Writer
	OutputPath string // "" или "-" это stderr
}

// New returns Nop for LevelOff, otherwise a StreamTracer. FormatAuto picks
// NDJSON for *.ndjson and *.jsonl paths and text for everything else.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	format := cfg.Format
	if format == FormatAuto {
		format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".jsonl") {
			format = FormatNDJSON
		}
	}

	switch {
	case cfg.Output != nil:
		return NewStreamTracer(cfg.Output, cfg.Level, format), nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return NewStreamTracer(os.Stderr, cfg.Level, format), nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	st := NewStreamTracer(f, cfg.Level, format)
	st.owned = f
	return st, nil
}

type (
	tracerKey struct{}
	spanKey   struct{}
)

// WithTracer stores t in ctx; nil means Nop.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	return context.WithValue(ctx, tracerKey{}, t)
}

// FromContext returns the stored tracer or Nop.
func FromContext(ctx context.Context) Tracer {
	if ctx != nil {
		if t, ok := ctx.Value(tracerKey{}).(Tracer); ok {
			return t
		}
	}
	return Nop
}

// WithSpan records the span children started from ctx should attach to.
func WithSpan(ctx context.Context, id uint64) context.Context {
	return context.WithValue(ctx, spanKey{}, id)
}

// CurrentSpan returns the id stored by WithSpan, or 0.
func CurrentSpan(ctx context.Context) uint64 {
	if ctx == nil {
		return 0
	}
	id, _ := ctx.Value(spanKey{}).(uint64)
	return id
}
