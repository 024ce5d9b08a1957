package trace

import (
	"strconv"
	"sync/atomic"
	"time"
)

var lastSpanID atomic.Uint64

// Span is an open unit of work. A span filtered out by the level still
// hands out its parent's id, so children attach to the nearest recorded
// ancestor.
type Span struct {
	t       Tracer
	id      uint64
	parent  uint64
	scope   Scope
	name    string
	started time.Time
	err     string
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root). At LevelError every span
// is tracked quietly so that a failing one can still be reported on End.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if t == nil || !t.Enabled() {
		return &Span{parent: parent}
	}
	s := &Span{t: t, parent: parent, scope: scope, name: name, started: time.Now()}
	if !t.Level().ShouldEmit(scope) {
		return s
	}
	s.id = lastSpanID.Add(1)
	t.Emit(&Event{
		Time:     s.started,
		Kind:     KindSpanBegin,
		Scope:    scope,
		SpanID:   s.id,
		ParentID: parent,
		Name:     name,
	})
	return s
}

func (s *Span) live() bool { return s != nil && s.t != nil }

// ID is the id children should use as their parent.
func (s *Span) ID() uint64 {
	switch {
	case s == nil:
		return 0
	case s.id == 0:
		return s.parent
	}
	return s.id
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string)
	}
	s.extra[key] = value
	return s
}

func (s *Span) WithInt(key string, v int) *Span {
	return s.WithExtra(key, strconv.Itoa(v))
}

// Fail marks the span as failed with err.
func (s *Span) Fail(err error) *Span {
	if s.live() && err != nil {
		s.err = err.Error()
	}
	return s
}

// End closes the span and returns its duration. Spans hidden by the level
// are emitted only when they failed.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	elapsed := time.Since(s.started)
	id := s.id
	if id == 0 {
		if s.err == "" {
			return elapsed
		}
		id = lastSpanID.Add(1)
	}
	s.t.Emit(&Event{
		Time:     time.Now(),
		Kind:     KindSpanEnd,
		Scope:    s.scope,
		SpanID:   id,
		ParentID: s.parent,
		Name:     s.name,
		Detail:   detail,
		Err:      s.err,
		Extra:    s.extra,
		Elapsed:  elapsed,
	})
	return elapsed
}
