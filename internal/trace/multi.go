package trace

import "errors"

// MultiTracer sends every event to several tracers, e.g. an NDJSON file
// and stderr at once.
type MultiTracer struct {
	level Level
	sinks []Tracer
}

// NewMultiTracer drops nil and disabled tracers.
func NewMultiTracer(level Level, tracers ...Tracer) *MultiTracer {
	m := &MultiTracer{level: level}
	for _, t := range tracers {
		if t != nil && t.Enabled() {
			m.sinks = append(m.sinks, t)
		}
	}
	return m
}

func (m *MultiTracer) Emit(ev *Event) {
	for _, t := range m.sinks {
		// у каждого приёмника своя копия: StreamTracer пишет в неё Seq
		cp := ev.clone()
		t.Emit(&cp)
	}
}

func (m *MultiTracer) Flush() error { return m.each(Tracer.Flush) }
func (m *MultiTracer) Close() error { return m.each(Tracer.Close) }

func (m *MultiTracer) each(fn func(Tracer) error) error {
	errs := make([]error, 0, len(m.sinks))
	for _, t := range m.sinks {
		errs = append(errs, fn(t))
	}
	return errors.Join(errs...)
}

func (m *MultiTracer) Level() Level  { return m.level }
func (m *MultiTracer) Enabled() bool { return m.level > LevelOff && len(m.sinks) > 0 }
