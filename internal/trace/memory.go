package trace

import "sync"

// MemoryTracer keeps accepted events in memory for tests and --timings.
type MemoryTracer struct {
	level  Level
	mu     sync.Mutex
	events []Event
}

func NewMemoryTracer(level Level) *MemoryTracer {
	return &MemoryTracer{level: level}
}

func (t *MemoryTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	cp := ev.clone()
	t.mu.Lock()
	t.events = append(t.events, cp)
	t.mu.Unlock()
}

// Snapshot copies what has been recorded so far.
func (t *MemoryTracer) Snapshot() []Event {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]Event(nil), t.events...)
}

// Ended returns the end events of spans called name, in emission order.
func (t *MemoryTracer) Ended(name string) []Event {
	var out []Event
	for _, ev := range t.Snapshot() {
		if ev.Kind == KindSpanEnd && ev.Name == name {
			out = append(out, ev)
		}
	}
	return out
}

func (*MemoryTracer) Flush() error    { return nil }
func (*MemoryTracer) Close() error    { return nil }
func (t *MemoryTracer) Level() Level  { return t.level }
func (t *MemoryTracer) Enabled() bool { return t.level > LevelOff }
