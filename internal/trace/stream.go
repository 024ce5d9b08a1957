package trace

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// Format is the on-disk shape of a stream.
type Format uint8

const (
	FormatAuto Format = iota
	FormatText
	FormatNDJSON
)

// ParseFormat accepts auto, text, ndjson and json as an alias of ndjson.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "auto":
		return FormatAuto, nil
	case "text":
		return FormatText, nil
	case "ndjson", "json":
		return FormatNDJSON, nil
	}
	return FormatAuto, fmt.Errorf("invalid trace format: %q (expected: auto|text|ndjson)", s)
}

var lastSeq atomic.Uint64

// StreamTracer writes each accepted event as soon as it arrives.
type StreamTracer struct {
	mu     sync.Mutex
	out    *bufio.Writer
	owned  io.Closer // файл, открытый New; чужой writer не закрываем
	level  Level
	format Format
	start  time.Time
	depth  map[uint64]int
}

func NewStreamTracer(w io.Writer, level Level, format Format) *StreamTracer {
	return &StreamTracer{
		out:    bufio.NewWriter(w),
		level:  level,
		format: format,
		start:  time.Now(),
		depth:  make(map[uint64]int),
	}
}

// Emit never fails: write errors surface on Flush.
func (t *StreamTracer) Emit(ev *Event) {
	if !t.level.accepts(ev) {
		return
	}
	ev.Seq = lastSeq.Add(1)

	t.mu.Lock()
	defer t.mu.Unlock()
	depth := 0
	if d, ok := t.depth[ev.ParentID]; ok {
		depth = d + 1
	}
	if ev.Kind == KindSpanBegin {
		t.depth[ev.SpanID] = depth
	} else if d, ok := t.depth[ev.SpanID]; ok {
		depth = d
		delete(t.depth, ev.SpanID)
	}

	if t.format == FormatNDJSON {
		writeNDJSON(t.out, ev)
	} else {
		writeText(t.out, ev, ev.Time.Sub(t.start), depth)
	}
	// текстовый след читают вживую, поэтому каждую строку сразу на выход
	_ = t.out.Flush()
}

func (t *StreamTracer) Flush() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.out.Flush()
}

// Close flushes and closes the output file if New opened it.
func (t *StreamTracer) Close() error {
	err := t.Flush()
	if t.owned != nil {
		if cerr := t.owned.Close(); err == nil {
			err = cerr
		}
		t.owned = nil
	}
	return err
}

func (t *StreamTracer) Level() Level  { return t.level }
func (t *StreamTracer) Enabled() bool { return t.level > LevelOff }

type jsonEvent struct {
	Time      string            `json:"time"`
	Seq       uint64            `json:"seq"`
	Kind      string            `json:"kind"`
	Scope     string            `json:"scope"`
	SpanID    uint64            `json:"span_id"`
	ParentID  uint64            `json:"parent_id,omitempty"`
	Name      string            `json:"name"`
	Detail    string            `json:"detail,omitempty"`
	Error     string            `json:"error,omitempty"`
	ElapsedUS int64             `json:"elapsed_us,omitempty"`
	Extra     map[string]string `json:"extra,omitempty"`
}

func writeNDJSON(w io.Writer, ev *Event) {
	_ = json.NewEncoder(w).Encode(jsonEvent{
		Time:      ev.Time.Format(time.RFC3339Nano),
		Seq:       ev.Seq,
		Kind:      ev.Kind.String(),
		Scope:     ev.Scope.String(),
		SpanID:    ev.SpanID,
		ParentID:  ev.ParentID,
		Name:      ev.Name,
		Detail:    ev.Detail,
		Error:     ev.Err,
		ElapsedUS: ev.Elapsed.Microseconds(),
		Extra:     ev.Extra,
	})
}

// writeText: "[   1.250ms]   → name (detail) {k=v} +dur !error"
func writeText(w io.Writer, ev *Event, since time.Duration, depth int) {
	arrow := "→"
	if ev.Kind == KindSpanEnd {
		arrow = "←"
	}
	line := fmt.Sprintf("[%9.3fms] %s%s %s", float64(since.Microseconds())/1000, strings.Repeat("  ", depth), arrow, ev.Name)
	if ev.Detail != "" {
		line += " (" + ev.Detail + ")"
	}
	if len(ev.Extra) > 0 {
		pairs := make([]string, 0, len(ev.Extra))
		for k, v := range ev.Extra {
			pairs = append(pairs, k+"="+v)
		}
		slices.Sort(pairs)
		line += " {" + strings.Join(pairs, ", ") + "}"
	}
	if ev.Kind == KindSpanEnd {
		line += " +" + ev.Elapsed.Round(time.Microsecond).String()
	}
	if ev.Err != "" {
		line += " !" + ev.Err
	}
	_, _ = io.WriteString(w, line+"\n")
}
