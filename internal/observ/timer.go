// Package observ measures how long each compilation phase takes.
package observ

import (
	"fmt"
	"strings"
	"time"
)

// Phase is one measured run of a named phase, or the sum of several runs
// after Merge.
type Phase struct {
	Name  string
	Start time.Time
	Dur   time.Duration
	Note  string
	Count int
}

// Timer is not safe for concurrent use; the driver keeps one per file and
// merges them on a single goroutine.
type Timer struct {
	phases []Phase
}

func NewTimer() *Timer { return &Timer{} }

// Begin starts a phase and returns the handle End expects.
func (t *Timer) Begin(name string) int {
	t.phases = append(t.phases, Phase{Name: name, Start: time.Now(), Count: 1})
	return len(t.phases) - 1
}

// End stops phase idx. Unknown handles are ignored.
func (t *Timer) End(idx int, note string) {
	if idx < 0 || idx >= len(t.phases) {
		return
	}
	p := &t.phases[idx]
	p.Dur, p.Note = time.Since(p.Start), note
}

// Merge adds other's phases into t by name. New names keep the order in
// which they first appear; notes of merged phases are dropped since they
// describe a single file.
func (t *Timer) Merge(other *Timer) {
	if other == nil {
		return
	}
	pos := make(map[string]int, len(t.phases))
	for i, p := range t.phases {
		pos[p.Name] = i
	}
	for _, p := range other.phases {
		if i, ok := pos[p.Name]; ok {
			t.phases[i].Dur += p.Dur
			t.phases[i].Count += p.Count
			continue
		}
		p.Note = ""
		pos[p.Name] = len(t.phases)
		t.phases = append(t.phases, p)
	}
}

func (t *Timer) Phases() []Phase { return t.phases }

// PhaseReport is the serialisable form of a Phase.
type PhaseReport struct {
	Name       string  `json:"name" msgpack:"name"`
	DurationMS float64 `json:"duration_ms" msgpack:"ms"`
	Count      int     `json:"count,omitempty" msgpack:"count,omitempty"`
	Note       string  `json:"note,omitempty" msgpack:"note,omitempty"`
}

// Report is what the result cache stores and --timings prints.
type Report struct {
	TotalMS float64       `json:"total_ms" msgpack:"total_ms"`
	Phases  []PhaseReport `json:"phases" msgpack:"phases"`
}

func millis(d time.Duration) float64 { return float64(d) / float64(time.Millisecond) }

func (t *Timer) Report() Report {
	var r Report
	var total time.Duration
	for _, p := range t.phases {
		total += p.Dur
		r.Phases = append(r.Phases, PhaseReport{Name: p.Name, DurationMS: millis(p.Dur), Count: p.Count, Note: p.Note})
	}
	r.TotalMS = millis(total)
	return r
}

// FromReport restores a Timer from a cached Report. Start times are lost.
func FromReport(r Report) *Timer {
	t := &Timer{phases: make([]Phase, len(r.Phases))}
	for i, p := range r.Phases {
		t.phases[i] = Phase{
			Name:  p.Name,
			Dur:   time.Duration(p.DurationMS * float64(time.Millisecond)),
			Note:  p.Note,
			Count: max(p.Count, 1),
		}
	}
	return t
}

// Summary renders the table printed by --timings:
//
//	timings:
//	  parse            0.31 ms  x2
//	  total            0.90 ms
func (t *Timer) Summary() string {
	r := t.Report()
	lines := []string{"timings:"}
	for _, p := range r.Phases {
		line := fmt.Sprintf("  %-12s %8.2f ms", p.Name, p.DurationMS)
		if p.Count > 1 {
			line += fmt.Sprintf("  x%d", p.Count)
		}
		if p.Note != "" {
			line += "  // " + p.Note
		}
		lines = append(lines, line)
	}
	lines = append(lines, fmt.Sprintf("  %-12s %8.2f ms", "total", r.TotalMS))
	return strings.Join(lines, "\n") + "\n"
}
