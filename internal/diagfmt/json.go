package diagfmt

import (
	"encoding/json"
	"io"

	"jlite/internal/diag"
	"jlite/internal/source"
)

// LocationJSON is a span as byte offsets plus optional 1-based positions.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line,omitempty"`
	StartCol  uint32 `json:"start_col,omitempty"`
	EndLine   uint32 `json:"end_line,omitempty"`
	EndCol    uint32 `json:"end_col,omitempty"`
}

type NoteJSON struct {
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// DiagnosticJSON: code - стабильный ID (SEM3006), title - его описание.
type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Code     string       `json:"code"`
	Title    string       `json:"title"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
	Notes    []NoteJSON   `json:"notes,omitempty"`
}

// DiagnosticsOutput is the document written for one file. Total counts the
// whole bag; Count only what was emitted after JSONOpts.Max.
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics"`
	Count       int              `json:"count"`
	Total       int              `json:"total"`
}

type locator struct {
	fs        *source.FileSet
	mode      PathMode
	positions bool
}

func (l locator) locate(span source.Span) LocationJSON {
	loc := LocationJSON{StartByte: span.Start, EndByte: span.End}
	f := l.fs.Get(span.File)
	if f == nil {
		return loc
	}
	loc.File = formatPath(f, l.fs, l.mode)
	if l.positions {
		start, end := l.fs.Resolve(span)
		loc.StartLine, loc.StartCol = start.Line, start.Col
		loc.EndLine, loc.EndCol = end.Line, end.Col
	}
	return loc
}

// BuildDiagnosticsOutput converts the bag without serialising it.
func BuildDiagnosticsOutput(bag *diag.Bag, fs *source.FileSet, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	n := len(items)
	if opts.Max > 0 && opts.Max < n {
		n = opts.Max
	}
	loc := locator{fs: fs, mode: opts.PathMode, positions: opts.IncludePositions}

	out := DiagnosticsOutput{Diagnostics: make([]DiagnosticJSON, 0, n), Total: len(items)}
	for _, d := range items[:n] {
		dj := DiagnosticJSON{
			Severity: d.Severity.String(),
			Code:     d.Code.ID(),
			Title:    d.Code.Title(),
			Message:  d.Message,
			Location: loc.locate(d.Primary),
		}
		if opts.IncludeNotes {
			for _, note := range d.Notes {
				dj.Notes = append(dj.Notes, NoteJSON{Message: note.Msg, Location: loc.locate(note.Span)})
			}
		}
		out.Diagnostics = append(out.Diagnostics, dj)
	}
	out.Count = len(out.Diagnostics)
	return out
}

// JSON writes the diagnostics of one file as an indented document.
func JSON(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(BuildDiagnosticsOutput(bag, fs, opts))
}
