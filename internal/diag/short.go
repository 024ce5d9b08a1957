package diag

import (
	"cmp"
	"path/filepath"
	"slices"
	"strconv"
	"strings"

	"jlite/internal/source"
)

// shortLine is one rendered entry of the short format.
type shortLine struct {
	sev  string
	code string
	path string
	pos  source.LineCol
	msg  string
}

func (l shortLine) String() string {
	var b strings.Builder
	b.WriteString(l.sev)
	b.WriteByte(' ')
	b.WriteString(l.code)
	b.WriteByte(' ')
	b.WriteString(l.path)
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(l.pos.Line), 10))
	b.WriteByte(':')
	b.WriteString(strconv.FormatUint(uint64(l.pos.Col), 10))
	b.WriteByte(' ')
	b.WriteString(l.msg)
	return b.String()
}

// FormatShortDiagnostics renders one line per entry:
//
//	error SEM3016 path/to/file.j:4:5 message
//
// Paths are relative to the file set's base dir; lines are sorted by
// path, position and code. Notes follow as "note" lines when asked for.
func FormatShortDiagnostics(diags []Diagnostic, fs *source.FileSet, includeNotes bool) string {
	if fs == nil {
		return ""
	}
	var lines []shortLine
	for _, d := range diags {
		code := d.Code.ID()
		if l, ok := shortAt(fs, d.Primary); ok {
			l.sev, l.code, l.msg = strings.ToLower(d.Severity.String()), code, oneLine(d.Message)
			lines = append(lines, l)
		}
		if !includeNotes {
			continue
		}
		for _, n := range d.Notes {
			if l, ok := shortAt(fs, n.Span); ok {
				l.sev, l.code, l.msg = "note", code, oneLine(n.Msg)
				lines = append(lines, l)
			}
		}
	}
	slices.SortStableFunc(lines, func(a, b shortLine) int {
		return cmp.Or(
			strings.Compare(a.path, b.path),
			cmp.Compare(a.pos.Line, b.pos.Line),
			cmp.Compare(a.pos.Col, b.pos.Col),
			strings.Compare(a.code, b.code),
		)
	})
	out := make([]string, len(lines))
	for i, l := range lines {
		out[i] = l.String()
	}
	return strings.Join(out, "\n")
}

func shortAt(fs *source.FileSet, sp source.Span) (shortLine, bool) {
	f := fs.Get(sp.File)
	if f == nil {
		return shortLine{}, false
	}
	start, _ := fs.Resolve(sp)
	p := filepath.ToSlash(f.FormatPath("relative", fs.BaseDir()))
	for strings.HasPrefix(p, "./") {
		p = p[2:]
	}
	return shortLine{path: p, pos: start}, true
}

// oneLine склеивает многострочное сообщение в одну строку.
func oneLine(msg string) string {
	return strings.Join(strings.Fields(msg), " ")
}
