package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"jlite/internal/diag"
	"jlite/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	code, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan, color.Bold),
		code:   color.New(color.Faint),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgGreen, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждого diag печатает:
// <path>:<line>:<col>: <SEV> <CODE>: <Message>
// затем строку исходника с подчёркиванием ^~~~ по Span, затем Notes.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	pal := newPalette(opts.Color)
	for _, d := range bag.Items() {
		prettyOne(w, &d, fs, opts, pal)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts, pal palette) {
	f := fs.Get(d.Primary.File)
	if f == nil {
		fmt.Fprintf(w, "%s %s: %s\n", pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)
		return
	}
	start, end := fs.Resolve(d.Primary)
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n",
		formatPath(f, fs, opts.PathMode), start.Line, start.Col,
		pal.severity(d.Severity).Sprint(d.Severity), pal.code.Sprint(d.Code.ID()), d.Message)

	writeSnippet(w, f, start, end, opts, pal)

	if opts.ShowNotes {
		for _, n := range d.Notes {
			ns, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  %s %d:%d: %s\n", pal.note.Sprint("note:"), ns.Line, ns.Col, n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, f *source.File, start, end source.LineCol, opts PrettyOpts, pal palette) {
	ctx := uint32(max(opts.Context, 0))
	first := start.Line
	if first > ctx {
		first -= ctx
	} else {
		first = 1
	}
	last := start.Line + ctx
	gutterWidth := len(fmt.Sprint(last))

	for ln := first; ln <= last; ln++ {
		text := strings.ReplaceAll(f.GetLine(ln), "\t", "    ")
		if ln != start.Line && text == "" {
			continue
		}
		if opts.Width > 0 {
			text = runewidth.Truncate(text, int(opts.Width), "…")
		}
		fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*d |", gutterWidth, ln), text)
		if ln == start.Line {
			fmt.Fprintf(w, "%s %s\n", pal.gutter.Sprintf("%*s |", gutterWidth, ""), pal.caret.Sprint(underline(f.GetLine(ln), start, end)))
		}
	}
}

// underline строит "^~~~" под диапазоном [start, end) строки с учётом ширины символов.
func underline(line string, start, end source.LineCol) string {
	from := min(int(start.Col)-1, len(line))
	from = max(from, 0)
	to := len(line)
	if end.Line == start.Line {
		to = min(max(int(end.Col)-1, from), len(line))
	}
	pad := displayWidth(line[:from])
	width := displayWidth(line[from:to])
	if width < 1 {
		width = 1
	}
	return strings.Repeat(" ", pad) + "^" + strings.Repeat("~", width-1)
}

func displayWidth(s string) int {
	return runewidth.StringWidth(strings.ReplaceAll(s, "\t", "    "))
}
