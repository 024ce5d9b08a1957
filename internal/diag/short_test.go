package diag

import (
	"testing"

	"jlite/internal/source"
)

func TestFormatShortDiagnostics(t *testing.T) {
	fs := source.NewFileSet()
	fs.SetBaseDir("/workspace")
	id := fs.Add("/workspace/testdata/sample.j", []byte("a\nb\n"), 0)

	diags := []Diagnostic{
		NewError(SemaAssignmentTypeMismatch, source.Span{File: id, Start: 2, End: 3}, "first line\nsecond"),
		NewError(SynUnexpectedToken, source.Span{File: id, Start: 0, End: 1}, "unexpected").
			WithNote(source.Span{File: id, Start: 2, End: 3}, "note line"),
	}

	want := "error SYN2001 testdata/sample.j:1:1 unexpected\n" +
		"error SEM3016 testdata/sample.j:2:1 first line second\n" +
		"note SYN2001 testdata/sample.j:2:1 note line"
	if got := FormatShortDiagnostics(diags, fs, true); got != want {
		t.Fatalf("want:\n%s\ngot:\n%s", want, got)
	}

	want = "error SYN2001 testdata/sample.j:1:1 unexpected\n" +
		"error SEM3016 testdata/sample.j:2:1 first line second"
	if got := FormatShortDiagnostics(diags, fs, false); got != want {
		t.Fatalf("without notes:\n%s", got)
	}
}

func TestFormatShortDiagnosticsSkipsUnknownFiles(t *testing.T) {
	fs := source.NewFileSet()
	d := NewError(SemaTypeMismatch, source.Span{File: 42}, "lost")
	if got := FormatShortDiagnostics([]Diagnostic{d}, fs, false); got != "" {
		t.Fatalf("got %q", got)
	}
	if got := FormatShortDiagnostics(nil, nil, false); got != "" {
		t.Fatalf("got %q", got)
	}
}
