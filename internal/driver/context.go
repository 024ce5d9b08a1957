package driver

import (
	"jlite/internal/ast"
	"jlite/internal/diag"
	"jlite/internal/ir3"
	"jlite/internal/observ"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/trace"
)

// CompilationContext holds every piece of state for one input program.
// A fresh context is created per file; nothing in it is shared between files.
type CompilationContext struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag

	Program  *ast.Program
	Registry *symbols.Registry
	IR       *ir3.Program

	Timer  *observ.Timer
	output []byte
	tracer trace.Tracer
	span   uint64
	opts   *Options
}

// NewCompilationContext normalises content into a private FileSet.
func NewCompilationContext(path string, content []byte, opts *Options) *CompilationContext {
	fs := source.NewFileSet()
	id := fs.AddNormalized(path, content)
	cc := &CompilationContext{
		Path:    path,
		FileSet: fs,
		File:    fs.Get(id),
		Bag:     diag.NewBag(opts.MaxDiagnostics),
		tracer:  opts.Tracer,
		opts:    opts,
	}
	if cc.tracer == nil {
		cc.tracer = trace.Nop
	}
	if opts.Timings {
		cc.Timer = observ.NewTimer()
	}
	return cc
}

func (cc *CompilationContext) reporter() diag.Reporter {
	return diag.BagReporter{Bag: cc.Bag}
}

// phase runs fn as a named pass: timer entry, trace span and progress event.
func (cc *CompilationContext) phase(stage Stage, name string, fn func(parent uint64) (note string, err error)) error {
	emit(cc.opts.Progress, Event{File: cc.Path, Stage: stage, Status: StatusWorking})

	idx := -1
	if cc.Timer != nil {
		idx = cc.Timer.Begin(name)
	}
	span := trace.Begin(cc.tracer, trace.ScopePass, name, cc.span)
	note, err := fn(span.ID())
	span.Fail(err).End(note)
	if cc.Timer != nil {
		cc.Timer.End(idx, note)
	}
	return err
}
