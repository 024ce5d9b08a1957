package driver

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"jlite/internal/diag"
	"jlite/internal/ir3"
	"jlite/internal/observ"
	"jlite/internal/parser"
	"jlite/internal/sema"
	"jlite/internal/source"
	"jlite/internal/symbols"
	"jlite/internal/trace"
)

// Emit selects what a successful compilation produces.
type Emit uint8

const (
	// EmitNone stops after checking.
	EmitNone Emit = iota
	// EmitIR3 prints the textual IR3 program.
	EmitIR3
	// EmitJSON dumps the IR3 program structure as JSON.
	EmitJSON
)

func (e Emit) String() string {
	switch e {
	case EmitIR3:
		return "ir3"
	case EmitJSON:
		return "json"
	default:
		return "none"
	}
}

// Options configure a compilation run.
type Options struct {
	Emit           Emit
	MaxDiagnostics int
	Validate       bool // прогонять ir3.Validate после понижения
	Timings        bool
	Jobs           int // параллельное чтение файлов, 0 - GOMAXPROCS
	Tracer         trace.Tracer
	Progress       ProgressSink
	Cache          *ResultCache
}

// InternalError wraps a compiler defect hit while processing one file.
type InternalError struct {
	Path string
	Err  error
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal compiler error in %s: %v", e.Path, e.Err)
}

func (e *InternalError) Unwrap() error { return e.Err }

// FileResult is the outcome for one input program.
type FileResult struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Bag     *diag.Bag
	Output  []byte // IR3 в выбранном формате, nil для EmitNone или при ошибке
	Err     error  // первая ошибка: *diag.Error, ошибка чтения или *InternalError
	Cached  bool
	Timing  observ.Report
}

// Failed reports whether the file did not compile.
func (r *FileResult) Failed() bool { return r.Err != nil }

// Internal reports whether the failure is a compiler defect.
func (r *FileResult) Internal() bool {
	var ie *InternalError
	return errors.As(r.Err, &ie)
}

// CompileSource runs the whole pipeline over one program held in memory.
func CompileSource(ctx context.Context, path string, content []byte, opts *Options) *FileResult {
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	cc := NewCompilationContext(path, content, opts)
	res := &FileResult{Path: path, FileSet: cc.FileSet, File: cc.File, Bag: cc.Bag}

	span := trace.Begin(cc.tracer, trace.ScopeDriver, "file:"+path, trace.CurrentSpan(ctx))
	cc.span = span.ID()
	defer func() {
		span.WithInt("diags", cc.Bag.Len())
		if res.Cached {
			span.WithExtra("cache", "hit")
		}
		span.End("")
	}()

	key := CacheKey(cc.File.Content, opts)
	if opts.Cache != nil {
		var payload CachedResult
		if ok, err := opts.Cache.Get(key, &payload); err == nil && ok {
			payload.restore(res, cc.File.ID)
			res.Cached = true
			finish(opts, res)
			return res
		}
	}

	res.Err = cc.run()
	res.Output = cc.output
	if cc.Timer != nil {
		res.Timing = cc.Timer.Report()
	}
	if opts.Cache != nil && !res.Internal() {
		// ошибка записи в кэш не влияет на результат
		_ = opts.Cache.Put(key, newCachedResult(res))
	}
	finish(opts, res)
	return res
}

func finish(opts *Options, res *FileResult) {
	status := StatusDone
	if res.Failed() {
		status = StatusError
	}
	emit(opts.Progress, Event{File: res.Path, Stage: StageEmit, Status: status, Err: res.Err})
}

// run executes the phases in order and stops at the first failure. An
// ir3.InternalError panic is recovered into an *InternalError.
func (cc *CompilationContext) run() (err error) {
	defer func() {
		if r := recover(); r != nil {
			var ie *ir3.InternalError
			if e, ok := r.(error); ok && errors.As(e, &ie) {
				err = &InternalError{Path: cc.Path, Err: ie}
				return
			}
			panic(r)
		}
	}()

	if err := cc.phase(StageParse, "parse", func(uint64) (string, error) {
		prog, err := parser.ParseFile(cc.File, parser.Options{Reporter: cc.reporter()})
		if err != nil {
			return "", err
		}
		cc.Program = prog
		return fmt.Sprintf("classes=%d", len(prog.Classes)), nil
	}); err != nil {
		return err
	}

	if err := cc.phase(StageCheck, "registry", func(uint64) (string, error) {
		reg, err := symbols.Build(cc.Program)
		if err != nil {
			if d, ok := diag.AsDiagnostic(err); ok {
				diag.Report(cc.reporter(), d)
			}
			return "", err
		}
		cc.Registry = reg
		return fmt.Sprintf("classes=%d", reg.Len()), nil
	}); err != nil {
		return err
	}

	if err := cc.phase(StageCheck, "check", func(parent uint64) (string, error) {
		return "", sema.Check(cc.Program, cc.Registry, sema.Options{
			Reporter:   cc.reporter(),
			Tracer:     cc.tracer,
			ParentSpan: parent,
		})
	}); err != nil {
		return err
	}

	if cc.opts.Emit == EmitNone {
		return nil
	}

	if err := cc.phase(StageLower, "lower", func(parent uint64) (string, error) {
		cc.IR = ir3.Lower(cc.Program, cc.Registry, ir3.Options{Tracer: cc.tracer, ParentSpan: parent})
		return fmt.Sprintf("methods=%d", len(cc.IR.Methods)), nil
	}); err != nil {
		return err
	}

	if cc.opts.Validate {
		if err := cc.phase(StageLower, "validate", func(uint64) (string, error) {
			if err := ir3.Validate(cc.IR); err != nil {
				return "", &InternalError{Path: cc.Path, Err: err}
			}
			return "", nil
		}); err != nil {
			return err
		}
	}

	return cc.phase(StageEmit, "print", func(uint64) (string, error) {
		var buf bytes.Buffer
		var err error
		if cc.opts.Emit == EmitJSON {
			err = ir3.WriteJSON(&buf, cc.IR)
		} else {
			err = ir3.Print(&buf, cc.IR)
		}
		if err != nil {
			return "", fmt.Errorf("render %s: %w", cc.Path, err)
		}
		cc.output = buf.Bytes()
		return fmt.Sprintf("bytes=%d", buf.Len()), nil
	})
}
