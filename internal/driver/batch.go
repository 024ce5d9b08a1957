package driver

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"jlite/internal/diag"
	"jlite/internal/observ"
	"jlite/internal/source"
	"jlite/internal/trace"
)

// BatchResult collects per-file results in input order.
type BatchResult struct {
	Files  []*FileResult
	Failed int
	Timer  *observ.Timer // сумма фаз по всем файлам, nil без Timings
}

type loadedSource struct {
	content []byte
	err     error
}

// Run compiles every path strictly one after another; a failing file does
// not stop the batch. Only file reading runs concurrently. The returned
// error is non-nil only when ctx is cancelled.
func Run(ctx context.Context, paths []string, opts Options) (*BatchResult, error) {
	if opts.Tracer == nil {
		opts.Tracer = trace.FromContext(ctx)
	}
	span := trace.Begin(opts.Tracer, trace.ScopeDriver, "batch", trace.CurrentSpan(ctx))
	defer span.End("")
	ctx = trace.WithSpan(ctx, span.ID())

	for _, p := range paths {
		emit(opts.Progress, Event{File: p, Stage: StageRead, Status: StatusQueued})
	}

	sources, err := readSources(ctx, paths, opts.Jobs)
	if err != nil {
		return nil, err
	}

	out := &BatchResult{Files: make([]*FileResult, 0, len(paths))}
	if opts.Timings {
		out.Timer = observ.NewTimer()
	}
	for i, path := range paths {
		if err := ctx.Err(); err != nil {
			return out, err
		}
		var res *FileResult
		if sources[i].err != nil {
			res = readFailure(path, sources[i].err, opts.MaxDiagnostics)
			emit(opts.Progress, Event{File: path, Stage: StageRead, Status: StatusError, Err: res.Err})
		} else {
			res = CompileSource(ctx, path, sources[i].content, &opts)
		}
		if res.Failed() {
			out.Failed++
		}
		if out.Timer != nil {
			out.Timer.Merge(timerFromReport(res.Timing))
		}
		out.Files = append(out.Files, res)
	}
	span.WithInt("files", len(paths)).WithInt("failed", out.Failed)
	emit(opts.Progress, Event{Stage: StageEmit, Status: StatusDone})
	return out, nil
}

func readSources(ctx context.Context, paths []string, jobs int) ([]loadedSource, error) {
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make([]loadedSource, len(paths))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for i, p := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			// #nosec G304 -- path is provided by the caller
			content, err := os.ReadFile(p)
			if err != nil {
				out[i].err = fmt.Errorf("read %s: %w", p, err)
				return nil
			}
			out[i].content = content
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func readFailure(path string, err error, maxDiagnostics int) *FileResult {
	fs := source.NewFileSet()
	id := fs.AddVirtual(path, nil)
	bag := diag.NewBag(maxDiagnostics)
	bag.Add(diag.NewError(diag.IOLoadFileError, source.Span{File: id}, err.Error()))
	return &FileResult{Path: path, FileSet: fs, File: fs.Get(id), Bag: bag, Err: err}
}

func timerFromReport(r observ.Report) *observ.Timer {
	if len(r.Phases) == 0 {
		return nil
	}
	return observ.FromReport(r)
}

// ExpandInputs resolves glob patterns relative to base, dropping duplicates
// and keeping first-seen order. Plain paths pass through even if missing so
// that the read error is reported per file.
func ExpandInputs(base string, patterns []string) ([]string, error) {
	seen := make(map[string]struct{})
	var out []string
	add := func(p string) {
		if _, dup := seen[p]; dup {
			return
		}
		seen[p] = struct{}{}
		out = append(out, p)
	}
	for _, pat := range patterns {
		full := pat
		if base != "" && !filepath.IsAbs(pat) {
			full = filepath.Join(base, pat)
		}
		matches, err := filepath.Glob(full)
		if err != nil {
			return nil, fmt.Errorf("bad pattern %q: %w", pat, err)
		}
		if len(matches) == 0 {
			add(full)
			continue
		}
		sort.Strings(matches)
		for _, m := range matches {
			add(m)
		}
	}
	return out, nil
}
