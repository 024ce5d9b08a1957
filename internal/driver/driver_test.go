package driver_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"jlite/internal/diag"
	"jlite/internal/driver"
	"jlite/internal/trace"
)

const goodSrc = `
class Main {
  Void main() {
    Counter c;
    c = new Counter();
    c.tick(3);
  }
}
class Counter {
  Int n;
  Void tick(Int by) {
    while (by > 0) { n = n + 1; by = by - 1; }
  }
}
`

const badSrc = `
class Main {
  Void main() {
    Int x;
    x = true;
  }
}
`

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	p := filepath.Join(dir, name)
	if err := os.WriteFile(p, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", p, err)
	}
	return p
}

func TestRunContinuesAfterFailingFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.j", badSrc)
	good := writeFile(t, dir, "good.j", goodSrc)
	missing := filepath.Join(dir, "missing.j")

	res, err := driver.Run(context.Background(), []string{bad, missing, good}, driver.Options{Emit: driver.EmitIR3, Validate: true})
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if len(res.Files) != 3 || res.Failed != 2 {
		t.Fatalf("files=%d failed=%d", len(res.Files), res.Failed)
	}

	if code := diag.CodeOf(res.Files[0].Err); code != diag.SemaAssignmentTypeMismatch {
		t.Fatalf("bad.j code = %s", code.ID())
	}
	if res.Files[0].Bag.Len() != 1 {
		t.Fatalf("bad.j diagnostics = %d, want exactly 1", res.Files[0].Bag.Len())
	}
	if res.Files[0].Output != nil {
		t.Fatal("failed file produced output")
	}

	if !errors.Is(res.Files[1].Err, os.ErrNotExist) {
		t.Fatalf("missing.j err = %v", res.Files[1].Err)
	}
	if items := res.Files[1].Bag.Items(); len(items) != 1 || items[0].Code != diag.IOLoadFileError {
		t.Fatalf("missing.j diagnostics = %+v", items)
	}

	out := string(res.Files[2].Output)
	if res.Files[2].Failed() || !strings.Contains(out, "Void %Counter_tick(Counter this, Int by) {") {
		t.Fatalf("good.j output:\n%s\nerr: %v", out, res.Files[2].Err)
	}
	if !strings.HasSuffix(out, "======= End of IR3 Program =======\n\n") {
		t.Fatalf("missing footer:\n%s", out)
	}
}

func TestEachFileGetsFreshState(t *testing.T) {
	opts := &driver.Options{Emit: driver.EmitIR3}
	first := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), opts)
	second := driver.CompileSource(context.Background(), "b.j", []byte(goodSrc), opts)
	if first.Failed() || second.Failed() {
		t.Fatalf("errors: %v / %v", first.Err, second.Err)
	}
	if string(first.Output) != string(second.Output) {
		t.Fatalf("outputs differ between runs:\n%s\n---\n%s", first.Output, second.Output)
	}
	if !strings.Contains(string(first.Output), "goto L1;") || strings.Contains(string(first.Output), "L2") {
		t.Fatalf("labels are not per-method:\n%s", first.Output)
	}
}

func TestCheckOnlyHasNoOutput(t *testing.T) {
	res := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), &driver.Options{})
	if res.Failed() || res.Output != nil {
		t.Fatalf("err=%v output=%q", res.Err, res.Output)
	}
}

func TestValidationFailureIsInternal(t *testing.T) {
	// два main сходятся в одно плоское имя
	src := `
class Main { Void main() { } }
class Other { Void main() { } }
`
	res := driver.CompileSource(context.Background(), "dup.j", []byte(src), &driver.Options{Emit: driver.EmitIR3, Validate: true})
	if !res.Failed() || !res.Internal() {
		t.Fatalf("expected internal error, got %v", res.Err)
	}
	if res.Bag.Len() != 0 {
		t.Fatal("internal errors must not become user diagnostics")
	}
	if !strings.Contains(res.Err.Error(), "duplicate flat name") {
		t.Fatalf("err = %v", res.Err)
	}

	res = driver.CompileSource(context.Background(), "dup.j", []byte(src), &driver.Options{Emit: driver.EmitIR3})
	if res.Failed() {
		t.Fatalf("without validation: %v", res.Err)
	}
}

func TestEmitJSON(t *testing.T) {
	res := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), &driver.Options{Emit: driver.EmitJSON})
	if res.Failed() {
		t.Fatal(res.Err)
	}
	if !strings.Contains(string(res.Output), `"name": "%Counter_tick"`) {
		t.Fatalf("json output:\n%s", res.Output)
	}
}

func TestResultCache(t *testing.T) {
	cache, err := driver.OpenResultCache(t.TempDir(), "jlite")
	if err != nil {
		t.Fatalf("open cache: %v", err)
	}
	opts := &driver.Options{Emit: driver.EmitIR3, Cache: cache}

	first := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), opts)
	second := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), opts)
	if first.Cached || !second.Cached {
		t.Fatalf("cached flags = %v, %v", first.Cached, second.Cached)
	}
	if string(first.Output) != string(second.Output) {
		t.Fatal("cached output differs")
	}

	failed := driver.CompileSource(context.Background(), "bad.j", []byte(badSrc), opts)
	again := driver.CompileSource(context.Background(), "bad.j", []byte(badSrc), opts)
	if !again.Cached || !again.Failed() {
		t.Fatalf("cached failure: cached=%v err=%v", again.Cached, again.Err)
	}
	if diag.CodeOf(again.Err) != diag.CodeOf(failed.Err) {
		t.Fatalf("codes differ: %v vs %v", again.Err, failed.Err)
	}
	d, want := again.Bag.Items()[0], failed.Bag.Items()[0]
	if d.Message != want.Message || d.Primary.Start != want.Primary.Start || d.Primary.File != again.File.ID {
		t.Fatalf("restored diagnostic %+v, want %+v", d, want)
	}

	// другой режим вывода - другой ключ
	checkOnly := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), &driver.Options{Cache: cache})
	if checkOnly.Cached {
		t.Fatal("emit mode must be part of the cache key")
	}

	if err := cache.Clear(); err != nil {
		t.Fatalf("clear: %v", err)
	}
	if res := driver.CompileSource(context.Background(), "a.j", []byte(goodSrc), opts); res.Cached {
		t.Fatal("hit after Clear")
	}
}

func TestProgressEvents(t *testing.T) {
	dir := t.TempDir()
	good := writeFile(t, dir, "good.j", goodSrc)
	bad := writeFile(t, dir, "bad.j", badSrc)

	var mu sync.Mutex
	final := map[string]driver.Status{}
	var stages []driver.Stage
	sink := driver.ProgressFunc(func(ev driver.Event) {
		mu.Lock()
		defer mu.Unlock()
		if ev.File == good && ev.Status == driver.StatusWorking {
			stages = append(stages, ev.Stage)
		}
		if ev.Status == driver.StatusDone || ev.Status == driver.StatusError {
			final[ev.File] = ev.Status
		}
	})
	if _, err := driver.Run(context.Background(), []string{good, bad}, driver.Options{Emit: driver.EmitIR3, Progress: sink}); err != nil {
		t.Fatal(err)
	}
	if final[good] != driver.StatusDone || final[bad] != driver.StatusError || final[""] != driver.StatusDone {
		t.Fatalf("final statuses = %v", final)
	}
	want := []driver.Stage{driver.StageParse, driver.StageCheck, driver.StageCheck, driver.StageLower, driver.StageEmit}
	if len(stages) != len(want) {
		t.Fatalf("stages = %v, want %v", stages, want)
	}
	for i := range want {
		if stages[i] != want[i] {
			t.Fatalf("stages = %v, want %v", stages, want)
		}
	}
}

func TestTimingsAndTrace(t *testing.T) {
	mem := trace.NewMemoryTracer(trace.LevelDebug)
	ctx := trace.WithTracer(context.Background(), mem)
	dir := t.TempDir()
	p := writeFile(t, dir, "good.j", goodSrc)

	res, err := driver.Run(ctx, []string{p, p}, driver.Options{Emit: driver.EmitIR3, Validate: true, Timings: true})
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, ph := range res.Files[0].Timing.Phases {
		names = append(names, ph.Name)
	}
	if got := strings.Join(names, ","); got != "parse,registry,check,lower,validate,print" {
		t.Fatalf("phases = %s", got)
	}
	if res.Timer == nil || res.Timer.Phases()[0].Count != 2 {
		t.Fatalf("batch timer = %+v", res.Timer)
	}

	for _, name := range []string{"batch", "file:" + p, "parse", "check", "check:Counter.tick", "lower:%Counter_tick"} {
		if len(mem.Ended(name)) == 0 {
			t.Errorf("no span %q", name)
		}
	}
	lower := mem.Ended("lower")[0]
	tick := mem.Ended("lower:%Counter_tick")[0]
	if tick.ParentID != lower.SpanID {
		t.Fatalf("method span parent = %d, want %d", tick.ParentID, lower.SpanID)
	}
}

func TestRunCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := driver.Run(ctx, []string{"x.j"}, driver.Options{}); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v", err)
	}
}

func TestExpandInputs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.j", goodSrc)
	writeFile(t, dir, "a.j", goodSrc)
	writeFile(t, dir, "notes.txt", "")

	got, err := driver.ExpandInputs(dir, []string{"*.j", "a.j", "missing.j"})
	if err != nil {
		t.Fatal(err)
	}
	want := []string{filepath.Join(dir, "a.j"), filepath.Join(dir, "b.j"), filepath.Join(dir, "missing.j")}
	if strings.Join(got, "|") != strings.Join(want, "|") {
		t.Fatalf("got %v, want %v", got, want)
	}
}
