package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"jlite/internal/diag"
	"jlite/internal/diagfmt"
	"jlite/internal/driver"
)

func newCheckCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "check [flags] [file.j|glob]...",
		Short: "Type-check Jlite programs",
		Long:  `Type-check each program in order; a failing file does not stop the rest. Without arguments the [build].sources of jlite.toml are used.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompile(cmd, args, driver.EmitNone)
		},
	}
	addCompileFlags(cmd)
	return cmd
}

func newIR3Cmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ir3 [flags] [file.j|glob]...",
		Short: "Type-check Jlite programs and print their IR3",
		RunE: func(cmd *cobra.Command, args []string) error {
			emitStr, err := cmd.Flags().GetString("emit")
			if err != nil {
				return fmt.Errorf("failed to get emit flag: %w", err)
			}
			var emit driver.Emit
			switch emitStr {
			case "text", "ir3":
				emit = driver.EmitIR3
			case "json":
				emit = driver.EmitJSON
			default:
				return fmt.Errorf("unknown emit value: %s (expected text|json)", emitStr)
			}
			return runCompile(cmd, args, emit)
		},
	}
	addCompileFlags(cmd)
	cmd.Flags().String("emit", "text", "IR3 output form (text|json)")
	cmd.Flags().Bool("validate", true, "verify IR3 invariants after lowering")
	return cmd
}

func addCompileFlags(cmd *cobra.Command) {
	cmd.Flags().String("format", "pretty", "diagnostics format (pretty|short|json)")
	cmd.Flags().Bool("echo-source", false, "print each file name and its source before the output")
	cmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	cmd.Flags().Bool("fullpath", false, "emit absolute file paths in diagnostics")
	cmd.Flags().Bool("cache", false, "reuse results of unchanged files from the on-disk cache")
	cmd.Flags().String("cache-dir", "", "cache directory (default $XDG_CACHE_HOME/jlite)")
	cmd.Flags().Int("jobs", 0, "max parallel file readers (0=auto)")
	cmd.Flags().String("ui", "auto", "progress view for several files (auto|on|off)")
}

func runCompile(cmd *cobra.Command, args []string, emit driver.Emit) error {
	st, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	uiStr, err := cmd.Flags().GetString("ui")
	if err != nil {
		return fmt.Errorf("failed to get ui flag: %w", err)
	}
	mode, err := readUIMode(uiStr)
	if err != nil {
		return err
	}
	validate := true
	if cmd.Flags().Lookup("validate") != nil {
		if validate, err = cmd.Flags().GetBool("validate"); err != nil {
			return fmt.Errorf("failed to get validate flag: %w", err)
		}
	}

	base, patterns := "", args
	if len(patterns) == 0 {
		base, patterns = st.root, st.sources
	}
	if len(patterns) == 0 {
		return fmt.Errorf("no input files (pass files or set [build].sources in %s)", configFileName)
	}
	paths, err := driver.ExpandInputs(base, patterns)
	if err != nil {
		return err
	}

	cleanup, err := setupTracing(cmd, st)
	if err != nil {
		return err
	}
	defer cleanup()

	stopProfiling, err := setupProfiling(cmd)
	if err != nil {
		return err
	}
	defer stopProfiling()

	opts := driver.Options{
		Emit:           emit,
		MaxDiagnostics: st.maxDiagnostics,
		Validate:       validate,
		Timings:        st.timings,
		Jobs:           jobs,
	}
	if st.cacheEnabled {
		cache, err := driver.OpenResultCache(st.cacheDir, "jlite")
		if err != nil {
			return err
		}
		opts.Cache = cache
	}

	out, errOut := cmd.OutOrStdout(), cmd.ErrOrStderr()
	var batch *driver.BatchResult
	if !st.quiet && shouldUseTUI(mode, errOut, len(paths)) {
		batch, err = runBatchWithUI(cmd.Context(), errOut, "jlite "+cmd.Name(), paths, opts)
	} else {
		batch, err = driver.Run(cmd.Context(), paths, opts)
	}
	if err != nil {
		return err
	}

	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}
	r := reportWriter{
		out:       out,
		errOut:    errOut,
		format:    st.format,
		color:     useColor(st.color, errOut),
		pathMode:  pathMode,
		withNotes: withNotes,
		echo:      st.echoSource,
	}
	for _, res := range batch.Files {
		if err := r.file(res); err != nil {
			return err
		}
	}

	if st.timings && batch.Timer != nil {
		fmt.Fprint(errOut, batch.Timer.Summary())
	}
	if !st.quiet && st.format != "json" {
		fmt.Fprintf(errOut, "%d file(s), %d failed\n", len(batch.Files), batch.Failed)
	}
	if batch.Failed > 0 {
		return errFilesFailed
	}
	return nil
}

type reportWriter struct {
	out       io.Writer
	errOut    io.Writer
	format    string
	color     bool
	pathMode  diagfmt.PathMode
	withNotes bool
	echo      bool
}

func (r *reportWriter) file(res *driver.FileResult) error {
	if r.echo {
		fmt.Fprintf(r.out, "%s: \n", res.Path)
		if res.File != nil {
			fmt.Fprintln(r.out, string(res.File.Content))
		}
	}
	if res.Internal() {
		fmt.Fprintf(r.errOut, "%s: %v\n", res.Path, res.Err)
		return nil
	}
	if res.Bag != nil && res.Bag.Len() > 0 {
		if err := r.diagnostics(res); err != nil {
			return err
		}
	} else if res.Failed() {
		fmt.Fprintf(r.errOut, "%s: %v\n", res.Path, res.Err)
	}
	if len(res.Output) > 0 {
		if _, err := r.out.Write(res.Output); err != nil {
			return fmt.Errorf("write output: %w", err)
		}
	}
	return nil
}

func (r *reportWriter) diagnostics(res *driver.FileResult) error {
	switch r.format {
	case "pretty":
		diagfmt.Pretty(r.errOut, res.Bag, res.FileSet, diagfmt.PrettyOpts{
			Color:     r.color,
			Context:   1,
			PathMode:  r.pathMode,
			ShowNotes: r.withNotes,
		})
	case "short":
		output := diag.FormatShortDiagnostics(res.Bag.Items(), res.FileSet, r.withNotes)
		if output != "" {
			fmt.Fprintln(r.errOut, output)
		}
	case "json":
		if err := diagfmt.JSON(r.out, res.Bag, res.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         r.pathMode,
			IncludeNotes:     r.withNotes,
		}); err != nil {
			return fmt.Errorf("failed to format diagnostics: %w", err)
		}
	default:
		return fmt.Errorf("unknown format: %s", r.format)
	}
	return nil
}
