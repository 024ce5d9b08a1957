package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"jlite/internal/version"
)

// errFilesFailed сигнализирует ненулевой код выхода без дополнительного сообщения:
// диагностики уже напечатаны.
var errFilesFailed = errors.New("one or more files failed")

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "jlite",
		Short:         "Jlite type checker and IR3 generator",
		Long:          `jlite checks Jlite programs and lowers them to the three-address IR3`,
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newCheckCmd())
	rootCmd.AddCommand(newIR3Cmd())
	rootCmd.AddCommand(newVersionCmd())

	// Глобальные флаги
	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().Bool("timings", false, "show timing information")
	rootCmd.PersistentFlags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	rootCmd.PersistentFlags().String("config", "", "path to jlite.toml (default: search upwards from the working directory)")
	rootCmd.PersistentFlags().String("trace", "", "trace output file (- for stderr)")
	rootCmd.PersistentFlags().String("trace-level", "off", "trace level (off|error|phase|detail|debug)")
	rootCmd.PersistentFlags().String("trace-format", "auto", "trace format (auto|text|ndjson)")
	rootCmd.PersistentFlags().String("cpu-profile", "", "write a CPU profile to file")
	rootCmd.PersistentFlags().String("mem-profile", "", "write a heap profile to file on exit")
	rootCmd.PersistentFlags().String("runtime-trace", "", "write a Go runtime trace to file")

	return rootCmd
}

// main builds the command tree and executes it; any error exits with status 1.
func main() {
	if err := newRootCmd().Execute(); err != nil {
		if !errors.Is(err, errFilesFailed) {
			fmt.Fprintf(os.Stderr, "jlite: %v\n", err)
		}
		os.Exit(1)
	}
}

// isTerminal проверяет, является ли writer терминалом
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return term.IsTerminal(int(f.Fd())) // #nosec G115 -- fd fits int
}

func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "on":
		return true
	case "off":
		return false
	default:
		return isTerminal(w)
	}
}
