package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"jlite/internal/prof"
)

// uiMode is the value of --ui.
type uiMode string

const (
	uiModeAuto uiMode = "auto"
	uiModeOn   uiMode = "on"
	uiModeOff  uiMode = "off"
)

func readUIMode(value string) (uiMode, error) {
	m := uiMode(strings.ToLower(strings.TrimSpace(value)))
	switch m {
	case "":
		return uiModeAuto, nil
	case uiModeAuto, uiModeOn, uiModeOff:
		return m, nil
	}
	return "", fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
}

// shouldUseTUI: в режиме auto окно прогресса только для нескольких файлов и
// только в терминале.
func shouldUseTUI(mode uiMode, out io.Writer, files int) bool {
	if mode == uiModeAuto {
		return files > 1 && isTerminal(out)
	}
	return mode == uiModeOn
}

// setupProfiling starts the profilers named by --cpu-profile, --mem-profile
// and --runtime-trace. The returned stop func reports errors to stderr.
func setupProfiling(cmd *cobra.Command) (func(), error) {
	var cfg prof.Config
	for flag, dst := range map[string]*string{
		"cpu-profile":   &cfg.CPU,
		"mem-profile":   &cfg.Mem,
		"runtime-trace": &cfg.RuntimeTrace,
	} {
		v, err := cmd.Flags().GetString(flag)
		if err != nil {
			return nil, fmt.Errorf("read --%s: %w", flag, err)
		}
		*dst = v
	}

	session, err := prof.Start(cfg)
	if err != nil {
		return nil, err
	}
	return func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(cmd.ErrOrStderr(), "jlite: profile: %v\n", err)
		}
	}, nil
}
