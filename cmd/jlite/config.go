package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"jlite/internal/diag"
	"jlite/internal/trace"
)

const configFileName = "jlite.toml"

type projectConfig struct {
	Build  buildConfig  `toml:"build"`
	Output outputConfig `toml:"output"`
	Cache  cacheConfig  `toml:"cache"`
	Trace  traceConfig  `toml:"trace"`
}

type buildConfig struct {
	Sources    []string `toml:"sources"`
	EchoSource bool     `toml:"echo_source"`
}

type outputConfig struct {
	Format string `toml:"format"`
	Color  string `toml:"color"`
}

type cacheConfig struct {
	Enabled bool   `toml:"enabled"`
	Dir     string `toml:"dir"`
}

type traceConfig struct {
	Level  string `toml:"level"`
	Output string `toml:"output"`
}

func defaultConfig() projectConfig {
	return projectConfig{
		Output: outputConfig{Format: "pretty", Color: "auto"},
		Trace:  traceConfig{Level: "off"},
	}
}

// configError ссылается на файл и код PRJ.
type configError struct {
	Path string
	Msg  string
}

func (e *configError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Path, diag.ProjBadConfig.ID(), e.Msg)
}

func findConfig(startDir string) (string, bool, error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, configFileName)
		if _, err := os.Stat(candidate); err == nil {
			return candidate, true, nil
		} else if !errors.Is(err, os.ErrNotExist) {
			return "", false, fmt.Errorf("failed to stat %q: %w", candidate, err)
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return "", false, nil
}

func loadConfig(path string) (projectConfig, error) {
	cfg := defaultConfig()
	meta, err := toml.DecodeFile(path, &cfg)
	if err != nil {
		return projectConfig{}, &configError{Path: path, Msg: fmt.Sprintf("failed to parse TOML: %v", err)}
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		return projectConfig{}, &configError{Path: path, Msg: "unknown key(s) " + strings.Join(keys, ", ")}
	}
	if err := cfg.validate(); err != nil {
		return projectConfig{}, &configError{Path: path, Msg: err.Error()}
	}
	return cfg, nil
}

func (c *projectConfig) validate() error {
	switch c.Output.Format {
	case "pretty", "short", "json":
	default:
		return fmt.Errorf("output.format: unsupported value %q (expected pretty|short|json)", c.Output.Format)
	}
	switch c.Output.Color {
	case "auto", "on", "off":
	default:
		return fmt.Errorf("output.color: unsupported value %q (expected auto|on|off)", c.Output.Color)
	}
	if _, err := trace.ParseLevel(c.Trace.Level); err != nil {
		return fmt.Errorf("trace.level: %w", err)
	}
	for _, s := range c.Build.Sources {
		if strings.TrimSpace(s) == "" {
			return errors.New("build.sources: empty entry")
		}
	}
	return nil
}

// settings - итоговая конфигурация команды: файл проекта, поверх него флаги.
type settings struct {
	root       string // каталог jlite.toml, иначе рабочий каталог
	configPath string

	sources    []string
	echoSource bool
	format     string
	color      string

	cacheEnabled bool
	cacheDir     string

	traceLevel  string
	traceOutput string
	traceFormat string

	maxDiagnostics int
	quiet          bool
	timings        bool
}

func resolveSettings(cmd *cobra.Command) (*settings, error) {
	root := cmd.Root().PersistentFlags()

	configPath, err := root.GetString("config")
	if err != nil {
		return nil, fmt.Errorf("failed to get config flag: %w", err)
	}
	cfg := defaultConfig()
	if configPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, err
		}
		if found, ok, err := findConfig(wd); err != nil {
			return nil, err
		} else if ok {
			configPath = found
		}
	}
	st := &settings{}
	if configPath != "" {
		if cfg, err = loadConfig(configPath); err != nil {
			return nil, err
		}
		st.configPath = configPath
		st.root = filepath.Dir(configPath)
	}

	st.sources = cfg.Build.Sources
	st.echoSource = cfg.Build.EchoSource
	st.format = cfg.Output.Format
	st.color = cfg.Output.Color
	st.cacheEnabled = cfg.Cache.Enabled
	st.cacheDir = cfg.Cache.Dir
	if st.cacheDir != "" && !filepath.IsAbs(st.cacheDir) && st.root != "" {
		st.cacheDir = filepath.Join(st.root, st.cacheDir)
	}
	st.traceLevel = cfg.Trace.Level
	st.traceOutput = cfg.Trace.Output
	st.traceFormat = "auto"

	// флаги перекрывают файл только если заданы явно
	if err := overrideString(root.Changed("color"), func() (string, error) { return root.GetString("color") }, &st.color); err != nil {
		return nil, err
	}
	if err := overrideString(root.Changed("trace"), func() (string, error) { return root.GetString("trace") }, &st.traceOutput); err != nil {
		return nil, err
	}
	if err := overrideString(root.Changed("trace-level"), func() (string, error) { return root.GetString("trace-level") }, &st.traceLevel); err != nil {
		return nil, err
	}
	if err := overrideString(root.Changed("trace-format"), func() (string, error) { return root.GetString("trace-format") }, &st.traceFormat); err != nil {
		return nil, err
	}
	// --trace без уровня включает фазовую трассировку
	if root.Changed("trace") && !root.Changed("trace-level") && st.traceLevel == "off" {
		st.traceLevel = "phase"
	}

	local := cmd.Flags()
	if local.Lookup("format") != nil {
		if err := overrideString(local.Changed("format"), func() (string, error) { return local.GetString("format") }, &st.format); err != nil {
			return nil, err
		}
	}
	if local.Lookup("echo-source") != nil && local.Changed("echo-source") {
		if st.echoSource, err = local.GetBool("echo-source"); err != nil {
			return nil, fmt.Errorf("failed to get echo-source flag: %w", err)
		}
	}
	if local.Lookup("cache") != nil && local.Changed("cache") {
		if st.cacheEnabled, err = local.GetBool("cache"); err != nil {
			return nil, fmt.Errorf("failed to get cache flag: %w", err)
		}
	}
	if local.Lookup("cache-dir") != nil {
		if err := overrideString(local.Changed("cache-dir"), func() (string, error) { return local.GetString("cache-dir") }, &st.cacheDir); err != nil {
			return nil, err
		}
	}

	if st.maxDiagnostics, err = root.GetInt("max-diagnostics"); err != nil {
		return nil, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if st.quiet, err = root.GetBool("quiet"); err != nil {
		return nil, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if st.timings, err = root.GetBool("timings"); err != nil {
		return nil, fmt.Errorf("failed to get timings flag: %w", err)
	}

	switch st.format {
	case "pretty", "short", "json":
	default:
		return nil, fmt.Errorf("unknown format: %s", st.format)
	}
	switch st.color {
	case "auto", "on", "off":
	default:
		return nil, fmt.Errorf("invalid --color value %q (expected auto|on|off)", st.color)
	}
	return st, nil
}

func overrideString(changed bool, get func() (string, error), dst *string) error {
	if !changed {
		return nil
	}
	v, err := get()
	if err != nil {
		return err
	}
	*dst = v
	return nil
}
