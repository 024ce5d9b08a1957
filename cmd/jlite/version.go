package main

import (
	"encoding/json"
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/spf13/cobra"

	"jlite/internal/driver"
	"jlite/internal/version"
)

type versionPayload struct {
	Tool        string `json:"tool"`
	Version     string `json:"version"`
	GitCommit   string `json:"git_commit,omitempty"`
	BuildDate   string `json:"build_date,omitempty"`
	GoVersion   string `json:"go_version,omitempty"`
	CacheSchema uint16 `json:"cache_schema,omitempty"`
}

func newVersionCmd() *cobra.Command {
	var (
		format           string
		hash, date, full bool
	)
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show jlite build information",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			colorMode, err := cmd.Flags().GetString("color")
			if err != nil {
				return err
			}
			p := versionPayload{Tool: "jlite", Version: version.String()}
			if hash || full {
				p.GitCommit = valueOrUnknown(version.GitCommit)
			}
			if date || full {
				p.BuildDate = valueOrUnknown(version.BuildDate)
			}
			if full {
				p.GoVersion = runtime.Version()
				p.CacheSchema = driver.CacheSchemaVersion
			}

			out := cmd.OutOrStdout()
			switch strings.ToLower(format) {
			case "pretty":
				printVersion(out, p, useColor(colorMode, out))
				return nil
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(p)
			}
			return fmt.Errorf("unsupported format %q (must be pretty or json)", format)
		},
	}
	cmd.Flags().BoolVar(&hash, "hash", false, "include git commit hash")
	cmd.Flags().BoolVar(&date, "date", false, "include build timestamp")
	cmd.Flags().BoolVar(&full, "full", false, "show all build metadata, Go version and cache schema")
	cmd.Flags().StringVar(&format, "format", "pretty", "output format (pretty|json)")
	return cmd
}

func printVersion(out io.Writer, p versionPayload, colored bool) {
	fmt.Fprintf(out, "jlite %s\n", version.Colored(colored))
	rows := []struct{ label, value string }{
		{"commit:", p.GitCommit},
		{"built:", p.BuildDate},
		{"go:", p.GoVersion},
	}
	for _, r := range rows {
		if r.value != "" {
			fmt.Fprintf(out, "%-7s %s\n", r.label, r.value)
		}
	}
	if p.CacheSchema != 0 {
		fmt.Fprintf(out, "%-7s %d\n", "cache:", p.CacheSchema)
	}
}

func valueOrUnknown(s string) string {
	if s = strings.TrimSpace(s); s == "" {
		return "unknown"
	}
	return s
}
