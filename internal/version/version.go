package version

import "github.com/fatih/color"

// Version information for the jlite CLI.
// These variables can be overridden at build time via -ldflags.

var (
	versionMajorColor = color.New(color.FgYellow, color.Bold)
	versionMinorColor = color.New(color.FgGreen, color.Bold)
	versionPatchColor = color.New(color.FgBlue, color.Bold)

	Major  = "0"
	Minor  = "1"
	Patch  = "0"
	Suffix = "-dev"

	// GitCommit is an optional git commit hash.
	GitCommit = ""

	// BuildDate is an optional build date in ISO-8601.
	BuildDate = ""
)

// String returns the plain semantic version.
func String() string {
	return Major + "." + Minor + "." + Patch + Suffix
}

// Colored returns the version with each component coloured; plain when
// colour output is disabled.
func Colored(enabled bool) string {
	parts := []*color.Color{versionMajorColor, versionMinorColor, versionPatchColor}
	for _, c := range parts {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return versionMajorColor.Sprint(Major) + "." + versionMinorColor.Sprint(Minor) + "." + versionPatchColor.Sprint(Patch) + Suffix
}
