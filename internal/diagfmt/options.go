package diagfmt

import "jlite/internal/source"

// PathMode selects how file names appear in output. The values are the
// mode names understood by source.File.FormatPath.
type PathMode string

const (
	PathModeAuto     PathMode = "auto"
	PathModeAbsolute PathMode = "absolute"
	PathModeRelative PathMode = "relative"
	PathModeBasename PathMode = "basename"
)

// PrettyOpts настраивает человекочитаемый вывод.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строк исходника вокруг основной
	PathMode  PathMode
	Width     uint8 // 0 - строки не обрезаются
	ShowNotes bool
}

// JSONOpts настраивает вывод --format json.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	PathMode         PathMode
	Max              int // режет вывод, сам Bag не трогает
}

func formatPath(f *source.File, fs *source.FileSet, mode PathMode) string {
	if mode == "" {
		mode = PathModeAuto
	}
	base := ""
	if mode == PathModeRelative {
		base = fs.BaseDir()
	}
	return f.FormatPath(string(mode), base)
}
