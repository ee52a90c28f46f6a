package diagfmt

import (
	"zenc/internal/diag"
	"zenc/internal/source"
)

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto chooses relative or absolute path automatically.
	PathModeAuto PathMode = iota
	// PathModeAbsolute always uses absolute paths.
	PathModeAbsolute
	PathModeRelative
	PathModeBasename
)

// ParsePathMode maps a CLI value to a PathMode.
func ParsePathMode(s string) (PathMode, bool) {
	switch s {
	case "", "auto":
		return PathModeAuto, true
	case "absolute", "abs":
		return PathModeAbsolute, true
	case "relative", "rel":
		return PathModeRelative, true
	case "basename", "base":
		return PathModeBasename, true
	}
	return PathModeAuto, false
}

func (m PathMode) style() source.PathStyle {
	switch m {
	case PathModeAbsolute:
		return source.PathAbsolute
	case PathModeRelative:
		return source.PathRelative
	case PathModeBasename:
		return source.PathBasename
	default:
		return source.PathAuto
	}
}

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	Context   int8 // строки контекста до и после основной
	PathMode  PathMode
	ShowNotes bool
	Max       int // 0 - без ограничения
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool // добавить line/col
	PathMode         PathMode
	Max              int // обрезка вывода, не Bag
	IncludeNotes     bool
}

// SarifRunMeta provides metadata for SARIF output.
type SarifRunMeta struct {
	ToolName       string
	ToolVersion    string
	InvocationArgs []string
}

func formatPath(fs *source.FileSet, id source.FileID, mode PathMode) string {
	if fs == nil || int(id) >= fs.Len() {
		return "<unknown>"
	}
	return fs.Get(id).FormatPath(mode.style(), fs.BaseDir())
}

func limitItems(items []diag.Diagnostic, max int) []diag.Diagnostic {
	if max > 0 && max < len(items) {
		return items[:max]
	}
	return items
}
