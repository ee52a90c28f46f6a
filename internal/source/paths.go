package source

import (
	"os"
	"path/filepath"
)

// PathStyle selects how a file path is rendered in user-facing output.
type PathStyle uint8

const (
	PathAsIs PathStyle = iota
	PathAbsolute
	PathRelative
	PathBasename
	// PathAuto keeps short or relative paths and shortens long absolute ones to a basename.
	PathAuto
)

// autoPathLimit is the length above which PathAuto falls back to the basename.
const autoPathLimit = 40

// SetBaseDir sets the directory relative paths are computed from.
func (fileSet *FileSet) SetBaseDir(dir string) {
	fileSet.baseDir = dir
}

// FormatPath renders the path of f according to style.
// baseDir is only consulted by PathRelative; empty means the working directory.
func (f *File) FormatPath(style PathStyle, baseDir string) string {
	switch style {
	case PathAbsolute:
		if abs, err := filepath.Abs(f.Path); err == nil {
			return filepath.ToSlash(abs)
		}
		return f.Path
	case PathRelative:
		if baseDir == "" {
			if wd, err := os.Getwd(); err == nil {
				baseDir = wd
			}
		}
		abs, err := filepath.Abs(f.Path)
		if err != nil {
			return f.Path
		}
		if base, err := filepath.Abs(baseDir); err == nil {
			baseDir = base
		}
		rel, err := filepath.Rel(baseDir, abs)
		if err != nil {
			return f.Path
		}
		return filepath.ToSlash(rel)
	case PathBasename:
		return filepath.Base(f.Path)
	case PathAuto:
		if len(f.Path) < autoPathLimit || !filepath.IsAbs(f.Path) {
			return f.Path
		}
		return filepath.Base(f.Path)
	default:
		return f.Path
	}
}
