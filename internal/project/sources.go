package project

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// CollectSources walks dir and returns the files c.Match accepts, sorted.
// Paths are relative to c.Root when dir is inside it. Hidden directories are skipped.
func (c *Config) CollectSources(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if p != dir && strings.HasPrefix(d.Name(), ".") {
				return filepath.SkipDir
			}
			return nil
		}
		if c.Match(c.relative(p)) {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

func (c *Config) relative(p string) string {
	if c.Root != "" {
		absRoot, err1 := filepath.Abs(c.Root)
		absP, err2 := filepath.Abs(p)
		if err1 == nil && err2 == nil {
			if rel, err := filepath.Rel(absRoot, absP); err == nil && !strings.HasPrefix(rel, "..") {
				return filepath.ToSlash(rel)
			}
		}
	}
	return filepath.ToSlash(p)
}
