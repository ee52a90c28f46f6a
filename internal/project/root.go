package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FindConfig walks up from startDir to locate zenc.toml.
func FindConfig(startDir string) (path string, ok bool, err error) {
	if startDir == "" {
		startDir = "."
	}
	dir, err := filepath.Abs(startDir)
	if err != nil {
		return "", false, fmt.Errorf("failed to resolve start directory: %w", err)
	}
	for {
		candidate := filepath.Join(dir, ConfigFileName)
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

// LoadFile decodes the zenc.toml at path; Root becomes its directory.
func LoadFile(path string) (*Config, error) {
	// #nosec G304 -- path comes from FindConfig or the CLI
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := Decode(string(data), filepath.Dir(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	cfg.Path = path
	return cfg, nil
}

// Load finds zenc.toml above startDir and decodes it. Without one it returns
// Default rooted at startDir and found=false.
func Load(startDir string) (cfg *Config, found bool, err error) {
	path, ok, err := FindConfig(startDir)
	if err != nil {
		return nil, false, err
	}
	if !ok {
		root, absErr := filepath.Abs(startDir)
		if absErr != nil {
			root = startDir
		}
		return Default(root), false, nil
	}
	cfg, err = LoadFile(path)
	if err != nil {
		return nil, true, err
	}
	return cfg, true, nil
}
