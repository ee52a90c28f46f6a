package project

import (
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/bmatcuk/doublestar/v4"
)

// ConfigFileName is the project file looked up from the working directory upwards.
const ConfigFileName = "zenc.toml"

// SourceExt is the extension of Zen-C source files.
const SourceExt = ".zc"

// DefaultInclude matches every source file under the project root.
const DefaultInclude = "**/*" + SourceExt

// Config is the decoded zenc.toml.
type Config struct {
	// Path of the zenc.toml the config came from; empty for defaults.
	Path string `toml:"-"`
	// Root is the directory source globs are relative to.
	Root string `toml:"-"`

	Parse   ParseConfig   `toml:"parse"`
	Sources SourcesConfig `toml:"sources"`
}

// ParseConfig holds defaults for the parse/diag commands. CLI flags override them.
type ParseConfig struct {
	MaxDiagnostics int  `toml:"max_diagnostics"`
	Jobs           int  `toml:"jobs"`
	Recover        bool `toml:"recover"`
}

// SourcesConfig selects the files a directory parse visits.
type SourcesConfig struct {
	Include []string `toml:"include"`
	Exclude []string `toml:"exclude"`
}

var (
	// ErrUnknownKey is wrapped when zenc.toml contains keys the tool does not know.
	ErrUnknownKey = errors.New("unknown key")
	// ErrBadPattern is wrapped for malformed include/exclude globs.
	ErrBadPattern = errors.New("invalid glob pattern")
)

// Default returns the configuration used when no zenc.toml exists.
func Default(root string) *Config {
	return &Config{
		Root:    root,
		Parse:   ParseConfig{MaxDiagnostics: 100},
		Sources: SourcesConfig{Include: []string{DefaultInclude}},
	}
}

// Decode parses zenc.toml content. root is recorded for Match.
func Decode(data, root string) (*Config, error) {
	cfg := Default(root)
	cfg.Sources.Include = nil
	meta, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse TOML: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, k := range undecoded {
			keys = append(keys, k.String())
		}
		sort.Strings(keys)
		return nil, fmt.Errorf("%w: %s", ErrUnknownKey, strings.Join(keys, ", "))
	}
	if !meta.IsDefined("sources", "include") {
		cfg.Sources.Include = []string{DefaultInclude}
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks numeric limits and glob syntax.
func (c *Config) Validate() error {
	if c.Parse.MaxDiagnostics < 0 {
		return fmt.Errorf("[parse].max_diagnostics must be >= 0, got %d", c.Parse.MaxDiagnostics)
	}
	if c.Parse.Jobs < 0 {
		return fmt.Errorf("[parse].jobs must be >= 0, got %d", c.Parse.Jobs)
	}
	for _, group := range [][]string{c.Sources.Include, c.Sources.Exclude} {
		for _, p := range group {
			if !doublestar.ValidatePattern(p) {
				return fmt.Errorf("%w: %q", ErrBadPattern, p)
			}
		}
	}
	return nil
}

// Match reports whether rel (slash separated, relative to Root) is a source
// file of the project: matched by some include and by no exclude.
func (c *Config) Match(rel string) bool {
	rel = path.Clean(strings.TrimPrefix(rel, "./"))
	included := false
	for _, p := range c.Sources.Include {
		if ok, _ := doublestar.Match(p, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return false
	}
	for _, p := range c.Sources.Exclude {
		if ok, _ := doublestar.Match(p, rel); ok {
			return false
		}
	}
	return true
}
