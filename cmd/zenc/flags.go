package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"zenc/internal/driver"
	"zenc/internal/observ"
	"zenc/internal/project"
)

// globalFlags are the persistent flags every command reads.
type globalFlags struct {
	color          string
	quiet          bool
	timings        bool
	maxDiagnostics int
}

func readGlobalFlags(cmd *cobra.Command) (globalFlags, error) {
	pf := cmd.Root().PersistentFlags()
	var (
		g   globalFlags
		err error
	)
	if g.color, err = pf.GetString("color"); err != nil {
		return g, fmt.Errorf("failed to get color flag: %w", err)
	}
	switch g.color {
	case "auto", "on", "off":
	default:
		return g, fmt.Errorf("invalid --color value %q (expected auto|on|off)", g.color)
	}
	if g.quiet, err = pf.GetBool("quiet"); err != nil {
		return g, fmt.Errorf("failed to get quiet flag: %w", err)
	}
	if g.timings, err = pf.GetBool("timings"); err != nil {
		return g, fmt.Errorf("failed to get timings flag: %w", err)
	}
	if g.maxDiagnostics, err = pf.GetInt("max-diagnostics"); err != nil {
		return g, fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	if g.maxDiagnostics < 0 {
		return g, fmt.Errorf("--max-diagnostics must not be negative")
	}
	return g, nil
}

func (g globalFlags) useColor(w io.Writer) bool {
	return g.color == "on" || (g.color == "auto" && isTerminal(w))
}

// target is a resolved command argument: a single file or a directory with
// the project config that governs it.
type target struct {
	path   string
	isDir  bool
	config *project.Config
}

func resolveTarget(path string) (target, error) {
	st, err := os.Stat(path)
	if err != nil {
		return target{}, fmt.Errorf("failed to stat path: %w", err)
	}
	t := target{path: path, isDir: st.IsDir()}
	dir := path
	if !t.isDir {
		dir = filepath.Dir(path)
	}
	cfg, _, err := project.Load(dir)
	if err != nil {
		return target{}, err
	}
	t.config = cfg
	return t, nil
}

// driverOptions merges zenc.toml defaults with explicitly set flags; a flag
// the user did not touch never overrides the config.
func driverOptions(cmd *cobra.Command, g globalFlags, t target) (driver.Options, error) {
	opts := driver.Options{
		MaxDiagnostics: t.config.Parse.MaxDiagnostics,
		Recover:        t.config.Parse.Recover,
		Jobs:           t.config.Parse.Jobs,
		Config:         t.config,
	}
	if cmd.Root().PersistentFlags().Changed("max-diagnostics") {
		opts.MaxDiagnostics = g.maxDiagnostics
	}
	flags := cmd.Flags()
	if f := flags.Lookup("recover"); f != nil && f.Changed {
		v, err := flags.GetBool("recover")
		if err != nil {
			return opts, fmt.Errorf("failed to get recover flag: %w", err)
		}
		opts.Recover = v
	}
	if f := flags.Lookup("jobs"); f != nil && f.Changed {
		v, err := flags.GetInt("jobs")
		if err != nil {
			return opts, fmt.Errorf("failed to get jobs flag: %w", err)
		}
		opts.Jobs = v
	}
	if f := flags.Lookup("cache"); f != nil {
		useCache, err := flags.GetBool("cache")
		if err != nil {
			return opts, fmt.Errorf("failed to get cache flag: %w", err)
		}
		if useCache {
			cache, err := openCache()
			if err != nil {
				return opts, fmt.Errorf("open cache: %w", err)
			}
			opts.Cache = cache
		}
	}
	if g.timings {
		opts.Timer = observ.NewTimer()
	}
	return opts, nil
}

// openCache honours ZENC_CACHE_DIR, falling back to the user cache directory.
func openCache() (*driver.DiskCache, error) {
	if dir := strings.TrimSpace(os.Getenv("ZENC_CACHE_DIR")); dir != "" {
		return driver.OpenDiskCache(dir)
	}
	return driver.OpenDefaultDiskCache("zenc")
}

func printTimings(w io.Writer, timer *observ.Timer) {
	if timer == nil {
		return
	}
	fmt.Fprint(w, timer.Summary())
}
