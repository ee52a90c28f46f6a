package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"zenc/internal/project"
)

const watchDebounce = 150 * time.Millisecond

// watchSources calls run once and then again after every burst of changes to
// a source file or zenc.toml under root, until ctx is cancelled. When root is
// a file only that file is watched. Errors other than errDiagnostics stop
// the loop.
func watchSources(ctx context.Context, root string, debounce time.Duration, errOut io.Writer, run func() error) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	defer w.Close()

	st, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("watch: %w", err)
	}
	match := isWatchedSource
	if st.IsDir() {
		if err := addWatchDirs(w, root); err != nil {
			return err
		}
	} else {
		target := filepath.Clean(root)
		match = func(p string) bool { return filepath.Clean(p) == target }
		if err := w.Add(filepath.Dir(root)); err != nil {
			return fmt.Errorf("watch: %w", err)
		}
	}

	if err := runOnce(run); err != nil {
		return err
	}

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			// новые каталоги тоже отслеживаем
			if ev.Has(fsnotify.Create) && st.IsDir() {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					if err := addWatchDirs(w, ev.Name); err != nil {
						fmt.Fprintf(errOut, "watch: %v\n", err)
					}
				}
			}
			if ev.Has(fsnotify.Chmod) || !match(ev.Name) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(debounce)
			} else {
				timer.Reset(debounce)
			}
			fire = timer.C
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			fmt.Fprintf(errOut, "watch: %v\n", err)
		case <-fire:
			fire = nil
			fmt.Fprintf(errOut, "--- %s: change detected, re-running ---\n", time.Now().Format(time.TimeOnly))
			if err := runOnce(run); err != nil {
				return err
			}
		}
	}
}

func runOnce(run func() error) error {
	if err := run(); err != nil && !errors.Is(err, errDiagnostics) {
		return err
	}
	return nil
}

func isWatchedSource(p string) bool {
	base := filepath.Base(p)
	return filepath.Ext(base) == project.SourceExt || base == project.ConfigFileName
}

func addWatchDirs(w *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if p != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		if err := w.Add(p); err != nil {
			return fmt.Errorf("watch %s: %w", p, err)
		}
		return nil
	})
}
