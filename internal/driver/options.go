package driver

import (
	"fmt"
	"runtime"

	"fortio.org/safecast"

	"zenc/internal/observ"
	"zenc/internal/project"
)

// Options configures a driver run. The zero value parses fail-fast with
// unlimited diagnostics and GOMAXPROCS workers.
type Options struct {
	MaxDiagnostics int  // лимит Bag на файл, 0 — без ограничения
	Recover        bool // продолжать разбор после ошибки
	Jobs           int  // 0 — GOMAXPROCS

	// Config selects files for directory runs; nil means project.Default(dir).
	Config *project.Config
	// Cache, when set, lets ParseDir skip files whose diagnostics are already known.
	Cache *DiskCache
	// Timer accumulates read/lex/parse durations for --timings.
	Timer *observ.Timer
	// Progress is called once per finished file, from worker goroutines.
	Progress ProgressFunc
}

func (o Options) jobs(files int) int {
	jobs := o.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	return max(1, min(jobs, files))
}

func (o Options) maxErrors() uint {
	n, err := safecast.Conv[uint](o.MaxDiagnostics)
	if err != nil {
		panic(fmt.Errorf("maxDiagnostics overflow: %w", err))
	}
	return n
}
