package driver

import "time"

// FileEvent reports one finished file of a directory run.
type FileEvent struct {
	Path    string
	Index   int // порядковый номер в отсортированном списке
	Total   int
	Errors  int
	Cached  bool
	Elapsed time.Duration
}

// ProgressFunc receives file events. It must be safe for concurrent calls.
type ProgressFunc func(FileEvent)

func (o Options) report(ev FileEvent) {
	if o.Progress != nil {
		o.Progress(ev)
	}
}
