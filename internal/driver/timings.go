package driver

import "time"

// Имена фаз в observ.Timer.
const (
	PhaseLoad     = "load"
	PhaseTokenize = "tokenize"
	PhaseParse    = "parse"
	PhaseCache    = "cache"
)

// track starts a timer phase; safe with a nil Timer.
func (o Options) track(name string) func() {
	if o.Timer == nil {
		return func() {}
	}
	start := time.Now()
	return func() { o.Timer.Add(name, time.Since(start)) }
}
