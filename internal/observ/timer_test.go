package observ

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimerAccumulatesConcurrentPhases(t *testing.T) {
	tm := NewTimer()
	idx := tm.Begin("parse-dir")

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			tm.Add("lex", time.Millisecond)
			tm.Add("parse", 2*time.Millisecond)
		}()
	}
	wg.Wait()
	tm.End(idx, "8 files")

	report := tm.Report()
	require.Len(t, report.Phases, 3)
	assert.Equal(t, "parse-dir", report.Phases[0].Name)
	assert.Equal(t, "8 files", report.Phases[0].Note)
	assert.Equal(t, 8, report.Phases[1].Count)
	assert.InDelta(t, 8.0, report.Phases[1].DurationMS, 0.001)
	assert.InDelta(t, 16.0, report.Phases[2].DurationMS, 0.001)
	assert.Contains(t, tm.Summary(), "x8")
}

func TestEmptyTimer(t *testing.T) {
	assert.Equal(t, Report{}, NewTimer().Report())
	var nilTimer *Timer
	nilTimer.Add("noop", time.Second)
}
