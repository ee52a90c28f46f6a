package trace

import (
	"fmt"
	"io"
	"os"
	"strings"
)

// Tracer receives the events of spans and points. Emit is called from
// several driver workers at once and must be goroutine-safe.
type Tracer interface {
	Emit(ev *Event)
	Flush() error
	// Close flushes and releases the output.
	Close() error
	Level() Level
	Enabled() bool
}

// StorageMode says where events go: streamed out as they happen, kept in a
// ring for a dump after a failed run, or both.
type StorageMode uint8

const (
	ModeStream StorageMode = iota + 1
	ModeRing
	ModeBoth
)

var modeNames = [...]string{ModeStream: "stream", ModeRing: "ring", ModeBoth: "both"}

func (m StorageMode) String() string {
	if int(m) < len(modeNames) && modeNames[m] != "" {
		return modeNames[m]
	}
	return "unknown"
}

// ParseMode converts a --trace-mode value.
func ParseMode(s string) (StorageMode, error) {
	for m, name := range modeNames {
		if name != "" && strings.EqualFold(s, name) {
			return StorageMode(m), nil // #nosec G115 -- three modes
		}
	}
	return 0, fmt.Errorf("invalid storage mode %q (expected stream|ring|both)", s)
}

const defaultRingSize = 4096

// Config describes the tracer of one CLI run.
type Config struct {
	Level      Level
	Mode       StorageMode
	Format     Format    // FormatAuto: NDJSON for *.ndjson and *.json, text otherwise
	Output     io.Writer // wins over OutputPath
	OutputPath string    // "" и "-" — stderr
	RingSize   int       // 0 — defaultRingSize
}

// resolve fills the defaults. At LevelError nothing is streamed; the ring
// is kept for the failure dump.
func (cfg Config) resolve() Config {
	if cfg.RingSize <= 0 {
		cfg.RingSize = defaultRingSize
	}
	if cfg.Format == FormatAuto {
		cfg.Format = FormatText
		if strings.HasSuffix(cfg.OutputPath, ".ndjson") || strings.HasSuffix(cfg.OutputPath, ".json") {
			cfg.Format = FormatNDJSON
		}
	}
	if cfg.Level == LevelError {
		cfg.Mode = ModeRing
	}
	return cfg
}

// New builds the tracer cfg describes. LevelOff gives Nop.
func New(cfg Config) (Tracer, error) {
	if cfg.Level == LevelOff {
		return Nop, nil
	}
	cfg = cfg.resolve()

	switch cfg.Mode {
	case ModeRing:
		return NewRingTracer(cfg.RingSize, cfg.Level), nil
	case ModeStream, ModeBoth:
	default:
		return nil, fmt.Errorf("unknown storage mode: %v", cfg.Mode)
	}

	w, err := cfg.output()
	if err != nil {
		return nil, err
	}
	stream := NewStreamTracer(w, cfg.Level, cfg.Format)
	if cfg.Mode == ModeStream {
		return stream, nil
	}
	return NewMultiTracer(cfg.Level, stream, NewRingTracer(cfg.RingSize, cfg.Level)), nil
}

// keepOpen hides Close so the stream tracer never closes stderr.
type keepOpen struct{ io.Writer }

func (cfg Config) output() (io.Writer, error) {
	switch {
	case cfg.Output != nil:
		return cfg.Output, nil
	case cfg.OutputPath == "" || cfg.OutputPath == "-":
		return keepOpen{os.Stderr}, nil
	}
	f, err := os.Create(cfg.OutputPath)
	if err != nil {
		return nil, fmt.Errorf("open trace output: %w", err)
	}
	return f, nil
}
