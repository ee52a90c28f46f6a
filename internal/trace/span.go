package trace

import (
	"sync/atomic"
	"time"

	"fortio.org/safecast"
	"github.com/petermattis/goid"
)

// seq упорядочивает события всех горутин; spanIDs раздаёт идентификаторы спанов.
var seq, spanIDs atomic.Uint64

func nextSeq() uint64 { return seq.Add(1) }

// getGoroutineID: файлы разбираются параллельно, GID разводит их спаны.
func getGoroutineID() uint64 {
	gid, err := safecast.Conv[uint64](goid.Get())
	if err != nil {
		return 0
	}
	return gid
}

func emits(t Tracer, scope Scope) bool {
	return t != nil && t.Enabled() && t.Level().ShouldEmit(scope)
}

// Span is an open begin/end pair. A disabled span is safe to use and does nothing.
type Span struct {
	tracer  Tracer // nil — выключенный span
	id      uint64
	parent  uint64
	gid     uint64
	scope   Scope
	name    string
	started time.Time
	extra   map[string]string
}

// Begin opens a span under parent (0 for a root) and emits its begin event.
func Begin(t Tracer, scope Scope, name string, parent uint64) *Span {
	if !emits(t, scope) {
		return &Span{}
	}
	s := &Span{
		tracer:  t,
		id:      spanIDs.Add(1),
		parent:  parent,
		gid:     getGoroutineID(),
		scope:   scope,
		name:    name,
		started: time.Now(),
	}
	s.emit(KindSpanBegin, s.started, "", nil)
	return s
}

func (s *Span) emit(kind Kind, at time.Time, detail string, extra map[string]string) {
	s.tracer.Emit(&Event{
		Time:     at,
		Seq:      nextSeq(),
		Kind:     kind,
		Scope:    s.scope,
		SpanID:   s.id,
		ParentID: s.parent,
		GID:      s.gid,
		Name:     s.name,
		Detail:   detail,
		Extra:    extra,
	})
}

func (s *Span) live() bool {
	return s != nil && s.tracer != nil && s.tracer.Enabled()
}

// End emits the end event with the accumulated extras and returns the span's duration.
func (s *Span) End(detail string) time.Duration {
	if !s.live() {
		return 0
	}
	now := time.Now()
	s.emit(KindSpanEnd, now, detail, s.extra)
	return now.Sub(s.started)
}

// WithExtra attaches key=value to the end event.
func (s *Span) WithExtra(key, value string) *Span {
	if !s.live() {
		return s
	}
	if s.extra == nil {
		s.extra = make(map[string]string, 2)
	}
	s.extra[key] = value
	return s
}

// Child opens a span nested in s on the same tracer.
func (s *Span) Child(scope Scope, name string) *Span {
	if s == nil {
		return &Span{}
	}
	return Begin(s.tracer, scope, name, s.id)
}

// ID is 0 for a disabled span.
func (s *Span) ID() uint64 {
	if s == nil {
		return 0
	}
	return s.id
}
