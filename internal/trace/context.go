package trace

import "context"

// runKey: в context лежит одна запись — трассировщик запуска и span,
// под которым открываются спаны следующей фазы.
type runKey struct{}

type run struct {
	tracer Tracer
	parent uint64
}

func runOf(ctx context.Context) run {
	if ctx != nil {
		if r, ok := ctx.Value(runKey{}).(run); ok {
			return r
		}
	}
	return run{tracer: Nop}
}

// WithTracer attaches t to ctx (nil means Nop). The current parent span is kept.
func WithTracer(ctx context.Context, t Tracer) context.Context {
	if t == nil {
		t = Nop
	}
	r := runOf(ctx)
	r.tracer = t
	return context.WithValue(ctx, runKey{}, r)
}

// FromContext returns the tracer of ctx, or Nop.
func FromContext(ctx context.Context) Tracer {
	return runOf(ctx).tracer
}

// WithParent makes span the parent of spans opened from the returned context.
func WithParent(ctx context.Context, span *Span) context.Context {
	r := runOf(ctx)
	r.parent = span.ID()
	return context.WithValue(ctx, runKey{}, r)
}

// ParentID is the span set by WithParent; 0 at the top of a run.
func ParentID(ctx context.Context) uint64 {
	return runOf(ctx).parent
}

// StartSpan opens a span under the parent of ctx and returns a context in
// which the new span is the parent.
func StartSpan(ctx context.Context, scope Scope, name string) (*Span, context.Context) {
	r := runOf(ctx)
	span := Begin(r.tracer, scope, name, r.parent)
	return span, WithParent(ctx, span)
}
