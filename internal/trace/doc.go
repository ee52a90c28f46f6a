// Package trace records where the front end spends its time.
//
// # Usage
//
//	zenc parse --trace=- --trace-level=detail src/
//
// # Tracers
//
//   - Nop: disabled tracing, zero overhead
//   - StreamTracer: writes every event as it happens (text or NDJSON)
//   - RingTracer: keeps the last N events for a dump after a failure
//   - MultiTracer: fans events out to several tracers
//
// # Levels and scopes
//
// A level decides which scopes are emitted:
//
//   - LevelPhase: ScopeDriver and ScopePass (parse-dir, tokenize-dir)
//   - LevelDetail: adds ScopeFile (lex and parse of a single file)
//   - LevelDebug: adds ScopeNode
//
// LevelError emits nothing on its own; a RingTracer at that level is only
// useful for its snapshot.
//
// # Context propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.StartSpan(ctx, trace.ScopeDriver, "parse-dir")
//	defer span.End("")
//
// Per-file spans are opened with Begin under trace.ParentID(ctx), since the
// parser receives the tracer and parent through its Options.
package trace
