// Package trace records the phases of a ro run as span events.
//
// Enable tracing via command-line flags:
//
//	ro parse --trace=- --trace-level=phase main.ro
//
// # Levels
//
//   - LevelOff: no tracing
//   - LevelError: nothing is streamed, reserved for failure reports
//   - LevelPhase: driver commands and passes (tokenize, extract, assemble)
//   - LevelDetail: per-file events of directory parsing
//   - LevelDebug: everything
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	t := trace.FromContext(ctx)
//
//	span := trace.Begin(t, trace.ScopePass, "extract", parentID)
//	defer span.End("")
package trace
