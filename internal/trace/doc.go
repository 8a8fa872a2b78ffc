// Package trace records what the doccomment tool does while it runs.
//
// Events form a tree of spans: the driver run, its passes (extract, lex,
// parse), each file and, at debug level, each comment. Output is either a
// text stream, NDJSON, or an in-memory ring that is dumped when a run fails.
//
// # Usage
//
//	doccomment diag --trace=- --trace-level=detail src/
//
// Tracers travel through the driver in a context:
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span := trace.Begin(trace.FromContext(ctx), trace.ScopeFile, path, parent)
//	defer span.End("")
//
// # Levels
//
//   - off: nothing
//   - error: ring buffer only, dumped on failure
//   - phase: driver and pass boundaries
//   - detail: plus one span per file
//   - debug: plus one span per comment
package trace
