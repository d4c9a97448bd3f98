// Package trace provides lightweight tracing for the crypt pipeline.
//
// Tracing helps to see where time goes when tokenizing and parsing large
// batches of files, and which way the parser decided on ambiguous objects.
//
// # Usage
//
// Enable tracing via command-line flags:
//
//	crypt check --trace=phase --trace-output=trace.ndjson ./conf
//
// # Levels
//
//   - LevelOff: No tracing
//   - LevelError: Reserved for failures only
//   - LevelPhase: Driver and pass boundaries (load, lex, parse)
//   - LevelDetail: Per-file events in batch runs
//   - LevelDebug: Everything including parser decisions
//
// # Context Propagation
//
//	ctx = trace.WithTracer(ctx, tracer)
//	span, ctx := trace.Start(ctx, trace.ScopeDriver, "crypt check")
//	defer span.End("")
//
//	lex := span.Child(trace.ScopePass, "lex")
//	lex.EndErr(err)
//
// A span filtered out by the level passes its parent ID on, so a pass span
// nested in a file span still points at the batch when files are hidden.
package trace
