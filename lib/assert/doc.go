// Package assert reports violated runtime invariants without stopping the
// program.
//
// A failed check is handed to the reporter's LogSink together with the
// condition text, the file and line of the check, and a short description.
// Control then returns to the caller. Nothing in this package panics or exits
// on behalf of the caller; a sink that wants to escalate (halt, persist,
// page someone) is free to do so, but a panic raised by a sink is recovered at
// the reporter boundary and logged.
//
// # Sinks
//
// Exactly one sink is active per Reporter. It is chosen at construction time
// with WithSink and may be swapped later with SetSink:
//
//	rec := assert.NewRecorder(16)
//	r := assert.NewReporter(assert.WithSink(assert.Tee(
//		assert.DefaultSink(os.Stderr),
//		rec.Sink(),
//	)))
//	r.AssertExpr(depth >= 0, "depth >= 0", "negative nesting depth")
//
// The default sink writes a human readable message to standard error:
//
//	Assertion failed: "depth >= 0", file::line: /src/app/guard.go::42
//	Description: negative nesting depth
//
// # Storms
//
// A broken invariant inside a hot loop can produce thousands of identical
// reports. WithRateLimit caps how many failures per second reach the sink;
// the rest are counted in Suppressed and still land in a Recorder when one is
// attached with WithRecorder.
package assert
