//go:build rtshim_trace

package shim

// Tracing reports whether diagnostic tracing was compiled in.
const Tracing = true
