// Package script drives a shim.Lib through YAML scenarios and checks the
// counts, statuses and platform transitions it produces.
//
// A scenario lists steps and, optionally, what the final state must look like:
//
//	name: nested-bracket
//	description: two nested sections engage and disengage once
//	steps:
//	  - op: init
//	    expect: {status: initialized}
//	  - op: protect
//	    expect: {count: 1}
//	  - op: protect
//	    expect: {count: 2}
//	  - op: release
//	    expect: {count: 1}
//	  - op: release
//	    expect: {count: 0}
//	final:
//	  events: [engage, disengage]
//
// Supported ops are init, protect, release and assert. A step may repeat its
// op with repeat: N; expectations are checked after the last repetition.
//
// The scenarios behind "rtshim selftest" are embedded from builtin/.
package script
