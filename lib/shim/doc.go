// Package shim is the runtime-support layer embedded components link
// against: an initialization flag, a reentrant critical-section guard and
// a non-fatal assertion reporter, owned together by a Lib handle.
//
// Most programs need a single instance and use the package-level functions,
// which operate on Default():
//
//	if shim.Init() == shim.StatusReinitialized {
//		// already up; nesting state was cleared
//	}
//	shim.Protect(0)
//	defer shim.Release(0)
//
// Tests and hosts that run several independent components build their own
// handles with New.
//
// Building with -tags rtshim_trace compiles in an init banner and debug
// logging of every critical-section transition.
package shim
