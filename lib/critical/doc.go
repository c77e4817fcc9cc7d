// Package critical implements a reentrant critical-section guard.
//
// A Guard counts nested Protect calls. Only the outermost Protect engages
// the platform protection (for firmware that means disabling interrupts) and
// only the matching outermost Release disengages it:
//
//	g := critical.NewGuard(critical.WithPlatform(p))
//	g.Protect(0) // 1, p.Engage()
//	g.Protect(0) // 2
//	g.Release(0) // 1
//	g.Release(0) // 0, p.Disengage()
//
// Calls must nest like a stack. The guard does no locking of its own because
// it is itself the protection primitive; callers run it from a single thread
// or from a context that is already protected.
//
// Misuse, such as releasing an unprotected section, is reported through the
// guard's assertion reporter and the count is clamped back into range. The
// guard never panics and never returns an error.
package critical
