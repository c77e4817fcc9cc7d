package shim

import (
	"sync"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/go-rtshim/lib/critical"
)

var (
	defaultMu  sync.Mutex
	defaultLib *Lib
)

// Default returns the process-wide handle, building it on first use with the
// process-wide assertion reporter.
func Default() *Lib {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultLib == nil {
		defaultLib = New(WithReporter(assert.Default()))
	}
	return defaultLib
}

// SetDefault installs l as the process-wide handle and returns the previous
// one. A nil l makes the next Default call build a fresh handle.
func SetDefault(l *Lib) *Lib {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	prev := defaultLib
	defaultLib = l
	return prev
}

// Init initializes the Default handle.
func Init() Status { return Default().Init() }

// IsInitialized queries the Default handle.
func IsInitialized() bool { return Default().IsInitialized() }

// Protect enters a critical section on the Default handle.
func Protect(token critical.Token) int { return Default().Protect(token) }

// Release leaves a critical section on the Default handle.
func Release(token critical.Token) int { return Default().Release(token) }

// AssertCheck reports through the Default handle when held is false.
func AssertCheck(held bool, description string) bool {
	return Default().reporter.AssertSkip(1, held, "", description)
}
