package shim

import (
	"fmt"
	"io"
	"os"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/go-rtshim/lib/critical"
	"github.com/go-i2p/logger"
	"github.com/google/uuid"
)

var log = logger.GetGoI2PLogger()

const (
	// ModuleName identifies the library in banners and logs.
	ModuleName = "rtshim"
	// Revision is the library revision printed in the init banner.
	Revision = "0123"
)

// Lib owns one initialization flag, one critical-section guard and one
// assertion reporter. It is not safe for concurrent use; see package
// critical.
type Lib struct {
	id          uuid.UUID
	initialized bool
	guard       *critical.Guard
	reporter    *assert.Reporter
	platform    critical.Platform
	banner      io.Writer
	trace       bool
}

// Option configures a Lib.
type Option func(*Lib)

// WithReporter sets the assertion reporter shared by the handle and its guard.
func WithReporter(r *assert.Reporter) Option {
	return func(l *Lib) {
		if r != nil {
			l.reporter = r
		}
	}
}

// WithPlatform sets the hook engaged at the outermost Protect.
func WithPlatform(p critical.Platform) Option {
	return func(l *Lib) {
		if p != nil {
			l.platform = p
		}
	}
}

// WithBanner prints an init banner to w on every Init.
func WithBanner(w io.Writer) Option {
	return func(l *Lib) {
		l.banner = w
	}
}

// WithTrace enables debug logging of guard transitions.
func WithTrace(enabled bool) Option {
	return func(l *Lib) {
		l.trace = enabled
	}
}

// New returns an uninitialized handle.
func New(opts ...Option) *Lib {
	l := &Lib{
		id:       uuid.New(),
		platform: critical.NopPlatform{},
		trace:    Tracing,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.reporter == nil {
		l.reporter = assert.NewReporter()
	}
	if l.banner == nil && Tracing {
		l.banner = os.Stderr
	}
	l.guard = critical.NewGuard(
		critical.WithPlatform(l.platform),
		critical.WithReporter(l.reporter),
		critical.WithTrace(l.trace),
	)
	return l
}

// Init marks the library initialized and clears any critical-section
// nesting left over from before. It returns StatusReinitialized when the
// library was already initialized.
//
// Clearing the nesting depth does not call the platform's Disengage.
func (l *Lib) Init() Status {
	status := StatusInitialized
	if l.initialized {
		status = StatusReinitialized
	}
	if l.banner != nil {
		l.printBanner()
	}

	l.initialized = true
	if discarded := l.guard.Reset(); discarded != 0 {
		log.WithFields(logger.Fields{
			"at":        "shim.Lib.Init",
			"id":        l.id,
			"discarded": discarded,
		}).Warn("critical_section_depth_discarded")
	}

	log.WithFields(logger.Fields{
		"at":     "shim.Lib.Init",
		"id":     l.id,
		"status": status,
	}).Debug("library_initialized")
	return status
}

func (l *Lib) printBanner() {
	fmt.Fprintf(l.banner,
		"\tModule %s\t%s\tRevision %s\n\tEntering Init()\n\n",
		ModuleName, l.id, Revision)
}

// IsInitialized reports whether Init has been called.
func (l *Lib) IsInitialized() bool {
	return l.initialized
}

// Protect enters a critical section; see critical.Guard.Protect.
func (l *Lib) Protect(token critical.Token) int {
	return l.guard.Protect(token)
}

// Release leaves a critical section; see critical.Guard.Release.
func (l *Lib) Release(token critical.Token) int {
	return l.guard.Release(token)
}

// AssertCheck reports a failure through the handle's reporter when held is
// false, attributing it to the caller.
func (l *Lib) AssertCheck(held bool, description string) bool {
	return l.reporter.AssertSkip(1, held, "", description)
}

// AssertExpr is AssertCheck with the source text of the condition.
func (l *Lib) AssertExpr(held bool, expr, description string) bool {
	return l.reporter.AssertSkip(1, held, expr, description)
}

// ID returns the handle's instance id.
func (l *Lib) ID() uuid.UUID { return l.id }

// Guard exposes the critical-section guard.
func (l *Lib) Guard() *critical.Guard { return l.guard }

// Reporter exposes the assertion reporter.
func (l *Lib) Reporter() *assert.Reporter { return l.reporter }
