package critical

import (
	"math"

	"github.com/go-i2p/go-rtshim/lib/assert"
	"github.com/go-i2p/logger"
)

var log = logger.GetGoI2PLogger()

// MaxDepth is the deepest nesting a Guard can represent.
const MaxDepth = math.MaxInt

// InvalidCountDescription is reported whenever the nesting count is out of range.
const InvalidCountDescription = "Invalid Critical Section Protection Count"

// Token identifies the resource being protected. Every token shares the same
// protection scope; the value is accepted for API stability and ignored.
type Token int

// Reporter receives invariant violations detected by a Guard.
// *assert.Reporter satisfies it.
type Reporter interface {
	AssertExpr(held bool, expr, description string) bool
}

// Guard is a reentrant critical-section counter. The zero value is not
// usable; create guards with NewGuard.
type Guard struct {
	count    int
	platform Platform
	reporter Reporter
	trace    bool
}

// GuardOption configures a Guard.
type GuardOption func(*Guard)

// WithPlatform sets the engage/disengage hook. Nil keeps NopPlatform.
func WithPlatform(p Platform) GuardOption {
	return func(g *Guard) {
		if p != nil {
			g.platform = p
		}
	}
}

// WithReporter sets where invariant violations go. Nil keeps assert.Default().
func WithReporter(r Reporter) GuardOption {
	return func(g *Guard) {
		if r != nil {
			g.reporter = r
		}
	}
}

// WithTrace logs every transition at debug level.
func WithTrace(enabled bool) GuardOption {
	return func(g *Guard) {
		g.trace = enabled
	}
}

// NewGuard returns an unprotected guard.
func NewGuard(opts ...GuardOption) *Guard {
	g := &Guard{
		platform: NopPlatform{},
		reporter: assert.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Protect enters a critical section and returns the new nesting depth.
// The platform is engaged only when the guard was unprotected.
func (g *Guard) Protect(_ Token) int {
	g.reporter.AssertExpr(g.count >= 0 && g.count < MaxDepth,
		"(protection_count >= 0) && (protection_count < MaxDepth)",
		InvalidCountDescription)

	if g.count < 0 {
		g.count = 0
	}
	if g.count == MaxDepth {
		return g.count
	}
	if g.count == 0 {
		g.platform.Engage()
		g.traceTransition("engaged")
	}
	g.count++
	return g.count
}

// Release leaves a critical section and returns the new nesting depth; 0
// means fully unprotected. Releasing an unprotected guard is reported and
// leaves the depth at 0 without touching the platform.
func (g *Guard) Release(_ Token) int {
	if !g.reporter.AssertExpr(g.count > 0, "protection_count > 0", InvalidCountDescription) {
		g.count = 0
		return g.count
	}
	g.count--
	if g.count == 0 {
		g.platform.Disengage()
		g.traceTransition("disengaged")
	}
	return g.count
}

// Do runs fn inside a critical section. The section is released even when
// fn panics. At MaxDepth the level is not taken, so none is given back.
func (g *Guard) Do(token Token, fn func()) {
	entered := g.count != MaxDepth
	g.Protect(token)
	if entered {
		defer g.Release(token)
	}
	fn()
}

// Depth returns the current nesting depth.
func (g *Guard) Depth() int {
	return g.count
}

// Engaged reports whether the platform protection is currently engaged.
func (g *Guard) Engaged() bool {
	return g.count > 0
}

// Reset forces the depth to 0 and returns the depth it discarded. The
// platform is not notified.
func (g *Guard) Reset() int {
	prev := g.count
	g.count = 0
	return prev
}

func (g *Guard) traceTransition(what string) {
	if !g.trace {
		return
	}
	log.WithFields(logger.Fields{
		"at":    "critical.Guard.transition",
		"state": what,
	}).Debug("critical_section_" + what)
}
