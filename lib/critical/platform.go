package critical

import "sync"

// Platform engages and disengages the real protection mechanism. Engage is
// called on every 0 -> 1 transition of a Guard and Disengage on every 1 -> 0
// transition.
type Platform interface {
	Engage()
	Disengage()
}

// NopPlatform protects nothing. It is the default for a Guard.
type NopPlatform struct{}

func (NopPlatform) Engage()    {}
func (NopPlatform) Disengage() {}

// PlatformFuncs adapts a pair of functions to Platform. Nil functions are
// skipped.
type PlatformFuncs struct {
	OnEngage    func()
	OnDisengage func()
}

func (p PlatformFuncs) Engage() {
	if p.OnEngage != nil {
		p.OnEngage()
	}
}

func (p PlatformFuncs) Disengage() {
	if p.OnDisengage != nil {
		p.OnDisengage()
	}
}

// Event names the transition a CountingPlatform observed.
type Event string

const (
	EventEngage    Event = "engage"
	EventDisengage Event = "disengage"
)

// CountingPlatform records every transition before forwarding it to Next.
type CountingPlatform struct {
	Next Platform

	mu        sync.Mutex
	engaged   int
	disengage int
	events    []Event
}

// NewCountingPlatform wraps next; a nil next counts only.
func NewCountingPlatform(next Platform) *CountingPlatform {
	if next == nil {
		next = NopPlatform{}
	}
	return &CountingPlatform{Next: next}
}

func (c *CountingPlatform) Engage() {
	c.mu.Lock()
	c.engaged++
	c.events = append(c.events, EventEngage)
	c.mu.Unlock()
	c.Next.Engage()
}

func (c *CountingPlatform) Disengage() {
	c.mu.Lock()
	c.disengage++
	c.events = append(c.events, EventDisengage)
	c.mu.Unlock()
	c.Next.Disengage()
}

// Counts returns the number of engage and disengage calls seen so far.
func (c *CountingPlatform) Counts() (engage, disengage int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.engaged, c.disengage
}

// Events returns the observed transitions in order.
func (c *CountingPlatform) Events() []Event {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Event, len(c.events))
	copy(out, c.events)
	return out
}

// Reset clears the counters and the event log.
func (c *CountingPlatform) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.engaged, c.disengage = 0, 0
	c.events = nil
}
