//go:build !linux

package critical

import "runtime"

// SignalMaskPlatform pins the calling goroutine to its OS thread while
// protected. Signal masking is only available on Linux. A second Engage
// before Disengage is a no-op.
type SignalMaskPlatform struct {
	OnError func(error)

	engaged bool
}

// NewSignalMaskPlatform returns a platform reporting failures to onError.
func NewSignalMaskPlatform(onError func(error)) *SignalMaskPlatform {
	return &SignalMaskPlatform{OnError: onError}
}

func (p *SignalMaskPlatform) Engage() {
	if p.engaged {
		return
	}
	p.engaged = true
	runtime.LockOSThread()
}

func (p *SignalMaskPlatform) Disengage() {
	if !p.engaged {
		return
	}
	p.engaged = false
	runtime.UnlockOSThread()
}

// Engaged reports whether the goroutine is currently pinned by this platform.
func (p *SignalMaskPlatform) Engaged() bool {
	return p.engaged
}
