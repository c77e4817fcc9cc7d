//go:build linux

package critical

import (
	"runtime"

	"github.com/samber/oops"
	"golang.org/x/sys/unix"
)

// SignalMaskPlatform is the closest a Linux process gets to disabling
// interrupts: Engage pins the calling goroutine to its OS thread and blocks
// every maskable signal on that thread, Disengage restores the previous mask
// and unpins the goroutine.
//
// Engage and Disengage must run on the same goroutine. A second Engage
// before Disengage is a no-op, so a guard reset that discards open depth
// neither pins the thread twice nor loses the mask saved by the first Engage.
type SignalMaskPlatform struct {
	// OnError receives failures of the underlying system calls.
	OnError func(error)

	engaged bool
	prev    unix.Sigset_t
}

// NewSignalMaskPlatform returns a platform reporting syscall failures to onError.
func NewSignalMaskPlatform(onError func(error)) *SignalMaskPlatform {
	return &SignalMaskPlatform{OnError: onError}
}

func (p *SignalMaskPlatform) Engage() {
	if p.engaged {
		return
	}
	p.engaged = true
	runtime.LockOSThread()
	var all unix.Sigset_t
	for i := range all.Val {
		all.Val[i] = ^all.Val[i]
	}
	if err := unix.PthreadSigmask(unix.SIG_BLOCK, &all, &p.prev); err != nil {
		p.fail(oops.In("critical").Wrapf(err, "failed to block signals"))
	}
}

func (p *SignalMaskPlatform) Disengage() {
	if !p.engaged {
		return
	}
	p.engaged = false
	if err := unix.PthreadSigmask(unix.SIG_SETMASK, &p.prev, nil); err != nil {
		p.fail(oops.In("critical").Wrapf(err, "failed to restore signal mask"))
	}
	runtime.UnlockOSThread()
}

// Engaged reports whether signals are currently blocked by this platform.
func (p *SignalMaskPlatform) Engaged() bool {
	return p.engaged
}

func (p *SignalMaskPlatform) fail(err error) {
	if p.OnError != nil {
		p.OnError(err)
		return
	}
	log.WithError(err).Warn("signal_mask_failed")
}
