//go:build linux

package critical

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sys/unix"
)

// TestSignalMaskPlatformRestoresMask checks that a protect/release pair
// blocks signals while protected and leaves the thread mask as it found it.
func TestSignalMaskPlatformRestoresMask(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var errs []error
	p := NewSignalMaskPlatform(func(err error) { errs = append(errs, err) })
	g := NewGuard(WithPlatform(p))

	var before, during, after unix.Sigset_t
	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &before))

	g.Protect(0)
	g.Protect(0)
	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &during))
	g.Release(0)
	g.Release(0)

	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &after))

	assert.Empty(t, errs)
	assert.NotEqual(t, before, during)
	assert.Equal(t, before, after)
	assert.Equal(t, 0, g.Depth())
}

// TestSignalMaskPlatformSurvivesReset checks that a reset discarding open
// depth followed by a new protect/release pair still restores the mask the
// thread had before the first Engage.
func TestSignalMaskPlatformSurvivesReset(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var errs []error
	p := NewSignalMaskPlatform(func(err error) { errs = append(errs, err) })
	g := NewGuard(WithPlatform(p))

	var before, after unix.Sigset_t
	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &before))

	g.Protect(0)
	require.True(t, p.Engaged())
	assert.Equal(t, 1, g.Reset())

	g.Protect(0)
	assert.True(t, p.Engaged())
	g.Release(0)
	assert.False(t, p.Engaged())

	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &after))
	assert.Empty(t, errs)
	assert.Equal(t, before, after)
}

// TestSignalMaskPlatformRepeatedEngage checks that nested Engage calls keep
// the first saved mask and that a stray Disengage does nothing.
func TestSignalMaskPlatformRepeatedEngage(t *testing.T) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	var errs []error
	p := NewSignalMaskPlatform(func(err error) { errs = append(errs, err) })

	var before, after unix.Sigset_t
	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &before))

	p.Disengage()
	assert.False(t, p.Engaged())

	p.Engage()
	p.Engage()
	p.Disengage()
	assert.False(t, p.Engaged())

	require.NoError(t, unix.PthreadSigmask(unix.SIG_BLOCK, nil, &after))
	assert.Empty(t, errs)
	assert.Equal(t, before, after)
}
