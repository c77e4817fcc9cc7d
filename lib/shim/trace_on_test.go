//go:build rtshim_trace

package shim

import (
	"os"
	"testing"

	"github.com/go-i2p/go-rtshim/lib/critical"
	tassert "github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTraceBuildDefaults checks what the rtshim_trace tag compiles in: a
// handle built without options traces guard transitions and prints its
// banner to stderr.
func TestTraceBuildDefaults(t *testing.T) {
	require.True(t, Tracing)

	l := New()
	tassert.True(t, l.trace)
	tassert.Same(t, os.Stderr, l.banner)
}

// TestTraceBuildKeepsExplicitOptions checks that explicit options still win
// in a trace build.
func TestTraceBuildKeepsExplicitOptions(t *testing.T) {
	l, cp, rec := newTestLib(t, WithTrace(false))
	tassert.False(t, l.trace)
	tassert.Same(t, os.Stderr, l.banner)

	tassert.Equal(t, StatusInitialized, l.Init())
	l.Guard().Do(critical.Token(0), func() {})

	engages, disengages := cp.Counts()
	tassert.Equal(t, 1, engages)
	tassert.Equal(t, 1, disengages)
	tassert.Zero(t, rec.Len())
}
