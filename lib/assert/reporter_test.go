package assert

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/samber/oops"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type captured struct {
	condition   string
	file        string
	line        int
	description string
}

type capture struct {
	mu    sync.Mutex
	calls []captured
}

func (c *capture) sink() LogSink {
	return func(condition, file string, line int, description string) {
		c.mu.Lock()
		defer c.mu.Unlock()
		c.calls = append(c.calls, captured{condition, file, line, description})
	}
}

func (c *capture) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.calls)
}

// tripAt fails the same assertion site on every call.
func tripAt(r *Reporter) bool {
	return r.AssertExpr(1+1 == 3, "1+1 == 3", "arithmetic is broken")
}

// TestAssertHeldDoesNotReport verifies that a held condition never reaches the sink.
func TestAssertHeldDoesNotReport(t *testing.T) {
	c := &capture{}
	r := NewReporter(WithSink(c.sink()))

	assert.True(t, r.Assert(true, "fine"))
	assert.True(t, r.AssertExpr(true, "x > 0", "fine"))
	assert.Equal(t, 0, c.count())
	assert.Equal(t, uint64(0), r.Failures())
}

// TestAssertFailureContinues verifies that a failed check reports once and
// returns control to the caller.
func TestAssertFailureContinues(t *testing.T) {
	c := &capture{}
	r := NewReporter(WithSink(c.sink()))

	reached := false
	held := r.AssertExpr(false, "ready", "not ready yet")
	reached = true

	assert.False(t, held)
	assert.True(t, reached)
	require.Equal(t, 1, c.count())
	got := c.calls[0]
	assert.Equal(t, "ready", got.condition)
	assert.Equal(t, "not ready yet", got.description)
	assert.True(t, strings.HasSuffix(got.file, "reporter_test.go"), got.file)
	assert.Greater(t, got.line, 0)
	assert.Equal(t, uint64(1), r.Failures())
}

// TestAssertWithoutExpression verifies Assert leaves the condition text empty.
func TestAssertWithoutExpression(t *testing.T) {
	c := &capture{}
	r := NewReporter(WithSink(c.sink()))

	r.Assert(false, "plain")

	require.Equal(t, 1, c.count())
	assert.Equal(t, "", c.calls[0].condition)
	assert.Equal(t, "plain", c.calls[0].description)
}

// TestDefaultSinkFormat verifies the human readable message layout.
func TestDefaultSinkFormat(t *testing.T) {
	var buf bytes.Buffer
	DefaultSink(&buf)("count > 0", "lib.go", 42, "Invalid Critical Section Protection Count")

	assert.Equal(t,
		"\nAssertion failed: \"count > 0\", file::line: lib.go::42\n"+
			"Description: Invalid Critical Section Protection Count\n\n",
		buf.String())
}

// TestOverrideSinkReceivesSameArguments verifies that replacing the sink
// routes later failures to the override with the values the default sink
// would have printed.
func TestOverrideSinkReceivesSameArguments(t *testing.T) {
	var buf bytes.Buffer
	r := NewReporter(WithOutput(&buf))

	tripAt(r)
	printed := buf.String()
	require.NotEmpty(t, printed)

	c := &capture{}
	prev := r.SetSink(c.sink())
	require.NotNil(t, prev)

	buf.Reset()
	tripAt(r)

	assert.Empty(t, buf.String(), "default sink must not run after override")
	require.Equal(t, 1, c.count())
	got := c.calls[0]
	want := fmt.Sprintf("\nAssertion failed: \"%s\", file::line: %s::%d\nDescription: %s\n\n",
		got.condition, got.file, got.line, got.description)
	assert.Equal(t, printed, want)
}

// TestSetSinkNilRestoresDefault verifies that a nil sink does not leave the
// reporter without a sink.
func TestSetSinkNilRestoresDefault(t *testing.T) {
	r := NewReporter(WithSink(Discard))
	prev := r.SetSink(nil)
	assert.NotNil(t, prev)
	assert.NotPanics(t, func() { r.Assert(false, "goes to stderr") })
}

// TestSinkPanicIsContained verifies that a panicking sink does not unwind
// into the asserting code.
func TestSinkPanicIsContained(t *testing.T) {
	r := NewReporter(WithSink(func(string, string, int, string) {
		panic("sink exploded")
	}))

	var held bool
	assert.NotPanics(t, func() {
		held = r.Assert(false, "boom")
	})
	assert.False(t, held)
	assert.Equal(t, uint64(1), r.Failures())
}

// TestRateLimitSuppressesStorm verifies that failures beyond the limit are
// counted and recorded but not delivered.
func TestRateLimitSuppressesStorm(t *testing.T) {
	c := &capture{}
	rec := NewRecorder(8)
	r := NewReporter(WithSink(c.sink()), WithRateLimit(1, 1), WithRecorder(rec))

	for i := 0; i < 5; i++ {
		r.Assert(false, "storm")
	}

	assert.Equal(t, 1, c.count())
	assert.Equal(t, uint64(5), r.Failures())
	assert.Equal(t, uint64(4), r.Suppressed())
	assert.Equal(t, 5, rec.Len())
}

// TestRateLimitDisabled verifies that a non-positive rate leaves delivery unlimited.
func TestRateLimitDisabled(t *testing.T) {
	c := &capture{}
	r := NewReporter(WithSink(c.sink()), WithRateLimit(0, 10))

	for i := 0; i < 10; i++ {
		r.Assert(false, "unlimited")
	}
	assert.Equal(t, 10, c.count())
	assert.Equal(t, uint64(0), r.Suppressed())
}

// TestSettlePausesAfterReport verifies the post-report pause.
func TestSettlePausesAfterReport(t *testing.T) {
	r := NewReporter(WithSink(Discard), WithSettle(20*time.Millisecond))

	start := time.Now()
	r.Assert(false, "slow link")
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)

	start = time.Now()
	r.Assert(true, "no pause when held")
	assert.Less(t, time.Since(start), 20*time.Millisecond)
}

// TestTeeFansOut verifies that Tee calls every sink and skips nil ones.
func TestTeeFansOut(t *testing.T) {
	a, b := &capture{}, &capture{}
	r := NewReporter(WithSink(Tee(a.sink(), nil, b.sink())))

	r.Assert(false, "twice")

	assert.Equal(t, 1, a.count())
	assert.Equal(t, 1, b.count())
}

// TestErrorSinkProducesOopsError verifies the error conversion of failures.
func TestErrorSinkProducesOopsError(t *testing.T) {
	var got error
	r := NewReporter(WithSink(ErrorSink(func(err error) { got = err })))

	r.AssertExpr(false, "n < max", "limit reached")

	require.Error(t, got)
	assert.Contains(t, got.Error(), "limit reached")
	_, ok := oops.AsOops(got)
	assert.True(t, ok)
}

// TestLoggerSinkDoesNotPanic verifies the structured logger sink with the
// package logger.
func TestLoggerSinkDoesNotPanic(t *testing.T) {
	r := NewReporter(WithSink(LoggerSink()))
	assert.NotPanics(t, func() { r.AssertExpr(false, "ok", "logged") })
}

// TestPackageCheckUsesDefault verifies the package level helper.
func TestPackageCheckUsesDefault(t *testing.T) {
	c := &capture{}
	prev := Default().SetSink(c.sink())
	defer Default().SetSink(prev)

	assert.True(t, Check(true, "fine"))
	assert.False(t, Check(false, "via default"))

	require.Equal(t, 1, c.count())
	assert.True(t, strings.HasSuffix(c.calls[0].file, "reporter_test.go"))
	assert.Equal(t, "via default", c.calls[0].description)
}

func wrappedCheck(r *Reporter, held bool) bool {
	return r.AssertSkip(1, held, "wrapped", "through a helper")
}

// TestAssertSkipNamesOuterCaller verifies that wrappers can attribute
// failures to their own callers.
func TestAssertSkipNamesOuterCaller(t *testing.T) {
	rec := NewRecorder(2)
	r := NewReporter(WithSink(rec.Sink()))

	assert.True(t, wrappedCheck(r, true))
	assert.False(t, wrappedCheck(r, false))

	last, ok := rec.Last()
	require.True(t, ok)
	assert.True(t, strings.HasSuffix(last.File, "reporter_test.go"))
	assert.Equal(t, "wrapped", last.Condition)

	assert.False(t, r.AssertSkip(-3, false, "neg", "clamped skip"))
	assert.Equal(t, 2, rec.Len())
}
