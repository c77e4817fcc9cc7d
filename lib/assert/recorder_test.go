package assert

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestRecorderKeepsNewest verifies eviction of the oldest entries.
func TestRecorderKeepsNewest(t *testing.T) {
	rec := NewRecorder(3)
	for i := 0; i < 5; i++ {
		rec.Record(Failure{Description: fmt.Sprintf("f%d", i)})
	}

	assert.Equal(t, 3, rec.Len())
	assert.Equal(t, 5, rec.Total())

	all := rec.All()
	require.Len(t, all, 3)
	assert.Equal(t, "f2", all[0].Description)
	assert.Equal(t, "f4", all[2].Description)

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "f4", last.Description)
}

// TestRecorderEmpty verifies the zero state and Reset.
func TestRecorderEmpty(t *testing.T) {
	rec := NewRecorder(0)
	_, ok := rec.Last()
	assert.False(t, ok)
	assert.Empty(t, rec.All())

	rec.Sink()("c", "f.go", 1, "d")
	assert.Equal(t, 1, rec.Len())

	rec.Reset()
	assert.Equal(t, 0, rec.Len())
	assert.Equal(t, 0, rec.Total())
}

// TestRecorderSinkFields verifies that the sink adapter keeps every field.
func TestRecorderSinkFields(t *testing.T) {
	rec := NewRecorder(4)
	r := NewReporter(WithSink(rec.Sink()))

	r.AssertExpr(false, "a == b", "mismatch")

	last, ok := rec.Last()
	require.True(t, ok)
	assert.Equal(t, "a == b", last.Condition)
	assert.Equal(t, "mismatch", last.Description)
	assert.NotZero(t, last.Line)
	assert.False(t, last.Time.IsZero())
	assert.Contains(t, last.Error(), "mismatch")
}
