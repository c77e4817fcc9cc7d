package assert

import (
	"sync"
	"time"

	"github.com/eapache/queue"
)

// DefaultHistory is the capacity used by NewRecorder for non-positive sizes.
const DefaultHistory = 32

// Recorder keeps the most recent failures in a bounded FIFO.
type Recorder struct {
	mu    sync.Mutex
	cap   int
	items *queue.Queue
	total int
}

// NewRecorder returns a recorder holding at most capacity failures.
func NewRecorder(capacity int) *Recorder {
	if capacity <= 0 {
		capacity = DefaultHistory
	}
	return &Recorder{cap: capacity, items: queue.New()}
}

// Record appends f, evicting the oldest entry when full.
func (r *Recorder) Record(f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items.Add(f)
	r.total++
	for r.items.Length() > r.cap {
		r.items.Remove()
	}
}

// Sink adapts the recorder to a LogSink.
func (r *Recorder) Sink() LogSink {
	return func(condition, file string, line int, description string) {
		r.Record(Failure{
			Condition:   condition,
			File:        file,
			Line:        line,
			Description: description,
			Time:        time.Now(),
		})
	}
}

// Len returns the number of failures currently held.
func (r *Recorder) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.items.Length()
}

// Total returns the number of failures ever recorded, including evicted ones.
func (r *Recorder) Total() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.total
}

// Last returns the most recent failure.
func (r *Recorder) Last() (Failure, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := r.items.Length()
	if n == 0 {
		return Failure{}, false
	}
	return r.items.Get(n - 1).(Failure), true
}

// All returns the held failures, oldest first.
func (r *Recorder) All() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Failure, 0, r.items.Length())
	for i := 0; i < r.items.Length(); i++ {
		out = append(out, r.items.Get(i).(Failure))
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.items = queue.New()
	r.total = 0
}
