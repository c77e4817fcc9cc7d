package assert

import (
	"io"
	"os"
	"runtime"
	"sync"
	"time"

	"github.com/go-i2p/logger"
	"golang.org/x/time/rate"
)

var log = logger.GetGoI2PLogger()

// Reporter checks assertions and forwards failures to its LogSink.
type Reporter struct {
	mu         sync.Mutex
	sink       LogSink
	limiter    *rate.Limiter
	settle     time.Duration
	recorder   *Recorder
	failures   uint64
	suppressed uint64
}

// Option configures a Reporter.
type Option func(*Reporter)

// WithSink installs s as the active sink. A nil sink keeps the default.
func WithSink(s LogSink) Option {
	return func(r *Reporter) {
		if s != nil {
			r.sink = s
		}
	}
}

// WithOutput points the default sink at w.
func WithOutput(w io.Writer) Option {
	return func(r *Reporter) {
		r.sink = DefaultSink(w)
	}
}

// WithRateLimit delivers at most perSecond failures per second to the sink,
// allowing bursts of burst. A non-positive perSecond disables the limit.
func WithRateLimit(perSecond float64, burst int) Option {
	return func(r *Reporter) {
		if perSecond <= 0 {
			r.limiter = nil
			return
		}
		if burst < 1 {
			burst = 1
		}
		r.limiter = rate.NewLimiter(rate.Limit(perSecond), burst)
	}
}

// WithSettle pauses for d after each delivered failure, giving slow
// diagnostic links time to drain.
func WithSettle(d time.Duration) Option {
	return func(r *Reporter) {
		if d > 0 {
			r.settle = d
		}
	}
}

// WithRecorder also records every failure, delivered or suppressed, in rec.
func WithRecorder(rec *Recorder) Option {
	return func(r *Reporter) {
		r.recorder = rec
	}
}

// NewReporter returns a reporter writing to standard error unless configured
// otherwise.
func NewReporter(opts ...Option) *Reporter {
	r := &Reporter{sink: DefaultSink(os.Stderr)}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Assert reports a failure when held is false and returns held. The
// condition text is left empty; use AssertExpr when it is known.
func (r *Reporter) Assert(held bool, description string) bool {
	if held {
		return true
	}
	r.fail("", description, 2)
	return false
}

// AssertExpr is Assert with the source text of the checked condition.
func (r *Reporter) AssertExpr(held bool, expr, description string) bool {
	if held {
		return true
	}
	r.fail(expr, description, 2)
	return false
}

// AssertSkip is AssertExpr for wrappers: skip additional stack frames are
// ascended before the file and line are taken, so skip 0 names the caller of
// AssertSkip.
func (r *Reporter) AssertSkip(skip int, held bool, expr, description string) bool {
	if held {
		return true
	}
	if skip < 0 {
		skip = 0
	}
	r.fail(expr, description, 2+skip)
	return false
}

func (r *Reporter) fail(expr, description string, skip int) {
	_, file, line, ok := runtime.Caller(skip)
	if !ok {
		file, line = "???", 0
	}
	r.Report(Failure{
		Condition:   expr,
		File:        file,
		Line:        line,
		Description: description,
		Time:        time.Now(),
	})
}

// Report delivers f to the sink, subject to the rate limit, and returns.
func (r *Reporter) Report(f Failure) {
	if f.Time.IsZero() {
		f.Time = time.Now()
	}

	r.mu.Lock()
	r.failures++
	deliver := r.limiter == nil || r.limiter.AllowN(f.Time, 1)
	if !deliver {
		r.suppressed++
	}
	sink, rec, settle := r.sink, r.recorder, r.settle
	r.mu.Unlock()

	if rec != nil {
		rec.Record(f)
	}
	if !deliver {
		return
	}
	r.deliver(sink, f)
	if settle > 0 {
		time.Sleep(settle)
	}
}

func (r *Reporter) deliver(sink LogSink, f Failure) {
	defer func() {
		if p := recover(); p != nil {
			log.WithFields(logger.Fields{
				"at":          "assert.Reporter.deliver",
				"panic":       p,
				"file":        f.File,
				"line":        f.Line,
				"description": f.Description,
			}).Error("assertion_sink_panicked")
		}
	}()
	sink(f.Condition, f.File, f.Line, f.Description)
}

// SetSink replaces the active sink and returns the previous one. A nil sink
// restores the default standard error sink.
func (r *Reporter) SetSink(s LogSink) LogSink {
	if s == nil {
		s = DefaultSink(os.Stderr)
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	prev := r.sink
	r.sink = s
	return prev
}

// Failures returns how many assertions have failed on this reporter.
func (r *Reporter) Failures() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}

// Suppressed returns how many failures the rate limit kept from the sink.
func (r *Reporter) Suppressed() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.suppressed
}

var (
	defaultMu       sync.Mutex
	defaultReporter *Reporter
)

// Default returns the process-wide reporter, creating it on first use.
func Default() *Reporter {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if defaultReporter == nil {
		defaultReporter = NewReporter()
	}
	return defaultReporter
}

// Check reports through the Default reporter when held is false.
func Check(held bool, description string) bool {
	if held {
		return true
	}
	Default().fail("", description, 2)
	return false
}
