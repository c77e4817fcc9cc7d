package assert

import (
	"fmt"
	"io"
	"time"

	"github.com/go-i2p/logger"
)

// LogSink receives a violated assertion. Implementations must return to the
// caller; they may perform any side effect on the way.
type LogSink func(condition, file string, line int, description string)

// DefaultSink formats failures the way the firmware library always has and
// writes them to w.
func DefaultSink(w io.Writer) LogSink {
	if w == nil {
		w = io.Discard
	}
	return func(condition, file string, line int, description string) {
		fmt.Fprintf(w,
			"\nAssertion failed: \"%s\", file::line: %s::%d\nDescription: %s\n\n",
			condition, file, line, description)
	}
}

// LoggerSink emits failures as structured error entries on the go-i2p
// logger. Output follows the logger's DEBUG_I2P settings.
func LoggerSink() LogSink {
	return func(condition, file string, line int, description string) {
		log.WithFields(logger.Fields{
			"at":          "assert.LoggerSink",
			"condition":   condition,
			"file":        file,
			"line":        line,
			"description": description,
		}).Error("assertion_failed")
	}
}

// ErrorSink hands each failure to fn as an oops error, see Failure.Err.
func ErrorSink(fn func(error)) LogSink {
	return func(condition, file string, line int, description string) {
		if fn == nil {
			return
		}
		fn(Failure{
			Condition:   condition,
			File:        file,
			Line:        line,
			Description: description,
			Time:        time.Now(),
		}.Err())
	}
}

// Tee delivers every failure to each non-nil sink in order.
func Tee(sinks ...LogSink) LogSink {
	return func(condition, file string, line int, description string) {
		for _, s := range sinks {
			if s != nil {
				s(condition, file, line, description)
			}
		}
	}
}

// Discard drops failures.
func Discard(string, string, int, string) {}
