package assert

import (
	"fmt"
	"time"

	"github.com/samber/oops"
)

// CodeAssertionFailed is the oops error code carried by Failure.Err.
const CodeAssertionFailed = "assertion_failed"

// Failure describes one violated assertion.
type Failure struct {
	// Condition is the source text of the checked expression, if known.
	Condition string
	// File and Line locate the check.
	File string
	Line int
	// Description is the caller supplied explanation.
	Description string
	// Time is when the failure was reported.
	Time time.Time
}

// Error implements error so a Failure can travel through error paths.
func (f Failure) Error() string {
	return fmt.Sprintf("assertion failed: %q at %s:%d: %s", f.Condition, f.File, f.Line, f.Description)
}

// Err converts the failure into an oops error with code CodeAssertionFailed
// and the failure fields attached as context.
func (f Failure) Err() error {
	return oops.
		In("assert").
		Code(CodeAssertionFailed).
		Time(f.Time).
		With("condition", f.Condition, "file", f.File, "line", f.Line).
		Errorf("%s", f.Description)
}
