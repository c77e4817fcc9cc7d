package shim

import "fmt"

// Status is returned by Init. Both values mean success.
type Status uint16

const (
	// StatusInitialized reports a first initialization.
	StatusInitialized Status = 0
	// StatusReinitialized reports that the library was already initialized.
	StatusReinitialized Status = 2
)

func (s Status) String() string {
	switch s {
	case StatusInitialized:
		return "initialized"
	case StatusReinitialized:
		return "reinitialized"
	default:
		return fmt.Sprintf("Status(%d)", uint16(s))
	}
}

// Ok reports whether s is one of the success codes.
func (s Status) Ok() bool {
	return s == StatusInitialized || s == StatusReinitialized
}
