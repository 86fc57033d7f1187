package probe

import "time"

// Command results reported to an Observer.
const (
	ResultOK             = "ok"
	ResultError          = "error"
	ResultRejected       = "rejected"
	ResultNotImplemented = "not_implemented"
)

// Observer receives a record of every probe operation.
// Implementations should return quickly; they run on the caller's goroutine
// while the Device lock is held.
//
// The metrics package provides a Prometheus implementation.
type Observer interface {
	// ObserveCommand records one operation and how long its round trip took.
	ObserveCommand(variant, operation, result string, elapsed time.Duration)

	// ObserveTargetSession records a target session opening or closing.
	ObserveTargetSession(variant, kind string, open bool)
}
