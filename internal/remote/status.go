package remote

import "sync/atomic"

// Status is the shared cloud availability gate. It starts open, closes when
// a call fails with a non-retryable class, and reopens only on a successful
// Probe. While closed, clients fail fast instead of paying timeouts on
// every operation.
type Status struct {
	degraded atomic.Bool
}

func NewStatus() *Status {
	return &Status{}
}

// Degraded reports whether the gate is closed.
func (s *Status) Degraded() bool {
	return s.degraded.Load()
}

// MarkDegraded closes the gate.
func (s *Status) MarkDegraded() {
	s.degraded.Store(true)
}

// Reset reopens the gate.
func (s *Status) Reset() {
	s.degraded.Store(false)
}
