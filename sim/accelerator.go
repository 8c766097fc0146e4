package sim

import (
	"fmt"
	"runtime"
	"sync"
)

// AcceleratorError reports a failure of the parallel execution backend:
// acquiring the lane pool, building the shared sample tables, or running
// a batch on a closed handle. It is distinct from ConfigError so callers
// can fall back to the scalar path when only the backend is unavailable.
type AcceleratorError struct {
	Op     string
	Reason string
}

func (e *AcceleratorError) Error() string {
	return fmt.Sprintf("accelerator %s: %s", e.Op, e.Reason)
}

// Accelerator is the caller-owned handle for the lane-parallel backend.
// It fixes the number of concurrently executing lanes; each lane runs
// complete trials one at a time with no shared mutable state. Acquire it
// before a batch, pass it in BatchOptions, and Close it when done — the
// handle is never implicit module state.
type Accelerator struct {
	lanes int

	mu     sync.Mutex
	closed bool
}

// DefaultLanes returns the lane count used when the caller has no
// preference: one lane per logical CPU.
func DefaultLanes() int {
	return runtime.NumCPU()
}

// NewAccelerator acquires a lane pool of the given width. Returns an
// AcceleratorError when lanes < 1.
func NewAccelerator(lanes int) (*Accelerator, error) {
	if lanes < 1 {
		return nil, &AcceleratorError{Op: "acquire", Reason: fmt.Sprintf("lane count %d, need >= 1", lanes)}
	}
	return &Accelerator{lanes: lanes}, nil
}

// Lanes returns the pool width.
func (a *Accelerator) Lanes() int { return a.lanes }

// Close releases the handle. Idempotent; batches submitted after Close
// fail with an AcceleratorError.
func (a *Accelerator) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.closed = true
	return nil
}

// acquire verifies the handle is still open.
func (a *Accelerator) acquire() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return &AcceleratorError{Op: "launch", Reason: "handle is closed"}
	}
	return nil
}
