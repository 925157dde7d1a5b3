// File: api/reactor.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Platform-neutral readiness-notification reactor contract.

package api

import "time"

// Reactor owns the registration table mapping descriptors to readiness
// interest. All mutating operations are driven from a single loop thread.
type Reactor interface {
	// Add registers fd with the given interest. edge selects edge-triggered
	// delivery; false keeps level-triggered semantics.
	Add(fd int, interest EventType, edge bool) error

	// Modify replaces the registered interest for an already-added fd.
	Modify(fd int, interest EventType, edge bool) error

	// Remove deregisters fd. Removing an fd that is not (or no longer)
	// registered is a no-op, not an error.
	Remove(fd int) error

	// Wait blocks until readiness events arrive or timeout elapses,
	// filling events and returning the count. Interruption by an
	// asynchronous signal is retried internally and never surfaced.
	// A negative timeout blocks indefinitely.
	Wait(events []Event, timeout time.Duration) (int, error)

	// Close releases the underlying notification mechanism.
	Close() error
}
