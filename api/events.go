// File: api/events.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Readiness event contracts shared by the reactor and the server loop.

package api

// EventType is a bitmask of readiness conditions on a registered descriptor.
type EventType uint32

const (
	// EventRead signals that a read would not block.
	EventRead EventType = 1 << iota
	// EventWrite signals that a write would not block.
	EventWrite
	// EventHangup signals error, hangup, or remote half-close on the peer.
	EventHangup
)

// Event is one readiness notification delivered by Reactor.Wait.
type Event struct {
	FD   int
	Type EventType
}
