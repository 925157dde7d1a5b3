// File: api/result.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package api

// WriteState classifies the outcome of a bounded full-buffer write.
type WriteState int

const (
	// WriteComplete means every byte of the buffer was transferred.
	WriteComplete WriteState = iota
	// WriteWouldBlock means the kernel send buffer filled first; the
	// unsent tail length is carried in WriteResult.Remaining.
	WriteWouldBlock
	// WriteFailed means a hard I/O error or peer closure mid-write.
	WriteFailed
)

// WriteResult is the tagged outcome of WriteAll: backpressure is
// distinguished from hard failure so the caller can choose a policy.
type WriteResult struct {
	State     WriteState
	Remaining int
	Err       error
}
