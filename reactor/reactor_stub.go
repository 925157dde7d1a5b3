//go:build !linux
// +build !linux

// File: reactor/reactor_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package reactor

import "github.com/momentics/hioload-echo/api"

// NewReactor returns an error for unsupported platforms.
func NewReactor() (api.Reactor, error) {
	return nil, api.NewError(api.ErrCodeReactor, "reactor: platform not supported", api.ErrNotSupported)
}
