//go:build !linux
// +build !linux

// File: sock/sock_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for unsupported platforms.

package sock

import "github.com/momentics/hioload-echo/api"

func SetNonblock(fd int) error { return api.ErrNotSupported }

func Listen(addr string, backlog int) (int, error) {
	return -1, api.NewError(api.ErrCodeSocket, "sock: platform not supported", api.ErrNotSupported)
}

func Accept(lfd int) (int, string, error) { return -1, "", api.ErrNotSupported }

func Read(fd int, buf []byte) (int, error) { return 0, api.ErrNotSupported }

func Write(fd int, buf []byte) (int, error) { return 0, api.ErrNotSupported }

func TearDown(fd int) {}

func LocalAddr(fd int) (string, error) { return "", api.ErrNotSupported }
