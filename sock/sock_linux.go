//go:build linux
// +build linux

// File: sock/sock_linux.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Linux raw-socket primitives for the readiness-multiplexed server.

package sock

import (
	"fmt"
	"net"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

// SetNonblock puts fd into non-blocking mode. Setting the flag on an fd
// that already carries it is harmless, so the call is idempotent.
func SetNonblock(fd int) error {
	if err := unix.SetNonblock(fd, true); err != nil {
		return fmt.Errorf("set nonblock fd=%d: %w", fd, err)
	}
	return nil
}

// Listen builds the listening endpoint: an IPv4 TCP socket bound to addr
// with SO_REUSEADDR, listening, and in non-blocking mode. backlog <= 0
// selects the platform maximum (SOMAXCONN).
func Listen(addr string, backlog int) (int, error) {
	sa, err := resolve(addr)
	if err != nil {
		return -1, api.NewError(api.ErrCodeResolve, "resolve "+addr, err)
	}
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM|unix.SOCK_CLOEXEC, unix.IPPROTO_TCP)
	if err != nil {
		return -1, api.NewError(api.ErrCodeSocket, "socket create", err)
	}
	if err := unix.SetsockoptInt(fd, unix.SOL_SOCKET, unix.SO_REUSEADDR, 1); err != nil {
		unix.Close(fd)
		return -1, api.NewError(api.ErrCodeSocket, "setsockopt SO_REUSEADDR", err)
	}
	if err := unix.Bind(fd, sa); err != nil {
		unix.Close(fd)
		return -1, api.NewError(api.ErrCodeBind, "bind "+addr, err)
	}
	if backlog <= 0 {
		backlog = unix.SOMAXCONN
	}
	if err := unix.Listen(fd, backlog); err != nil {
		unix.Close(fd)
		return -1, api.NewError(api.ErrCodeListen, "listen "+addr, err)
	}
	if err := SetNonblock(fd); err != nil {
		unix.Close(fd)
		return -1, api.NewError(api.ErrCodeSocket, "listener nonblock", err)
	}
	return fd, nil
}

// Accept takes one pending connection off lfd. When the accept queue is
// empty it returns api.ErrWouldBlock. The accepted fd is returned in
// blocking mode; the caller decides when to flip it.
func Accept(lfd int) (int, string, error) {
	for {
		nfd, sa, err := unix.Accept(lfd)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return -1, "", api.ErrWouldBlock
		}
		if err != nil {
			return -1, "", fmt.Errorf("accept: %w", err)
		}
		return nfd, addrString(sa), nil
	}
}

// Read fills buf from fd, retrying EINTR. An empty kernel receive buffer
// reports api.ErrWouldBlock; n == 0 with a nil error is an orderly close.
func Read(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.Read(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, api.ErrWouldBlock
		}
		if err != nil {
			return 0, fmt.Errorf("read fd=%d: %w", fd, err)
		}
		return n, nil
	}
}

// Write pushes buf toward fd, retrying EINTR. A full kernel send buffer
// reports api.ErrWouldBlock with the partial count already transferred
// by earlier calls reflected only in the caller's accounting.
func Write(fd int, buf []byte) (int, error) {
	for {
		n, err := unix.Write(fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err == unix.EAGAIN || err == unix.EWOULDBLOCK {
			return 0, api.ErrWouldBlock
		}
		if err != nil {
			return 0, fmt.Errorf("write fd=%d: %w", fd, err)
		}
		return n, nil
	}
}

// TearDown shuts down both directions of fd and closes the handle.
// Both calls tolerate an fd that is already shut down or closed, so
// calling TearDown twice is safe.
func TearDown(fd int) {
	_ = unix.Shutdown(fd, unix.SHUT_RDWR)
	_ = unix.Close(fd)
}

// LocalAddr reports the bound address of fd, useful when listening on an
// ephemeral port.
func LocalAddr(fd int) (string, error) {
	sa, err := unix.Getsockname(fd)
	if err != nil {
		return "", fmt.Errorf("getsockname fd=%d: %w", fd, err)
	}
	return addrString(sa), nil
}

// resolve turns host:port into an IPv4 sockaddr.
func resolve(addr string) (unix.Sockaddr, error) {
	ta, err := net.ResolveTCPAddr("tcp4", addr)
	if err != nil {
		return nil, err
	}
	sa := &unix.SockaddrInet4{Port: ta.Port}
	if ip := ta.IP.To4(); ip != nil {
		copy(sa.Addr[:], ip)
	}
	return sa, nil
}

func addrString(sa unix.Sockaddr) string {
	switch a := sa.(type) {
	case *unix.SockaddrInet4:
		return fmt.Sprintf("%s:%d", net.IP(a.Addr[:]).String(), a.Port)
	case *unix.SockaddrInet6:
		return fmt.Sprintf("[%s]:%d", net.IP(a.Addr[:]).String(), a.Port)
	default:
		return ""
	}
}
