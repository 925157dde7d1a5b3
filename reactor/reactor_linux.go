//go:build linux
// +build linux

// File: reactor/reactor_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux epoll(7)-based reactor implementation and factory.

package reactor

import (
	"fmt"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

// epollReactor implements api.Reactor over one epoll instance. The kernel
// interest list is the registration table; no shadow state is kept here.
type epollReactor struct {
	epfd int
	raw  []unix.EpollEvent
}

// NewReactor constructs the platform reactor for Linux.
func NewReactor() (api.Reactor, error) {
	epfd, err := unix.EpollCreate1(unix.EPOLL_CLOEXEC)
	if err != nil {
		return nil, api.NewError(api.ErrCodeReactor, "epoll create", err)
	}
	return &epollReactor{epfd: epfd}, nil
}

// toEpoll maps api interest bits onto epoll event flags.
func toEpoll(interest api.EventType, edge bool) uint32 {
	var ev uint32
	if interest&api.EventRead != 0 {
		ev |= unix.EPOLLIN
	}
	if interest&api.EventWrite != 0 {
		ev |= unix.EPOLLOUT
	}
	if interest&api.EventHangup != 0 {
		ev |= unix.EPOLLRDHUP
	}
	if edge {
		ev |= unix.EPOLLET
	}
	return ev
}

// Add registers fd in the epoll interest list.
func (r *epollReactor) Add(fd int, interest api.EventType, edge bool) error {
	ev := unix.EpollEvent{Events: toEpoll(interest, edge), Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_ADD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl add fd=%d: %w", fd, err)
	}
	return nil
}

// Modify replaces the registered interest for fd.
func (r *epollReactor) Modify(fd int, interest api.EventType, edge bool) error {
	ev := unix.EpollEvent{Events: toEpoll(interest, edge), Fd: int32(fd)}
	if err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_MOD, fd, &ev); err != nil {
		return fmt.Errorf("epoll ctl mod fd=%d: %w", fd, err)
	}
	return nil
}

// Remove deregisters fd. An fd that is already gone (never added, removed
// twice, or closed) reports ENOENT/EBADF, which is swallowed: removal is
// idempotent by contract.
func (r *epollReactor) Remove(fd int) error {
	err := unix.EpollCtl(r.epfd, unix.EPOLL_CTL_DEL, fd, nil)
	if err == nil || err == unix.ENOENT || err == unix.EBADF {
		return nil
	}
	return fmt.Errorf("epoll ctl del fd=%d: %w", fd, err)
}

// Wait blocks up to timeout for readiness events and translates them into
// api.Event values. EINTR restarts the wait with the full timeout; the
// caller's shutdown check latency stays bounded by timeout either way.
func (r *epollReactor) Wait(events []api.Event, timeout time.Duration) (int, error) {
	if len(events) == 0 {
		return 0, nil
	}
	if cap(r.raw) < len(events) {
		r.raw = make([]unix.EpollEvent, len(events))
	}
	ms := -1
	if timeout >= 0 {
		ms = int(timeout.Milliseconds())
		if ms == 0 && timeout > 0 {
			// Sub-millisecond timeouts must still suspend; truncating
			// to zero would turn the wait into a busy poll.
			ms = 1
		}
	}
	var n int
	var err error
	for {
		n, err = unix.EpollWait(r.epfd, r.raw[:len(events)], ms)
		if err != unix.EINTR {
			break
		}
	}
	if err != nil {
		return 0, fmt.Errorf("epoll wait: %w", err)
	}
	for i := 0; i < n; i++ {
		raw := r.raw[i]
		var t api.EventType
		if raw.Events&unix.EPOLLIN != 0 {
			t |= api.EventRead
		}
		if raw.Events&unix.EPOLLOUT != 0 {
			t |= api.EventWrite
		}
		if raw.Events&(unix.EPOLLERR|unix.EPOLLHUP|unix.EPOLLRDHUP) != 0 {
			t |= api.EventHangup
		}
		events[i] = api.Event{FD: int(raw.Fd), Type: t}
	}
	return n, nil
}

// Close releases the epoll instance.
func (r *epollReactor) Close() error {
	return unix.Close(r.epfd)
}
