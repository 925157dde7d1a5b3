// File: server/conn.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Per-connection state, the drain-and-echo cycle, backpressure queueing,
// and idempotent teardown.

package server

import (
	"errors"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/control"
	"github.com/momentics/hioload-echo/sock"
)

// conn is the loop-owned state of one accepted peer. No inbound bytes are
// retained across readiness events; only unsent echo remainders survive,
// in pending (the chunk currently being flushed) and outbound (FIFO of
// later remainders).
type conn struct {
	fd       int
	peer     string
	interest api.EventType
	pending  []byte
	outbound *queue.Queue
	queued   int // bytes across pending + outbound
}

// drain services one edge-triggered readable notification: read chunk by
// chunk until the kernel reports would-block, echoing each chunk before
// the next read. Stopping earlier would starve input that arrived between
// two notifications.
func (l *Loop) drain(c *conn) {
	for {
		buf := l.chunks.Get()
		n, err := sock.Read(c.fd, buf)
		if err != nil {
			l.chunks.Put(buf)
			if errors.Is(err, api.ErrWouldBlock) {
				return // all currently available input consumed
			}
			l.teardown(c.fd, err.Error())
			return
		}
		if n == 0 {
			l.chunks.Put(buf)
			l.teardown(c.fd, "peer disconnected")
			return
		}
		l.log.Printf("received %d bytes fd=%d", n, c.fd)
		alive := l.echo(c, buf[:n])
		l.chunks.Put(buf)
		if !alive {
			return
		}
	}
}

// echo sends one drained chunk back, in order with respect to every chunk
// read before it. Reports whether the connection survived.
func (l *Loop) echo(c *conn, data []byte) bool {
	if c.queued > 0 {
		// Earlier bytes are still waiting on writability; jumping the
		// queue would reorder the stream.
		l.enqueue(c, data)
	} else {
		res := WriteAll(c.fd, data)
		switch res.State {
		case api.WriteComplete:
			l.metrics.Add(control.MetricBytesEchoed, int64(len(data)))
		case api.WriteWouldBlock:
			l.metrics.Add(control.MetricBytesEchoed, int64(len(data)-res.Remaining))
			l.enqueue(c, data[len(data)-res.Remaining:])
		case api.WriteFailed:
			l.log.Printf("write fd=%d: %v", c.fd, res.Err)
			l.teardown(c.fd, "write error")
		}
	}
	_, alive := l.conns[c.fd]
	return alive
}

// enqueue parks an unsent remainder and arms write-readiness so flush
// runs on the next writable transition. Beyond the byte budget the
// remainder is dropped; the drop is always logged and counted, never
// silent.
func (l *Loop) enqueue(c *conn, rem []byte) {
	if c.queued+len(rem) > l.cfg.OutboundBudget {
		l.metrics.Add(control.MetricBytesDropped, int64(len(rem)))
		l.log.Printf("backpressure fd=%d: dropped %d bytes (budget %d)", c.fd, len(rem), l.cfg.OutboundBudget)
		return
	}
	cp := make([]byte, len(rem))
	copy(cp, rem)
	c.outbound.Add(cp)
	c.queued += len(cp)
	if c.interest&api.EventWrite == 0 {
		c.interest |= api.EventWrite
		if err := l.r.Modify(c.fd, c.interest, true); err != nil {
			l.log.Printf("rearm fd=%d: %v", c.fd, err)
			l.teardown(c.fd, "rearm failed")
		}
	}
}

// flush pushes queued remainders out on a writable notification, oldest
// first, and drops write interest once everything is sent.
func (l *Loop) flush(c *conn) {
	for {
		if len(c.pending) == 0 {
			if c.outbound.Length() == 0 {
				break
			}
			c.pending = c.outbound.Remove().([]byte)
		}
		res := WriteAll(c.fd, c.pending)
		written := len(c.pending) - res.Remaining
		c.queued -= written
		l.metrics.Add(control.MetricBytesEchoed, int64(written))
		switch res.State {
		case api.WriteComplete:
			c.pending = nil
		case api.WriteWouldBlock:
			// Still backpressured; keep EventWrite armed and retry on
			// the next writable transition.
			c.pending = c.pending[written:]
			return
		case api.WriteFailed:
			l.log.Printf("flush fd=%d: %v", c.fd, res.Err)
			l.teardown(c.fd, "write error")
			return
		}
	}
	c.interest &^= api.EventWrite
	if err := l.r.Modify(c.fd, c.interest, true); err != nil {
		l.log.Printf("disarm fd=%d: %v", c.fd, err)
		l.teardown(c.fd, "disarm failed")
	}
}

// teardown removes fd from the table, deregisters it, and shuts the
// socket down in both directions before closing. Table membership makes
// it idempotent: a second call for the same fd is a no-op.
func (l *Loop) teardown(fd int, reason string) {
	c, ok := l.conns[fd]
	if !ok {
		return
	}
	delete(l.conns, fd)
	l.live.Add(-1)
	_ = l.r.Remove(fd)
	sock.TearDown(fd)
	l.metrics.Add(control.MetricConnsClosed, 1)
	l.log.Printf("disconnected peer=%s fd=%d (%s)", c.peer, fd, reason)
}
