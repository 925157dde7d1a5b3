// File: server/loop.go
// Package server implements the reactor loop, dispatch, and graceful shutdown.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"context"
	"fmt"
	"log"
	"os"
	"sync/atomic"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/control"
	"github.com/momentics/hioload-echo/pool"
	"github.com/momentics/hioload-echo/reactor"
	"github.com/momentics/hioload-echo/sock"
)

// Loop is the single-threaded event multiplexer. The conns table is the
// single source of truth for connection liveness and is touched only by
// the goroutine running Run, so it needs no lock.
type Loop struct {
	cfg    *Config
	r      api.Reactor
	lfd    int
	laddr  string
	conns  map[int]*conn
	chunks *pool.ChunkPool
	events []api.Event

	live    atomic.Int64 // mirrors len(conns) for probes
	metrics *control.MetricsRegistry
	probes  *control.DebugProbes
	log     *log.Logger
}

// New builds the loop: reactor, listening endpoint, and level-triggered
// listener registration. The returned loop owns both until Run finishes.
func New(cfg *Config, opts ...Option) (*Loop, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	l := &Loop{
		cfg:    cfg,
		lfd:    -1,
		conns:  make(map[int]*conn),
		chunks: pool.NewChunkPool(cfg.ChunkSize),
		events: make([]api.Event, cfg.MaxEvents),
		log:    log.New(os.Stderr, "[echo-server] ", log.LstdFlags),
	}
	for _, o := range opts {
		o(l)
	}
	if l.metrics == nil {
		l.metrics = control.NewMetricsRegistry()
	}

	r, err := reactor.NewReactor()
	if err != nil {
		return nil, err
	}
	lfd, err := sock.Listen(cfg.ListenAddr, cfg.Backlog)
	if err != nil {
		r.Close()
		return nil, err
	}
	laddr, err := sock.LocalAddr(lfd)
	if err != nil {
		sock.TearDown(lfd)
		r.Close()
		return nil, err
	}
	// The listener stays level-triggered: pending connections keep
	// re-notifying, so the accept cycle never has to drain to empty for
	// correctness, only for latency.
	if err := r.Add(lfd, api.EventRead, false); err != nil {
		sock.TearDown(lfd)
		r.Close()
		return nil, api.NewError(api.ErrCodeRegister, "register listener", err)
	}
	l.r = r
	l.lfd = lfd
	l.laddr = laddr

	if l.probes != nil {
		l.probes.RegisterProbe("live_conns", func() any { return l.live.Load() })
		l.probes.RegisterProbe("listen_addr", func() any { return l.laddr })
	}
	return l, nil
}

// Addr reports the bound listen address, resolved even for port 0.
func (l *Loop) Addr() string { return l.laddr }

// Metrics exposes the loop's counter registry.
func (l *Loop) Metrics() *control.MetricsRegistry { return l.metrics }

// Run blocks dispatching readiness events until ctx is cancelled. The
// cancellation is cooperative: it is observed between waits, so exit
// latency is bounded by Config.PollTimeout even with zero traffic. A
// reactor wait failure is fatal and returned; per-connection errors are
// not. All resources are released before Run returns.
func (l *Loop) Run(ctx context.Context) error {
	defer l.shutdown()
	l.log.Printf("listening on %s", l.laddr)
	for {
		if ctx.Err() != nil {
			l.log.Printf("shutdown requested")
			return nil
		}
		n, err := l.r.Wait(l.events, l.cfg.PollTimeout)
		if err != nil {
			l.log.Printf("fatal: %v", err)
			return fmt.Errorf("reactor wait: %w", err)
		}
		for i := 0; i < n; i++ {
			l.dispatch(l.events[i])
		}
	}
}

// dispatch routes one readiness event. Hangup beats readable: a peer that
// died mid-batch is torn down without attempting a drain.
func (l *Loop) dispatch(ev api.Event) {
	if ev.FD == l.lfd {
		l.acceptCycle()
		return
	}
	if ev.Type&api.EventHangup != 0 {
		l.teardown(ev.FD, "peer hangup")
		return
	}
	c, ok := l.conns[ev.FD]
	if !ok {
		// Stale event for a connection torn down earlier in this batch.
		return
	}
	if ev.Type&api.EventWrite != 0 {
		l.flush(c)
	}
	if _, alive := l.conns[ev.FD]; alive && ev.Type&api.EventRead != 0 {
		l.drain(c)
	}
}

// shutdown releases every connection, the listener, and the reactor.
func (l *Loop) shutdown() {
	for fd := range l.conns {
		l.teardown(fd, "server shutdown")
	}
	if l.lfd >= 0 {
		_ = l.r.Remove(l.lfd)
		sock.TearDown(l.lfd)
		l.lfd = -1
	}
	if l.r != nil {
		_ = l.r.Close()
	}
	l.log.Printf("closed")
}
