// File: server/accept.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"

	"github.com/eapache/queue"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/control"
	"github.com/momentics/hioload-echo/sock"
)

// acceptCycle drains the accept queue for one listener readiness event.
// Accepting until would-block is a fairness choice, not a correctness
// requirement: the listener is level-triggered and would re-notify.
// Any accept failure is logged and ends the cycle without side effects;
// it never terminates the loop.
func (l *Loop) acceptCycle() {
	for {
		nfd, peer, err := sock.Accept(l.lfd)
		if err != nil {
			if !errors.Is(err, api.ErrWouldBlock) {
				l.log.Printf("accept: %v", err)
			}
			return
		}
		if err := sock.SetNonblock(nfd); err != nil {
			l.log.Printf("accept fd=%d: %v", nfd, err)
			sock.TearDown(nfd)
			continue
		}
		c := &conn{
			fd:       nfd,
			peer:     peer,
			interest: api.EventRead | api.EventHangup,
			outbound: queue.New(),
		}
		// Peers are edge-triggered: one notification per readiness
		// transition, which is why drain loops until would-block.
		if err := l.r.Add(nfd, c.interest, true); err != nil {
			// An unregistered connection would never be serviced, so
			// close instead of leaking it; the counter keeps the
			// failure class observable.
			l.metrics.Add(control.MetricRegisterFailures, 1)
			l.log.Printf("register fd=%d: %v", nfd, err)
			sock.TearDown(nfd)
			continue
		}
		l.conns[nfd] = c
		l.live.Add(1)
		l.metrics.Add(control.MetricConnsAccepted, 1)
		l.log.Printf("connected peer=%s fd=%d", peer, nfd)
	}
}
