// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Command echo-server runs the readiness-multiplexed TCP echo service.
// SIGINT/SIGTERM request cooperative shutdown; the loop exits within one
// poll-timeout interval. Startup failures map to distinct exit statuses
// per failure point, runtime metrics are dumped on clean exit.

package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/control"
	"github.com/momentics/hioload-echo/server"
)

func main() {
	addr := flag.String("addr", ":3490", "listen address")
	backlog := flag.Int("backlog", 0, "listen backlog (0 = platform maximum)")
	chunk := flag.Int("chunk", 1024, "drain read chunk size in bytes")
	timeout := flag.Duration("poll-timeout", time.Second, "reactor wait timeout")
	budget := flag.Int("outbound-budget", 64*1024, "max queued unsent bytes per connection")
	flag.Parse()

	cs := control.NewConfigStore()
	cs.SetConfig(map[string]any{
		control.KeyListenAddr:     *addr,
		control.KeyBacklog:        *backlog,
		control.KeyChunkSize:      *chunk,
		control.KeyPollTimeout:    *timeout,
		control.KeyOutboundBudget: *budget,
	})
	cs.OnReload(func() {
		fmt.Fprintf(os.Stderr, "config reloaded: %v\n", cs.GetSnapshot())
	})
	metrics := control.NewMetricsRegistry()
	probes := control.NewDebugProbes()

	loop, err := server.New(server.FromStore(cs),
		server.WithMetrics(metrics),
		server.WithProbes(probes),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "startup: %v\n", err)
		os.Exit(exitCode(err))
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := loop.Run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "run: %v\n", err)
		os.Exit(10)
	}
	for k, v := range metrics.GetSnapshot() {
		fmt.Fprintf(os.Stderr, "%s=%d\n", k, v)
	}
}

// exitCode maps startup failure stages to distinct exit statuses.
func exitCode(err error) int {
	switch api.CodeOf(err) {
	case api.ErrCodeResolve:
		return 2
	case api.ErrCodeSocket:
		return 3
	case api.ErrCodeBind:
		return 5
	case api.ErrCodeListen:
		return 6
	case api.ErrCodeReactor:
		return 8
	case api.ErrCodeRegister:
		return 9
	default:
		return 1
	}
}
