// File: server/config.go
// Package server defines configuration and functional options for the echo loop.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"log"
	"time"

	"github.com/momentics/hioload-echo/control"
)

// Config holds the tunables of one event loop instance.
type Config struct {
	// ListenAddr is the host:port the listening endpoint binds to.
	ListenAddr string
	// Backlog is the listen(2) queue depth; <= 0 selects the platform maximum.
	Backlog int
	// ChunkSize bounds each read of the drain cycle.
	ChunkSize int
	// PollTimeout bounds the reactor wait, and with it the shutdown
	// observation latency under zero traffic.
	PollTimeout time.Duration
	// OutboundBudget caps unsent echo bytes queued per connection under
	// backpressure; a remainder that would exceed it is dropped and counted.
	OutboundBudget int
	// MaxEvents is the readiness batch size per wait.
	MaxEvents int
}

// DefaultConfig returns the reference tuning.
func DefaultConfig() *Config {
	return &Config{
		ListenAddr:     ":3490",
		Backlog:        0,
		ChunkSize:      1024,
		PollTimeout:    time.Second,
		OutboundBudget: 64 * 1024,
		MaxEvents:      128,
	}
}

// FromStore materializes a Config from the control-plane store, falling
// back to DefaultConfig values for absent keys.
func FromStore(cs *control.ConfigStore) *Config {
	def := DefaultConfig()
	return &Config{
		ListenAddr:     cs.GetString(control.KeyListenAddr, def.ListenAddr),
		Backlog:        cs.GetInt(control.KeyBacklog, def.Backlog),
		ChunkSize:      cs.GetInt(control.KeyChunkSize, def.ChunkSize),
		PollTimeout:    cs.GetDuration(control.KeyPollTimeout, def.PollTimeout),
		OutboundBudget: cs.GetInt(control.KeyOutboundBudget, def.OutboundBudget),
		MaxEvents:      cs.GetInt(control.KeyMaxEvents, def.MaxEvents),
	}
}

// Option customizes loop initialization.
type Option func(*Loop)

// WithMetrics attaches a metrics registry for connection and byte counters.
func WithMetrics(mr *control.MetricsRegistry) Option {
	return func(l *Loop) { l.metrics = mr }
}

// WithProbes exposes loop internals through the debug probe registry.
func WithProbes(dp *control.DebugProbes) Option {
	return func(l *Loop) { l.probes = dp }
}

// WithLogger overrides the diagnostic logger.
func WithLogger(lg *log.Logger) Option {
	return func(l *Loop) { l.log = lg }
}
