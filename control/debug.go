// control/debug.go
// Author: momentics <momentics@gmail.com>
//
// Debug probes exposing live event-loop state for inspection while the
// loop keeps running.

package control

import (
	"sort"
	"sync"
)

// Probe reads one piece of loop state: a connection count, the bound
// listen address, a queue depth. Probes are evaluated from outside the
// loop goroutine, so they must read atomics or immutable values, never
// the connection table itself.
type Probe func() any

// DebugProbes is a named registry of probes.
type DebugProbes struct {
	mu     sync.RWMutex
	probes map[string]Probe
}

// NewDebugProbes creates an empty probe registry.
func NewDebugProbes() *DebugProbes {
	return &DebugProbes{
		probes: make(map[string]Probe),
	}
}

// RegisterProbe inserts a named probe, replacing any previous probe
// under the same name.
func (dp *DebugProbes) RegisterProbe(name string, p Probe) {
	dp.mu.Lock()
	defer dp.mu.Unlock()
	dp.probes[name] = p
}

// Names lists the registered probe names in sorted order.
func (dp *DebugProbes) Names() []string {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	names := make([]string, 0, len(dp.probes))
	for name := range dp.probes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DumpState evaluates every probe and returns the results by name.
func (dp *DebugProbes) DumpState() map[string]any {
	dp.mu.RLock()
	defer dp.mu.RUnlock()
	out := make(map[string]any, len(dp.probes))
	for name, p := range dp.probes {
		out[name] = p()
	}
	return out
}
