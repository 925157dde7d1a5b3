// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package control is the server's control plane: a dynamic configuration
// store with reload listeners, a runtime metrics registry, and debug
// probes for internal state inspection.
package control
