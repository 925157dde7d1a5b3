// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package pool provides the fixed-size chunk buffer pool feeding the
// server's drain cycle, so steady-state echoing allocates nothing.
package pool
