// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package server implements the single-threaded, readiness-multiplexed
// TCP echo loop. One goroutine owns the listening socket, the reactor
// registration table, and every live connection; no connection's I/O can
// block the loop because all sockets are non-blocking and the only
// suspension point is the bounded reactor wait.
package server
