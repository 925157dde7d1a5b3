// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package reactor provides the readiness-notification registration table
// and wait primitive behind the server's event loop. Linux uses epoll(7);
// other platforms get a stub factory that reports lack of support.
package reactor
