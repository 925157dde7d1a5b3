// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Package sock wraps the raw socket operations the event loop is built
// from: listener construction, non-blocking mode, accept, chunked
// read/write with EINTR retry, and both-direction teardown. All
// would-block conditions are normalized to api.ErrWouldBlock so callers
// never compare errno values directly.
package sock
