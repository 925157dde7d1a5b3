// File: server/writer.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package server

import (
	"errors"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/sock"
)

// WriteAll drives buf toward fd until every byte is transferred, the
// kernel send buffer fills, or a hard error occurs. Signal interruption
// of an individual write is retried inside sock.Write and never surfaces.
// A zero-byte write without error means the peer closed and is reported
// as a failure with the untransferred tail.
func WriteAll(fd int, buf []byte) api.WriteResult {
	total := 0
	for total < len(buf) {
		n, err := sock.Write(fd, buf[total:])
		if err != nil {
			if errors.Is(err, api.ErrWouldBlock) {
				return api.WriteResult{State: api.WriteWouldBlock, Remaining: len(buf) - total}
			}
			return api.WriteResult{State: api.WriteFailed, Remaining: len(buf) - total, Err: err}
		}
		if n == 0 {
			return api.WriteResult{State: api.WriteFailed, Remaining: len(buf) - total, Err: api.ErrPeerClosed}
		}
		total += n
	}
	return api.WriteResult{State: api.WriteComplete}
}
