// File: pool/chunkpool.go
// Author: momentics <momentics@gmail.com>

package pool

import "sync"

// ChunkPool hands out byte slices of one fixed size. Buffers of a foreign
// size are silently discarded on Put so a resized pool never pollutes.
type ChunkPool struct {
	size int
	p    sync.Pool
}

// NewChunkPool creates a pool of size-byte chunks.
func NewChunkPool(size int) *ChunkPool {
	cp := &ChunkPool{size: size}
	cp.p.New = func() any { return make([]byte, size) }
	return cp
}

// Get returns a chunk of exactly Size() bytes.
func (c *ChunkPool) Get() []byte {
	return c.p.Get().([]byte)
}

// Put returns a chunk to the pool.
func (c *ChunkPool) Put(buf []byte) {
	if cap(buf) != c.size {
		return
	}
	c.p.Put(buf[:c.size])
}

// Size reports the chunk length handed out by Get.
func (c *ChunkPool) Size() int { return c.size }
