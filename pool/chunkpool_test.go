// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package pool

import "testing"

func TestChunkPoolFixedSize(t *testing.T) {
	cp := NewChunkPool(1024)
	if cp.Size() != 1024 {
		t.Fatalf("Size = %d, want 1024", cp.Size())
	}
	buf := cp.Get()
	if len(buf) != 1024 {
		t.Fatalf("Get returned %d bytes, want 1024", len(buf))
	}
	cp.Put(buf)
	if again := cp.Get(); len(again) != 1024 {
		t.Errorf("reused chunk has %d bytes, want 1024", len(again))
	}
}

func TestChunkPoolRejectsForeignSize(t *testing.T) {
	cp := NewChunkPool(1024)
	cp.Put(make([]byte, 64)) // discarded, must not poison the pool
	if buf := cp.Get(); len(buf) != 1024 {
		t.Errorf("Get after foreign Put returned %d bytes", len(buf))
	}
}

func TestChunkPoolRestoresShortenedSlices(t *testing.T) {
	cp := NewChunkPool(1024)
	buf := cp.Get()
	cp.Put(buf[:10]) // drain cycles hand back trimmed views
	if got := cp.Get(); len(got) != 1024 {
		t.Errorf("Get after trimmed Put returned %d bytes", len(got))
	}
}
