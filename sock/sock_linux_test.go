//go:build linux
// +build linux

// Copyright 2025 momentics@gmail.com
// Licensed under the Apache License, Version 2.0.

package sock

import (
	"errors"
	"net"
	"testing"
	"time"

	"golang.org/x/sys/unix"

	"github.com/momentics/hioload-echo/api"
)

func listenLoopback(t *testing.T) (int, string) {
	t.Helper()
	fd, err := Listen("127.0.0.1:0", 0)
	if err != nil {
		t.Fatalf("Listen: %v", err)
	}
	t.Cleanup(func() { TearDown(fd) })
	addr, err := LocalAddr(fd)
	if err != nil {
		t.Fatalf("LocalAddr: %v", err)
	}
	return fd, addr
}

func TestListenResolvesEphemeralPort(t *testing.T) {
	_, addr := listenLoopback(t)
	_, port, err := net.SplitHostPort(addr)
	if err != nil {
		t.Fatalf("SplitHostPort(%q): %v", addr, err)
	}
	if port == "0" || port == "" {
		t.Errorf("expected concrete port, got %q", addr)
	}
}

func TestAcceptEmptyQueueWouldBlock(t *testing.T) {
	lfd, _ := listenLoopback(t)
	if _, _, err := Accept(lfd); !errors.Is(err, api.ErrWouldBlock) {
		t.Fatalf("expected ErrWouldBlock, got %v", err)
	}
}

func TestSetNonblockIdempotent(t *testing.T) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		t.Fatalf("socket: %v", err)
	}
	defer TearDown(fd)
	if err := SetNonblock(fd); err != nil {
		t.Fatalf("first SetNonblock: %v", err)
	}
	if err := SetNonblock(fd); err != nil {
		t.Errorf("repeated SetNonblock: %v", err)
	}
}

func TestAcceptReadWrite(t *testing.T) {
	lfd, addr := listenLoopback(t)

	conn, err := net.Dial("tcp", addr)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	if _, err := conn.Write([]byte("ping")); err != nil {
		t.Fatalf("client write: %v", err)
	}

	var nfd int
	deadline := time.Now().Add(2 * time.Second)
	for {
		var aerr error
		nfd, _, aerr = Accept(lfd)
		if aerr == nil {
			break
		}
		if !errors.Is(aerr, api.ErrWouldBlock) {
			t.Fatalf("Accept: %v", aerr)
		}
		if time.Now().After(deadline) {
			t.Fatal("accept timed out")
		}
		time.Sleep(time.Millisecond)
	}
	defer TearDown(nfd)
	if err := SetNonblock(nfd); err != nil {
		t.Fatalf("SetNonblock: %v", err)
	}

	buf := make([]byte, 16)
	var n int
	for {
		var rerr error
		n, rerr = Read(nfd, buf)
		if rerr == nil {
			break
		}
		if !errors.Is(rerr, api.ErrWouldBlock) {
			t.Fatalf("Read: %v", rerr)
		}
		if time.Now().After(deadline) {
			t.Fatal("read timed out")
		}
		time.Sleep(time.Millisecond)
	}
	if string(buf[:n]) != "ping" {
		t.Fatalf("expected %q, got %q", "ping", buf[:n])
	}

	if _, err := Write(nfd, buf[:n]); err != nil {
		t.Fatalf("Write: %v", err)
	}
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	reply := make([]byte, 16)
	rn, err := conn.Read(reply)
	if err != nil {
		t.Fatalf("client read: %v", err)
	}
	if string(reply[:rn]) != "ping" {
		t.Fatalf("expected echo %q, got %q", "ping", reply[:rn])
	}
}

func TestTearDownTwice(t *testing.T) {
	fd, err := unix.Socket(unix.AF_INET, unix.SOCK_STREAM, unix.IPPROTO_TCP)
	if err != nil {
		t.Fatalf("socket: %v", err)
	}
	TearDown(fd)
	TearDown(fd) // must not fault on an already-closed handle
}
