// File: client/client.go
// Package client provides the interactive line-oriented echo client: a
// blocking request/response REPL over a single TCP connection.
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0

package client

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"net"
	"os"
	"strings"

	"github.com/momentics/hioload-echo/api"
)

// Config holds the client parameters. In/Out/Diag default to the process
// standard streams.
type Config struct {
	Addr      string
	ChunkSize int
	In        io.Reader
	Out       io.Writer
	Diag      io.Writer
}

// Client is a connected echo REPL session.
type Client struct {
	cfg  Config
	conn net.Conn
}

// Dial resolves and connects to the target. Failures are staged via
// api.ErrorCode so the process can exit with a distinct status per
// failure point (resolve, socket creation, connect).
func Dial(cfg Config) (*Client, error) {
	if cfg.ChunkSize <= 0 {
		cfg.ChunkSize = 1024
	}
	if cfg.In == nil {
		cfg.In = os.Stdin
	}
	if cfg.Out == nil {
		cfg.Out = os.Stdout
	}
	if cfg.Diag == nil {
		cfg.Diag = os.Stderr
	}
	ta, err := net.ResolveTCPAddr("tcp4", cfg.Addr)
	if err != nil {
		return nil, api.NewError(api.ErrCodeResolve, "resolve "+cfg.Addr, err)
	}
	conn, err := net.DialTCP("tcp4", nil, ta)
	if err != nil {
		var oe *net.OpError
		if errors.As(err, &oe) && oe.Op == "socket" {
			return nil, api.NewError(api.ErrCodeSocket, "socket create", err)
		}
		return nil, api.NewError(api.ErrCodeConnect, "connect "+cfg.Addr, err)
	}
	return &Client{cfg: cfg, conn: conn}, nil
}

// Run drives the REPL: each input line is sent verbatim and the server's
// response chunk printed, until EOF or a line beginning with "exit"
// terminates the session locally. A short or missing echo is surfaced as
// diagnostics, never as a crash.
func (c *Client) Run() error {
	fmt.Fprintf(c.cfg.Diag, "[*] [%s] Connected to server.\n", c.cfg.Addr)
	fmt.Fprintln(c.cfg.Out, `Type "exit" to end the connection.`)

	sc := bufio.NewScanner(c.cfg.In)
	buf := make([]byte, c.cfg.ChunkSize)
	for {
		fmt.Fprint(c.cfg.Out, "> ")
		if !sc.Scan() {
			break
		}
		line := sc.Text()
		if strings.HasPrefix(line, "exit") {
			break
		}
		if _, err := c.conn.Write([]byte(line + "\n")); err != nil {
			fmt.Fprintf(c.cfg.Diag, "send: %v\n", err)
			continue
		}
		n, err := c.conn.Read(buf)
		if n > 0 {
			c.cfg.Out.Write(buf[:n])
		}
		if err != nil {
			if err != io.EOF {
				fmt.Fprintf(c.cfg.Diag, "recv: %v\n", err)
			}
			break
		}
	}
	return sc.Err()
}

// Close ends the session and releases the socket. Safe to call after Run.
func (c *Client) Close() error {
	err := c.conn.Close()
	fmt.Fprintf(c.cfg.Diag, "[*] Connection closed.\n")
	return err
}
