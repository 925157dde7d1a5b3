// Copyright (c) 2025
// Author: momentics <momentics@gmail.com>

// Command echo-client connects to an echo server and runs a blocking
// line-oriented REPL. Exit codes: 1 usage, 2 address resolution,
// 3 socket creation, 4 connection failure, 0 normal close.

package main

import (
	"flag"
	"fmt"
	"net"
	"os"

	"github.com/momentics/hioload-echo/api"
	"github.com/momentics/hioload-echo/client"
)

func main() {
	flag.Parse()
	if flag.NArg() != 2 {
		fmt.Fprintf(os.Stderr, "Usage: %s <host> <port>\n", os.Args[0])
		os.Exit(1)
	}

	c, err := client.Dial(client.Config{
		Addr: net.JoinHostPort(flag.Arg(0), flag.Arg(1)),
	})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		switch api.CodeOf(err) {
		case api.ErrCodeResolve:
			os.Exit(2)
		case api.ErrCodeSocket:
			os.Exit(3)
		default:
			os.Exit(4)
		}
	}
	defer c.Close()

	if err := c.Run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}
