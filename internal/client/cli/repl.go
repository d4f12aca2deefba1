package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a lightweight stub.
type execIface interface {
	isConnected() bool
	Connect(ctx context.Context, args []string) error
	Init(ctx context.Context) error
	Refresh(ctx context.Context) error
	List(ctx context.Context) error
	Mine(ctx context.Context) error
	Stats(ctx context.Context) error
	Show(ctx context.Context, args []string) error
	Search(ctx context.Context, args []string) error
	Share(ctx context.Context) error
	Decrypt(ctx context.Context, args []string) error
	Watch(ctx context.Context) error
}

// runREPL starts a read–eval–print loop for the LocShare CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("locshare %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isConnected() {
				printlnFn("Available commands: init, refresh, (l)ist, mine, stats, show, search, share, decrypt, watch, exit")
			} else {
				printlnFn("Available commands: connect, refresh, (l)ist, stats, watch, exit")
			}

		case "connect":
			_ = a.Connect(ctx, args)

		case "init":
			_ = a.Init(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "l", "list":
			_ = a.List(ctx)

		case "mine":
			_ = a.Mine(ctx)

		case "stats":
			_ = a.Stats(ctx)

		case "show":
			_ = a.Show(ctx, args)

		case "search":
			_ = a.Search(ctx, args)

		case "share":
			_ = a.Share(ctx)

		case "decrypt":
			_ = a.Decrypt(ctx, args)

		case "watch":
			_ = a.Watch(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
