package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for REPL output. In tests, replace it with a stub.
var printlnFn = fmt.Println

// execIface is the command surface the REPL dispatches to. *App implements
// it; tests use a recording stub.
type execIface interface {
	Help(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Publish(ctx context.Context, args []string) error
	Status(ctx context.Context) error
	Place(ctx context.Context, args []string) error
	Cleanup(ctx context.Context, args []string) error
}

// runREPL reads one command per line and dispatches it. The loop ends on
// EOF, on "exit"/"quit" or when ctx is cancelled between commands. Handler
// errors have already been reported to the user by the handler itself.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		if ctx.Err() != nil {
			return
		}
		printlnFn(fmt.Sprintf("placebot %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := strings.ToLower(parts[0]), parts[1:]

		switch cmd {
		case "help", "?":
			_ = a.Help(ctx)

		case "upload":
			_ = a.Upload(ctx, args)

		case "publish":
			_ = a.Publish(ctx, args)

		case "status":
			_ = a.Status(ctx)

		case "place":
			_ = a.Place(ctx, args)

		case "cleanup":
			_ = a.Cleanup(ctx, args)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd, "(type 'help' for commands)")
		}
	}
}
