package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output. In tests, replace it with a stub.
var printlnFn = func(args ...any) { fmt.Println(args...) }

// execIface defines the minimal command surface the REPL needs to operate.
// The real App type satisfies this interface; tests can provide a stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Logout(ctx context.Context) error
	Users(ctx context.Context) error
	Notes(ctx context.Context) error
	AddNote(ctx context.Context) error
	Join(ctx context.Context, channel string) error
	Send(ctx context.Context, channel, content string) error
}

// runREPL starts a simple read-eval-print loop.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - login          — authenticate
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help                    — show available commands
//	  - users                   — list the roster
//	  - notes                   — list shared notes
//	  - addnote                 — create a note (interactive)
//	  - join <channel>          — subscribe to a chat channel
//	  - send <channel> <text>   — post a chat message
//	  - logout                  — drop the session
//	  - exit | quit             — leave the program
//
// Errors returned by command handlers are ignored here; handlers log their
// own errors. This keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("chat> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: users, notes, addnote, join <channel>, send <channel> <text>, logout, exit")
			} else {
				printlnFn("Available commands: login, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "users":
			_ = a.Users(ctx)

		case "notes":
			_ = a.Notes(ctx)

		case "addnote":
			_ = a.AddNote(ctx)

		case "join":
			if len(parts) != 2 {
				printlnFn("Usage: join <channel>")
				continue
			}
			_ = a.Join(ctx, parts[1])

		case "send":
			if len(parts) < 3 {
				printlnFn("Usage: send <channel> <text>")
				continue
			}
			_ = a.Send(ctx, parts[1], strings.Join(parts[2:], " "))

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
