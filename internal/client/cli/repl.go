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
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Forgot(ctx context.Context) error
	Logout(ctx context.Context) error
	Feedback(ctx context.Context) error
	Shake(ctx context.Context) error
	Status(ctx context.Context) error
	Profile(ctx context.Context) error
	Edit(ctx context.Context, args []string) error
	History(ctx context.Context) error
	Activity(ctx context.Context) error
	Motion(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the shake tracker CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current status (from statusFn) and accepts commands:
//
//	Not logged in:
//	  - help           — show available commands
//	  - register       — create an account
//	  - login          — authenticate
//	  - forgot         — request a password reset email
//	  - exit | quit    — leave the program
//
//	Logged in:
//	  - help           — show available commands
//	  - shake          — record one shake
//	  - status         — today's count, remaining quota, reset countdown
//	  - profile        — show the merged profile
//	  - edit           — edit avatar/bio/phone
//	  - history        — list recent shakes
//	  - activity       — list recent activity feed entries
//	  - motion         — feed accelerometer samples interactively
//	  - feedback       — send a feedback report
//	  - logout         — log out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// log their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("st> %s > ", statusFn()))
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
			if a.isLoggedIn() {
				printlnFn("Available commands: shake, status, profile, edit, history, activity, motion, feedback, logout, exit")
			} else {
				printlnFn("Available commands: register, login, forgot, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "forgot":
			_ = a.Forgot(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "feedback":
			_ = a.Feedback(ctx)

		case "shake":
			_ = a.Shake(ctx)

		case "s", "status":
			_ = a.Status(ctx)

		case "profile":
			_ = a.Profile(ctx)

		case "edit":
			_ = a.Edit(ctx, args)

		case "history":
			_ = a.History(ctx)

		case "activity":
			_ = a.Activity(ctx)

		case "motion":
			_ = a.Motion(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
