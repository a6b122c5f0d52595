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
	devEnabled() bool
	Login(ctx context.Context) error
	Register(ctx context.Context) error
	Dev(ctx context.Context) error
	Whoami(ctx context.Context) error
	EditProfile(ctx context.Context) error
	Schedule(ctx context.Context) error
	Enroll(ctx context.Context) error
	CancelEnrollment(ctx context.Context) error
	Achievements(ctx context.Context) error
	Refresh(ctx context.Context) error
	Logout(ctx context.Context) error
}

// runREPL starts a simple read–eval–print loop for the miniclub CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Prompt & Commands
//
// The prompt shows the current session status (from statusFn) and accepts:
//
//	Signed out:
//	  - help           — show available commands
//	  - login          — sign in with email and password
//	  - register       — create an account
//	  - dev            — development sign-in (dev mode only)
//	  - exit | quit    — leave the program
//
//	Signed in:
//	  - help           — show available commands
//	  - whoami|profile — show the current profile
//	  - edit           — edit the profile
//	  - schedule       — list club activities
//	  - enroll         — enroll into an activity
//	  - cancel         — cancel an enrollment
//	  - achievements   — show achievements
//	  - refresh        — re-fetch the profile
//	  - logout         — sign out
//	  - exit | quit    — leave the program
//
// Any errors returned by command handlers are ignored here; handlers should
// report their own errors. This keeps the REPL loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("mc> %s > ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, edit, schedule, enroll, cancel, achievements, refresh, logout, exit")
			} else if a.devEnabled() {
				printlnFn("Available commands: login, register, dev, exit")
			} else {
				printlnFn("Available commands: login, register, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "register":
			_ = a.Register(ctx)

		case "dev":
			if !a.devEnabled() {
				printlnFn("Unknown command:", cmd)
				continue
			}
			_ = a.Dev(ctx)

		case "whoami", "profile":
			_ = a.Whoami(ctx)

		case "edit":
			_ = a.EditProfile(ctx)

		case "schedule":
			_ = a.Schedule(ctx)

		case "enroll":
			_ = a.Enroll(ctx)

		case "cancel":
			_ = a.CancelEnrollment(ctx)

		case "achievements":
			_ = a.Achievements(ctx)

		case "refresh":
			_ = a.Refresh(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
