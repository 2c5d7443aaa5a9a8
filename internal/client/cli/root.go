package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// commandRunner is the command surface the REPL dispatches to. The real App
// satisfies it; tests can provide a stub.
type commandRunner interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	AddNote(ctx context.Context) error
	List(ctx context.Context, args []string) error
	Show(ctx context.Context, args []string) error
	Edit(ctx context.Context, args []string) error
	Delete(ctx context.Context, args []string) error
	Logout(ctx context.Context) error
}

func (a *App) getStatus() string {
	if a.userName != "" {
		return fmt.Sprintf("(%s) ", a.userName)
	}
	return ""
}

func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to the notes CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}

// runREPL reads a line from the scanner, parses the first token as the
// command and dispatches to a. The loop exits on scanner EOF or when the
// user types "exit" or "quit". Errors returned by command handlers are
// ignored here; handlers report their own errors.
func runREPL(ctx context.Context, a commandRunner, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("notes %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: add, (l)ist [query], show <id>, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: register, login, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "add":
			_ = a.AddNote(ctx)

		case "l", "list":
			_ = a.List(ctx, args)

		case "show":
			_ = a.Show(ctx, args)

		case "edit":
			_ = a.Edit(ctx, args)

		case "delete":
			_ = a.Delete(ctx, args)

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
