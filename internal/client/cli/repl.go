package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
)

// commands is the surface runREPL drives. App implements it.
type commands interface {
	isLoggedIn() bool
	Register(ctx context.Context) error
	Login(ctx context.Context) error
	Profile(ctx context.Context) error
	Logout(ctx context.Context) error
	Status(ctx context.Context) error
	print(s string)
	println(args ...any)
}

// runREPL reads one command per line until EOF, exit or quit. Handlers
// report their own errors. Commands that need a session are refused while
// anonymous.
func runREPL(ctx context.Context, a commands, prompt func() string, reader *bufio.Reader) {
	for {
		if ctx.Err() != nil {
			return
		}
		a.print(prompt())

		line, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			a.println()
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}

		switch cmd := parts[0]; cmd {
		case "help":
			if a.isLoggedIn() {
				a.println("Available commands: profile, status, logout, exit")
			} else {
				a.println("Available commands: register, login, status, exit")
			}

		case "register":
			_ = a.Register(ctx)

		case "login":
			_ = a.Login(ctx)

		case "profile":
			if !a.isLoggedIn() {
				a.println("Not logged in")
				continue
			}
			_ = a.Profile(ctx)

		case "logout":
			if !a.isLoggedIn() {
				a.println("Not logged in")
				continue
			}
			_ = a.Logout(ctx)

		case "status":
			_ = a.Status(ctx)

		case "exit", "quit":
			a.println("Bye!")
			return

		default:
			a.println("Unknown command:", cmd)
		}
	}
}
