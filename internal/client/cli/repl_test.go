package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeCommands struct {
	loggedIn bool
	calls    []string
	out      strings.Builder
}

func (f *fakeCommands) isLoggedIn() bool { return f.loggedIn }
func (f *fakeCommands) Register(context.Context) error {
	f.calls = append(f.calls, "register")
	return nil
}
func (f *fakeCommands) Login(context.Context) error {
	f.calls = append(f.calls, "login")
	f.loggedIn = true
	return nil
}
func (f *fakeCommands) Profile(context.Context) error {
	f.calls = append(f.calls, "profile")
	return nil
}
func (f *fakeCommands) Logout(context.Context) error {
	f.calls = append(f.calls, "logout")
	f.loggedIn = false
	return nil
}
func (f *fakeCommands) Status(context.Context) error {
	f.calls = append(f.calls, "status")
	return nil
}
func (f *fakeCommands) print(s string)      { f.out.WriteString(s) }
func (f *fakeCommands) println(args ...any) { f.out.WriteString(fmt.Sprintln(args...)) }

func run(f *fakeCommands, lines ...string) {
	r := bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
	runREPL(context.Background(), f, func() string { return "> " }, r)
}

func TestRunREPL_Dispatch(t *testing.T) {
	f := &fakeCommands{}
	run(f, "help", "profile", "logout", "register", "login", "help", "", "profile", "status", "logout", "bogus", "exit", "login")

	assert.Equal(t, []string{"register", "login", "profile", "status", "logout"}, f.calls)
	out := f.out.String()
	assert.Contains(t, out, "Available commands: register, login, status, exit")
	assert.Contains(t, out, "Available commands: profile, status, logout, exit")
	assert.Equal(t, 2, strings.Count(out, "Not logged in"))
	assert.Contains(t, out, "Unknown command: bogus")
	assert.Contains(t, out, "Bye!")
}

func TestRunREPL_StopsOnEOF(t *testing.T) {
	f := &fakeCommands{}
	run(f, "register")
	assert.Equal(t, []string{"register"}, f.calls)
}

func TestRunREPL_QuitAndCancel(t *testing.T) {
	f := &fakeCommands{}
	run(f, "quit", "register")
	assert.Empty(t, f.calls)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	runREPL(ctx, f, func() string { return "> " }, bufio.NewReader(strings.NewReader("register\n")))
	assert.Empty(t, f.calls)
}
