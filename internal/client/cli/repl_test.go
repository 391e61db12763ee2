package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	err   error
}

func (f *fakeExec) record(call string) error {
	f.calls = append(f.calls, call)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool                   { return f.loggedIn }
func (f *fakeExec) Health(ctx context.Context) error   { return f.record("health") }
func (f *fakeExec) Register(ctx context.Context) error { return f.record("register") }
func (f *fakeExec) Login(ctx context.Context) error    { f.loggedIn = true; return f.record("login") }
func (f *fakeExec) Logout(ctx context.Context) error   { f.loggedIn = false; return f.record("logout") }
func (f *fakeExec) List(ctx context.Context) error     { return f.record("list") }
func (f *fakeExec) Upload(ctx context.Context, p string) error {
	return f.record("upload " + p)
}
func (f *fakeExec) Delete(ctx context.Context, name string) error {
	return f.record("delete " + name)
}
func (f *fakeExec) Share(ctx context.Context, name string) error {
	return f.record("share " + name)
}
func (f *fakeExec) Download(ctx context.Context, name, dest string) error {
	return f.record(fmt.Sprintf("download %s %q", name, dest))
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	origPrint, origPrintln := printFn, printlnFn
	t.Cleanup(func() { printFn, printlnFn = origPrint, origPrintln })

	var lines []string
	printFn = func(...any) (int, error) { return 0, nil }
	printlnFn = func(a ...any) (int, error) {
		lines = append(lines, strings.TrimSpace(fmt.Sprintln(a...)))
		return 0, nil
	}
	return &lines
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	out := captureOutput(t)

	input := strings.Join([]string{
		"help",
		"login",
		"help",
		"",
		"upload ./a.txt",
		"list",
		"share docs/a.txt",
		"download a.txt",
		"download a.txt /tmp/x",
		"delete a.txt",
		"foobar",
		"logout",
		"exit",
		"list",
	}, "\n")

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "" }, rdr(input))

	assert.Equal(t, []string{
		"login",
		"upload ./a.txt",
		"list",
		"share docs/a.txt",
		`download a.txt ""`,
		`download a.txt "/tmp/x"`,
		"delete a.txt",
		"logout",
	}, exec.calls)

	assert.Contains(t, *out, helpText(false))
	assert.Contains(t, *out, helpText(true))
	assert.Contains(t, *out, "Error: unknown command: foobar")
	assert.Equal(t, "Bye!", (*out)[len(*out)-1])
}

func TestRunREPL_UsageErrorsAndEOF(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{loggedIn: true}
	runREPL(context.Background(), exec, func() string { return "s" }, rdr("upload\ndelete\nshare a b\ndownload\n"))

	assert.Empty(t, exec.calls)
	assert.Equal(t, []string{
		"Error: usage: upload <path>",
		"Error: usage: delete <name>",
		"Error: usage: share <name>",
		"Error: usage: download <name> [dest]",
		"",
	}, *out)
}

func TestRunREPL_CommandErrorDoesNotStopLoop(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "" }, rdr("list\nhealth\nquit\n"))

	assert.Equal(t, []string{"list", "health"}, exec.calls)
	assert.Equal(t, []string{"Error: boom", "Error: boom", "Bye!"}, *out)
}

func TestRunREPL_StopsOnCancelledContext(t *testing.T) {
	captureOutput(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	exec := &fakeExec{}
	runREPL(ctx, exec, func() string { return "" }, rdr("list\n"))
	assert.Empty(t, exec.calls)
}

func TestDispatch_Aliases(t *testing.T) {
	captureOutput(t)

	exec := &fakeExec{}
	ctx := context.Background()
	for _, cmd := range [][]string{{"ls"}, {"l"}, {"put", "f"}, {"rm", "f"}, {"get", "f", "d"}} {
		require.NoError(t, dispatch(ctx, exec, cmd[0], cmd[1:]))
	}
	assert.Equal(t, []string{"list", "list", "upload f", "delete f", `download f "d"`}, exec.calls)

	err := dispatch(ctx, exec, "nope", nil)
	assert.ErrorIs(t, err, errUnknownCommand)
}
