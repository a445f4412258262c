package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeExec struct {
	loggedIn bool

	calls []string
	args  [][]string
	err   error
}

func (f *fakeExec) record(name string, args []string) error {
	f.calls = append(f.calls, name)
	f.args = append(f.args, args)
	return f.err
}

func (f *fakeExec) isLoggedIn() bool { return f.loggedIn }
func (f *fakeExec) Login(ctx context.Context, args []string) error {
	f.loggedIn = true
	return f.record("login", args)
}
func (f *fakeExec) WhoAmI(ctx context.Context) error { return f.record("whoami", nil) }
func (f *fakeExec) Logout(ctx context.Context) error {
	f.loggedIn = false
	return f.record("logout", nil)
}
func (f *fakeExec) Settings(ctx context.Context) error { return f.record("settings", nil) }
func (f *fakeExec) Theme(ctx context.Context, args []string) error {
	return f.record("theme", args)
}
func (f *fakeExec) Locale(ctx context.Context, args []string) error {
	return f.record("locale", args)
}
func (f *fakeExec) GeneralFolder(ctx context.Context, args []string) error {
	return f.record("generalfolder", args)
}
func (f *fakeExec) Folders(ctx context.Context) error { return f.record("folders", nil) }
func (f *fakeExec) AddFolder(ctx context.Context, args []string) error {
	return f.record("addfolder", args)
}
func (f *fakeExec) Messages(ctx context.Context, args []string) error {
	return f.record("messages", args)
}
func (f *fakeExec) AddMessage(ctx context.Context, args []string) error {
	return f.record("addmessage", args)
}
func (f *fakeExec) All(ctx context.Context) error { return f.record("all", nil) }
func (f *fakeExec) Upload(ctx context.Context, args []string) error {
	return f.record("upload", args)
}
func (f *fakeExec) Resume(ctx context.Context, args []string) error {
	return f.record("resume", args)
}
func (f *fakeExec) Progress(ctx context.Context, args []string) error {
	return f.record("progress", args)
}
func (f *fakeExec) RemoveFile(ctx context.Context, args []string) error {
	return f.record("rmfile", args)
}
func (f *fakeExec) Touch(ctx context.Context, args []string) error {
	return f.record("touch", args)
}

func captureOutput(t *testing.T) *[]string {
	t.Helper()
	var out []string
	origPrint := printlnFn
	printlnFn = func(a ...any) (int, error) {
		out = append(out, strings.TrimSuffix(fmt.Sprintln(a...), "\n"))
		return 0, nil
	}
	t.Cleanup(func() { printlnFn = origPrint })
	return &out
}

func TestRunREPL_DispatchesCommands(t *testing.T) {
	captureOutput(t)

	input := strings.NewReader(strings.Join([]string{
		"help",
		"login ann ann@example.com",
		"whoami",
		"theme dark",
		"addfolder inbox Main Inbox",
		"addmessage inbox hello there",
		"messages inbox",
		"all",
		"upload /tmp/x.bin",
		"progress f1",
		"resume f1",
		"rmfile f1",
		"touch folders",
		"settings",
		"locale ru",
		"generalfolder off",
		"folders",
		"logout",
		"exit",
		"whoami",
	}, "\n"))

	exec := &fakeExec{}
	runREPL(context.Background(), exec, func() string { return "status" }, bufio.NewScanner(input))

	assert.Equal(t, []string{
		"login", "whoami", "theme", "addfolder", "addmessage", "messages", "all",
		"upload", "progress", "resume", "rmfile", "touch", "settings", "locale",
		"generalfolder", "folders", "logout",
	}, exec.calls)
	assert.Equal(t, []string{"ann", "ann@example.com"}, exec.args[0])
	assert.Equal(t, []string{"inbox", "Main", "Inbox"}, exec.args[3])
}

func TestRunREPL_UsageUnknownAndQuit(t *testing.T) {
	out := captureOutput(t)

	input := strings.NewReader("login\naddfolder inbox\nfoobar\n\nquit\n")
	exec := &fakeExec{loggedIn: true}

	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(input))

	assert.Empty(t, exec.calls)
	assert.Contains(t, *out, "Usage: login <name> [email]")
	assert.Contains(t, *out, "Usage: addfolder <id> <name>")
	assert.Contains(t, *out, "Unknown command: foobar")
	assert.Contains(t, *out, "Bye!")
}

func TestRunREPL_PrintsHandlerErrors(t *testing.T) {
	out := captureOutput(t)

	exec := &fakeExec{err: errors.New("boom")}
	runREPL(context.Background(), exec, func() string { return "s" }, bufio.NewScanner(strings.NewReader("folders\n")))

	assert.Equal(t, []string{"folders"}, exec.calls)
	assert.Contains(t, *out, "Error: boom")
}

func TestRunREPL_HelpDependsOnLogin(t *testing.T) {
	out := captureOutput(t)

	runREPL(context.Background(), &fakeExec{}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))
	runREPL(context.Background(), &fakeExec{loggedIn: true}, func() string { return "" }, bufio.NewScanner(strings.NewReader("help\n")))

	var helps []string
	for _, l := range *out {
		if strings.HasPrefix(l, "Available commands:") {
			helps = append(helps, l)
		}
	}
	if assert.Len(t, helps, 2) {
		assert.NotContains(t, helps[0], "addfolder")
		assert.Contains(t, helps[1], "addfolder")
	}
}
