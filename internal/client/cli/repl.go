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
	Login(ctx context.Context, args []string) error
	WhoAmI(ctx context.Context) error
	Logout(ctx context.Context) error
	Settings(ctx context.Context) error
	Theme(ctx context.Context, args []string) error
	Locale(ctx context.Context, args []string) error
	GeneralFolder(ctx context.Context, args []string) error
	Folders(ctx context.Context) error
	AddFolder(ctx context.Context, args []string) error
	Messages(ctx context.Context, args []string) error
	AddMessage(ctx context.Context, args []string) error
	All(ctx context.Context) error
	Upload(ctx context.Context, args []string) error
	Resume(ctx context.Context, args []string) error
	Progress(ctx context.Context, args []string) error
	RemoveFile(ctx context.Context, args []string) error
	Touch(ctx context.Context, args []string) error
}

// usage lists commands that need arguments and their minimum count.
var usage = map[string]struct {
	min  int
	text string
}{
	"login":         {1, "Usage: login <name> [email]"},
	"theme":         {1, "Usage: theme light|dark"},
	"locale":        {1, "Usage: locale en|ru"},
	"generalfolder": {1, "Usage: generalfolder on|off"},
	"addfolder":     {2, "Usage: addfolder <id> <name>"},
	"messages":      {1, "Usage: messages <folderId>"},
	"addmessage":    {2, "Usage: addmessage <folderId> <subject>"},
	"upload":        {1, "Usage: upload <path>"},
	"resume":        {1, "Usage: resume <fileId>"},
	"progress":      {1, "Usage: progress <fileId>"},
	"rmfile":        {1, "Usage: rmfile <fileId>"},
	"touch":         {1, "Usage: touch <query>"},
}

// runREPL starts a simple read–eval–print loop for the gophcache CLI.
//
// It reads a line from the provided scanner, parses the first token as the
// command, and dispatches to methods on 'a'. Unknown commands are reported
// back to the user. The loop exits on scanner EOF or when the user types
// "exit" or "quit".
//
// Commands that need arguments print their usage when called without them.
// Errors returned by handlers are printed and the loop continues.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("gc %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}
		cmd, args := parts[0], parts[1:]

		if u, ok := usage[cmd]; ok && len(args) < u.min {
			printlnFn(u.text)
			continue
		}

		var err error
		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: whoami, logout, settings, theme, locale, generalfolder, " +
					"folders, addfolder, messages, addmessage, all, upload, resume, progress, rmfile, touch, exit")
			} else {
				printlnFn("Available commands: login, settings, theme, locale, generalfolder, " +
					"upload, resume, progress, rmfile, touch, exit")
			}
		case "login":
			err = a.Login(ctx, args)
		case "whoami":
			err = a.WhoAmI(ctx)
		case "logout":
			err = a.Logout(ctx)
		case "settings":
			err = a.Settings(ctx)
		case "theme":
			err = a.Theme(ctx, args)
		case "locale":
			err = a.Locale(ctx, args)
		case "generalfolder":
			err = a.GeneralFolder(ctx, args)
		case "folders":
			err = a.Folders(ctx)
		case "addfolder":
			err = a.AddFolder(ctx, args)
		case "messages":
			err = a.Messages(ctx, args)
		case "addmessage":
			err = a.AddMessage(ctx, args)
		case "all":
			err = a.All(ctx)
		case "upload":
			err = a.Upload(ctx, args)
		case "resume":
			err = a.Resume(ctx, args)
		case "progress":
			err = a.Progress(ctx, args)
		case "rmfile":
			err = a.RemoveFile(ctx, args)
		case "touch":
			err = a.Touch(ctx, args)
		case "exit", "quit":
			printlnFn("Bye!")
			return
		default:
			printlnFn("Unknown command:", cmd)
		}

		if err != nil {
			printlnFn("Error:", err)
		}
	}
}
