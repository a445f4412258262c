package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/google/uuid"

	"github.com/dmitrijs2005/gophcache/internal/client/datacache"
	"github.com/dmitrijs2005/gophcache/internal/client/uploads"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

type App struct {
	cache    *datacache.DataCache
	uploader *uploads.Uploader
	log      logging.Logger
	scanner  *bufio.Scanner
	out      io.Writer

	newID    func() string
	readFile func(string) ([]byte, error)
}

func NewApp(dc *datacache.DataCache, partSize int64, log logging.Logger) *App {
	return &App{
		cache:    dc,
		uploader: &uploads.Uploader{Cache: dc, PartSize: partSize, Log: log},
		log:      log,
		scanner:  bufio.NewScanner(os.Stdin),
		out:      os.Stdout,
		newID:    uuid.NewString,
		readFile: os.ReadFile,
	}
}

func (a *App) isLoggedIn() bool {
	return a.cache.GetUser(context.Background()) != nil
}

func (a *App) getStatus() string {
	u := a.cache.GetUser(context.Background())
	if u == nil {
		return "(guest)"
	}
	return fmt.Sprintf("(%s)", u.Name)
}

// Root runs the REPL on stdin until the user exits.
func (a *App) Root(ctx context.Context) {
	printlnFn("Welcome to gophcache CLI (type 'help' for commands)")
	runREPL(ctx, a, a.getStatus, a.scanner)
}
