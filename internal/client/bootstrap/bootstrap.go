// Package bootstrap turns a config.Config into a ready DataCache: it opens the
// configured durable store, wraps it for encryption at rest when a passphrase
// is set, and wires logging and limits.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dmitrijs2005/gophcache/internal/client/cache"
	"github.com/dmitrijs2005/gophcache/internal/client/config"
	"github.com/dmitrijs2005/gophcache/internal/client/datacache"
	"github.com/dmitrijs2005/gophcache/internal/client/durable"
	"github.com/dmitrijs2005/gophcache/internal/client/durable/filestore"
	"github.com/dmitrijs2005/gophcache/internal/client/durable/s3store"
	"github.com/dmitrijs2005/gophcache/internal/client/durable/sealed"
	"github.com/dmitrijs2005/gophcache/internal/client/durable/sqlstore"
	"github.com/dmitrijs2005/gophcache/internal/flagx"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

var (
	openSQL  = func(ctx context.Context, d sqlstore.Driver, dsn string) (durable.Store, error) { return sqlstore.Open(ctx, d, dsn) }
	openFile = func(dir string) (durable.Store, error) { return filestore.Open(dir) }
	openS3   = func(ctx context.Context, c s3store.Config) (durable.Store, error) { return s3store.New(ctx, c) }

	readPassword = term.ReadPassword
	isTerminal   = term.IsTerminal
)

// App holds the cache and the resources behind it.
type App struct {
	Cache *datacache.DataCache
	Store durable.Store

	closers []io.Closer
}

// Open builds the cache described by cfg. The caller must Close the App.
func Open(ctx context.Context, cfg *config.Config, log logging.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg)
	if err != nil {
		return nil, err
	}

	app := &App{}
	if c, ok := store.(io.Closer); ok {
		app.closers = append(app.closers, c)
	}

	if cfg.Passphrase != "" {
		s, err := sealed.Wrap(ctx, store, []byte(cfg.Passphrase))
		if err != nil {
			_ = app.closeAll()
			return nil, fmt.Errorf("seal store: %w", err)
		}
		app.closers = append([]io.Closer{s}, app.closers...)
		store = s
	}

	app.Store = store
	app.Cache = datacache.New(
		cache.New(store, cache.WithLogger(log)),
		datacache.WithLogger(log),
		datacache.WithMessagesPersistLimit(cfg.MessagesPersistLimit),
		datacache.WithFanOutLimit(cfg.FanOutLimit),
	)

	log.Info(ctx, "cache opened", "driver", cfg.StoreDriver, "sealed", cfg.Passphrase != "")
	return app, nil
}

// OpenStore opens the durable store named by cfg.StoreDriver.
func OpenStore(ctx context.Context, cfg *config.Config) (durable.Store, error) {
	switch cfg.StoreDriver {
	case config.DriverSQLite:
		return openSQL(ctx, sqlstore.DriverSQLite, cfg.StoreDSN)
	case config.DriverPostgres:
		return openSQL(ctx, sqlstore.DriverPostgres, cfg.StoreDSN)
	case config.DriverFile:
		return openFile(cfg.StoreDSN)
	case config.DriverS3:
		return openS3(ctx, s3store.Config{
			Bucket:       cfg.S3Bucket,
			Region:       cfg.S3Region,
			BaseEndpoint: cfg.S3BaseEndpoint,
			AccessKey:    cfg.S3AccessKey,
			SecretKey:    cfg.S3SecretKey,
			Prefix:       cfg.S3Prefix,
		})
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}

// Close flushes pending writes and releases the store.
func (a *App) Close(ctx context.Context) error {
	err := a.Cache.Close(ctx)
	return errors.Join(err, a.closeAll())
}

func (a *App) closeAll() error {
	var errs []error
	for _, c := range a.closers {
		errs = append(errs, c.Close())
	}
	return errors.Join(errs...)
}

// ResolvePassphrase replaces the flagx.StdinValue passphrase with one read
// from the terminal without echo.
func ResolvePassphrase(cfg *config.Config, prompt io.Writer) error {
	if cfg.Passphrase != flagx.StdinValue {
		return nil
	}

	fd := int(os.Stdin.Fd())
	if !isTerminal(fd) {
		return errors.New("passphrase prompt requires a terminal")
	}

	fmt.Fprint(prompt, "Passphrase: ")
	b, err := readPassword(fd)
	fmt.Fprintln(prompt)
	if err != nil {
		return fmt.Errorf("read passphrase: %w", err)
	}

	pass := strings.TrimSpace(string(b))
	if pass == "" {
		return errors.New("empty passphrase")
	}
	cfg.Passphrase = pass
	return nil
}
