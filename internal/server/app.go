// Package server runs the local HTTP API in front of the offline cache. It
// opens the configured store, serves until SIGINT/SIGTERM, and flushes pending
// writes before exit.
package server

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dmitrijs2005/gophcache/internal/client/bootstrap"
	"github.com/dmitrijs2005/gophcache/internal/client/config"
	"github.com/dmitrijs2005/gophcache/internal/client/httpapi"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

const flushTimeout = 10 * time.Second

type App struct {
	config *config.Config
	logger logging.Logger
	cache  *bootstrap.App
}

func NewApp(ctx context.Context, c *config.Config) (*App, error) {
	logger := logging.New(c.LogLevel, os.Stdout, true)

	b, err := bootstrap.Open(ctx, c, logger)
	if err != nil {
		return nil, fmt.Errorf("cache init error: %w", err)
	}

	return &App{config: c, logger: logger, cache: b}, nil
}

func (app *App) initSignalHandler(cancelFunc context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)

	go func() {
		<-sigs
		cancelFunc()
	}()
}

// Run serves until ctx is canceled or a signal arrives.
func (app *App) Run(ctx context.Context) error {
	ctx, cancelFunc := context.WithCancel(ctx)
	defer cancelFunc()

	app.logger.Info(ctx, "Starting app...")
	app.initSignalHandler(cancelFunc)

	api := httpapi.New(app.cache.Cache, app.logger)
	err := httpapi.Serve(ctx, app.config.HTTPAddr, api.Handler(app.config.AllowedOrigins), app.logger)
	if err != nil {
		app.logger.Error(ctx, "http server failed", "error", err)
	}

	flushCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), flushTimeout)
	defer cancel()
	if cerr := app.cache.Close(flushCtx); cerr != nil {
		app.logger.Error(ctx, "failed to flush cache", "error", cerr)
		if err == nil {
			err = cerr
		}
	}

	app.logger.Info(ctx, "Stopped")
	return err
}
