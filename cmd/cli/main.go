package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/dmitrijs2005/gophcache/internal/buildinfo"
	"github.com/dmitrijs2005/gophcache/internal/client/bootstrap"
	"github.com/dmitrijs2005/gophcache/internal/client/cli"
	"github.com/dmitrijs2005/gophcache/internal/client/config"
	"github.com/dmitrijs2005/gophcache/internal/logging"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := bootstrap.ResolvePassphrase(cfg, os.Stdout); err != nil {
		log.Fatalf("%v", err)
	}

	logger := logging.New(cfg.LogLevel, os.Stderr, false)
	b, err := bootstrap.Open(ctx, cfg, logger)
	if err != nil {
		log.Fatalf("%v", err)
	}

	cli.NewApp(b.Cache, cfg.UploadPartSize, logger).Root(ctx)

	closeCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := b.Close(closeCtx); err != nil {
		logger.Error(ctx, "failed to flush cache", "error", err)
	}
}
