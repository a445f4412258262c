package main

import (
	"context"
	"log"
	"os"

	"github.com/dmitrijs2005/gophcache/internal/buildinfo"
	"github.com/dmitrijs2005/gophcache/internal/client/bootstrap"
	"github.com/dmitrijs2005/gophcache/internal/client/config"
	"github.com/dmitrijs2005/gophcache/internal/server"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if err := bootstrap.ResolvePassphrase(cfg, os.Stderr); err != nil {
		log.Fatalf("%v", err)
	}

	app, err := server.NewApp(ctx, cfg)
	if err != nil {
		log.Fatalf("%v", err)
	}

	if err := app.Run(ctx); err != nil {
		os.Exit(1)
	}
}
