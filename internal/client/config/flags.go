package config

import (
	"flag"
	"os"

	"github.com/dmitrijs2005/gophcache/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// The function filters os.Args to only include the flags it knows about,
// using flagx.FilterArgs, to avoid interference with other components.
func parseFlags(cfg *Config) error {
	args := flagx.FilterArgs(os.Args[1:], []string{"-d", "-s", "-a", "-l", "-k", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.StoreDriver, "d", cfg.StoreDriver, "store driver (sqlite, postgres, file, s3)")
	fs.StringVar(&cfg.StoreDSN, "s", cfg.StoreDSN, "store DSN or directory")
	fs.StringVar(&cfg.HTTPAddr, "a", cfg.HTTPAddr, "address of the local HTTP API")
	fs.IntVar(&cfg.MessagesPersistLimit, "l", cfg.MessagesPersistLimit, "messages per folder kept in the store")
	fs.StringVar(&cfg.Passphrase, "k", cfg.Passphrase, `passphrase for encryption at rest ("-" to prompt)`)
	fs.StringVar(&cfg.LogLevel, "v", cfg.LogLevel, "log level")

	return fs.Parse(args)
}
