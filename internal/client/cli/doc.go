// Package cli provides the interactive gophcache command-line client.
//
// It drives the offline data cache directly: sign in and out, change
// settings, manage folders and messages, and run resumable uploads. Every
// command reads and writes through the cache, so state survives a restart of
// the CLI whatever durable store is configured.
//
// The REPL is started via App.Root(ctx), which blocks until the user exits.
// See App and runREPL for details.
package cli
