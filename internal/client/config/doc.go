// Package config loads runtime configuration for the gophcache binaries.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON or YAML file selected with -c or -config. The format
//     follows the file extension (.json, .yaml, .yml).
//  3. Environment variables prefixed with GOPHCACHE_, e.g.
//     GOPHCACHE_STORE_DRIVER=postgres.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   store driver: sqlite, postgres, file or s3
//	-s string   store DSN (sqlite/postgres DSN or a directory for file)
//	-a string   address of the local HTTP API
//	-l int      number of messages per folder kept in the durable store
//	-k string   passphrase for encryption at rest ("-" prompts for it)
//	-v string   log level: debug, info, warn, error
//
// # File schema
//
//	store_driver: sqlite
//	store_dsn: gophcache.db
//	s3_bucket: cache
//	messages_persist_limit: 20
//	fan_out_limit: 8
//	upload_part_size: 5242880
//	http_addr: 127.0.0.1:8088
//	allowed_origins: ["http://localhost:3000"]
//	log_level: info
package config
