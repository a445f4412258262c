package config

import (
	"errors"
	"fmt"
	"slices"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverFile     = "file"
	DriverS3       = "s3"
)

var drivers = []string{DriverSQLite, DriverPostgres, DriverFile, DriverS3}

// Config holds runtime settings shared by the CLI and the HTTP server.
type Config struct {
	StoreDriver string `json:"store_driver" yaml:"store_driver" env:"STORE_DRIVER"`
	StoreDSN    string `json:"store_dsn" yaml:"store_dsn" env:"STORE_DSN"`

	S3Bucket       string `json:"s3_bucket" yaml:"s3_bucket" env:"S3_BUCKET"`
	S3Region       string `json:"s3_region" yaml:"s3_region" env:"S3_REGION"`
	S3BaseEndpoint string `json:"s3_base_endpoint" yaml:"s3_base_endpoint" env:"S3_BASE_ENDPOINT"`
	S3AccessKey    string `json:"s3_access_key" yaml:"s3_access_key" env:"S3_ACCESS_KEY"`
	S3SecretKey    string `json:"s3_secret_key" yaml:"s3_secret_key" env:"S3_SECRET_KEY"`
	S3Prefix       string `json:"s3_prefix" yaml:"s3_prefix" env:"S3_PREFIX"`

	// Passphrase enables encryption at rest when non-empty.
	Passphrase string `json:"passphrase" yaml:"passphrase" env:"PASSPHRASE"`

	MessagesPersistLimit int   `json:"messages_persist_limit" yaml:"messages_persist_limit" env:"MESSAGES_PERSIST_LIMIT"`
	FanOutLimit          int   `json:"fan_out_limit" yaml:"fan_out_limit" env:"FAN_OUT_LIMIT"`
	UploadPartSize       int64 `json:"upload_part_size" yaml:"upload_part_size" env:"UPLOAD_PART_SIZE"`

	HTTPAddr       string   `json:"http_addr" yaml:"http_addr" env:"HTTP_ADDR"`
	AllowedOrigins []string `json:"allowed_origins" yaml:"allowed_origins" env:"ALLOWED_ORIGINS" envSeparator:","`

	LogLevel string `json:"log_level" yaml:"log_level" env:"LOG_LEVEL"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = DriverSQLite
	c.StoreDSN = "gophcache.db"
	c.S3Region = "us-east-1"
	c.MessagesPersistLimit = 20
	c.FanOutLimit = 8
	c.UploadPartSize = 5 << 20
	c.HTTPAddr = "127.0.0.1:8088"
	c.AllowedOrigins = []string{"http://localhost:3000"}
	c.LogLevel = "info"
}

// Validate reports settings that cannot work together.
func (c *Config) Validate() error {
	if !slices.Contains(drivers, c.StoreDriver) {
		return fmt.Errorf("unknown store driver %q", c.StoreDriver)
	}
	if c.StoreDriver == DriverS3 && c.S3Bucket == "" {
		return errors.New("s3 store requires a bucket")
	}
	if c.StoreDriver != DriverS3 && c.StoreDSN == "" {
		return fmt.Errorf("%s store requires a DSN", c.StoreDriver)
	}
	if c.MessagesPersistLimit <= 0 {
		return errors.New("messages persist limit must be positive")
	}
	if c.FanOutLimit <= 0 {
		return errors.New("fan-out limit must be positive")
	}
	if c.UploadPartSize <= 0 {
		return errors.New("upload part size must be positive")
	}
	return nil
}

// LoadConfig constructs a Config, applies defaults, then overlays the config
// file, the environment and command-line flags. Later sources take
// precedence over earlier ones.
func LoadConfig() (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg); err != nil {
		return nil, err
	}
	if err := parseEnv(cfg, nil); err != nil {
		return nil, err
	}
	if err := parseFlags(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
