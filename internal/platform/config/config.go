// Copyright (c) 2026 EasyBuy. All rights reserved.

/*
Package config handles application-wide settings and environment parsing.

It leverages 'caarlos0/env' to map OS environment variables into a strongly-typed
Go struct, providing early validation and default values.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

Architecture:

  - Immutability: Once loaded, configuration is read-only.
  - DI-Friendly: Passed to core components (DB, Redis, storage) via constructors.
  - Zero Hidden State: No global variables are used to store config.
*/
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// DefaultJWTSecret is the development-only signing secret. [Config.Validate]
// refuses to start a production server with it.
const DefaultJWTSecret = "unsafe_dev_secret"

// Storage drivers accepted by STORAGE_DRIVER.
const (
	StorageLocal = "local"
	StorageS3    = "s3"
)

// # Configuration Schema

// Config holds all runtime configuration for the EasyBuy API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT"  envDefault:"4000"`
	Environment string `env:"ENVIRONMENT"  envDefault:"development"`
	Debug       bool   `env:"DEBUG"        envDefault:"false"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required,notEmpty"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath  string `env:"MIGRATION_PATH"   envDefault:"./data/migrations"`
	MigrateOnStart bool   `env:"MIGRATE_ON_START" envDefault:"true"`

	// Key-Value Cache (Redis). Optional: login throttling is off without it.
	RedisURL string `env:"REDIS_URL"`

	// Identity token signing
	JWTSecret    string        `env:"JWT_SECRET"     envDefault:"unsafe_dev_secret"`
	JWTExpiresIn time.Duration `env:"JWT_EXPIRES_IN" envDefault:"24h"`

	// Login throttling
	LoginMaxAttempts int           `env:"LOGIN_MAX_ATTEMPTS" envDefault:"5"`
	LoginLockout     time.Duration `env:"LOGIN_LOCKOUT"      envDefault:"15m"`

	// Uploaded images
	UploadsDir     string `env:"UPLOADS_DIR"      envDefault:"uploads"`
	UploadMaxFiles int    `env:"UPLOAD_MAX_FILES" envDefault:"5"`
	UploadMaxBytes int64  `env:"UPLOAD_MAX_BYTES" envDefault:"2097152"`

	// Object Storage (S3-compatible), used when StorageDriver is "s3"
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"`
	S3Bucket      string `env:"S3_BUCKET"`
	S3Region      string `env:"S3_REGION"      envDefault:"auto"`
	S3Endpoint    string `env:"S3_ENDPOINT"`
	S3AccessKey   string `env:"S3_ACCESS_KEY"`
	S3SecretKey   string `env:"S3_SECRET_KEY"`
	S3PublicURL   string `env:"S3_PUBLIC_URL"`

	// Cross-Origin Resource Sharing
	FrontendOrigin string `env:"FRONTEND_DEV_ORIGIN" envDefault:"http://localhost:3000"`

	// Error reporting
	SentryDSN string `env:"SENTRY_DSN"`

	// Per-IP request limiting
	RateLimitRPS   float64 `env:"RATE_LIMIT_RPS"   envDefault:"100"`
	RateLimitBurst int     `env:"RATE_LIMIT_BURST" envDefault:"150"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct and validates it.
func Load() (*Config, error) {

	// Initialize an empty config struct
	cfg := &Config{}

	// This will fail if any field marked with 'required' is missing.
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate rejects combinations of settings the server cannot run with.
func (c *Config) Validate() error {
	var errs []error

	if c.IsProduction() && c.JWTSecret == DefaultJWTSecret {
		errs = append(errs, errors.New("config: JWT_SECRET must be set in production"))
	}
	if c.JWTSecret == "" {
		errs = append(errs, errors.New("config: JWT_SECRET must not be empty"))
	}
	if c.JWTExpiresIn <= 0 {
		errs = append(errs, errors.New("config: JWT_EXPIRES_IN must be positive"))
	}
	if c.UploadMaxFiles < 1 || c.UploadMaxBytes < 1 {
		errs = append(errs, errors.New("config: upload limits must be positive"))
	}

	switch c.StorageDriver {
	case StorageLocal:
	case StorageS3:
		if c.S3Bucket == "" {
			errs = append(errs, errors.New("config: S3_BUCKET is required for the s3 storage driver"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown STORAGE_DRIVER %q", c.StorageDriver))
	}

	return errors.Join(errs...)
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}
