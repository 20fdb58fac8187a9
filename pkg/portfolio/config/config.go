// Package config loads server configuration from the environment and builds
// the portfolio service, repositories, blob stores, and access gate from it.
package config

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/tendant/portfolio-content/pkg/portfolio"
	repomemory "github.com/tendant/portfolio-content/pkg/portfolio/repo/memory"
	repopg "github.com/tendant/portfolio-content/pkg/portfolio/repo/postgres"
	"github.com/tendant/portfolio-content/pkg/portfolio/session"
	fsstorage "github.com/tendant/portfolio-content/pkg/portfolio/storage/fs"
	memorystorage "github.com/tendant/portfolio-content/pkg/portfolio/storage/memory"
	s3storage "github.com/tendant/portfolio-content/pkg/portfolio/storage/s3"
)

// Buckets lists the logical buckets a server always configures.
var Buckets = []string{portfolio.BucketArtworks, portfolio.BucketExhibitions, portfolio.BucketAbout}

// ServerConfig represents server configuration for the portfolio service.
//
// DATABASE_URL is either "memory" or a postgres connection string.
//
// STORAGE_URL selects the blob store family for all buckets:
//
//	memory://                          in-memory storage
//	file:///var/data?public_url=...    filesystem storage
//	s3://bucket?region=...&endpoint=...&public_url=...&path_style=true&create_bucket=true
type ServerConfig struct {
	Port        string `env:"PORT" env-default:"8080"`
	Environment string `env:"ENVIRONMENT" env-default:"development"`

	DatabaseURL string `env:"DATABASE_URL" env-default:"memory"`
	StorageURL  string `env:"STORAGE_URL" env-default:"memory://"`

	S3   S3Config
	Gate GateConfig
}

// S3Config carries the credential part of the S3 storage configuration; the
// rest rides on the STORAGE_URL query string.
type S3Config struct {
	AccessKeyID     string `env:"AWS_ACCESS_KEY_ID" env-default:""`
	SecretAccessKey string `env:"AWS_SECRET_ACCESS_KEY" env-default:""`
}

// GateConfig carries the access-gate secrets.
type GateConfig struct {
	EditorID     string        `env:"EDIT_ID"`
	EditorSecret string        `env:"EDIT_SECRET"`
	TokenSecret  string        `env:"SESSION_SECRET"`
	TokenTTL     time.Duration `env:"SESSION_TTL" env-default:"12h"`
}

// Load reads the server configuration from the environment.
func Load() (*ServerConfig, error) {
	var cfg ServerConfig
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate validates the server configuration
func (c *ServerConfig) Validate() error {
	if c.Port == "" {
		return errors.New("port is required")
	}

	if c.DatabaseURL != "memory" &&
		!strings.HasPrefix(c.DatabaseURL, "postgres://") &&
		!strings.HasPrefix(c.DatabaseURL, "postgresql://") {
		return fmt.Errorf("unsupported DATABASE_URL format: %s (use 'memory' or 'postgresql://...')", c.DatabaseURL)
	}

	switch {
	case c.StorageURL == "memory" || strings.HasPrefix(c.StorageURL, "memory://"):
	case strings.HasPrefix(c.StorageURL, "file://"):
	case strings.HasPrefix(c.StorageURL, "s3://"):
	default:
		return fmt.Errorf("unsupported STORAGE_URL format: %s (use 'memory://', 'file://...', or 's3://...')", c.StorageURL)
	}

	if c.Gate.EditorID == "" || c.Gate.EditorSecret == "" {
		return errors.New("EDIT_ID and EDIT_SECRET are required")
	}
	if c.Gate.TokenSecret == "" {
		return errors.New("SESSION_SECRET is required")
	}

	return nil
}

// BuildRepository creates a Repository based on the configuration
func (c *ServerConfig) BuildRepository(ctx context.Context) (portfolio.Repository, error) {
	if c.DatabaseURL == "memory" {
		return repomemory.New(), nil
	}

	pool, err := pgxpool.New(ctx, c.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to create pgx pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return repopg.NewWithPool(pool), nil
}

// BuildBlobStores creates one blob store per logical bucket from STORAGE_URL.
func (c *ServerConfig) BuildBlobStores() (map[string]portfolio.BlobStore, error) {
	stores := make(map[string]portfolio.BlobStore, len(Buckets))

	switch {
	case c.StorageURL == "memory" || strings.HasPrefix(c.StorageURL, "memory://"):
		for _, bucket := range Buckets {
			stores[bucket] = memorystorage.New(bucket)
		}
		return stores, nil

	case strings.HasPrefix(c.StorageURL, "file://"):
		u, err := url.Parse(c.StorageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STORAGE_URL: %w", err)
		}
		baseDir := u.Path
		if baseDir == "" {
			return nil, errors.New("filesystem path cannot be empty in STORAGE_URL")
		}
		publicURL := u.Query().Get("public_url")
		for _, bucket := range Buckets {
			store, err := fsstorage.New(fsstorage.Config{
				Bucket:    bucket,
				BaseDir:   baseDir,
				URLPrefix: publicURL,
			})
			if err != nil {
				return nil, fmt.Errorf("failed to build fs store for bucket %s: %w", bucket, err)
			}
			stores[bucket] = store
		}
		return stores, nil

	case strings.HasPrefix(c.StorageURL, "s3://"):
		u, err := url.Parse(c.StorageURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse STORAGE_URL: %w", err)
		}
		q := u.Query()
		for _, bucket := range Buckets {
			store, err := s3storage.New(s3storage.Config{
				Region:                 q.Get("region"),
				Bucket:                 u.Host,
				KeyPrefix:              bucket,
				AccessKeyID:            c.S3.AccessKeyID,
				SecretAccessKey:        c.S3.SecretAccessKey,
				Endpoint:               q.Get("endpoint"),
				UsePathStyle:           q.Get("path_style") == "true",
				PublicBaseURL:          q.Get("public_url"),
				CreateBucketIfNotExist: q.Get("create_bucket") == "true",
			})
			if err != nil {
				return nil, fmt.Errorf("failed to build s3 store for bucket %s: %w", bucket, err)
			}
			stores[bucket] = store
		}
		return stores, nil
	}

	return nil, fmt.Errorf("unsupported STORAGE_URL format: %s", c.StorageURL)
}

// BuildService creates a Service instance from the server configuration
func (c *ServerConfig) BuildService(ctx context.Context, logger *slog.Logger) (portfolio.Service, error) {
	repo, err := c.BuildRepository(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build repository: %w", err)
	}

	stores, err := c.BuildBlobStores()
	if err != nil {
		return nil, fmt.Errorf("failed to build blob stores: %w", err)
	}

	options := []portfolio.Option{
		portfolio.WithRepository(repo),
		portfolio.WithEventSink(portfolio.NewLoggingEventSink(logger)),
		portfolio.WithLogger(logger),
	}
	for bucket, store := range stores {
		options = append(options, portfolio.WithBlobStore(bucket, store))
	}

	return portfolio.New(options...)
}

// BuildGate creates the access gate from the configured secrets.
func (c *ServerConfig) BuildGate() (*session.Gate, error) {
	return session.NewGate(session.Config{
		EditorID:     c.Gate.EditorID,
		EditorSecret: c.Gate.EditorSecret,
		TokenSecret:  c.Gate.TokenSecret,
		TokenTTL:     c.Gate.TokenTTL,
	})
}
