// Package config handles configuration for the server component: defaults
// and environment variables, then command-line flag overrides.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	validation "github.com/go-ozzo/ozzo-validation"
)

// Config holds runtime settings for the server. It is built once at startup
// and passed to every component that needs it.
//
// Fields:
//   - EndpointAddrGRPC: bind address for the public gRPC endpoint.
//   - DatabaseDSN: PostgreSQL DSN (pgx). Required.
//   - SecretKey: HMAC secret for signing JWTs (HS256). Required.
//   - Domain: cookie domain for the auth carrier. Required.
//   - HashRounds: raw bcrypt cost override; see auth.ParseCost.
//   - TokenIssuer: "iss" claim of issued tokens.
//   - Workers: number of operations allowed in flight at once.
//   - DBMaxConns: size of the database connection pool.
//   - OperationTimeout: deadline for a single operation, including the wait
//     for a worker slot and a pooled connection.
//   - S3*: invitation mail-drop bucket. Empty bucket disables it.
type Config struct {
	EndpointAddrGRPC string        `env:"GRPC_ADDR" envDefault:"127.0.0.1:3000"`
	DatabaseDSN      string        `env:"DATABASE_URL"`
	SecretKey        string        `env:"SECRET"`
	Domain           string        `env:"DOMAIN"`
	HashRounds       string        `env:"HASH_ROUNDS"`
	TokenIssuer      string        `env:"TOKEN_ISSUER" envDefault:"localhost"`
	Workers          int           `env:"WORKERS" envDefault:"4"`
	DBMaxConns       int           `env:"DB_MAX_CONNS" envDefault:"10"`
	OperationTimeout time.Duration `env:"OP_TIMEOUT" envDefault:"5s"`
	LogLevel         string        `env:"LOG_LEVEL" envDefault:"info"`
	S3RootUser       string        `env:"S3_ROOT_USER"`
	S3RootPassword   string        `env:"S3_ROOT_PASSWORD"`
	S3Bucket         string        `env:"S3_BUCKET"`
	S3Region         string        `env:"S3_REGION" envDefault:"us-east-1"`
	S3BaseEndpoint   string        `env:"S3_BASE_ENDPOINT"`
}

// LoadConfig builds a Config from the process environment and os.Args.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:], nil)
}

// Load builds a Config by applying defaults, then values from environ (the
// process environment when nil), then command-line flags in args. Missing
// mandatory values are reported as an error so startup can abort.
func Load(args []string, environ map[string]string) (*Config, error) {
	cfg := &Config{}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// Validate checks mandatory values and bounds.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.DatabaseDSN, validation.Required),
		validation.Field(&c.SecretKey, validation.Required),
		validation.Field(&c.Domain, validation.Required),
		validation.Field(&c.EndpointAddrGRPC, validation.Required),
		validation.Field(&c.Workers, validation.Required, validation.Min(1)),
		validation.Field(&c.DBMaxConns, validation.Required, validation.Min(1)),
		validation.Field(&c.OperationTimeout, validation.Required),
	)
}
