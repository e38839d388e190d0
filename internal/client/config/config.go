package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds runtime settings for the client.
type Config struct {
	ServerEndpointAddr string        `env:"AUTH_SERVER_ADDR"`
	RequestTimeout     time.Duration `env:"AUTH_REQUEST_TIMEOUT"`
}

// LoadDefaults populates c with defaults matching the server's.
func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:3000"
	c.RequestTimeout = 10 * time.Second
}

// LoadConfig builds a Config from args (without the program name) and
// environ (the process environment when nil). It returns the positional
// arguments left after the flags, i.e. the subcommand and its operands.
func LoadConfig(args []string, environ map[string]string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseJSON(cfg, args); err != nil {
		return nil, nil, err
	}

	if err := env.ParseWithOptions(cfg, env.Options{Environment: environ}); err != nil {
		return nil, nil, fmt.Errorf("parse env: %w", err)
	}

	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}

	return cfg, rest, nil
}
