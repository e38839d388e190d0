package config

import (
	"flag"
	"io"
)

// parseFlags overrides selected Config fields from command-line flags.
//
// Supported flags:
//
//	-a string      gRPC bind address (e.g., "127.0.0.1:3000")
//	-d string      PostgreSQL DSN
//	-s string      JWT HMAC secret key
//	-domain string cookie domain
//	-w int         number of concurrent workers
//
// Unset flags keep the value already in config.
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("server", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "secret key")
	fs.StringVar(&config.Domain, "domain", config.Domain, "cookie domain")
	fs.IntVar(&config.Workers, "w", config.Workers, "number of concurrent workers")

	return fs.Parse(args)
}
