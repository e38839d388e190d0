// Package config loads runtime configuration for the command-line client.
//
// Sources, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file selected with -c or -config.
//  3. Environment: AUTH_SERVER_ADDR, AUTH_REQUEST_TIMEOUT.
//  4. Flags -a (server address) and -t (request timeout).
//
// JSON schema:
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:3000",
//	  "request_timeout": "10s"
//	}
package config
