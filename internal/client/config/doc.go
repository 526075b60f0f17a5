// Package config loads runtime configuration for the NoteVault CLI.
//
// Sources, later ones overriding earlier ones:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. The NOTEVAULT_TOKEN environment variable.
//  3. Optional JSON file selected with -c or -config.
//  4. Command-line flags.
//
// Supported flags
//
//	-a string          address:port of the NoteVault gRPC endpoint
//	-timeout duration  per-request timeout (e.g. "5s")
//	-token string      bearer token returned by register or login
//
// # JSON schema
//
//	{
//	  "server_endpoint_addr": "127.0.0.1:50051",
//	  "request_timeout": "10s"
//	}
//
// The token is never read from JSON.
package config
