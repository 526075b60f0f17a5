package config

import (
	"flag"
	"fmt"
	"io"
)

// parseFlags applies the global flags in front of the command and returns the
// remaining arguments. Parsing stops at the first non-flag argument, so
// command flags such as "list -page 2" are left alone.
func parseFlags(cfg *Config, args []string) ([]string, error) {
	fs := flag.NewFlagSet("notevault-cli", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerEndpointAddr, "a", cfg.ServerEndpointAddr, "address and port to access server")
	fs.DurationVar(&cfg.RequestTimeout, "timeout", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.Token, "token", cfg.Token, "bearer token")

	// Handled by parseJSON, declared here so they are not rejected.
	var ignored string
	fs.StringVar(&ignored, "c", "", "path to JSON config file (short)")
	fs.StringVar(&ignored, "config", "", "path to JSON config file")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("config: flags: %w", err)
	}
	return fs.Args(), nil
}
