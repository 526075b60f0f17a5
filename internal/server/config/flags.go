package config

import (
	"flag"
	"fmt"
	"io"
	"time"

	"github.com/dmitrijs2005/notevault/internal/flagx"
)

var serverFlags = []string{
	"-a", "-m", "-d", "-s", "-t", "-r", "-l",
	"-redis-password", "-redis-db", "-login-limit", "-login-window",
}

// parseFlags populates Config fields from command-line flags.
//
// Supported flags:
//
//	-a string              gRPC bind address (e.g. ":50051")
//	-m string              ops HTTP bind address for health and metrics
//	-d string              PostgreSQL DSN, empty for in-memory storage
//	-s string              token signing secret (>= 32 bytes)
//	-t int                 token validity, minutes
//	-r string              Redis address for login throttling
//	-l string              log level
//	-redis-password string
//	-redis-db int
//	-login-limit int       login attempts per window and username
//	-login-window duration login attempt window (e.g. "1m")
func parseFlags(config *Config, args []string) error {
	fs := flag.NewFlagSet("notevault", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&config.EndpointAddrGRPC, "a", config.EndpointAddrGRPC, "gRPC address and port")
	fs.StringVar(&config.EndpointAddrHTTP, "m", config.EndpointAddrHTTP, "ops HTTP address and port")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token signing secret")
	tokenMinutes := fs.Int("t", int(config.TokenValidityDuration.Minutes()), "token validity (in minutes)")
	fs.StringVar(&config.RedisAddr, "r", config.RedisAddr, "redis address")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.RedisPassword, "redis-password", config.RedisPassword, "redis password")
	fs.IntVar(&config.RedisDB, "redis-db", config.RedisDB, "redis database")
	fs.IntVar(&config.LoginAttemptsLimit, "login-limit", config.LoginAttemptsLimit, "login attempts per window")
	fs.DurationVar(&config.LoginAttemptsWindow, "login-window", config.LoginAttemptsWindow, "login attempts window")

	if err := fs.Parse(flagx.FilterArgs(args, serverFlags)); err != nil {
		return fmt.Errorf("config: flags: %w", err)
	}

	fs.Visit(func(f *flag.Flag) {
		if f.Name == "t" {
			config.TokenValidityDuration = time.Duration(*tokenMinutes) * time.Minute
		}
	})
	return nil
}
