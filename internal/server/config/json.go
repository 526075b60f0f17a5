package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/dmitrijs2005/notevault/internal/flagx"
	"github.com/dmitrijs2005/notevault/internal/timex"
)

// JSONConfig mirrors Config for JSON files. Pointer fields distinguish
// "absent" from "zero" so a partial file only overrides what it names.
type JSONConfig struct {
	EndpointAddrGRPC      *string         `json:"endpoint_addr_grpc"`
	EndpointAddrHTTP      *string         `json:"endpoint_addr_http"`
	DatabaseDSN           *string         `json:"database_dsn"`
	SecretKey             *string         `json:"secret_key"`
	TokenValidityDuration *timex.Duration `json:"token_validity_duration"`
	RedisAddr             *string         `json:"redis_addr"`
	RedisPassword         *string         `json:"redis_password"`
	RedisDB               *int            `json:"redis_db"`
	LoginAttemptsLimit    *int            `json:"login_attempts_limit"`
	LoginAttemptsWindow   *timex.Duration `json:"login_attempts_window"`
	LogLevel              *string         `json:"log_level"`
}

// parseJSON overlays values from the file named by -c/-config onto config.
// Without such a flag it does nothing.
func parseJSON(config *Config, args []string) error {
	path := flagx.ConfigPath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	var c JSONConfig
	if err := json.Unmarshal(data, &c); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}

	setString(&config.EndpointAddrGRPC, c.EndpointAddrGRPC)
	setString(&config.EndpointAddrHTTP, c.EndpointAddrHTTP)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.RedisAddr, c.RedisAddr)
	setString(&config.RedisPassword, c.RedisPassword)
	setString(&config.LogLevel, c.LogLevel)
	if c.RedisDB != nil {
		config.RedisDB = *c.RedisDB
	}
	if c.LoginAttemptsLimit != nil {
		config.LoginAttemptsLimit = *c.LoginAttemptsLimit
	}
	if c.TokenValidityDuration != nil {
		config.TokenValidityDuration = c.TokenValidityDuration.Duration
	}
	if c.LoginAttemptsWindow != nil {
		config.LoginAttemptsWindow = c.LoginAttemptsWindow.Duration
	}
	return nil
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}
