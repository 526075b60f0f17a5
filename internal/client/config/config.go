package config

import (
	"errors"
	"os"
	"time"
)

// TokenEnv names the environment variable holding the bearer token.
const TokenEnv = "NOTEVAULT_TOKEN"

type Config struct {
	ServerEndpointAddr string
	RequestTimeout     time.Duration
	Token              string
}

func (c *Config) LoadDefaults() {
	c.ServerEndpointAddr = "127.0.0.1:50051"
	c.RequestTimeout = 10 * time.Second
	c.Token = ""
}

func (c *Config) Validate() error {
	if c.ServerEndpointAddr == "" {
		return errors.New("config: server address is required")
	}
	if c.RequestTimeout <= 0 {
		return errors.New("config: request timeout must be positive")
	}
	return nil
}

// LoadConfig builds a Config and returns the arguments left after the flags,
// which name the command to run.
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.Token = os.Getenv(TokenEnv)

	if err := parseJSON(cfg, args); err != nil {
		return nil, nil, err
	}
	rest, err := parseFlags(cfg, args)
	if err != nil {
		return nil, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}
	return cfg, rest, nil
}
