package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTempJSON(t *testing.T, data map[string]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cfg.json")
	b, err := json.Marshal(data)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(path, b, 0o600))
	return path
}

func Test_parseJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"endpoint_addr_grpc":      "www.example:9000",
		"endpoint_addr_http":      ":9191",
		"database_dsn":            "",
		"secret_key":              "my_secret_key",
		"token_validity_duration": "90s",
		"redis_addr":              "redis:6379",
		"redis_password":          "pw",
		"redis_db":                1,
		"login_attempts_limit":    4,
		"login_attempts_window":   "2m",
		"log_level":               "warn",
	})

	t.Run("loads from json", func(t *testing.T) {
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-config", path}))

		assert.Equal(t, "www.example:9000", cfg.EndpointAddrGRPC)
		assert.Equal(t, ":9191", cfg.EndpointAddrHTTP)
		assert.Equal(t, "", cfg.DatabaseDSN)
		assert.Equal(t, "my_secret_key", cfg.SecretKey)
		assert.Equal(t, 90*time.Second, cfg.TokenValidityDuration)
		assert.Equal(t, "redis:6379", cfg.RedisAddr)
		assert.Equal(t, "pw", cfg.RedisPassword)
		assert.Equal(t, 1, cfg.RedisDB)
		assert.Equal(t, 4, cfg.LoginAttemptsLimit)
		assert.Equal(t, 2*time.Minute, cfg.LoginAttemptsWindow)
		assert.Equal(t, "warn", cfg.LogLevel)
	})

	t.Run("partial file keeps other values", func(t *testing.T) {
		partial := writeTempJSON(t, map[string]any{"log_level": "debug"})
		cfg := &Config{}
		cfg.LoadDefaults()
		require.NoError(t, parseJSON(cfg, []string{"-c", partial}))

		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, ":50051", cfg.EndpointAddrGRPC)
		assert.Equal(t, time.Hour, cfg.TokenValidityDuration)
	})

	t.Run("no config flag leaves config untouched", func(t *testing.T) {
		cfg := &Config{EndpointAddrGRPC: "defaults:1234"}
		require.NoError(t, parseJSON(cfg, []string{"-a", ":1"}))
		assert.Equal(t, "defaults:1234", cfg.EndpointAddrGRPC)
	})

	t.Run("invalid json", func(t *testing.T) {
		bad := filepath.Join(t.TempDir(), "bad.json")
		require.NoError(t, os.WriteFile(bad, []byte(`{ not json`), 0o600))
		assert.Error(t, parseJSON(&Config{}, []string{"-c", bad}))
	})

	t.Run("missing file", func(t *testing.T) {
		assert.Error(t, parseJSON(&Config{}, []string{"-c", filepath.Join(t.TempDir(), "nope.json")}))
	})
}

func TestLoadConfig_FlagsWinOverJSON(t *testing.T) {
	path := writeTempJSON(t, map[string]any{
		"secret_key":         "0123456789abcdef0123456789abcdef",
		"endpoint_addr_grpc": ":7000",
	})

	cfg, err := LoadConfig([]string{"-c", path, "-a", ":8000"})
	require.NoError(t, err)
	assert.Equal(t, ":8000", cfg.EndpointAddrGRPC)
	assert.Equal(t, "0123456789abcdef0123456789abcdef", cfg.SecretKey)
}
