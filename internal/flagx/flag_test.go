package flagx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "short flag with separate value",
			args:    []string{"-c", "conf.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"-c", "conf.json"},
		},
		{
			name:    "long flag with equals",
			args:    []string{"--config=alt.json", "-a", "localhost"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=alt.json"},
		},
		{
			name:    "order is preserved",
			args:    []string{"--config=first.json", "-c", "second.json", "-x", "1"},
			allowed: []string{"-c", "--config"},
			want:    []string{"--config=first.json", "-c", "second.json"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "--y=2", "positional"},
			allowed: []string{"-c"},
			want:    []string{},
		},
		{
			name:    "trailing flag without value",
			args:    []string{"-c"},
			allowed: []string{"-c"},
			want:    []string{"-c"},
		},
		{
			name:    "flag followed by another flag",
			args:    []string{"-s", "-t", "5"},
			allowed: []string{"-s", "-t"},
			want:    []string{"-s", "-t", "5"},
		},
		{
			name:    "positional that equals sign does not confuse",
			args:    []string{"a=b", "-d", "dsn"},
			allowed: []string{"-d"},
			want:    []string{"-d", "dsn"},
		},
		{
			name:    "nil args",
			args:    nil,
			allowed: []string{"-c"},
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterArgs(tt.args, tt.allowed))
		})
	}
}

func TestConfigPath(t *testing.T) {
	assert.Equal(t, "", ConfigPath(nil))
	assert.Equal(t, "a.json", ConfigPath([]string{"-a", ":1", "-c", "a.json"}))
	assert.Equal(t, "b.json", ConfigPath([]string{"-config=b.json", "-s", "secret"}))
	assert.Equal(t, "c.json", ConfigPath([]string{"--config", "c.json"}))
	assert.Equal(t, "last.json", ConfigPath([]string{"-c", "first.json", "-config", "last.json"}))
}
