// ABOUTME: Tests for configuration loading and validation
// ABOUTME: Covers defaults, env expansion, duration parsing, and error cases

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "docdesk.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, ":8080", cfg.Server.HTTPAddr)
	assert.Empty(t, cfg.Knowledge.Path)
	assert.Equal(t, 900*time.Millisecond, cfg.Resolver.Delay)
	assert.Equal(t, 600*time.Millisecond, cfg.Resolver.Jitter)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FullConfig(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":9090"
knowledge:
  path: /etc/docdesk/knowledge.yaml
resolver:
  delay: 250ms
  jitter: 100ms
sessions:
  idle_ttl: 1h
logging:
  level: debug
  format: json
metrics:
  enabled: true
  path: /metrics
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.HTTPAddr)
	assert.Equal(t, "/etc/docdesk/knowledge.yaml", cfg.Knowledge.Path)
	assert.Equal(t, 250*time.Millisecond, cfg.Resolver.Delay)
	assert.Equal(t, 100*time.Millisecond, cfg.Resolver.Jitter)
	assert.Equal(t, time.Hour, cfg.Sessions.IdleTTL)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoad_PartialConfigKeepsDefaults(t *testing.T) {
	path := writeConfig(t, `
server:
  http_addr: ":3000"
`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":3000", cfg.Server.HTTPAddr)
	assert.Equal(t, 900*time.Millisecond, cfg.Resolver.Delay)
	assert.Equal(t, 30*time.Minute, cfg.Sessions.IdleTTL)
}

func TestLoad_ExpandsEnvVars(t *testing.T) {
	t.Setenv("DOCDESK_TEST_ADDR", ":7070")
	path := writeConfig(t, `
server:
  http_addr: "${DOCDESK_TEST_ADDR}"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.HTTPAddr)
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{
			name:    "invalid yaml",
			content: "server: {http_addr",
			wantErr: "parsing config file",
		},
		{
			name:    "bad duration",
			content: "resolver:\n  delay: soonish\n",
			wantErr: "parsing resolver.delay",
		},
		{
			name:    "bad log level",
			content: "logging:\n  level: loud\n",
			wantErr: "logging.level",
		},
		{
			name:    "bad log format",
			content: "logging:\n  format: xml\n",
			wantErr: "logging.format",
		},
		{
			name:    "negative idle ttl",
			content: "sessions:\n  idle_ttl: -5m\n",
			wantErr: "idle_ttl",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
