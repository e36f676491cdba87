// ABOUTME: Tests for CLI client config loading and the one-shot ask flow
// ABOUTME: Runs against a real in-process gateway server

package main

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/docdesk/internal/config"
	"github.com/2389/docdesk/internal/gateway"
	"github.com/2389/docdesk/internal/knowledge"
)

func TestClientConfigPath_EnvOverride(t *testing.T) {
	t.Setenv("DOCDESK_CONFIG", "/tmp/custom.toml")
	assert.Equal(t, "/tmp/custom.toml", clientConfigPath())
}

func TestClientConfigPath_XDG(t *testing.T) {
	t.Setenv("DOCDESK_CONFIG", "")
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, "/tmp/xdg/docdesk/client.toml", clientConfigPath())
}

func TestLoadClientConfig_DefaultsWhenMissing(t *testing.T) {
	t.Setenv("DOCDESK_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := loadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, defaultServerURL, cfg.Server.URL)
}

func TestLoadClientConfig_ParsesTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server]\nurl = \"https://docdesk.internal/\"\n"), 0o644))
	t.Setenv("DOCDESK_CONFIG", path)

	cfg, err := loadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://docdesk.internal", cfg.Server.URL)
}

func TestLoadClientConfig_BadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "client.toml")
	require.NoError(t, os.WriteFile(path, []byte("[server\nurl ="), 0o644))
	t.Setenv("DOCDESK_CONFIG", path)

	_, err := loadClientConfig()
	assert.Error(t, err)
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	cfg := config.Default()
	cfg.Resolver.Delay = time.Millisecond
	cfg.Resolver.Jitter = 0
	g := gateway.New(cfg, knowledge.Builtin(), nil)
	srv := httptest.NewServer(g.Handler())
	t.Cleanup(func() {
		srv.Close()
		g.Sessions().Close()
	})
	return srv
}

func TestAskOnce(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	turn, err := askOnce(ctx, srv.URL, "What is our travel reimbursement policy?")
	require.NoError(t, err)
	assert.Equal(t, "resolved", turn.Status)
	require.NotNil(t, turn.Response)
	assert.Equal(t, "Finance Handbook §4.2", turn.Response.Reference)
	assert.NotEmpty(t, turn.Response.Sources)
}

func TestAskOnce_BlankRejected(t *testing.T) {
	srv := newTestServer(t)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err := askOnce(ctx, srv.URL, "   ")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not accepted")
}
