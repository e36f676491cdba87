// ABOUTME: Tests for embedded asset serving and markdown rendering
// ABOUTME: Verifies MIME types, cache headers, and the app shell

package webui

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMimeFromExt(t *testing.T) {
	tests := []struct {
		ext  string
		want string
	}{
		{".js", "application/javascript"},
		{".mjs", "application/javascript"},
		{".css", "text/css; charset=utf-8"},
		{".svg", "image/svg+xml"},
		{".qqqqqq", "application/octet-stream"},
	}
	for _, tt := range tests {
		if got := mimeFromExt(tt.ext); got != tt.want {
			t.Errorf("mimeFromExt(%q) = %q, want %q", tt.ext, got, tt.want)
		}
	}
}

func TestFileServer_ServesAssets(t *testing.T) {
	handler := FileServer()

	for _, tt := range []struct {
		path     string
		wantType string
	}{
		{"/app.js", "application/javascript"},
		{"/style.css", "text/css; charset=utf-8"},
	} {
		req := httptest.NewRequest("GET", tt.path, nil)
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		require.Equal(t, 200, rec.Code, tt.path)
		assert.Equal(t, tt.wantType, rec.Header().Get("Content-Type"))
		assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
		assert.NotEmpty(t, rec.Body.String())
	}
}

func TestFileServer_MissingAsset(t *testing.T) {
	req := httptest.NewRequest("GET", "/nope.js", nil)
	rec := httptest.NewRecorder()
	FileServer().ServeHTTP(rec, req)

	assert.Equal(t, 404, rec.Code)
}

func TestServeIndex(t *testing.T) {
	rec := httptest.NewRecorder()
	ServeIndex(rec)

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<title>docdesk</title>")
	assert.Contains(t, rec.Body.String(), `id="ask-form"`)
}

func TestRenderMarkdown(t *testing.T) {
	got := RenderMarkdown("A policy:\n\n- one\n- **two**")

	assert.Contains(t, got, "<ul>")
	assert.Contains(t, got, "<strong>two</strong>")
}

func TestRenderMarkdown_PlainText(t *testing.T) {
	got := RenderMarkdown("just a sentence")
	assert.True(t, strings.HasPrefix(strings.TrimSpace(got), "<p>"))
	assert.Contains(t, got, "just a sentence")
}
