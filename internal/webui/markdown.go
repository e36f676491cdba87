// ABOUTME: Markdown-to-HTML rendering for canned answers
// ABOUTME: Wraps goldmark; render failures degrade to escaped plain text

package webui

import (
	"bytes"
	"html"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a markdown answer to HTML for the UI. Knowledge
// tables are operator-authored, not user input, so the default goldmark
// pipeline is sufficient. On conversion failure the raw text is returned
// escaped inside a paragraph rather than dropping the answer.
func RenderMarkdown(md string) string {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "<p>" + html.EscapeString(md) + "</p>"
	}
	return buf.String()
}
