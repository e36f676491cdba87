// ABOUTME: Keyword-containment matcher over an immutable knowledge table
// ABOUTME: Pure and deterministic; first entry in table order wins

package knowledge

import (
	"strings"
	"time"
)

// Matcher maps free-text questions to canned responses by substring
// containment. It holds an immutable table injected at construction, so a
// retrieval backend can replace it behind the same contract later.
type Matcher struct {
	table *Table
}

// NewMatcher creates a matcher over the given table.
func NewMatcher(table *Table) *Matcher {
	return &Matcher{table: table}
}

// Match normalizes the query to lowercase and scans the table in order,
// returning the response of the first entry whose keyword is a substring
// of the query. The boolean is false when no keyword matches; callers are
// expected to substitute Fallback(). Empty queries never match — callers
// reject blank input before asking the matcher.
func (m *Matcher) Match(query string) (Response, bool) {
	normalized := strings.ToLower(query)
	for _, e := range m.table.entries {
		if strings.Contains(normalized, e.Keyword) {
			resp := e.Response
			resp.ProducedAt = time.Now()
			return resp, true
		}
	}
	return Response{}, false
}

// fallbackAnswer directs the user to a human channel when nothing matched.
const fallbackAnswer = "I couldn't find anything about that in our documentation.\n\n" +
	"Try rephrasing your question, or ask a human in **#help-it** on Slack — " +
	"they usually answer within the hour."

// Fallback returns the fixed "no match" response: a pointer to a human
// contact channel with no sources attached.
func Fallback() Response {
	return Response{
		Answer:     fallbackAnswer,
		ProducedAt: time.Now(),
	}
}
