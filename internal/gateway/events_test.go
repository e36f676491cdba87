// ABOUTME: Tests for the SSE turn event stream
// ABOUTME: Uses a real server so streaming and disconnects behave as in production

package gateway

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleEvents_RequiresSessionID(t *testing.T) {
	g := newTestGateway(t)

	rec := doJSON(t, g.Handler(), "GET", "/api/events", "", nil)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleEvents_MethodNotAllowed(t *testing.T) {
	g := newTestGateway(t)

	rec := doJSON(t, g.Handler(), "POST", "/api/events?session_id=x", "", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestHandleEvents_StreamsSubmittedAndResolved(t *testing.T) {
	g := newTestGateway(t)
	srv := httptest.NewServer(g.Handler())
	defer srv.Close()

	// Create the session first so the stream can target it
	askBody := strings.NewReader(`{"question":""}`)
	askResp, err := srv.Client().Post(srv.URL+"/api/ask", "application/json", askBody)
	require.NoError(t, err)
	var blank AskResponse
	require.NoError(t, json.NewDecoder(askResp.Body).Decode(&blank))
	askResp.Body.Close()
	sessionID := blank.SessionID

	// Connect the event stream
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, "GET", srv.URL+"/api/events?session_id="+sessionID, nil)
	require.NoError(t, err)
	req.Header.Set("Accept", "text/event-stream")

	stream, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer stream.Body.Close()
	require.Equal(t, "text/event-stream", stream.Header.Get("Content-Type"))

	// Now ask a real question on the same session
	askBody = strings.NewReader(`{"question":"What is our travel reimbursement policy?","session_id":"` + sessionID + `"}`)
	askResp, err = srv.Client().Post(srv.URL+"/api/ask", "application/json", askBody)
	require.NoError(t, err)
	var ask AskResponse
	require.NoError(t, json.NewDecoder(askResp.Body).Decode(&ask))
	askResp.Body.Close()
	require.True(t, ask.Accepted)

	// Read frames until the turn resolves
	var sawSubmitted, sawResolved bool
	var resolved sseTurnEvent
	scanner := bufio.NewScanner(stream.Body)
	for scanner.Scan() && !sawResolved {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		var ev sseTurnEvent
		require.NoError(t, json.Unmarshal([]byte(strings.TrimPrefix(line, "data: ")), &ev))
		switch ev.Type {
		case "submitted":
			sawSubmitted = true
			assert.Equal(t, ask.TurnID, ev.Turn.ID)
			assert.Equal(t, "pending", ev.Turn.Status)
		case "resolved":
			sawResolved = true
			resolved = ev
		}
	}

	require.True(t, sawSubmitted, "missing submitted event")
	require.True(t, sawResolved, "missing resolved event")
	assert.Equal(t, ask.TurnID, resolved.Turn.ID)
	require.NotNil(t, resolved.Turn.Response)
	assert.Equal(t, "Finance Handbook §4.2", resolved.Turn.Response.Reference)
	assert.NotEmpty(t, resolved.Turn.Response.AnswerHTML)
}
