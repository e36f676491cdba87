// ABOUTME: SSE handler streaming turn lifecycle events to the UI
// ABOUTME: Subscribes to the broadcaster and forwards events until the client disconnects

package gateway

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

// heartbeatInterval keeps idle SSE connections alive through proxies.
const heartbeatInterval = 15 * time.Second

// sseTurnEvent is the JSON payload of one SSE data frame.
type sseTurnEvent struct {
	Type      string   `json:"type"`
	SessionID string   `json:"session_id"`
	Turn      TurnView `json:"turn"`
}

// handleEvents handles GET /api/events: a long-lived SSE stream of turn
// events for one session. Subscription works even before the session has
// any turns — the UI typically connects first and asks second.
func (g *Gateway) handleEvents(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	if sessionID == "" {
		g.sendJSONError(w, http.StatusBadRequest, "session_id is required")
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		g.logger.Error("streaming not supported")
		g.sendJSONError(w, http.StatusInternalServerError, "streaming not supported")
		return
	}

	// Subscribe before the response headers go out: once the client sees
	// 200 it may immediately ask, and that first event must not be missed.
	events, subID := g.sessions.Broadcaster().Subscribe(r.Context(), sessionID)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	g.logger.Debug("sse client connected", "session_id", sessionID, "sub_id", subID)
	defer g.logger.Debug("sse client disconnected", "session_id", sessionID, "sub_id", subID)

	heartbeat := time.NewTicker(heartbeatInterval)
	defer heartbeat.Stop()

	for {
		select {
		case ev, open := <-events:
			if !open {
				return
			}
			payload, err := json.Marshal(sseTurnEvent{
				Type:      string(ev.Type),
				SessionID: ev.SessionID,
				Turn:      turnView(ev.Turn),
			})
			if err != nil {
				g.logger.Error("failed to marshal sse event", "error", err)
				continue
			}
			fmt.Fprintf(w, "event: %s\ndata: %s\n\n", ev.Type, payload)
			flusher.Flush()

		case <-heartbeat.C:
			// Comment frame: ignored by EventSource, defeats idle timeouts
			fmt.Fprint(w, ": ping\n\n")
			flusher.Flush()

		case <-r.Context().Done():
			return
		}
	}
}
