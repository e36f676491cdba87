// ABOUTME: JSON API handlers for submitting questions and reading conversations
// ABOUTME: Blank and duplicate questions are accepted:false, never HTTP errors

package gateway

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/2389/docdesk/internal/conversation"
	"github.com/2389/docdesk/internal/knowledge"
	"github.com/2389/docdesk/internal/webui"
)

// AskRequest is the JSON request body for POST /api/ask.
type AskRequest struct {
	Question  string `json:"question"`
	SessionID string `json:"session_id,omitempty"`
}

// AskResponse is the JSON response for POST /api/ask. Accepted is false
// for blank or rapidly duplicated questions; that is a validation no-op,
// not an error, so the status is still 200.
type AskResponse struct {
	SessionID string `json:"session_id"`
	TurnID    string `json:"turn_id,omitempty"`
	Accepted  bool   `json:"accepted"`
}

// SourceView is the JSON shape of one citation.
type SourceView struct {
	Kind  string `json:"kind"`
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ResponseView is the JSON shape of a resolved answer. AnswerHTML is the
// markdown answer rendered server-side for direct insertion by the UI.
type ResponseView struct {
	Answer     string       `json:"answer"`
	AnswerHTML string       `json:"answer_html"`
	Reference  string       `json:"reference,omitempty"`
	Notes      string       `json:"notes,omitempty"`
	Sources    []SourceView `json:"sources"`
	ProducedAt string       `json:"produced_at"`
}

// TurnView is the JSON shape of one conversation turn.
type TurnView struct {
	ID         string        `json:"id"`
	Question   string        `json:"question"`
	Status     string        `json:"status"`
	Response   *ResponseView `json:"response,omitempty"`
	AskedAt    string        `json:"asked_at"`
	ResolvedAt string        `json:"resolved_at,omitempty"`
}

// ConversationResponse is the JSON response for GET /api/conversation.
type ConversationResponse struct {
	SessionID string     `json:"session_id"`
	Turns     []TurnView `json:"turns"`
}

// ExamplesResponse is the JSON response for GET /api/examples.
type ExamplesResponse struct {
	Examples []string `json:"examples"`
}

// handleAsk handles POST /api/ask: create or load the session, submit the
// question, and return immediately. Resolution happens asynchronously;
// clients watch /api/events or poll /api/conversation.
func (g *Gateway) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		g.sendJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	log, sessionID := g.sessions.Get(req.SessionID)
	turnID, accepted := log.Submit(req.Question)

	if g.metrics != nil {
		if accepted {
			g.metrics.submitted.Inc()
		} else {
			g.metrics.rejected.Inc()
		}
	}

	g.writeJSON(w, AskResponse{
		SessionID: sessionID,
		TurnID:    turnID,
		Accepted:  accepted,
	})
}

// handleConversation handles GET /api/conversation. An unknown session is
// not an error: the caller gets an empty conversation and can keep using
// the same session ID on its next ask.
func (g *Gateway) handleConversation(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	sessionID := r.URL.Query().Get("session_id")
	resp := ConversationResponse{SessionID: sessionID, Turns: []TurnView{}}

	if log, ok := g.sessions.Lookup(sessionID); ok {
		for _, turn := range log.Snapshot() {
			resp.Turns = append(resp.Turns, turnView(turn))
		}
	}

	g.writeJSON(w, resp)
}

// handleExamples handles GET /api/examples.
func (g *Gateway) handleExamples(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	examples := g.table.Examples()
	if examples == nil {
		examples = []string{}
	}
	g.writeJSON(w, ExamplesResponse{Examples: examples})
}

// handleHealthz handles GET /healthz.
func (g *Gateway) handleHealthz(w http.ResponseWriter, r *http.Request) {
	g.writeJSON(w, map[string]string{"status": "ok"})
}

// turnView converts a turn snapshot into its JSON shape.
func turnView(t conversation.Turn) TurnView {
	v := TurnView{
		ID:       t.ID,
		Question: t.Question,
		Status:   string(t.Status),
		AskedAt:  t.AskedAt.Format(time.RFC3339Nano),
	}
	if !t.ResolvedAt.IsZero() {
		v.ResolvedAt = t.ResolvedAt.Format(time.RFC3339Nano)
	}
	if t.Response != nil {
		v.Response = responseView(*t.Response)
	}
	return v
}

// responseView converts a knowledge response into its JSON shape,
// rendering the markdown answer to HTML on the way.
func responseView(r knowledge.Response) *ResponseView {
	sources := make([]SourceView, 0, len(r.Sources))
	for _, s := range r.Sources {
		sources = append(sources, SourceView{
			Kind:  string(s.Kind),
			Title: s.Title,
			URL:   s.URL,
		})
	}
	return &ResponseView{
		Answer:     r.Answer,
		AnswerHTML: webui.RenderMarkdown(r.Answer),
		Reference:  r.Reference,
		Notes:      r.Notes,
		Sources:    sources,
		ProducedAt: r.ProducedAt.Format(time.RFC3339Nano),
	}
}

func (g *Gateway) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		g.logger.Error("failed to encode response", "error", err)
	}
}

// sendJSONError writes a JSON error response with the given status code.
func (g *Gateway) sendJSONError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
