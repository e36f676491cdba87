// ABOUTME: Turn record and lifecycle states for one question/answer exchange
// ABOUTME: Turns are owned by their Log; callers only ever see copies

package conversation

import (
	"time"

	"github.com/2389/docdesk/internal/knowledge"
)

// Status is the lifecycle state of a turn.
type Status string

const (
	// StatusPending means the question was accepted and resolution is scheduled.
	StatusPending Status = "pending"
	// StatusResolved means the turn carries its final response. Terminal.
	StatusResolved Status = "resolved"
)

// Turn is one question-and-response exchange. ID is assigned at creation
// and never reused. Question is immutable once set. Response is nil while
// pending and always non-nil once resolved: a no-match resolution carries
// the fallback response, not an absence.
type Turn struct {
	ID         string              `json:"id"`
	Question   string              `json:"question"`
	Status     Status              `json:"status"`
	Response   *knowledge.Response `json:"response,omitempty"`
	AskedAt    time.Time           `json:"asked_at"`
	ResolvedAt time.Time           `json:"resolved_at,omitzero"`
}

// EventType distinguishes turn lifecycle events.
type EventType string

const (
	// EventSubmitted fires when a turn is appended to the log.
	EventSubmitted EventType = "submitted"
	// EventResolved fires when a turn receives its final response.
	EventResolved EventType = "resolved"
)

// TurnEvent is a change notification published after every log mutation.
// Turn is a copy; subscribers cannot mutate log state through it.
type TurnEvent struct {
	Type      EventType `json:"type"`
	SessionID string    `json:"session_id"`
	Turn      Turn      `json:"turn"`
}
