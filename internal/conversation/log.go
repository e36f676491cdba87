// ABOUTME: Append-only conversation log with asynchronous turn resolution
// ABOUTME: Submission order is conversation order; each turn resolves exactly once

package conversation

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/docdesk/internal/dedupe"
	"github.com/2389/docdesk/internal/knowledge"
)

// Log is one session's ordered conversation. All mutation happens here:
// Submit appends, the internal resolve step updates a turn in place.
// Nothing is ever removed or reordered.
type Log struct {
	mu    sync.RWMutex
	turns []*Turn
	index map[string]*Turn

	sessionID   string
	resolver    Resolver
	broadcaster *Broadcaster
	recent      *dedupe.Cache
	logger      *slog.Logger
}

// LogOption configures a Log.
type LogOption func(*Log)

// WithBroadcaster attaches a broadcaster; every mutation publishes a
// TurnEvent keyed by the log's session ID.
func WithBroadcaster(b *Broadcaster) LogOption {
	return func(l *Log) { l.broadcaster = b }
}

// WithDedupe attaches a recent-question cache. An identical question
// re-submitted within the cache TTL is silently dropped, the same way
// blank input is. Keys are prefixed with the session ID so sessions
// sharing one cache stay isolated.
func WithDedupe(c *dedupe.Cache) LogOption {
	return func(l *Log) { l.recent = c }
}

// NewLog creates a conversation log for one session. Pass nil logger for
// the default.
func NewLog(sessionID string, resolver Resolver, logger *slog.Logger, opts ...LogOption) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	l := &Log{
		index:     make(map[string]*Turn),
		sessionID: sessionID,
		resolver:  resolver,
		logger:    logger.With("component", "conversation", "session_id", sessionID),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// SessionID returns the session this log belongs to.
func (l *Log) SessionID() string {
	return l.sessionID
}

// Submit appends a pending turn for the question and schedules its
// asynchronous resolution. It returns the new turn's ID immediately and
// never blocks on the resolver.
//
// Blank or whitespace-only questions are a no-op returning ("", false),
// as are rapid duplicate submissions when a dedupe cache is attached.
// Neither is an error.
func (l *Log) Submit(question string) (string, bool) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", false
	}
	if l.recent != nil && l.recent.CheckAndMark(l.sessionID+"\x00"+strings.ToLower(question)) {
		l.logger.Debug("duplicate question suppressed")
		return "", false
	}

	turn := &Turn{
		ID:       uuid.New().String(),
		Question: question,
		Status:   StatusPending,
		AskedAt:  time.Now(),
	}

	l.mu.Lock()
	l.turns = append(l.turns, turn)
	l.index[turn.ID] = turn
	snapshot := *turn
	l.mu.Unlock()

	l.logger.Debug("turn submitted", "turn_id", turn.ID)
	l.publish(EventSubmitted, snapshot)

	// No cancellation path: once submitted, resolution always fires.
	go l.resolve(context.Background(), turn.ID, question)

	return turn.ID, true
}

// resolve runs the resolver and attaches its response, falling back to the
// fixed "not found" response on no-match or resolver failure. The Pending
// to Resolved transition happens exactly once; a turn already resolved is
// left untouched.
func (l *Log) resolve(ctx context.Context, turnID, question string) {
	resp, err := l.resolver.Resolve(ctx, question)
	if err != nil {
		// Resolver failures are never surfaced to the conversation; the
		// turn still resolves, carrying the fallback.
		l.logger.Warn("resolver failed, using fallback", "turn_id", turnID, "error", err)
		resp = nil
	}
	if resp == nil {
		fallback := knowledge.Fallback()
		resp = &fallback
	}

	l.mu.Lock()
	turn, ok := l.index[turnID]
	if !ok || turn.Status == StatusResolved {
		l.mu.Unlock()
		return
	}
	turn.Response = resp
	turn.Status = StatusResolved
	turn.ResolvedAt = time.Now()
	snapshot := *turn
	l.mu.Unlock()

	l.logger.Debug("turn resolved", "turn_id", turnID, "matched", len(resp.Sources) > 0)
	l.publish(EventResolved, snapshot)
}

// Snapshot returns an immutable copy of the conversation in submission
// order. Renderers read this; they never see live turn pointers.
func (l *Log) Snapshot() []Turn {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]Turn, len(l.turns))
	for i, t := range l.turns {
		out[i] = *t
	}
	return out
}

// Turn returns a copy of the turn with the given ID.
func (l *Log) Turn(id string) (Turn, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	t, ok := l.index[id]
	if !ok {
		return Turn{}, false
	}
	return *t, true
}

// Len returns the number of turns in the conversation.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.turns)
}

func (l *Log) publish(typ EventType, turn Turn) {
	if l.broadcaster == nil {
		return
	}
	l.broadcaster.Publish(l.sessionID, TurnEvent{
		Type:      typ,
		SessionID: l.sessionID,
		Turn:      turn,
	})
}
