// ABOUTME: Session manager handing out isolated per-session conversation logs
// ABOUTME: Sessions are keyed by uuid and swept after an idle TTL

package conversation

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/2389/docdesk/internal/dedupe"
)

// dedupeTTL is how long an identical question is suppressed per session.
// Long enough to absorb double-clicks, short enough that deliberately
// re-asking later still works.
const dedupeTTL = 3 * time.Second

// dedupeMaxSize caps the recent-question cache across all sessions.
const dedupeMaxSize = 4096

// Manager creates and retires per-session conversation logs. Every
// session owns an isolated Log; nothing is shared between sessions except
// the resolver and the broadcaster, both of which are stateless per call.
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*session

	resolver    Resolver
	broadcaster *Broadcaster
	recent      *dedupe.Cache
	idleTTL     time.Duration
	logger      *slog.Logger
	baseLogger  *slog.Logger

	done      chan struct{}
	closeOnce sync.Once
}

type session struct {
	log      *Log
	lastUsed time.Time
}

// NewManager creates a session manager. Sessions idle longer than idleTTL
// are swept by a background goroutine. Pass nil logger for the default.
func NewManager(resolver Resolver, idleTTL time.Duration, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	m := &Manager{
		sessions:    make(map[string]*session),
		resolver:    resolver,
		broadcaster: NewBroadcaster(logger),
		recent:      dedupe.New(dedupeTTL, dedupeMaxSize),
		idleTTL:     idleTTL,
		logger:      logger.With("component", "sessions"),
		baseLogger:  logger,
		done:        make(chan struct{}),
	}
	go m.sweep()
	return m
}

// Broadcaster returns the shared event broadcaster renderers subscribe to.
func (m *Manager) Broadcaster() *Broadcaster {
	return m.broadcaster
}

// Get returns the log for the given session ID, creating a fresh session
// when the ID is empty or unknown. The returned session ID is the one the
// caller should carry forward; it differs from the input when a new
// session was created.
func (m *Manager) Get(sessionID string) (*Log, string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if sessionID != "" {
		if s, ok := m.sessions[sessionID]; ok {
			s.lastUsed = time.Now()
			return s.log, sessionID
		}
	}

	// Unknown or absent ID: mint a new isolated session. Stale IDs from
	// swept sessions land here too — the old conversation is simply gone.
	sessionID = uuid.New().String()
	log := NewLog(sessionID, m.resolver, m.baseLogger,
		WithBroadcaster(m.broadcaster),
		WithDedupe(m.recent),
	)
	m.sessions[sessionID] = &session{log: log, lastUsed: time.Now()}
	m.logger.Debug("session created", "session_id", sessionID)
	return log, sessionID
}

// Lookup returns the log for a session without creating one.
func (m *Manager) Lookup(sessionID string) (*Log, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[sessionID]
	if !ok {
		return nil, false
	}
	return s.log, true
}

// Len returns the number of live sessions.
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Close stops the sweeper and shuts down the broadcaster and dedupe cache.
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		close(m.done)
		m.recent.Close()
		m.broadcaster.Close()
	})
}

// sweep periodically drops sessions idle past the TTL.
func (m *Manager) sweep() {
	interval := m.idleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			m.sweepIdle()
		case <-m.done:
			return
		}
	}
}

func (m *Manager) sweepIdle() {
	cutoff := time.Now().Add(-m.idleTTL)

	m.mu.Lock()
	defer m.mu.Unlock()

	for id, s := range m.sessions {
		if s.lastUsed.Before(cutoff) {
			delete(m.sessions, id)
			m.logger.Debug("idle session swept", "session_id", id, "turns", s.log.Len())
		}
	}
}
