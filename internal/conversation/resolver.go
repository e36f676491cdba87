// ABOUTME: Resolver abstraction between the log and the answer backend
// ABOUTME: MatcherResolver wraps the keyword matcher behind a simulated lookup latency

package conversation

import (
	"context"
	"math/rand"
	"time"

	"github.com/2389/docdesk/internal/knowledge"
)

// Resolver produces a response for a question. Returning (nil, nil) means
// "no answer found" and is not an error; the log substitutes the fallback.
// A real retrieval backend slots in here without touching the log's
// state-transition logic.
type Resolver interface {
	Resolve(ctx context.Context, question string) (*knowledge.Response, error)
}

// MatcherResolver answers questions from a knowledge matcher after a
// simulated lookup delay. The delay is a fixed base plus uniform jitter,
// so later-submitted turns can resolve before earlier ones.
type MatcherResolver struct {
	matcher *knowledge.Matcher
	delay   time.Duration
	jitter  time.Duration
}

// NewMatcherResolver creates a resolver over the given matcher.
// Negative durations are treated as zero.
func NewMatcherResolver(m *knowledge.Matcher, delay, jitter time.Duration) *MatcherResolver {
	if delay < 0 {
		delay = 0
	}
	if jitter < 0 {
		jitter = 0
	}
	return &MatcherResolver{matcher: m, delay: delay, jitter: jitter}
}

// Resolve waits out the simulated latency, then consults the matcher.
// The context only interrupts the wait; matching itself is instantaneous.
func (r *MatcherResolver) Resolve(ctx context.Context, question string) (*knowledge.Response, error) {
	wait := r.delay
	if r.jitter > 0 {
		wait += time.Duration(rand.Int63n(int64(r.jitter)))
	}
	if wait > 0 {
		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}

	resp, ok := r.matcher.Match(question)
	if !ok {
		return nil, nil
	}
	return &resp, nil
}
