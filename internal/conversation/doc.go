// Package conversation owns the per-session question/answer lifecycle.
//
// # Overview
//
// A Log is one session's ordered, append-only conversation. Submitting a
// question appends a Pending turn and schedules asynchronous resolution
// through a Resolver; when the resolver finishes, the turn transitions to
// Resolved exactly once, carrying either the matched response or the fixed
// fallback. "No match" is a successful resolution, never an error.
//
// # Invariants
//
//   - Conversation order is submission order. Turns are never removed or
//     reordered, even though resolutions may complete out of order.
//   - A turn resolves exactly once; its terminal state is immutable.
//   - Blank questions are a validation no-op, not an error.
//   - Each session gets its own Log. Sessions never share state.
//
// # Events
//
// Every mutation publishes a TurnEvent through the shared Broadcaster.
// Renderers subscribe with a context and read immutable turn copies:
//
//	ch, subID := broadcaster.Subscribe(ctx, sessionID)
//	for ev := range ch { ... }
//
// Slow subscribers drop events rather than blocking the store.
//
// # Sessions
//
// The Manager hands out Logs keyed by uuid session IDs and sweeps
// sessions that have been idle past their TTL.
package conversation
