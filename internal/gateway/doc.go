// Package gateway exposes the conversation service over HTTP.
//
// # Endpoints
//
//   - POST /api/ask — submit a question; responds immediately with the
//     session and turn IDs. Blank or duplicate questions are accepted: false.
//   - GET /api/conversation?session_id= — ordered snapshot of the session's
//     turns, with markdown answers rendered to HTML.
//   - GET /api/events?session_id= — SSE stream of turn lifecycle events for
//     live UI updates.
//   - GET /api/examples — example questions for pre-filling the input.
//   - GET /healthz — liveness.
//   - GET /metrics — Prometheus counters (when enabled).
//   - GET / and /static/* — the embedded single-page chat UI.
//
// The gateway never surfaces matcher misses as errors: a no-match turn
// resolves carrying the fallback answer, and the HTTP surface reports it
// as a normal resolved turn.
package gateway
