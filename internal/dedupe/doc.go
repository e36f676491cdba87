// Package dedupe provides a thread-safe TTL cache for suppressing
// duplicate question submissions. A question re-submitted to the same
// session within the TTL (double-clicked send button, retried request) is
// silently dropped by the conversation log, the same way blank input is.
package dedupe
