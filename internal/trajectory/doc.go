// Package trajectory holds a bounded per-object position history, used to
// answer "where has object N been" queries. It depends on the track
// package's Vector2 and Object types (and on internal/monitoring for its
// diagnostic line) and is populated by the orchestrator after each
// Tracker.Update call, never by the tracker itself.
package trajectory
