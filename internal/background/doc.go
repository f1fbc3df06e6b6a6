// Package background owns the per-angular-bin background estimator: the
// asymmetric EMA model that separates static structure from moving returns
// in a single stationary range sensor's polar scans.
//
// Responsibilities: bin partitioning, asymmetric EMA learning, per-sample
// classification into background/foreground/unknown, and a readiness gate.
//
// Dependency rule: background has no dependency on cluster or track.
package background
