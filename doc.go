// Package scantrack wires together the background, cluster, and track
// stages into a single per-frame pipeline: a raw polar scan in, an ordered
// list of confirmed tracked objects out.
//
// Scheduling model: single-threaded, synchronous. ProcessScan is a blocking
// computation that returns before the next call. The library provides no
// internal locking; callers serialize invocations externally.
package scantrack
