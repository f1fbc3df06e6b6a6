// Package cluster implements a grid-accelerated density-based clusterer, a
// DBSCAN variant over 2D planar points that uses a regular grid spatial
// index to keep neighborhood queries near O(1) per point in the sensor's
// operating regime.
//
// Dependency rule: cluster has no dependency on background or track.
package cluster
