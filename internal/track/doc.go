// Package track implements a greedy data-association tracker: velocity-
// based motion prediction, a tentative→confirmed→lost lifecycle, and
// globally-greedy nearest-centroid matching.
//
// Dependency rule: track depends on cluster (it consumes cluster.Cluster
// values) but never the other way around.
package track
