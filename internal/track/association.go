package track

import (
	"math"
	"sort"

	"github.com/scantrack/tracker/internal/cluster"
)

// candidate is one (track, cluster) pair within the gating distance.
type candidate struct {
	trackID    int64
	trackIdx   int
	clusterIdx int
	distMM     float64
}

// buildCandidates forms every (track, cluster) pair whose predicted-centroid
// distance is within maxDistMM. predicted is indexed the same as tracks.
func buildCandidates(tracks []*Track, predicted []Vector2, clusters []cluster.Cluster, maxDistMM float64) []candidate {
	var candidates []candidate
	for ti, t := range tracks {
		p := predicted[ti]
		for ci, c := range clusters {
			dx := c.Centroid.X - p.X
			dy := c.Centroid.Y - p.Y
			d := math.Hypot(dx, dy)
			if d <= maxDistMM {
				candidates = append(candidates, candidate{
					trackID:    t.TrackID,
					trackIdx:   ti,
					clusterIdx: ci,
					distMM:     d,
				})
			}
		}
	}
	return candidates
}

// greedyAssign sorts candidates once by (distance, track id, cluster index)
// and sweeps, maintaining occupancy flags — this avoids a quadratic
// rescan. Returns, per matched pair, the track index and cluster index.
func greedyAssign(candidates []candidate, numTracks, numClusters int) (trackToCluster map[int]int) {
	sort.Slice(candidates, func(i, j int) bool {
		a, b := candidates[i], candidates[j]
		if a.distMM != b.distMM {
			return a.distMM < b.distMM
		}
		if a.trackID != b.trackID {
			return a.trackID < b.trackID
		}
		return a.clusterIdx < b.clusterIdx
	})

	trackMatched := make([]bool, numTracks)
	clusterMatched := make([]bool, numClusters)
	trackToCluster = make(map[int]int)

	for _, c := range candidates {
		if trackMatched[c.trackIdx] || clusterMatched[c.clusterIdx] {
			continue
		}
		trackMatched[c.trackIdx] = true
		clusterMatched[c.clusterIdx] = true
		trackToCluster[c.trackIdx] = c.clusterIdx
	}
	return trackToCluster
}
