package cluster

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Clusterer groups planar points into density-based clusters. It holds no
// state between calls — every Cluster call is a pure function of its input
// and Config.
type Clusterer struct {
	cfg Config
}

// NewClusterer constructs a Clusterer, or fails if cfg is out of range.
func NewClusterer(cfg Config) (*Clusterer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Clusterer{cfg: cfg}, nil
}

// Cluster runs the grid-accelerated density expansion over points, in
// input order, and returns clusters in the order they were opened — this is
// the canonical emission order required for determinism. Clusters whose
// bounding radius exceeds MaxClusterRadiusMM are dropped.
func (c *Clusterer) Cluster(points []Point) []Cluster {
	if len(points) == 0 {
		return nil
	}

	const (
		unvisited = 0
		noise     = -1
	)
	labels := make([]int, len(points))
	index := newSpatialIndex(c.cfg.EpsMM)
	index.build(points)

	nextClusterID := 0
	for i := range points {
		if labels[i] != unvisited {
			continue
		}
		seeds := index.neighbors(points, i, c.cfg.EpsMM)
		if len(seeds) < c.cfg.MinSamples {
			labels[i] = noise
			continue
		}
		nextClusterID++
		c.expand(points, index, labels, i, seeds, nextClusterID)
	}

	return c.buildClusters(points, labels, nextClusterID)
}

// expand grows clusterID from a core point, absorbing border points without
// letting them re-expand the frontier.
func (c *Clusterer) expand(points []Point, index *spatialIndex, labels []int, seedIdx int, seeds []int, clusterID int) {
	labels[seedIdx] = clusterID

	queue := append([]int(nil), seeds...)
	for qi := 0; qi < len(queue); qi++ {
		idx := queue[qi]
		if labels[idx] == -1 {
			labels[idx] = clusterID // noise absorbed as a border point
		}
		if labels[idx] != 0 {
			continue // already a member of this or another cluster
		}
		labels[idx] = clusterID
		more := index.neighbors(points, idx, c.cfg.EpsMM)
		if len(more) >= c.cfg.MinSamples {
			queue = append(queue, more...)
		}
	}
}

// buildClusters computes centroid and bounding radius per cluster ID, in
// opened order, dropping oversized clusters.
func (c *Clusterer) buildClusters(points []Point, labels []int, maxClusterID int) []Cluster {
	if maxClusterID == 0 {
		return nil
	}

	xs := make([][]float64, maxClusterID+1)
	ys := make([][]float64, maxClusterID+1)
	for i, label := range labels {
		if label < 1 || label > maxClusterID {
			continue
		}
		xs[label] = append(xs[label], points[i].X)
		ys[label] = append(ys[label], points[i].Y)
	}

	clusters := make([]Cluster, 0, maxClusterID)
	for id := 1; id <= maxClusterID; id++ {
		memberX := xs[id]
		memberY := ys[id]
		if len(memberX) == 0 {
			continue
		}
		n := float64(len(memberX))
		centroid := Point{
			X: floats.Sum(memberX) / n,
			Y: floats.Sum(memberY) / n,
		}
		radius := 0.0
		for i := range memberX {
			dx := memberX[i] - centroid.X
			dy := memberY[i] - centroid.Y
			if d := math.Hypot(dx, dy); d > radius {
				radius = d
			}
		}
		if radius > c.cfg.MaxClusterRadiusMM {
			continue
		}
		clusters = append(clusters, Cluster{
			Centroid:         centroid,
			MemberCount:      len(memberX),
			BoundingRadiusMM: radius,
		})
	}
	return clusters
}
