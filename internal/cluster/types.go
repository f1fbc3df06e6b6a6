package cluster

import "fmt"

// Point is a planar point in millimetres, sensor-frame, origin at the sensor.
type Point struct {
	X, Y float64
}

// Cluster is one extracted group of dense foreground points.
type Cluster struct {
	Centroid         Point
	MemberCount      int
	BoundingRadiusMM float64
}

// Config holds the tunable parameters for the clusterer.
type Config struct {
	// EpsMM is the neighborhood radius in millimetres.
	EpsMM float64
	// MinSamples is the core-point threshold.
	MinSamples int
	// MaxClusterRadiusMM rejects clusters whose bounding radius exceeds it.
	MaxClusterRadiusMM float64
}

// DefaultConfig returns the default clusterer parameters.
func DefaultConfig() Config {
	return Config{
		EpsMM:              200,
		MinSamples:         3,
		MaxClusterRadiusMM: 500,
	}
}

// Validate checks Config's range constraints.
func (c Config) Validate() error {
	if c.EpsMM <= 0 {
		return fmt.Errorf("cluster: EpsMM must be positive, got %f", c.EpsMM)
	}
	if c.MinSamples < 1 {
		return fmt.Errorf("cluster: MinSamples must be >= 1, got %d", c.MinSamples)
	}
	if c.MaxClusterRadiusMM < 0 {
		return fmt.Errorf("cluster: MaxClusterRadiusMM must be non-negative, got %f", c.MaxClusterRadiusMM)
	}
	return nil
}
