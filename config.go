package scantrack

import (
	"github.com/scantrack/tracker/internal/background"
	"github.com/scantrack/tracker/internal/cluster"
	"github.com/scantrack/tracker/internal/track"
	"github.com/scantrack/tracker/internal/trajectory"
)

// Config aggregates every tunable parameter across the three pipeline
// stages plus the trajectory store.
type Config struct {
	BackgroundLearningRate float64
	ForegroundThresholdMM  float64
	MinLearningFrames      int
	AngleBins              int

	ClusterEpsMM       float64
	ClusterMinSamples  int
	MaxClusterRadiusMM float64

	MaxMatchDistanceMM float64
	MaxMissingFrames   int
	MinConfirmFrames   int

	MaxTrajectoryLength int
}

// DefaultConfig returns the default parameters for every pipeline stage.
func DefaultConfig() Config {
	return Config{
		BackgroundLearningRate: 0.02,
		ForegroundThresholdMM:  150,
		MinLearningFrames:      30,
		AngleBins:              720,

		ClusterEpsMM:       200,
		ClusterMinSamples:  3,
		MaxClusterRadiusMM: 500,

		MaxMatchDistanceMM: 800,
		MaxMissingFrames:   10,
		MinConfirmFrames:   2,

		MaxTrajectoryLength: 0,
	}
}

func (c Config) backgroundConfig() background.Config {
	return background.Config{
		AngleBins:             c.AngleBins,
		LearningRate:          c.BackgroundLearningRate,
		ForegroundThresholdMM: c.ForegroundThresholdMM,
		MinLearningFrames:     c.MinLearningFrames,
	}
}

func (c Config) clusterConfig() cluster.Config {
	return cluster.Config{
		EpsMM:              c.ClusterEpsMM,
		MinSamples:         c.ClusterMinSamples,
		MaxClusterRadiusMM: c.MaxClusterRadiusMM,
	}
}

func (c Config) trackConfig() track.Config {
	return track.Config{
		MaxMatchDistanceMM: c.MaxMatchDistanceMM,
		MaxMissingFrames:   c.MaxMissingFrames,
		MinConfirmFrames:   c.MinConfirmFrames,
	}
}

func (c Config) trajectoryConfig() trajectory.Config {
	return trajectory.Config{MaxLength: c.MaxTrajectoryLength}
}
