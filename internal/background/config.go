package background

import "fmt"

// Config holds the tunable parameters for a Model.
type Config struct {
	// AngleBins is B, the number of equal-width arcs partitioning [0, 360).
	AngleBins int
	// LearningRate is alpha in the asymmetric EMA update, in (0, 1].
	LearningRate float64
	// ForegroundThresholdMM is the minimum closeness (mm) below the learned
	// range that marks a sample foreground.
	ForegroundThresholdMM float64
	// MinLearningFrames is the number of completed Update frames required
	// before IsReady returns true.
	MinLearningFrames int
}

// DefaultConfig returns the default background model parameters.
func DefaultConfig() Config {
	return Config{
		AngleBins:             720,
		LearningRate:          0.02,
		ForegroundThresholdMM: 150,
		MinLearningFrames:     30,
	}
}

// Validate checks Config's range constraints. A non-nil error means
// construction must fail with no partial Model.
func (c Config) Validate() error {
	if c.AngleBins < 1 {
		return fmt.Errorf("background: AngleBins must be >= 1, got %d", c.AngleBins)
	}
	if c.LearningRate <= 0 || c.LearningRate > 1 {
		return fmt.Errorf("background: LearningRate must be in (0, 1], got %f", c.LearningRate)
	}
	if c.ForegroundThresholdMM < 0 {
		return fmt.Errorf("background: ForegroundThresholdMM must be non-negative, got %f", c.ForegroundThresholdMM)
	}
	if c.MinLearningFrames < 0 {
		return fmt.Errorf("background: MinLearningFrames must be non-negative, got %d", c.MinLearningFrames)
	}
	return nil
}
