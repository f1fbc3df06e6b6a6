package background

import (
	"math"

	"gonum.org/v1/gonum/stat"

	"github.com/scantrack/tracker/internal/monitoring"
)

var logf = monitoring.Tagged("background")

// Model is the per-angular-bin background estimator. It owns the bins
// exclusively; callers never mutate Bin values directly.
type Model struct {
	cfg        Config
	bins       []Bin
	frameCount int

	stats Stats
}

// NewModel constructs a Model, or fails with a descriptive error if cfg is
// out of range. No partial Model is ever returned on error.
func NewModel(cfg Config) (*Model, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Model{
		cfg:  cfg,
		bins: make([]Bin, cfg.AngleBins),
	}, nil
}

// binIndex maps an angle in degrees to its bin: floor(angle*B/360) mod B.
func (m *Model) binIndex(angleDeg float64) int {
	angleDeg = math.Mod(angleDeg, 360)
	if angleDeg < 0 {
		angleDeg += 360
	}
	idx := int(math.Floor(angleDeg * float64(m.cfg.AngleBins) / 360))
	idx %= m.cfg.AngleBins
	if idx < 0 {
		idx += m.cfg.AngleBins
	}
	return idx
}

// Update folds samples into their bins using the asymmetric EMA rule: a
// sample significantly closer than the learned range (a likely foreground
// intrusion) never pulls the background closer. Samples are applied in
// input order, then the frame counter advances — this is one completed
// learning frame regardless of how many samples it contained.
func (m *Model) Update(samples []PolarSample) {
	for _, s := range samples {
		idx := m.binIndex(s.AngleDeg)
		bin := &m.bins[idx]
		bin.SampleCount++
		if !bin.Learned {
			bin.Learned = true
			bin.LearnedRangeMM = s.RangeMM
			continue
		}
		if s.RangeMM >= bin.LearnedRangeMM-m.cfg.ForegroundThresholdMM {
			bin.LearnedRangeMM = (1-m.cfg.LearningRate)*bin.LearnedRangeMM + m.cfg.LearningRate*s.RangeMM
		}
	}
	m.frameCount++
}

// Classify labels each sample against the current bin state. It leaves the
// bins untouched but adds each label to the counters reported by Stats.
// Unknown samples correspond to unlearned bins.
func (m *Model) Classify(samples []PolarSample) []Label {
	labels := make([]Label, len(samples))
	for i, s := range samples {
		idx := m.binIndex(s.AngleDeg)
		bin := m.bins[idx]
		var label Label
		switch {
		case !bin.Learned:
			label = Unknown
		case s.RangeMM <= bin.LearnedRangeMM-m.cfg.ForegroundThresholdMM:
			label = Foreground
		default:
			label = Background
		}
		labels[i] = label
		switch label {
		case Background:
			m.stats.BackgroundCount++
		case Foreground:
			m.stats.ForegroundCount++
		default:
			m.stats.UnknownCount++
		}
	}
	return labels
}

// IsReady reports whether enough frames have been learned for the pipeline
// to start emitting tracked objects.
func (m *Model) IsReady() bool {
	return m.frameCount >= m.cfg.MinLearningFrames
}

// FrameCount returns the number of completed Update calls.
func (m *Model) FrameCount() int {
	return m.frameCount
}

// Stats returns classification counters accumulated since construction or
// the last Reset, along with the mean learned range across learned bins.
func (m *Model) Stats() Stats {
	s := m.stats
	ranges := make([]float64, 0, len(m.bins))
	for _, b := range m.bins {
		if b.Learned {
			ranges = append(ranges, b.LearnedRangeMM)
		}
	}
	if len(ranges) > 0 {
		s.MeanLearnedRangeMM = stat.Mean(ranges, nil)
	}
	return s
}

// Reset clears all bin state, the frame counter, and the stats counters.
// Intended for test harness reuse between scenarios.
func (m *Model) Reset() {
	for i := range m.bins {
		m.bins[i] = Bin{}
	}
	m.frameCount = 0
	m.stats = Stats{}
	logf("model reset (%d bins)", len(m.bins))
}
