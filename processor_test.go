package scantrack

import (
	"math"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func lowLearningConfig() Config {
	cfg := DefaultConfig()
	cfg.MinLearningFrames = 2
	cfg.MinConfirmFrames = 2
	cfg.MaxMissingFrames = 2
	return cfg
}

// wallScan returns a full 360-degree sweep at a constant range, simulating
// an empty room's static wall.
func wallScan(cfg Config, rangeMM float64) []RawSample {
	samples := make([]RawSample, cfg.AngleBins)
	step := 360.0 / float64(cfg.AngleBins)
	for i := range samples {
		samples[i] = RawSample{AngleDeg: float64(i) * step, RangeMM: rangeMM}
	}
	return samples
}

// withIntrusion returns a copy of base with a block of samples near angle 0
// replaced by a closer range, simulating a person standing in the scene.
func withIntrusion(base []RawSample, fromIdx, toIdx int, rangeMM float64) []RawSample {
	out := append([]RawSample(nil), base...)
	for i := fromIdx; i < toIdx; i++ {
		out[i].RangeMM = rangeMM
	}
	return out
}

func TestNewProcessor_InvalidConfigPropagatesStageError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AngleBins = 0
	_, err := NewProcessor(cfg)
	require.Error(t, err)
}

func TestProcessScan_GatedUntilBackgroundReady(t *testing.T) {
	cfg := lowLearningConfig()
	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	wall := wallScan(cfg, 3000)

	rec := p.ProcessScan(wall)
	require.False(t, rec.BackgroundReady)
	require.Empty(t, rec.Objects)

	rec = p.ProcessScan(wall)
	require.True(t, rec.BackgroundReady, "two frames reaches MinLearningFrames=2")
}

func TestProcessScan_InputNormalization(t *testing.T) {
	cfg := lowLearningConfig()
	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	bad := []RawSample{
		{AngleDeg: 0, RangeMM: -100},
		{AngleDeg: 0, RangeMM: 0},
		{AngleDeg: math.NaN(), RangeMM: 100},
		{AngleDeg: math.Inf(1), RangeMM: 100},
		{AngleDeg: 370, RangeMM: 3000}, // normalizes to 10
		{AngleDeg: -10, RangeMM: 3000}, // normalizes to 350
	}
	rec := p.ProcessScan(bad)
	require.False(t, rec.BackgroundReady)
	require.Empty(t, rec.Objects)
}

func TestProcessScan_ConfirmsStationaryIntrusion(t *testing.T) {
	cfg := lowLearningConfig()
	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	wall := wallScan(cfg, 3000)
	p.ProcessScan(wall)
	p.ProcessScan(wall) // background now ready

	scene := withIntrusion(wall, 0, 10, 1000)
	rec := p.ProcessScan(scene)
	require.True(t, rec.BackgroundReady)
	require.Empty(t, rec.Objects, "first sighting is tentative")

	rec = p.ProcessScan(scene)
	require.Len(t, rec.Objects, 1, "second consecutive sighting confirms")

	hist := p.Trajectory(rec.Objects[0].PublicObjectID)
	require.Len(t, hist, 1, "trajectory records only confirmed-frame centroids")
}

func TestProcessScan_DeterministicAcrossIdenticalRuns(t *testing.T) {
	cfg := lowLearningConfig()

	run := func() []FrameRecord {
		p, err := NewProcessor(cfg)
		require.NoError(t, err)
		wall := wallScan(cfg, 3000)
		scene := withIntrusion(wall, 0, 10, 1000)

		var records []FrameRecord
		records = append(records, p.ProcessScan(wall))
		records = append(records, p.ProcessScan(wall))
		records = append(records, p.ProcessScan(scene))
		records = append(records, p.ProcessScan(scene))
		records = append(records, p.ProcessScan(scene))
		return records
	}

	a := run()
	b := run()
	if diff := cmp.Diff(a, b); diff != "" {
		t.Fatalf("identical scan sequences produced divergent frame records (-run1 +run2):\n%s", diff)
	}
}

func TestReset_ClearsAllStageState(t *testing.T) {
	cfg := lowLearningConfig()
	p, err := NewProcessor(cfg)
	require.NoError(t, err)

	wall := wallScan(cfg, 3000)
	p.ProcessScan(wall)
	p.ProcessScan(wall)

	p.Reset()

	rec := p.ProcessScan(wall)
	require.False(t, rec.BackgroundReady, "reset clears the background learning progress")
}

func TestInstanceID_UniquePerProcessor(t *testing.T) {
	cfg := DefaultConfig()
	p1, err := NewProcessor(cfg)
	require.NoError(t, err)
	p2, err := NewProcessor(cfg)
	require.NoError(t, err)
	require.NotEqual(t, p1.InstanceID(), p2.InstanceID())
}

func TestTrajectory_UnknownObjectReturnsEmpty(t *testing.T) {
	p, err := NewProcessor(DefaultConfig())
	require.NoError(t, err)
	require.Empty(t, p.Trajectory(999))
}
