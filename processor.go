package scantrack

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/scantrack/tracker/internal/background"
	"github.com/scantrack/tracker/internal/cluster"
	"github.com/scantrack/tracker/internal/monitoring"
	"github.com/scantrack/tracker/internal/track"
	"github.com/scantrack/tracker/internal/trajectory"
)

var logf = monitoring.Tagged("scantrack")

// RawSample is one polar range-sensor reading prior to normalization.
// AngleDeg may fall outside [0, 360); it is normalized by modulo.
type RawSample struct {
	AngleDeg float64
	RangeMM  float64
}

// TrackedObject is one confirmed tracked object reported for a frame.
type TrackedObject struct {
	PublicObjectID int64
	CentroidX      float64
	CentroidY      float64
	VelocityX      float64
	VelocityY      float64
}

// FrameRecord is the per-call output of ProcessScan.
type FrameRecord struct {
	Objects         []TrackedObject
	BackgroundReady bool
}

// Processor wires a BackgroundModel, Clusterer, Tracker, and trajectory
// Store into the per-frame pipeline. Each Processor carries a random
// instance id for log correlation across concurrently
// instantiated processors in a test harness; it plays no part in track or
// object identity, which remain the monotonic counters owned by the
// tracker.
type Processor struct {
	instanceID string

	bg    *background.Model
	clst  *cluster.Clusterer
	trk   *track.Tracker
	trajs *trajectory.Store
}

// NewProcessor constructs a Processor, or fails if cfg is out of range for
// any stage.
func NewProcessor(cfg Config) (*Processor, error) {
	bg, err := background.NewModel(cfg.backgroundConfig())
	if err != nil {
		return nil, fmt.Errorf("scantrack: %w", err)
	}
	clst, err := cluster.NewClusterer(cfg.clusterConfig())
	if err != nil {
		return nil, fmt.Errorf("scantrack: %w", err)
	}
	trk, err := track.NewTracker(cfg.trackConfig())
	if err != nil {
		return nil, fmt.Errorf("scantrack: %w", err)
	}
	trajs, err := trajectory.NewStore(cfg.trajectoryConfig())
	if err != nil {
		return nil, fmt.Errorf("scantrack: %w", err)
	}
	trk.SetRetirementObserver(trajs)

	p := &Processor{
		instanceID: uuid.NewString(),
		bg:         bg,
		clst:       clst,
		trk:        trk,
		trajs:      trajs,
	}
	logf("processor %s constructed", p.instanceID)
	return p, nil
}

// normalize implements the input contract: angles outside [0, 360) are
// normalized by modulo; samples with non-positive range, or a non-finite
// angle, are filtered before any stage sees them.
func normalize(raw []RawSample) []background.PolarSample {
	out := make([]background.PolarSample, 0, len(raw))
	for _, r := range raw {
		if r.RangeMM <= 0 || math.IsNaN(r.AngleDeg) || math.IsInf(r.AngleDeg, 0) {
			continue
		}
		angle := math.Mod(r.AngleDeg, 360)
		if angle < 0 {
			angle += 360
		}
		out = append(out, background.PolarSample{AngleDeg: angle, RangeMM: r.RangeMM})
	}
	return out
}

// toPlanar converts a polar sample to a planar point in the sensor frame:
// x to the right, y upward, origin at the sensor, angle measured counter-
// clockwise from the positive x axis.
func toPlanar(s background.PolarSample) cluster.Point {
	rad := s.AngleDeg * math.Pi / 180
	return cluster.Point{
		X: s.RangeMM * math.Cos(rad),
		Y: s.RangeMM * math.Sin(rad),
	}
}

// ProcessScan runs one frame of the pipeline: normalize, update and
// classify against the background model, convert foreground samples to
// planar points, cluster, associate against live tracks, and record the
// resulting centroids into the trajectory store. Tracking is gated on
// background readiness: while the model has not completed its learning
// window, the model still updates but ProcessScan reports no tracked
// objects for the frame.
func (p *Processor) ProcessScan(raw []RawSample) FrameRecord {
	samples := normalize(raw)

	p.bg.Update(samples)
	ready := p.bg.IsReady()

	if !ready {
		return FrameRecord{Objects: nil, BackgroundReady: false}
	}

	labels := p.bg.Classify(samples)
	var points []cluster.Point
	for i, l := range labels {
		if l == background.Foreground {
			points = append(points, toPlanar(samples[i]))
		}
	}

	clusters := p.clst.Cluster(points)
	objects := p.trk.Update(clusters)
	p.trajs.Record(objects)

	out := make([]TrackedObject, len(objects))
	for i, o := range objects {
		out[i] = TrackedObject{
			PublicObjectID: o.PublicObjectID,
			CentroidX:      o.Centroid.X,
			CentroidY:      o.Centroid.Y,
			VelocityX:      o.Velocity.X,
			VelocityY:      o.Velocity.Y,
		}
	}
	return FrameRecord{Objects: out, BackgroundReady: true}
}

// Trajectory returns the ordered centroid history recorded so far for a
// public object id, oldest first. Returns an empty slice if the id has
// never been seen or has been pruned after retirement.
func (p *Processor) Trajectory(publicObjectID int64) []TrackedObjectPosition {
	hist := p.trajs.Query(publicObjectID)
	out := make([]TrackedObjectPosition, len(hist))
	for i, v := range hist {
		out[i] = TrackedObjectPosition{X: v.X, Y: v.Y}
	}
	return out
}

// TrackedObjectPosition is one recorded centroid in a trajectory query.
type TrackedObjectPosition struct {
	X, Y float64
}

// Reset clears all pipeline state: background bins, live tracks, and
// trajectory history. Intended for test harness reuse between scenarios.
func (p *Processor) Reset() {
	p.bg.Reset()
	p.trk.Reset()
	p.trajs.Reset()
}

// InstanceID returns this processor's diagnostic correlation id.
func (p *Processor) InstanceID() string {
	return p.instanceID
}
