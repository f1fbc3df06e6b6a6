package track

import (
	"sort"

	"github.com/scantrack/tracker/internal/cluster"
	"github.com/scantrack/tracker/internal/monitoring"
)

var logf = monitoring.Tagged("track")

// AssociationObserver is an optional hook for test observability into the
// greedy matching step, trimmed from a debug-collector interface down to
// the one callback needed to assert on deterministic tie-breaks: whether a
// given (track, cluster) pair was accepted.
type AssociationObserver interface {
	OnAssociation(trackID int64, clusterIdx int, distMM float64, accepted bool)
}

// RetirementObserver is notified when a track is purged, so the orchestrator
// may prune trajectory storage.
type RetirementObserver interface {
	OnTrackRetired(publicObjectID int64)
}

// Tracker is the exclusive owner of the live-track set.
// Association is performed as index-to-index matching, then every mutation
// is applied in a single pass — no aliasing between matched tracks and
// unmatched clusters.
type Tracker struct {
	cfg Config

	tracks       map[int64]*Track
	nextTrackID  int64
	nextPublicID int64

	observer   AssociationObserver
	retirement RetirementObserver
}

// NewTracker constructs a Tracker, or fails if cfg is out of range.
func NewTracker(cfg Config) (*Tracker, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Tracker{
		cfg:          cfg,
		tracks:       make(map[int64]*Track),
		nextTrackID:  1,
		nextPublicID: 1,
	}, nil
}

// SetAssociationObserver installs an optional association-decision hook.
func (t *Tracker) SetAssociationObserver(o AssociationObserver) { t.observer = o }

// SetRetirementObserver installs an optional track-retirement hook.
func (t *Tracker) SetRetirementObserver(o RetirementObserver) { t.retirement = o }

// Reset clears all tracks and counters. Intended for test harness reuse.
func (t *Tracker) Reset() {
	t.tracks = make(map[int64]*Track)
	t.nextTrackID = 1
	t.nextPublicID = 1
	logf("tracker reset")
}

// LiveTrackCount returns the number of tracks currently held, across all
// lifecycle states.
func (t *Tracker) LiveTrackCount() int {
	return len(t.tracks)
}

// Update runs one frame of the per-frame protocol — predict, score,
// greedily assign, update matched tracks, age unmatched tracks, spawn new
// tentative tracks for unmatched clusters — and returns the confirmed
// objects for this frame in ascending public object id order.
func (t *Tracker) Update(clusters []cluster.Cluster) []Object {
	// Stable iteration order over live tracks: deterministic predicted-state
	// ordering makes the candidate build (and therefore the sort that
	// follows) reproducible independent of Go's randomized map iteration.
	trackIDs := make([]int64, 0, len(t.tracks))
	for id := range t.tracks {
		trackIDs = append(trackIDs, id)
	}
	sort.Slice(trackIDs, func(i, j int) bool { return trackIDs[i] < trackIDs[j] })

	tracks := make([]*Track, len(trackIDs))
	predicted := make([]Vector2, len(trackIDs))
	for i, id := range trackIDs {
		tr := t.tracks[id]
		tracks[i] = tr
		predicted[i] = Vector2{
			X: tr.LastCentroid.X + tr.LastVelocity.X,
			Y: tr.LastCentroid.Y + tr.LastVelocity.Y,
		}
	}

	candidates := buildCandidates(tracks, predicted, clusters, t.cfg.MaxMatchDistanceMM)
	assignment := greedyAssign(candidates, len(tracks), len(clusters))

	if t.observer != nil {
		accepted := make(map[[2]int]bool, len(assignment))
		for ti, ci := range assignment {
			accepted[[2]int{ti, ci}] = true
		}
		for _, c := range candidates {
			t.observer.OnAssociation(c.trackID, c.clusterIdx, c.distMM, accepted[[2]int{c.trackIdx, c.clusterIdx}])
		}
	}

	clusterMatchedTo := make([]int, len(tracks)) // cluster index matched to track i, or -1
	for i := range clusterMatchedTo {
		clusterMatchedTo[i] = -1
	}
	clusterUsed := make([]bool, len(clusters))
	for ti, ci := range assignment {
		clusterMatchedTo[ti] = ci
		clusterUsed[ci] = true
	}

	// Step 4: update matched tracks.
	for i, tr := range tracks {
		ci := clusterMatchedTo[i]
		if ci < 0 {
			continue
		}
		c := clusters[ci]
		newVelocity := Vector2{X: c.Centroid.X - tr.LastCentroid.X, Y: c.Centroid.Y - tr.LastCentroid.Y}
		tr.LastCentroid = Vector2{X: c.Centroid.X, Y: c.Centroid.Y}
		tr.LastVelocity = newVelocity
		tr.ConsecutiveSeen++
		tr.ConsecutiveMiss = 0

		if tr.Status == Tentative && tr.ConsecutiveSeen >= t.cfg.MinConfirmFrames {
			tr.Status = Confirmed
			tr.PublicObjectID = t.nextPublicID
			t.nextPublicID++
		} else if tr.Status == Lost {
			tr.Status = Confirmed
		}
	}

	// Step 5: age unmatched tracks.
	for i, tr := range tracks {
		if clusterMatchedTo[i] >= 0 {
			continue
		}
		tr.LastCentroid = Vector2{X: tr.LastCentroid.X + tr.LastVelocity.X, Y: tr.LastCentroid.Y + tr.LastVelocity.Y}
		tr.ConsecutiveSeen = 0
		tr.ConsecutiveMiss++

		switch tr.Status {
		case Tentative:
			t.retire(tr)
		case Confirmed, Lost:
			tr.Status = Lost
			if tr.ConsecutiveMiss > t.cfg.MaxMissingFrames {
				t.retire(tr)
			}
		}
	}

	// Step 6: spawn tentative tracks for unmatched clusters.
	for ci, c := range clusters {
		if clusterUsed[ci] {
			continue
		}
		id := t.nextTrackID
		t.nextTrackID++
		t.tracks[id] = &Track{
			TrackID:         id,
			LastCentroid:    Vector2{X: c.Centroid.X, Y: c.Centroid.Y},
			LastVelocity:    Vector2{},
			ConsecutiveSeen: 1,
			ConsecutiveMiss: 0,
			Status:          Tentative,
		}
	}

	return t.emit()
}

// retire purges a track record and notifies the retirement observer.
func (t *Tracker) retire(tr *Track) {
	delete(t.tracks, tr.TrackID)
	if tr.hasPublicID() && t.retirement != nil {
		t.retirement.OnTrackRetired(tr.PublicObjectID)
	}
}

// emit returns every confirmed track's current state, in ascending
// public object id order.
func (t *Tracker) emit() []Object {
	var objects []Object
	for _, tr := range t.tracks {
		if tr.Status != Confirmed {
			continue
		}
		objects = append(objects, Object{
			PublicObjectID: tr.PublicObjectID,
			Centroid:       tr.LastCentroid,
			Velocity:       tr.LastVelocity,
		})
	}
	sort.Slice(objects, func(i, j int) bool { return objects[i].PublicObjectID < objects[j].PublicObjectID })
	return objects
}
