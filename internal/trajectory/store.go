package trajectory

import (
	"fmt"

	"github.com/scantrack/tracker/internal/monitoring"
	"github.com/scantrack/tracker/internal/track"
)

var logf = monitoring.Tagged("trajectory")

// Config controls how much history is retained per object.
type Config struct {
	// MaxLength caps the number of positions retained per object. 0 means
	// unbounded.
	MaxLength int
}

// DefaultConfig returns an unbounded trajectory store.
func DefaultConfig() Config {
	return Config{MaxLength: 0}
}

// Validate checks the constraints on Config.
func (c Config) Validate() error {
	if c.MaxLength < 0 {
		return fmt.Errorf("trajectory: MaxLength must be non-negative, got %d", c.MaxLength)
	}
	return nil
}

// Store retains, per public object id, an ordered history of centroids.
// It is not safe for concurrent use.
type Store struct {
	cfg     Config
	history map[int64][]track.Vector2
}

// NewStore constructs a Store, or fails if cfg is out of range.
func NewStore(cfg Config) (*Store, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Store{
		cfg:     cfg,
		history: make(map[int64][]track.Vector2),
	}, nil
}

// Record appends the current positions of the given objects, one entry per
// object, to their respective histories. Intended to be called once per
// frame with the objects emitted by Tracker.Update.
func (s *Store) Record(objects []track.Object) {
	for _, o := range objects {
		h := append(s.history[o.PublicObjectID], o.Centroid)
		if s.cfg.MaxLength > 0 && len(h) > s.cfg.MaxLength {
			h = h[len(h)-s.cfg.MaxLength:]
		}
		s.history[o.PublicObjectID] = h
	}
}

// Query returns the ordered position history for a public object id, oldest
// first. The returned slice is a copy; callers may not mutate the store.
func (s *Store) Query(publicObjectID int64) []track.Vector2 {
	h := s.history[publicObjectID]
	if len(h) == 0 {
		return nil
	}
	out := make([]track.Vector2, len(h))
	copy(out, h)
	return out
}

// Prune discards the history for a retired object. Intended to be wired to
// track.RetirementObserver.
func (s *Store) Prune(publicObjectID int64) {
	delete(s.history, publicObjectID)
}

// OnTrackRetired implements track.RetirementObserver.
func (s *Store) OnTrackRetired(publicObjectID int64) {
	s.Prune(publicObjectID)
	logf("pruned history for object %d", publicObjectID)
}

// Reset clears all retained history.
func (s *Store) Reset() {
	s.history = make(map[int64][]track.Vector2)
}
