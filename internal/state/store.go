package state

import (
	"fmt"
	"sync"
	"time"

	"github.com/five82/copycat/internal/layout"
)

// Snapshot represents the latest scan available to the viewer.
type Snapshot struct {
	Layout              *layout.Layout
	LastUpdated         time.Time
	LastError           error
	ConsecutiveFailures int
	// Generation increases on every successful update so the viewer can tell
	// a fresh layout from one it already rendered.
	Generation uint64
}

// HasLayout reports whether a scan ever succeeded.
func (s Snapshot) HasLayout() bool {
	return s.Layout != nil
}

// Store coordinates concurrent updates to the snapshot.
type Store struct {
	mu       sync.RWMutex
	snapshot Snapshot
}

// Update replaces the stored layout. When err is non-nil the previous layout
// is kept but the error is recorded for visibility. A nil layout with a nil
// error is ignored.
func (s *Store) Update(l *layout.Layout, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err != nil {
		s.snapshot.LastError = err
		s.snapshot.LastUpdated = time.Now()
		s.snapshot.ConsecutiveFailures++
		return
	}
	if l == nil {
		return
	}

	s.snapshot.Layout = l
	s.snapshot.LastError = nil
	s.snapshot.LastUpdated = time.Now()
	s.snapshot.ConsecutiveFailures = 0
	s.snapshot.Generation++
}

// Snapshot returns a copy of the current snapshot. The layout is shared and
// must be treated as read-only; Update never mutates a published layout.
func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := s.snapshot
	if s.snapshot.LastError != nil {
		snap.LastError = fmt.Errorf("%w", s.snapshot.LastError)
	}
	return snap
}
