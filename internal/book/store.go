package book

import (
	"sync"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// Store holds the single current order-book snapshot. Every push message
// replaces the whole value; readers see either the entirely-old or the
// entirely-new snapshot, never a mixture. Malformed messages are rejected at
// the parse boundary before they reach Replace, so the prior snapshot is
// retained on any decode failure.
type Store struct {
	mu   sync.RWMutex
	snap domain.OrderBookSnapshot
}

// NewStore returns a Store holding an empty snapshot.
func NewStore() *Store {
	return &Store{}
}

// Replace atomically installs snap as the current snapshot.
func (s *Store) Replace(snap domain.OrderBookSnapshot) {
	s.mu.Lock()
	s.snap = snap
	s.mu.Unlock()
}

// Current returns the current snapshot. Callers must treat the returned
// value as immutable for the duration of any derivation.
func (s *Store) Current() domain.OrderBookSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}
