// Package account holds the most recent polled per-asset balances. Balances
// are display-only here; derivation and enforcement live in the exchange.
package account

import (
	"sync"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// Store holds the latest polled balances, replaced wholesale like the other
// feed stores and guarded by the same issue-sequence check.
type Store struct {
	mu       sync.RWMutex
	balances map[string]domain.Balance
	seq      uint64
}

// NewStore returns an empty balance Store.
func NewStore() *Store {
	return &Store{balances: make(map[string]domain.Balance)}
}

// TryReplace installs balances if seq is newer than the last applied poll.
func (s *Store) TryReplace(seq uint64, balances map[string]domain.Balance) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.seq {
		return false
	}
	s.seq = seq
	s.balances = balances
	return true
}

// Current returns a copy of the latest balances keyed by asset symbol.
func (s *Store) Current() map[string]domain.Balance {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]domain.Balance, len(s.balances))
	for asset, b := range s.balances {
		out[asset] = b
	}
	return out
}
