// Package trades holds the polled trade history and the statistics and
// candle series derived from it.
package trades

import (
	"sync"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// Feed holds the most recent full trade list from the polling source. Each
// poll replaces the list wholesale; there is no incremental merge and no
// deduplication against the prior list.
//
// Polls may complete out of issue order. Every poll carries a sequence number
// stamped when the request is issued, and TryReplace applies a result only if
// its sequence is newer than the last one applied, so a late-arriving older
// response can never clobber fresher data.
type Feed struct {
	mu     sync.RWMutex
	trades []domain.Trade
	seq    uint64
}

// NewFeed returns an empty Feed.
func NewFeed() *Feed {
	return &Feed{}
}

// TryReplace installs trades as the current list if seq is newer than the
// last applied sequence. It reports whether the replacement was applied.
func (f *Feed) TryReplace(seq uint64, trades []domain.Trade) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	if seq <= f.seq {
		return false
	}
	f.seq = seq
	f.trades = trades
	return true
}

// Current returns the current trade list. Callers must treat the returned
// slice as immutable; derivations copy before sorting.
func (f *Feed) Current() []domain.Trade {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.trades
}

// LastSeq returns the sequence number of the most recently applied poll.
func (f *Feed) LastSeq() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.seq
}
