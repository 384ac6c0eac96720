package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Trade is a single execution reported by the trade-history feed. The feed
// carries no explicit trade ID; a trade is identified by its maker/taker
// order-id pair plus timestamp. The feed returns trades most-recent-first,
// but consumers must sort explicitly before any temporal aggregation.
type Trade struct {
	MakerID   uint64
	TakerID   uint64
	Price     decimal.Decimal
	Quantity  uint64
	Timestamp time.Time
}

// Notional returns price * quantity for this trade.
func (t Trade) Notional() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromUint64(t.Quantity))
}

// SortTradesDescending orders trades most-recent-first, in place.
func SortTradesDescending(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.After(trades[j].Timestamp)
	})
}

// SortTradesAscending orders trades oldest-first, in place.
func SortTradesAscending(trades []Trade) {
	sort.SliceStable(trades, func(i, j int) bool {
		return trades[i].Timestamp.Before(trades[j].Timestamp)
	})
}
