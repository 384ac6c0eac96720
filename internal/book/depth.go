package book

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

var oneHundred = decimal.NewFromInt(100)

// Depth is the fully derived ladder view of one snapshot. Spread and
// SpreadPercent are zero whenever either side is empty; HasBid/HasAsk tell
// "no liquidity" apart from a genuinely zero spread.
type Depth struct {
	Bids          []LevelRow // sorted strictly descending by price
	Asks          []LevelRow // sorted strictly ascending by price
	BestBid       decimal.Decimal
	BestAsk       decimal.Decimal
	HasBid        bool
	HasAsk        bool
	Spread        decimal.Decimal
	SpreadPercent decimal.Decimal
}

// ComputeDepth derives the depth ladder from a snapshot. Each side is
// truncated to the maxLevels prices closest to the spread: the highest bids
// and the lowest asks. Cumulative quantities accumulate from the best price
// outward. Pure function of the snapshot.
func ComputeDepth(snap domain.OrderBookSnapshot, maxLevels int) Depth {
	bids := ladder(snap.Bids, maxLevels, func(a, b decimal.Decimal) bool { return a.GreaterThan(b) })
	asks := ladder(snap.Asks, maxLevels, func(a, b decimal.Decimal) bool { return a.LessThan(b) })

	d := Depth{Bids: bids, Asks: asks}
	if len(bids) > 0 {
		d.HasBid = true
		d.BestBid = bids[0].Price
	}
	if len(asks) > 0 {
		d.HasAsk = true
		d.BestAsk = asks[0].Price
	}
	if d.HasBid && d.HasAsk {
		d.Spread = d.BestAsk.Sub(d.BestBid)
		if d.BestAsk.IsPositive() {
			d.SpreadPercent = d.Spread.Div(d.BestAsk).Mul(oneHundred)
		}
	}
	return d
}

// ladder summarizes, sorts, truncates, and accumulates one side of the book.
// less orders prices best-first for that side.
func ladder(levels []domain.PriceLevel, maxLevels int, less func(a, b decimal.Decimal) bool) []LevelRow {
	if len(levels) == 0 {
		return nil
	}

	rows := make([]LevelRow, 0, len(levels))
	for _, l := range levels {
		rows = append(rows, Summarize(l))
	}
	sort.Slice(rows, func(i, j int) bool { return less(rows[i].Price, rows[j].Price) })

	if maxLevels > 0 && len(rows) > maxLevels {
		rows = rows[:maxLevels]
	}

	var cum uint64
	for i := range rows {
		cum += rows[i].Quantity
		rows[i].Cumulative = cum
	}
	return rows
}
