package trades

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// statsWindow is the lookback for the rolling market summary.
const statsWindow = 24 * time.Hour

var oneHundred = decimal.NewFromInt(100)

// ComputeStats derives the 24-hour market summary from the full trade list.
// Pure function of (trades, now); the input slice is not modified.
//
// CurrentPrice is the price of the most recent trade, or zero when the list
// is empty. StartPrice is the oldest trade inside the 24h window, falling
// back to CurrentPrice when the window is empty. Volume is the sum of
// price*quantity over the window.
func ComputeStats(all []domain.Trade, now time.Time) domain.MarketStats {
	if len(all) == 0 {
		return domain.MarketStats{}
	}

	sorted := make([]domain.Trade, len(all))
	copy(sorted, all)
	domain.SortTradesDescending(sorted)

	current := sorted[0].Price

	cutoff := now.Add(-statsWindow)
	windowed := sorted[:0:0]
	for _, t := range sorted {
		if t.Timestamp.After(cutoff) {
			windowed = append(windowed, t)
		}
	}

	start := current
	volume := decimal.Zero
	if len(windowed) > 0 {
		// windowed stays recency-sorted, so the oldest in-window trade
		// is the last element.
		start = windowed[len(windowed)-1].Price
		for _, t := range windowed {
			volume = volume.Add(t.Notional())
		}
	}

	change := current.Sub(start)
	changePct := decimal.Zero
	if start.IsPositive() {
		changePct = change.Div(start).Mul(oneHundred)
	}

	return domain.MarketStats{
		CurrentPrice:       current,
		StartPrice:         start,
		PriceChange:        change,
		PriceChangePercent: changePct,
		Volume24h:          volume,
	}
}
