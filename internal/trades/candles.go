package trades

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// Candles buckets the full trade list into fixed-width intervals and returns
// one OHLC+volume candle per distinct bucket, ordered by bucket start. The
// series is recomputed fresh from the complete list on every call, so a
// bucket's OHLC is always consistent with the currently-held trades.
//
// Trades are sorted ascending before bucketing: the first trade of a bucket
// sets the open, the last sets the close. An empty trade list yields an
// empty series.
func Candles(all []domain.Trade, interval time.Duration) []domain.Candle {
	if len(all) == 0 || interval <= 0 {
		return nil
	}

	sorted := make([]domain.Trade, len(all))
	copy(sorted, all)
	domain.SortTradesAscending(sorted)

	intervalMs := interval.Milliseconds()
	var out []domain.Candle
	index := make(map[int64]int, len(sorted))

	for _, t := range sorted {
		bucketMs := t.Timestamp.UnixMilli() / intervalMs * intervalMs
		qty := decimal.NewFromUint64(t.Quantity)

		i, ok := index[bucketMs]
		if !ok {
			index[bucketMs] = len(out)
			out = append(out, domain.Candle{
				BucketStart: time.UnixMilli(bucketMs).UTC(),
				Open:        t.Price,
				High:        t.Price,
				Low:         t.Price,
				Close:       t.Price,
				Volume:      qty,
			})
			continue
		}

		c := &out[i]
		if t.Price.GreaterThan(c.High) {
			c.High = t.Price
		}
		if t.Price.LessThan(c.Low) {
			c.Low = t.Price
		}
		c.Close = t.Price
		c.Volume = c.Volume.Add(qty)
	}

	return out
}
