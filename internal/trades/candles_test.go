package trades

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/domain"
)

func TestCandlesBucketing(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	all := []domain.Trade{
		// Deliberately out of order; bucketing sorts ascending first.
		trade("104", 1, t0.Add(90*time.Second)),
		trade("100", 2, t0),
		trade("98", 1, t0.Add(20*time.Second)),
		trade("103", 3, t0.Add(45*time.Second)),
	}

	candles := Candles(all, time.Minute)
	require.Len(t, candles, 2)

	first := candles[0]
	assert.Equal(t, t0, first.BucketStart)
	assert.Equal(t, "100", first.Open.String())
	assert.Equal(t, "103", first.High.String())
	assert.Equal(t, "98", first.Low.String())
	assert.Equal(t, "103", first.Close.String())
	assert.True(t, first.Volume.Equal(decimal.NewFromInt(6)), "volume %s", first.Volume)

	second := candles[1]
	assert.Equal(t, t0.Add(time.Minute), second.BucketStart)
	assert.Equal(t, "104", second.Open.String())
	assert.Equal(t, "104", second.Close.String())
	assert.True(t, second.Volume.Equal(decimal.NewFromInt(1)))
}

func TestCandlesInvariants(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	var all []domain.Trade
	prices := []string{"100", "95", "110", "102", "99", "120", "101"}
	var totalQty uint64
	for i, p := range prices {
		qty := uint64(i + 1)
		totalQty += qty
		all = append(all, trade(p, qty, t0.Add(time.Duration(i*40)*time.Second)))
	}

	candles := Candles(all, time.Minute)
	require.NotEmpty(t, candles)

	volume := decimal.Zero
	for i, c := range candles {
		assert.True(t, c.Low.LessThanOrEqual(c.Open), "candle %d", i)
		assert.True(t, c.Low.LessThanOrEqual(c.Close), "candle %d", i)
		assert.True(t, c.High.GreaterThanOrEqual(c.Open), "candle %d", i)
		assert.True(t, c.High.GreaterThanOrEqual(c.Close), "candle %d", i)
		if i > 0 {
			assert.True(t, c.BucketStart.After(candles[i-1].BucketStart), "candle %d", i)
		}
		volume = volume.Add(c.Volume)
	}
	assert.True(t, volume.Equal(decimal.NewFromUint64(totalQty)), "total volume %s", volume)
}

func TestCandlesEmpty(t *testing.T) {
	assert.Empty(t, Candles(nil, time.Minute))
	assert.Empty(t, Candles([]domain.Trade{}, time.Minute))
	assert.Empty(t, Candles([]domain.Trade{trade("100", 1, time.Now())}, 0))
}
