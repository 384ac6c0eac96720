package trades

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/domain"
)

func trade(price string, qty uint64, ts time.Time) domain.Trade {
	return domain.Trade{
		MakerID:   1,
		TakerID:   2,
		Price:     decimal.RequireFromString(price),
		Quantity:  qty,
		Timestamp: ts,
	}
}

func TestComputeStats(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	all := []domain.Trade{
		trade("100", 2, t0),
		trade("102", 1, t0.Add(30*time.Second)),
	}

	s := ComputeStats(all, t0.Add(time.Minute))

	assert.Equal(t, "102", s.CurrentPrice.String())
	assert.Equal(t, "100", s.StartPrice.String())
	assert.Equal(t, "2", s.PriceChange.String())
	assert.True(t, s.PriceChangePercent.Equal(decimal.NewFromInt(2)), "pct %s", s.PriceChangePercent)
	// 100*2 + 102*1
	assert.Equal(t, "302", s.Volume24h.String())
}

func TestComputeStatsEmpty(t *testing.T) {
	s := ComputeStats(nil, time.Now())
	assert.True(t, s.CurrentPrice.IsZero())
	assert.True(t, s.StartPrice.IsZero())
	assert.True(t, s.PriceChange.IsZero())
	assert.True(t, s.PriceChangePercent.IsZero())
	assert.True(t, s.Volume24h.IsZero())
}

func TestComputeStatsWindowCutoff(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)

	all := []domain.Trade{
		// Outside the 24h window; contributes nothing.
		trade("80", 10, now.Add(-25*time.Hour)),
		trade("95", 3, now.Add(-2*time.Hour)),
		trade("100", 1, now.Add(-time.Minute)),
	}

	s := ComputeStats(all, now)

	assert.Equal(t, "100", s.CurrentPrice.String())
	assert.Equal(t, "95", s.StartPrice.String())
	assert.Equal(t, "5", s.PriceChange.String())
	// 95*3 + 100*1
	assert.Equal(t, "385", s.Volume24h.String())
}

func TestComputeStatsAllOutsideWindow(t *testing.T) {
	now := time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC)
	all := []domain.Trade{trade("90", 4, now.Add(-48 * time.Hour))}

	s := ComputeStats(all, now)

	// Start falls back to the current price: no change, no volume.
	assert.Equal(t, "90", s.CurrentPrice.String())
	assert.Equal(t, "90", s.StartPrice.String())
	assert.True(t, s.PriceChange.IsZero())
	assert.True(t, s.PriceChangePercent.IsZero())
	assert.True(t, s.Volume24h.IsZero())
}

func TestComputeStatsDoesNotMutateInput(t *testing.T) {
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	all := []domain.Trade{
		trade("100", 1, t0),
		trade("101", 1, t0.Add(time.Second)),
	}

	first := ComputeStats(all, t0.Add(time.Minute))
	second := ComputeStats(all, t0.Add(time.Minute))

	require.Equal(t, first, second)
	// Input order preserved.
	assert.Equal(t, "100", all[0].Price.String())
	assert.Equal(t, "101", all[1].Price.String())
}
