package exchange

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/domain"
)

func TestParseSnapshot(t *testing.T) {
	owner := uuid.New()
	raw := []byte(`{
		"bids": {
			"99.5": [
				{"id": 1, "price": "99.5", "quantity": 4, "side": "Buy", "user_id": "` + owner.String() + `", "order_type": "Limit"}
			]
		},
		"asks": {
			"101": [
				{"id": 2, "price": "101", "quantity": 5, "side": "Sell", "order_type": "Limit"},
				{"id": 3, "price": "101", "quantity": 3, "side": "Sell", "order_type": "Limit"}
			]
		}
	}`)

	snap, err := ParseSnapshot(raw)
	require.NoError(t, err)

	require.Len(t, snap.Bids, 1)
	require.Len(t, snap.Asks, 1)

	bid := snap.Bids[0]
	assert.Equal(t, "99.5", bid.Price.String())
	require.Len(t, bid.Orders, 1)
	require.NotNil(t, bid.Orders[0].Owner)
	assert.Equal(t, owner, *bid.Orders[0].Owner)

	ask := snap.Asks[0]
	assert.Equal(t, "101", ask.Price.String())
	assert.Equal(t, uint64(8), ask.TotalQuantity())
}

func TestParseSnapshotEmpty(t *testing.T) {
	snap, err := ParseSnapshot([]byte(`{"bids": {}, "asks": {}}`))
	require.NoError(t, err)
	assert.True(t, snap.Empty())
}

func TestParseSnapshotMalformed(t *testing.T) {
	cases := []struct {
		name string
		raw  string
	}{
		{"not json", `{{`},
		{"bad price", `{"bids": {"abc": [{"id": 1, "price": "abc", "quantity": 1, "side": "Buy"}]}, "asks": {}}`},
		{"bad side", `{"bids": {"99": [{"id": 1, "price": "99", "quantity": 1, "side": "Hold"}]}, "asks": {}}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseSnapshot([]byte(tc.raw))
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMalformedPayload)
		})
	}
}

func TestParseTrades(t *testing.T) {
	raw := []byte(`[
		{"maker_id": 1, "taker_id": 2, "price": "101.25", "quantity": 3, "timestamp": 1748779200000},
		{"maker_id": 3, "taker_id": 4, "price": "100", "quantity": 1, "timestamp": 1748779260000}
	]`)

	list, err := parseTrades(raw)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "101.25", list[0].Price.String())
	assert.Equal(t, uint64(3), list[0].Quantity)
	assert.Equal(t, int64(1748779200000), list[0].Timestamp.UnixMilli())
}

func TestParseBalances(t *testing.T) {
	raw := []byte(`[
		{"asset": "usd", "available": "1000.50", "locked": "25"},
		{"asset": "btc", "available": "0.75", "locked": "0"}
	]`)

	bals, err := parseBalances(raw)
	require.NoError(t, err)
	require.Len(t, bals, 2)

	usd, ok := bals["usd"]
	require.True(t, ok)
	assert.Equal(t, "1000.5", usd.Available.String())
	assert.Equal(t, "25", usd.Locked.String())
}
