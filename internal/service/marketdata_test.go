package service

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marketdesk/marketdesk/internal/account"
	"github.com/marketdesk/marketdesk/internal/book"
	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/trades"
)

type capturedEvent struct {
	channel string
	payload []byte
}

type fakePublisher struct {
	events []capturedEvent
}

func (p *fakePublisher) Publish(_ context.Context, channel string, payload []byte) error {
	p.events = append(p.events, capturedEvent{channel: channel, payload: payload})
	return nil
}

func newTestMarketData(owner uuid.UUID, pub *fakePublisher) *MarketData {
	var pubs []domain.Publisher
	if pub != nil {
		pubs = append(pubs, pub)
	}
	return NewMarketData(
		book.NewStore(),
		trades.NewFeed(),
		account.NewStore(),
		MarketDataConfig{Owner: owner, DepthLevels: 10, CandleInterval: time.Minute},
		pubs,
		discardLogger(),
	)
}

func snapshot(bidPrice, askPrice string, owner *uuid.UUID) domain.OrderBookSnapshot {
	bid := decimal.RequireFromString(bidPrice)
	ask := decimal.RequireFromString(askPrice)
	return domain.OrderBookSnapshot{
		Bids: []domain.PriceLevel{{Price: bid, Orders: []domain.Order{
			{ID: 1, Price: bid, Quantity: 4, Side: domain.SideBuy, Owner: owner, Type: domain.OrderTypeLimit},
		}}},
		Asks: []domain.PriceLevel{{Price: ask, Orders: []domain.Order{
			{ID: 2, Price: ask, Quantity: 5, Side: domain.SideSell, Type: domain.OrderTypeLimit},
		}}},
	}
}

func TestHandleSnapshotPublishesDepth(t *testing.T) {
	pub := &fakePublisher{}
	md := newTestMarketData(uuid.Nil, pub)

	md.HandleSnapshot(context.Background(), snapshot("99", "101", nil))

	d := md.Depth()
	require.True(t, d.HasBid)
	require.True(t, d.HasAsk)
	assert.Equal(t, "99", d.BestBid.String())
	assert.Equal(t, "101", d.BestAsk.String())
	assert.False(t, md.LastBookUpdate().IsZero())

	require.Len(t, pub.events, 1)
	assert.Equal(t, ChannelBook, pub.events[0].channel)

	var event DepthPayload
	require.NoError(t, json.Unmarshal(pub.events[0].payload, &event))
	assert.Equal(t, ChannelBook, event.Event)
	require.Len(t, event.Bids, 1)
	require.Len(t, event.Asks, 1)
}

func TestApplyTradesSequenceGuard(t *testing.T) {
	pub := &fakePublisher{}
	md := newTestMarketData(uuid.Nil, pub)
	ctx := context.Background()
	now := time.Now()

	newer := []domain.Trade{{Price: decimal.RequireFromString("102"), Quantity: 1, Timestamp: now}}
	older := []domain.Trade{{Price: decimal.RequireFromString("100"), Quantity: 1, Timestamp: now.Add(-time.Second)}}

	require.NoError(t, md.ApplyTrades(ctx, 2, newer))
	err := md.ApplyTrades(ctx, 1, older)
	assert.ErrorIs(t, err, domain.ErrStaleUpdate)

	// The stale result neither replaced the list nor published.
	assert.Equal(t, "102", md.Stats().CurrentPrice.String())
	require.Len(t, pub.events, 1)
	assert.Equal(t, ChannelTrades, pub.events[0].channel)
}

func TestApplyTradesAfterCancellation(t *testing.T) {
	md := newTestMarketData(uuid.Nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := md.ApplyTrades(ctx, 1, []domain.Trade{{Price: decimal.NewFromInt(100), Quantity: 1, Timestamp: time.Now()}})
	assert.ErrorIs(t, err, context.Canceled)
	assert.True(t, md.Stats().CurrentPrice.IsZero())
}

func TestApplyBalances(t *testing.T) {
	pub := &fakePublisher{}
	md := newTestMarketData(uuid.Nil, pub)
	ctx := context.Background()

	bals := map[string]domain.Balance{
		"usd": {Available: decimal.NewFromInt(1000), Locked: decimal.NewFromInt(50)},
	}
	require.NoError(t, md.ApplyBalances(ctx, 1, bals))
	assert.ErrorIs(t, md.ApplyBalances(ctx, 1, nil), domain.ErrStaleUpdate)

	got := md.Balances()
	require.Contains(t, got, "usd")
	assert.Equal(t, "1000", got["usd"].Available.String())

	require.Len(t, pub.events, 1)
	assert.Equal(t, ChannelBalance, pub.events[0].channel)
}

func TestRecentTradesLimit(t *testing.T) {
	md := newTestMarketData(uuid.Nil, nil)
	now := time.Now()

	list := []domain.Trade{
		{Price: decimal.NewFromInt(100), Quantity: 1, Timestamp: now.Add(-2 * time.Second)},
		{Price: decimal.NewFromInt(102), Quantity: 1, Timestamp: now},
		{Price: decimal.NewFromInt(101), Quantity: 1, Timestamp: now.Add(-time.Second)},
	}
	require.NoError(t, md.ApplyTrades(context.Background(), 1, list))
	assert.Equal(t, 3, md.TradeCount())

	got := md.RecentTrades(2)
	require.Len(t, got, 2)
	assert.Equal(t, "102", got[0].Price.String())
	assert.Equal(t, "101", got[1].Price.String())
}

func TestMyOrders(t *testing.T) {
	owner := uuid.New()
	md := newTestMarketData(owner, nil)

	md.HandleSnapshot(context.Background(), snapshot("99", "101", &owner))

	mine := md.MyOrders()
	require.Len(t, mine, 1)
	assert.Equal(t, uint64(1), mine[0].ID)
}

func TestCandlesDefaultInterval(t *testing.T) {
	md := newTestMarketData(uuid.Nil, nil)
	t0 := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	require.NoError(t, md.ApplyTrades(context.Background(), 1, []domain.Trade{
		{Price: decimal.NewFromInt(100), Quantity: 1, Timestamp: t0},
		{Price: decimal.NewFromInt(101), Quantity: 1, Timestamp: t0.Add(30 * time.Second)},
		{Price: decimal.NewFromInt(99), Quantity: 1, Timestamp: t0.Add(90 * time.Second)},
	}))

	// Zero interval falls back to the configured one-minute buckets.
	candles := md.Candles(0)
	require.Len(t, candles, 2)
	assert.Equal(t, "101", candles[0].Close.String())
	assert.Equal(t, "99", candles[1].Close.String())
}
