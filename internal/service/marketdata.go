// Package service coordinates the feed stores and exposes the derived views
// consumed by the API layer, plus order submission with outcome
// classification.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/marketdesk/marketdesk/internal/account"
	"github.com/marketdesk/marketdesk/internal/book"
	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/trades"
)

// Channel names for published derived-view events.
const (
	ChannelBook    = "book"
	ChannelTrades  = "trades"
	ChannelBalance = "balance"
)

// MarketData owns the three feed stores and derives every view from them.
// The stores are replaced by whole-value swap, so each derivation is computed
// from one self-consistent snapshot; readers never observe a mixture of old
// and new data. The book feed and the trade feed are causally independent:
// freshness of one implies nothing about the other.
type MarketData struct {
	books    *book.Store
	feed     *trades.Feed
	balances *account.Store

	owner          uuid.UUID
	depthLevels    int
	candleInterval time.Duration

	publishers []domain.Publisher
	logger     *slog.Logger
	now        func() time.Time

	lastBook atomic.Int64 // unix millis of the last applied snapshot
}

// MarketDataConfig carries the view parameters for MarketData.
type MarketDataConfig struct {
	Owner          uuid.UUID // ownership tag for the my-orders view
	DepthLevels    int
	CandleInterval time.Duration
}

// NewMarketData creates a MarketData over the given stores. Publishers
// receive a derived-view event after every applied update; a nil or empty
// list disables publishing.
func NewMarketData(
	books *book.Store,
	feed *trades.Feed,
	balances *account.Store,
	cfg MarketDataConfig,
	publishers []domain.Publisher,
	logger *slog.Logger,
) *MarketData {
	if cfg.DepthLevels <= 0 {
		cfg.DepthLevels = 20
	}
	if cfg.CandleInterval <= 0 {
		cfg.CandleInterval = time.Minute
	}
	return &MarketData{
		books:          books,
		feed:           feed,
		balances:       balances,
		owner:          cfg.Owner,
		depthLevels:    cfg.DepthLevels,
		candleInterval: cfg.CandleInterval,
		publishers:     publishers,
		logger:         logger.With(slog.String("component", "marketdata")),
		now:            time.Now,
	}
}

// HandleSnapshot installs a pushed book snapshot and publishes the refreshed
// depth view.
func (m *MarketData) HandleSnapshot(ctx context.Context, snap domain.OrderBookSnapshot) {
	m.books.Replace(snap)
	m.lastBook.Store(m.now().UnixMilli())

	event := DepthPayloadFrom(m.Depth())
	event.Event = ChannelBook
	m.publish(ctx, ChannelBook, event)
}

// ApplyTrades installs a polled trade list under the issue-sequence guard
// and publishes the refreshed stats. A result that is older than one already
// applied, or that completes after cancellation, is discarded.
func (m *MarketData) ApplyTrades(ctx context.Context, seq uint64, list []domain.Trade) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.feed.TryReplace(seq, list) {
		return fmt.Errorf("marketdata: trades seq %d: %w", seq, domain.ErrStaleUpdate)
	}
	event := StatsPayloadFrom(m.Stats(), len(list))
	event.Event = ChannelTrades
	m.publish(ctx, ChannelTrades, event)
	return nil
}

// ApplyBalances installs a polled balance map under the issue-sequence guard.
func (m *MarketData) ApplyBalances(ctx context.Context, seq uint64, balances map[string]domain.Balance) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if !m.balances.TryReplace(seq, balances) {
		return fmt.Errorf("marketdata: balances seq %d: %w", seq, domain.ErrStaleUpdate)
	}
	event := BalancesPayloadFrom(balances)
	event.Event = ChannelBalance
	m.publish(ctx, ChannelBalance, event)
	return nil
}

// Depth derives the ladder view at the configured depth.
func (m *MarketData) Depth() book.Depth {
	return m.DepthN(m.depthLevels)
}

// DepthN derives the ladder view truncated to the given number of levels.
func (m *MarketData) DepthN(levels int) book.Depth {
	return book.ComputeDepth(m.books.Current(), levels)
}

// Stats derives the 24-hour market summary from the current trade list.
func (m *MarketData) Stats() domain.MarketStats {
	return trades.ComputeStats(m.feed.Current(), m.now())
}

// Candles derives the OHLC series at the given interval; zero means the
// configured default.
func (m *MarketData) Candles(interval time.Duration) []domain.Candle {
	if interval <= 0 {
		interval = m.candleInterval
	}
	return trades.Candles(m.feed.Current(), interval)
}

// TradeCount returns how many trades the current list holds.
func (m *MarketData) TradeCount() int {
	return len(m.feed.Current())
}

// RecentTrades returns up to limit trades, most recent first.
func (m *MarketData) RecentTrades(limit int) []domain.Trade {
	current := m.feed.Current()
	sorted := make([]domain.Trade, len(current))
	copy(sorted, current)
	domain.SortTradesDescending(sorted)
	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}
	return sorted
}

// MyOrders filters the current snapshot down to the configured owner's
// resting orders.
func (m *MarketData) MyOrders() []domain.Order {
	return book.OwnerOrders(m.books.Current(), m.owner)
}

// Balances returns the latest polled per-asset balances.
func (m *MarketData) Balances() map[string]domain.Balance {
	return m.balances.Current()
}

// LastBookUpdate reports when a snapshot was last applied, or the zero time.
// The API layer surfaces it as the stale/disconnected indicator.
func (m *MarketData) LastBookUpdate() time.Time {
	ms := m.lastBook.Load()
	if ms == 0 {
		return time.Time{}
	}
	return time.UnixMilli(ms)
}

// publish fans an event out to every registered publisher. Publish failures
// are logged and otherwise ignored; the stores are already updated.
func (m *MarketData) publish(ctx context.Context, channel string, event any) {
	if len(m.publishers) == 0 {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		m.logger.WarnContext(ctx, "marshal event failed",
			slog.String("channel", channel),
			slog.String("error", err.Error()),
		)
		return
	}
	for _, p := range m.publishers {
		if err := p.Publish(ctx, channel, payload); err != nil {
			m.logger.WarnContext(ctx, "publish event failed",
				slog.String("channel", channel),
				slog.String("error", err.Error()),
			)
		}
	}
}
