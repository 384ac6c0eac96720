package service

import (
	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/book"
	"github.com/marketdesk/marketdesk/internal/domain"
)

// View payloads shared by the REST handlers and the hub events. Decimal
// fields marshal as exact strings; binary floats never cross the boundary.

// LevelPayload is one depth-ladder row.
type LevelPayload struct {
	Price      decimal.Decimal `json:"price"`
	Quantity   uint64          `json:"quantity"`
	Orders     int             `json:"orders"`
	Cumulative uint64          `json:"cumulative"`
}

// DepthPayload is the rendered ladder view.
type DepthPayload struct {
	Event         string          `json:"event,omitempty"`
	Bids          []LevelPayload  `json:"bids"`
	Asks          []LevelPayload  `json:"asks"`
	BestBid       decimal.Decimal `json:"best_bid"`
	BestAsk       decimal.Decimal `json:"best_ask"`
	HasBid        bool            `json:"has_bid"`
	HasAsk        bool            `json:"has_ask"`
	Spread        decimal.Decimal `json:"spread"`
	SpreadPercent decimal.Decimal `json:"spread_percent"`
}

// StatsPayload is the rendered 24h market summary.
type StatsPayload struct {
	Event              string          `json:"event,omitempty"`
	CurrentPrice       decimal.Decimal `json:"current_price"`
	StartPrice         decimal.Decimal `json:"start_price"`
	PriceChange        decimal.Decimal `json:"price_change"`
	PriceChangePercent decimal.Decimal `json:"price_change_percent"`
	Volume24h          decimal.Decimal `json:"volume_24h"`
	TradeCount         int             `json:"trade_count"`
}

// BalancePayload is one asset's available/locked pair.
type BalancePayload struct {
	Available decimal.Decimal `json:"available"`
	Locked    decimal.Decimal `json:"locked"`
}

// BalancesPayload maps asset symbols to balances.
type BalancesPayload struct {
	Event    string                    `json:"event,omitempty"`
	Balances map[string]BalancePayload `json:"balances"`
}

// DepthPayloadFrom converts a derived Depth into its wire form.
func DepthPayloadFrom(d book.Depth) DepthPayload {
	return DepthPayload{
		Bids:          levelPayloads(d.Bids),
		Asks:          levelPayloads(d.Asks),
		BestBid:       d.BestBid,
		BestAsk:       d.BestAsk,
		HasBid:        d.HasBid,
		HasAsk:        d.HasAsk,
		Spread:        d.Spread,
		SpreadPercent: d.SpreadPercent,
	}
}

// StatsPayloadFrom converts derived stats into their wire form.
func StatsPayloadFrom(s domain.MarketStats, tradeCount int) StatsPayload {
	return StatsPayload{
		CurrentPrice:       s.CurrentPrice,
		StartPrice:         s.StartPrice,
		PriceChange:        s.PriceChange,
		PriceChangePercent: s.PriceChangePercent,
		Volume24h:          s.Volume24h,
		TradeCount:         tradeCount,
	}
}

// BalancesPayloadFrom converts a balance map into its wire form.
func BalancesPayloadFrom(balances map[string]domain.Balance) BalancesPayload {
	entries := make(map[string]BalancePayload, len(balances))
	for asset, b := range balances {
		entries[asset] = BalancePayload{Available: b.Available, Locked: b.Locked}
	}
	return BalancesPayload{Balances: entries}
}

func levelPayloads(rows []book.LevelRow) []LevelPayload {
	out := make([]LevelPayload, 0, len(rows))
	for _, r := range rows {
		out = append(out, LevelPayload{
			Price:      r.Price,
			Quantity:   r.Quantity,
			Orders:     r.Orders,
			Cumulative: r.Cumulative,
		})
	}
	return out
}
