// Package handler implements the HTTP handlers for the marketdesk API.
package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
	"github.com/marketdesk/marketdesk/internal/service"
)

// maxDepthLevels caps the ?levels= query parameter.
const maxDepthLevels = 200

// MarketHandler serves the derived market-data views.
type MarketHandler struct {
	md *service.MarketData
}

// NewMarketHandler creates a MarketHandler over the market-data service.
func NewMarketHandler(md *service.MarketData) *MarketHandler {
	return &MarketHandler{md: md}
}

// GetDepth returns the depth ladder.
// GET /api/depth?levels=20
func (h *MarketHandler) GetDepth(w http.ResponseWriter, r *http.Request) {
	levels := queryInt(r, "levels", 0)
	if levels > maxDepthLevels {
		levels = maxDepthLevels
	}

	var depth = h.md.Depth()
	if levels > 0 {
		depth = h.md.DepthN(levels)
	}
	writeJSON(w, http.StatusOK, service.DepthPayloadFrom(depth))
}

// GetStats returns the 24h market summary.
// GET /api/stats
func (h *MarketHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats := h.md.Stats()
	writeJSON(w, http.StatusOK, service.StatsPayloadFrom(stats, h.md.TradeCount()))
}

// GetCandles returns the OHLC series.
// GET /api/candles?interval=1m
func (h *MarketHandler) GetCandles(w http.ResponseWriter, r *http.Request) {
	interval := queryDuration(r, "interval", 0)
	candles := h.md.Candles(interval)

	out := make([]candlePayload, 0, len(candles))
	for _, c := range candles {
		out = append(out, candlePayload{
			BucketStart: c.BucketStart.Unix(),
			Open:        c.Open,
			High:        c.High,
			Low:         c.Low,
			Close:       c.Close,
			Volume:      c.Volume,
		})
	}
	writeJSON(w, http.StatusOK, out)
}

// GetTrades returns recent trades, most recent first.
// GET /api/trades?limit=100
func (h *MarketHandler) GetTrades(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 100)
	if limit > 1000 {
		limit = 1000
	}

	list := h.md.RecentTrades(limit)
	out := make([]tradePayload, 0, len(list))
	for _, t := range list {
		out = append(out, tradePayloadFrom(t))
	}
	writeJSON(w, http.StatusOK, out)
}

// candlePayload is one candle in wire form; bucket_start is epoch seconds.
type candlePayload struct {
	BucketStart int64           `json:"bucket_start"`
	Open        decimal.Decimal `json:"open"`
	High        decimal.Decimal `json:"high"`
	Low         decimal.Decimal `json:"low"`
	Close       decimal.Decimal `json:"close"`
	Volume      decimal.Decimal `json:"volume"`
}

// tradePayload is one trade in wire form; timestamp is epoch millis.
type tradePayload struct {
	MakerID   uint64          `json:"maker_id"`
	TakerID   uint64          `json:"taker_id"`
	Price     decimal.Decimal `json:"price"`
	Quantity  uint64          `json:"quantity"`
	Timestamp int64           `json:"timestamp"`
}

func tradePayloadFrom(t domain.Trade) tradePayload {
	return tradePayload{
		MakerID:   t.MakerID,
		TakerID:   t.TakerID,
		Price:     t.Price,
		Quantity:  t.Quantity,
		Timestamp: t.Timestamp.UnixMilli(),
	}
}
