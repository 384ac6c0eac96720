package exchange

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// wireOrder is a resting order as encoded by the exchange. Prices are
// decimal strings end to end; the number of fractional digits is not fixed.
type wireOrder struct {
	ID       uint64     `json:"id"`
	Price    string     `json:"price"`
	Quantity uint64     `json:"quantity"`
	Side     string     `json:"side"`
	Owner    *uuid.UUID `json:"user_id"`
	Type     string     `json:"order_type"`
}

// wireBook is the full order-book snapshot pushed over the socket. Sides are
// keyed by exact price string.
type wireBook struct {
	Bids map[string][]wireOrder `json:"bids"`
	Asks map[string][]wireOrder `json:"asks"`
}

// wireTrade is one execution from the trade-history endpoint.
type wireTrade struct {
	MakerID   uint64 `json:"maker_id"`
	TakerID   uint64 `json:"taker_id"`
	Price     string `json:"price"`
	Quantity  uint64 `json:"quantity"`
	Timestamp int64  `json:"timestamp"` // epoch millis
}

// wireBalance is one per-asset balance entry.
type wireBalance struct {
	Asset     string `json:"asset"`
	Available string `json:"available"`
	Locked    string `json:"locked"`
}

// wireOrderRequest is the order-placement payload.
type wireOrderRequest struct {
	Price    string `json:"price"`
	Quantity uint64 `json:"quantity"`
	Side     string `json:"side"`
	Type     string `json:"order_type"`
}

func (o wireOrder) toDomain() (domain.Order, error) {
	price, err := decimal.NewFromString(o.Price)
	if err != nil {
		return domain.Order{}, fmt.Errorf("order %d: price %q: %w", o.ID, o.Price, err)
	}
	side := domain.Side(o.Side)
	if !side.Valid() {
		return domain.Order{}, fmt.Errorf("order %d: unknown side %q", o.ID, o.Side)
	}
	typ := domain.OrderType(o.Type)
	if o.Type == "" {
		typ = domain.OrderTypeLimit
	}
	return domain.Order{
		ID:       o.ID,
		Price:    price,
		Quantity: o.Quantity,
		Side:     side,
		Owner:    o.Owner,
		Type:     typ,
	}, nil
}

func (t wireTrade) toDomain() (domain.Trade, error) {
	price, err := decimal.NewFromString(t.Price)
	if err != nil {
		return domain.Trade{}, fmt.Errorf("trade %d/%d: price %q: %w", t.MakerID, t.TakerID, t.Price, err)
	}
	return domain.Trade{
		MakerID:   t.MakerID,
		TakerID:   t.TakerID,
		Price:     price,
		Quantity:  t.Quantity,
		Timestamp: millisToTime(t.Timestamp),
	}, nil
}

func millisToTime(ms int64) time.Time {
	return time.UnixMilli(ms).UTC()
}

// ParseSnapshot decodes a pushed book message into a domain snapshot. Any
// structural defect rejects the whole message so the caller retains the
// previous snapshot; stale-but-consistent beats corrupt.
func ParseSnapshot(raw []byte) (domain.OrderBookSnapshot, error) {
	var wb wireBook
	if err := json.Unmarshal(raw, &wb); err != nil {
		return domain.OrderBookSnapshot{}, fmt.Errorf("exchange: decode book: %w: %w", domain.ErrMalformedPayload, err)
	}

	bids, err := parseSide(wb.Bids)
	if err != nil {
		return domain.OrderBookSnapshot{}, fmt.Errorf("exchange: bids: %w: %w", domain.ErrMalformedPayload, err)
	}
	asks, err := parseSide(wb.Asks)
	if err != nil {
		return domain.OrderBookSnapshot{}, fmt.Errorf("exchange: asks: %w: %w", domain.ErrMalformedPayload, err)
	}

	return domain.OrderBookSnapshot{Bids: bids, Asks: asks}, nil
}

func parseSide(side map[string][]wireOrder) ([]domain.PriceLevel, error) {
	if len(side) == 0 {
		return nil, nil
	}
	levels := make([]domain.PriceLevel, 0, len(side))
	for key, wireOrders := range side {
		price, err := decimal.NewFromString(key)
		if err != nil {
			return nil, fmt.Errorf("price key %q: %w", key, err)
		}
		orders := make([]domain.Order, 0, len(wireOrders))
		for _, wo := range wireOrders {
			o, err := wo.toDomain()
			if err != nil {
				return nil, err
			}
			orders = append(orders, o)
		}
		levels = append(levels, domain.PriceLevel{Price: price, Orders: orders})
	}
	return levels, nil
}

func parseTrades(raw []byte) ([]domain.Trade, error) {
	var wts []wireTrade
	if err := json.Unmarshal(raw, &wts); err != nil {
		return nil, fmt.Errorf("exchange: decode trades: %w: %w", domain.ErrMalformedPayload, err)
	}
	out := make([]domain.Trade, 0, len(wts))
	for _, wt := range wts {
		t, err := wt.toDomain()
		if err != nil {
			return nil, fmt.Errorf("exchange: %w: %w", domain.ErrMalformedPayload, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseBalances(raw []byte) (map[string]domain.Balance, error) {
	var wbs []wireBalance
	if err := json.Unmarshal(raw, &wbs); err != nil {
		return nil, fmt.Errorf("exchange: decode balances: %w: %w", domain.ErrMalformedPayload, err)
	}
	out := make(map[string]domain.Balance, len(wbs))
	for _, wb := range wbs {
		available, err := decimal.NewFromString(wb.Available)
		if err != nil {
			return nil, fmt.Errorf("exchange: balance %s available %q: %w", wb.Asset, wb.Available, domain.ErrMalformedPayload)
		}
		locked, err := decimal.NewFromString(wb.Locked)
		if err != nil {
			return nil, fmt.Errorf("exchange: balance %s locked %q: %w", wb.Asset, wb.Locked, domain.ErrMalformedPayload)
		}
		out[wb.Asset] = domain.Balance{Available: available, Locked: locked}
	}
	return out, nil
}
