package domain

import "github.com/shopspring/decimal"

// PriceLevel groups every resting order at one exact price on one side.
// Within a snapshot each price occurs at most once per side.
type PriceLevel struct {
	Price  decimal.Decimal
	Orders []Order
}

// TotalQuantity returns the sum of the order quantities at this level.
func (l PriceLevel) TotalQuantity() uint64 {
	var total uint64
	for _, o := range l.Orders {
		total += o.Quantity
	}
	return total
}

// OrderBookSnapshot is a complete, self-consistent view of the book at one
// instant. It is total, never a diff: a new snapshot entirely supersedes the
// previous one. Every order appears under exactly one side and one price.
type OrderBookSnapshot struct {
	Bids []PriceLevel
	Asks []PriceLevel
}

// Empty reports whether the snapshot carries no resting orders at all.
func (s OrderBookSnapshot) Empty() bool {
	return len(s.Bids) == 0 && len(s.Asks) == 0
}
