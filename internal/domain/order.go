package domain

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Side indicates whether an order buys or sells the base asset.
type Side string

const (
	SideBuy  Side = "Buy"
	SideSell Side = "Sell"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideBuy || s == SideSell
}

// OrderType indicates how an order interacts with the book on arrival.
type OrderType string

const (
	OrderTypeLimit  OrderType = "Limit"
	OrderTypeMarket OrderType = "Market"
)

// Order is a single resting order as observed in a book snapshot. Orders are
// immutable once observed; the containing snapshot is replaced wholesale, an
// order is never mutated in place.
type Order struct {
	ID       uint64
	Price    decimal.Decimal
	Quantity uint64
	Side     Side
	Owner    *uuid.UUID // nil for orders placed by other participants
	Type     OrderType
}

// OwnedBy reports whether the order carries the given owner tag.
func (o Order) OwnedBy(owner uuid.UUID) bool {
	return o.Owner != nil && *o.Owner == owner
}

// OrderRequest is a new order as submitted by the user.
type OrderRequest struct {
	Price    decimal.Decimal
	Quantity uint64
	Side     Side
	Type     OrderType
}
