// Package book holds the current order-book snapshot and computes the
// renderable depth views derived from it.
package book

import (
	"github.com/shopspring/decimal"

	"github.com/marketdesk/marketdesk/internal/domain"
)

// LevelRow is one renderable line of the depth ladder.
type LevelRow struct {
	Price      decimal.Decimal
	Quantity   uint64 // aggregated resting quantity at this price
	Orders     int    // number of resting orders at this price
	Cumulative uint64 // running total from the best price outward
}

// Summarize collapses every order resting at one price into a single row.
// Cumulative is left for the depth computation to fill in.
func Summarize(level domain.PriceLevel) LevelRow {
	return LevelRow{
		Price:    level.Price,
		Quantity: level.TotalQuantity(),
		Orders:   len(level.Orders),
	}
}
