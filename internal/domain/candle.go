package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Candle is the OHLC+volume summary of all trades inside one fixed time
// bucket. BucketStart is the trade timestamp floored to the interval.
type Candle struct {
	BucketStart time.Time
	Open        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	Close       decimal.Decimal
	Volume      decimal.Decimal
}
