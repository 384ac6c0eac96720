package domain

import "github.com/shopspring/decimal"

// MarketStats is the rolling 24-hour market summary derived from the trade
// feed. It is recomputed wholesale on every feed update, never patched.
type MarketStats struct {
	CurrentPrice       decimal.Decimal
	StartPrice         decimal.Decimal
	PriceChange        decimal.Decimal
	PriceChangePercent decimal.Decimal
	Volume24h          decimal.Decimal
}
