package domain

import "github.com/shopspring/decimal"

// Balance is the available/locked pair for one asset. Balances cross the
// wire as exact-precision decimal strings and are never widened to binary
// floating point.
type Balance struct {
	Available decimal.Decimal
	Locked    decimal.Decimal
}
