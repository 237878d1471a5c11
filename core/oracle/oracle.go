// Package oracle defines the price source consumed by the funding ledger.
// Implementations are injected at construction time; the core never selects
// one by environment detection.
package oracle

import (
	"math/big"
)

// PriceSource supplies the exchange rate of the native coin against the
// reference currency. LatestPrice returns a signed integer scaled to the
// source's own decimal precision; Decimals reports that precision.
type PriceSource interface {
	LatestPrice() (*big.Int, error)
	Decimals() (uint8, error)
	Version() (*big.Int, error)
}
