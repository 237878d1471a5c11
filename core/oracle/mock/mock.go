// Package mock provides a fixed-price aggregator for tests and local
// networks.
package mock

import (
	"math/big"
	"sync"
)

// Default parameters match the price feed mock deployed on local networks:
// eight decimals, 2000 reference units per native coin.
const DefaultDecimals = uint8(8)

// DefaultInitialAnswer returns the default mock price (2000, 8 decimals).
func DefaultInitialAnswer() *big.Int {
	return big.NewInt(200000000000)
}

// Aggregator is an in-memory price source with a configurable fixed answer.
type Aggregator struct {
	lock     sync.RWMutex
	decimals uint8
	answer   *big.Int
}

// NewAggregator creates a mock price source reporting the given answer at the
// given decimal precision.
func NewAggregator(decimals uint8, initialAnswer *big.Int) *Aggregator {
	return &Aggregator{
		decimals: decimals,
		answer:   big.NewInt(0).Set(initialAnswer),
	}
}

// LatestPrice returns the configured answer.
func (a *Aggregator) LatestPrice() (*big.Int, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return big.NewInt(0).Set(a.answer), nil
}

// Decimals returns the configured decimal precision.
func (a *Aggregator) Decimals() (uint8, error) {
	a.lock.RLock()
	defer a.lock.RUnlock()

	return a.decimals, nil
}

// Version reports the aggregator version, 0 for the mock.
func (a *Aggregator) Version() (*big.Int, error) {
	return big.NewInt(0), nil
}

// UpdateAnswer replaces the reported price.
func (a *Aggregator) UpdateAnswer(answer *big.Int) {
	a.lock.Lock()
	defer a.lock.Unlock()

	a.answer = big.NewInt(0).Set(answer)
}
