package bus

import "math/big"

// Checker accumulates the deltas an operation applies to the two sides of
// the accounting invariant: the ledger entries and the held balance.
type Checker interface {
	AddLedger(value *big.Int)
	AddHeldBalance(value *big.Int)
}
