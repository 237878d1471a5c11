package types

import "math/big"

// Reference-currency values carry 18 decimal places, same as native coin
// amounts.
const ReferenceDecimals = 18

var minimumReferenceAmount = big.NewInt(0).Mul(big.NewInt(5), big.NewInt(1e18))

// MinimumReferenceAmount returns the smallest contribution the ledger accepts,
// denominated in reference-currency units at 18 decimals (5 units). The value
// is fixed at compile time and never mutated.
func MinimumReferenceAmount() *big.Int {
	return big.NewInt(0).Set(minimumReferenceAmount)
}
