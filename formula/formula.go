// Package formula implements the price conversion math of the funding ledger.
// All calculations are done in integer arithmetic to avoid precision drift;
// multiplications always happen before divisions to preserve significant
// digits.
package formula

import (
	"math/big"
)

// priceDecimals is the precision every price is normalized to before use.
const priceDecimals = 18

// NormalizePrice scales an oracle price reported with the given number of
// decimal places to 18-decimal precision.
func NormalizePrice(price *big.Int, decimals uint8) *big.Int {
	normalized := big.NewInt(0).Set(price)

	if decimals < priceDecimals {
		exp := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(int64(priceDecimals-decimals)), nil)
		return normalized.Mul(normalized, exp)
	}

	if decimals > priceDecimals {
		exp := big.NewInt(0).Exp(big.NewInt(10), big.NewInt(int64(decimals-priceDecimals)), nil)
		return normalized.Div(normalized, exp)
	}

	return normalized
}

// ConvertToReference converts a native amount (attos, 18 decimals) to
// reference-currency units at 18 decimals, given the oracle price and its
// decimal precision:
//
//	reference = native * normalizedPrice / 10^18
func ConvertToReference(native *big.Int, price *big.Int, decimals uint8) *big.Int {
	normalized := NormalizePrice(price, decimals)

	result := big.NewInt(0).Mul(native, normalized)
	result.Div(result, big.NewInt(0).Exp(big.NewInt(10), big.NewInt(priceDecimals), nil))

	return result
}
