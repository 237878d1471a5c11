package formula

import (
	"math/big"
	"testing"

	"github.com/twopieare/foundry-fund-me/helpers"
)

type ConversionData struct {
	Native   *big.Int
	Price    *big.Int
	Decimals uint8
	Result   *big.Int
}

func TestConvertToReference(t *testing.T) {
	data := []ConversionData{
		{
			// 0.1 coin at 2000.00000000 = 200 reference units
			Native:   big.NewInt(1e17),
			Price:    big.NewInt(200000000000),
			Decimals: 8,
			Result:   helpers.CoinToAtto(big.NewInt(200)),
		},
		{
			Native:   helpers.CoinToAtto(big.NewInt(1)),
			Price:    big.NewInt(200000000000),
			Decimals: 8,
			Result:   helpers.CoinToAtto(big.NewInt(2000)),
		},
		{
			// 0.002 coin at 2000 = 4 reference units, below the 5-unit minimum
			Native:   big.NewInt(2e15),
			Price:    big.NewInt(200000000000),
			Decimals: 8,
			Result:   helpers.CoinToAtto(big.NewInt(4)),
		},
		{
			Native:   big.NewInt(0),
			Price:    big.NewInt(200000000000),
			Decimals: 8,
			Result:   big.NewInt(0),
		},
		{
			// price already at 18 decimals
			Native:   helpers.CoinToAtto(big.NewInt(3)),
			Price:    helpers.CoinToAtto(big.NewInt(1500)),
			Decimals: 18,
			Result:   helpers.CoinToAtto(big.NewInt(4500)),
		},
	}

	for _, item := range data {
		result := ConvertToReference(item.Native, item.Price, item.Decimals)

		if result.Cmp(item.Result) != 0 {
			t.Errorf("ConvertToReference result is not correct. Expected %s, got %s", item.Result, result)
		}
	}
}

func TestNormalizePrice(t *testing.T) {
	data := []struct {
		Price    *big.Int
		Decimals uint8
		Result   *big.Int
	}{
		{big.NewInt(200000000000), 8, helpers.CoinToAtto(big.NewInt(2000))},
		{helpers.CoinToAtto(big.NewInt(2000)), 18, helpers.CoinToAtto(big.NewInt(2000))},
		{big.NewInt(0).Mul(helpers.CoinToAtto(big.NewInt(2000)), big.NewInt(100)), 20, helpers.CoinToAtto(big.NewInt(2000))},
	}

	for _, item := range data {
		result := NormalizePrice(item.Price, item.Decimals)

		if result.Cmp(item.Result) != 0 {
			t.Errorf("NormalizePrice result is not correct. Expected %s, got %s", item.Result, result)
		}
	}
}

func TestConvertTruncatesTowardsZero(t *testing.T) {
	// 1 atto at a price of 0.5 must truncate to 0, never round up
	result := ConvertToReference(big.NewInt(1), big.NewInt(50000000), 8)

	if result.Sign() != 0 {
		t.Errorf("expected truncation to zero, got %s", result)
	}
}
