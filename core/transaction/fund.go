package transaction

import (
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"
	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/state"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/formula"
)

// FundData is the contribution operation. The attached value is converted to
// reference units at the oracle's current price and accepted only when the
// converted value reaches the minimum threshold.
type FundData struct{}

func (data FundData) TxType() TxType {
	return TypeFund
}

func (data FundData) String() string {
	return "FUND"
}

func (data FundData) Run(tx *Transaction, context *state.State, env *Env) Response {
	if tx.Value.Sign() <= 0 {
		return Response{
			Code: code.InsufficientContribution,
			Log:  "contribution value must be positive",
			Info: EncodeError(code.NewInsufficientContribution(tx.From.String(), tx.Value.String(), "0", types.MinimumReferenceAmount().String())),
		}
	}

	price, err := env.Oracle.LatestPrice()
	if err != nil {
		return Response{
			Code: code.OracleFailure,
			Log:  fmt.Sprintf("price source unavailable: %s", err),
			Info: EncodeError(code.NewOracleFailure(err.Error())),
		}
	}
	if price.Sign() <= 0 {
		return Response{
			Code: code.OracleFailure,
			Log:  fmt.Sprintf("price source reported non-positive price %s", price),
			Info: EncodeError(code.NewOracleFailure(fmt.Sprintf("non-positive price %s", price))),
		}
	}

	decimals, err := env.Oracle.Decimals()
	if err != nil {
		return Response{
			Code: code.OracleFailure,
			Log:  fmt.Sprintf("price source unavailable: %s", err),
			Info: EncodeError(code.NewOracleFailure(err.Error())),
		}
	}

	referenceValue := formula.ConvertToReference(tx.Value, price, decimals)
	minimum := types.MinimumReferenceAmount()
	if referenceValue.Cmp(minimum) == -1 {
		return Response{
			Code: code.InsufficientContribution,
			Log:  fmt.Sprintf("contribution of %s converts to %s, minimum is %s", tx.Value, referenceValue, minimum),
			Info: EncodeError(code.NewInsufficientContribution(tx.From.String(), tx.Value.String(), referenceValue.String(), minimum.String())),
		}
	}

	context.Funding.Fund(tx.From, tx.Value)

	context.Bus().Events().AddEvent(&events.ContributionEvent{
		Address:         tx.From,
		Amount:          tx.Value.String(),
		ReferenceAmount: referenceValue.String(),
	})

	return Response{
		Code: code.OK,
		Tags: []abcTypes.EventAttribute{
			{Key: []byte("tx.type"), Value: []byte{byte(TypeFund)}},
			{Key: []byte("tx.from"), Value: []byte(tx.From.String())},
			{Key: []byte("tx.value"), Value: []byte(tx.Value.String())},
		},
	}
}
