package transaction

import (
	"fmt"

	abcTypes "github.com/tendermint/tendermint/abci/types"
	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/state"
)

// WithdrawData is the owner-only withdrawal operation. It zeroes every ledger
// entry, clears the registry and transfers the whole held balance to the
// owner, walking the durable registry entry by entry.
type WithdrawData struct{}

func (data WithdrawData) TxType() TxType {
	return TypeWithdraw
}

func (data WithdrawData) String() string {
	return "WITHDRAW"
}

func (data WithdrawData) Run(tx *Transaction, context *state.State, env *Env) Response {
	return runWithdraw(tx, context, env, false, TypeWithdraw)
}

func runWithdraw(tx *Transaction, context *state.State, env *Env, cached bool, txType TxType) Response {
	if tx.From != env.Owner {
		return Response{
			Code: code.Unauthorized,
			Log:  fmt.Sprintf("%s is not the owner", tx.From.String()),
			Info: EncodeError(code.NewUnauthorized(tx.From.String(), env.Owner.String())),
		}
	}

	funders := context.Funding.FundersCount()

	var released = context.Funding.ResetFunders
	if cached {
		released = context.Funding.ResetFundersCached
	}
	value := released()

	// Bookkeeping is final before any value moves out.
	if err := env.Bank.Deposit(env.Owner, value); err != nil {
		return Response{
			Code: code.TransferFailure,
			Log:  fmt.Sprintf("transfer of %s to owner failed: %s", value, err),
			Info: EncodeError(code.NewTransferFailure(env.Owner.String(), value.String(), err.Error())),
		}
	}

	context.Bus().Events().AddEvent(&events.WithdrawalEvent{
		Address: env.Owner,
		Amount:  value.String(),
		Funders: funders,
	})

	return Response{
		Code: code.OK,
		Tags: []abcTypes.EventAttribute{
			{Key: []byte("tx.type"), Value: []byte{byte(txType)}},
			{Key: []byte("tx.from"), Value: []byte(tx.From.String())},
			{Key: []byte("tx.value"), Value: []byte(value.String())},
		},
	}
}
