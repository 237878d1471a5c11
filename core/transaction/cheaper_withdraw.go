package transaction

import (
	"github.com/twopieare/foundry-fund-me/core/state"
)

// CheaperWithdrawData is the withdrawal variant that snapshots the registry
// into memory before zeroing, trading durable reads for a transient copy.
// Its observable behavior is identical to WithdrawData.
type CheaperWithdrawData struct{}

func (data CheaperWithdrawData) TxType() TxType {
	return TypeCheaperWithdraw
}

func (data CheaperWithdrawData) String() string {
	return "CHEAPER WITHDRAW"
}

func (data CheaperWithdrawData) Run(tx *Transaction, context *state.State, env *Env) Response {
	return runWithdraw(tx, context, env, true, TypeCheaperWithdraw)
}
