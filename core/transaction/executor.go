package transaction

import (
	"encoding/json"
	"fmt"
	"math/big"

	abcTypes "github.com/tendermint/tendermint/abci/types"
	"github.com/twopieare/foundry-fund-me/core/bank"
	"github.com/twopieare/foundry-fund-me/core/code"
	"github.com/twopieare/foundry-fund-me/core/oracle"
	"github.com/twopieare/foundry-fund-me/core/state"
	"github.com/twopieare/foundry-fund-me/core/types"
)

// TxType is the identifier of an operation kind.
type TxType byte

const (
	TypeFund            TxType = 0x01
	TypeWithdraw        TxType = 0x02
	TypeCheaperWithdraw TxType = 0x03
)

// Response is the result of running an operation against the state.
type Response struct {
	Code uint32                    `json:"code,omitempty"`
	Log  string                    `json:"log,omitempty"`
	Info string                    `json:"-"`
	Tags []abcTypes.EventAttribute `json:"tags,omitempty"`
}

// Env carries the environment an operation runs in: the immutable owner, the
// price source and the account bank that receives withdrawals.
type Env struct {
	Owner  types.Address
	Oracle oracle.PriceSource
	Bank   bank.Bank
}

// Transaction is a single operation invocation.
type Transaction struct {
	Type  TxType
	From  types.Address
	Value *big.Int

	decodedData Data
}

// Data is the type-specific payload of a transaction.
type Data interface {
	TxType() TxType
	String() string
	Run(tx *Transaction, context *state.State, env *Env) Response
}

func (tx *Transaction) SetDecodedData(data Data) {
	tx.decodedData = data
}

func (tx *Transaction) GetDecodedData() Data {
	return tx.decodedData
}

func (tx *Transaction) String() string {
	if tx.decodedData == nil {
		return fmt.Sprintf("TX{type: %d, from: %s}", tx.Type, tx.From.String())
	}

	return tx.decodedData.String()
}

// GetData returns a fresh payload for the given operation type.
func GetData(txType TxType) (Data, bool) {
	switch txType {
	case TypeFund:
		return &FundData{}, true
	case TypeWithdraw:
		return &WithdrawData{}, true
	case TypeCheaperWithdraw:
		return &CheaperWithdrawData{}, true
	}

	return nil, false
}

// Executor runs decoded transactions against the state within an environment.
type Executor struct {
	env *Env
}

func NewExecutor(env *Env) *Executor {
	return &Executor{env: env}
}

// RunTx decodes and runs a transaction. The state is left mutated on success
// and untouched semantics are the caller's to enforce via Rollback on any
// non-zero code.
func (e *Executor) RunTx(context *state.State, tx *Transaction) Response {
	if tx == nil || tx.Value == nil {
		return Response{
			Code: code.DecodeError,
			Log:  "empty transaction",
			Info: EncodeError(code.NewDecodeError()),
		}
	}

	data := tx.GetDecodedData()
	if data == nil {
		var ok bool
		data, ok = GetData(tx.Type)
		if !ok {
			return Response{
				Code: code.DecodeError,
				Log:  fmt.Sprintf("unknown transaction type %d", tx.Type),
				Info: EncodeError(code.NewDecodeError()),
			}
		}
		tx.SetDecodedData(data)
	}

	return data.Run(tx, context, e.env)
}

// EncodeError renders structured error info as the response Info payload.
func EncodeError(data interface{}) string {
	marshaled, err := json.Marshal(data)
	if err != nil {
		panic(err)
	}

	return string(marshaled)
}
