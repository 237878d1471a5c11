// Package fundme hosts the funding ledger application: a single immutable
// owner collects contributions that clear an oracle-checked minimum and may
// drain the whole held balance to their own account at any time.
package fundme

import (
	"fmt"
	"math/big"
	"sync"
	"sync/atomic"

	tmlog "github.com/tendermint/tendermint/libs/log"
	db "github.com/tendermint/tm-db"
	"github.com/twopieare/foundry-fund-me/core/bank"
	"github.com/twopieare/foundry-fund-me/core/code"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/oracle"
	"github.com/twopieare/foundry-fund-me/core/state"
	"github.com/twopieare/foundry-fund-me/core/statistics"
	"github.com/twopieare/foundry-fund-me/core/transaction"
	"github.com/twopieare/foundry-fund-me/core/types"
)

// Options collects everything a FundMe node needs to start.
type Options struct {
	Owner          types.Address
	Oracle         oracle.PriceSource
	Bank           bank.Bank
	StateDB        db.DB
	EventsDB       eventsdb.IEventsDB
	StateCacheSize int
	KeepLastStates int64
	Logger         tmlog.Logger
	Statistics     *statistics.Data
}

// FundMe is the ledger application. Every operation runs to completion
// before the next one may enter; an operation that fails leaves no trace in
// the state.
type FundMe struct {
	owner    types.Address
	oracle   oracle.PriceSource
	bank     bank.Bank
	executor *transaction.Executor

	stateDeliver *state.State
	eventsDB     eventsdb.IEventsDB

	logger tmlog.Logger
	stats  *statistics.Data

	// lock isolates readers from the uncommitted working tree: deliver holds
	// it for writing across the whole operation, read accessors hold it for
	// reading, so a reader only ever sees committed state.
	lock       sync.RWMutex
	inProgress int32
}

// NewFundMe opens the ledger state and wires the operation executor.
func NewFundMe(opts Options) (*FundMe, error) {
	stateDeliver, err := state.NewState(0, opts.StateDB, opts.EventsDB, opts.StateCacheSize, opts.KeepLastStates)
	if err != nil {
		return nil, err
	}

	logger := opts.Logger
	if logger == nil {
		logger = tmlog.NewNopLogger()
	}

	return &FundMe{
		owner:  opts.Owner,
		oracle: opts.Oracle,
		bank:   opts.Bank,
		executor: transaction.NewExecutor(&transaction.Env{
			Owner:  opts.Owner,
			Oracle: opts.Oracle,
			Bank:   opts.Bank,
		}),
		stateDeliver: stateDeliver,
		eventsDB:     opts.EventsDB,
		logger:       logger.With("module", "fundme"),
		stats:        opts.Statistics,
	}, nil
}

// Fund records a contribution from the given address.
func (f *FundMe) Fund(from types.Address, value *big.Int) transaction.Response {
	return f.deliver(&transaction.Transaction{Type: transaction.TypeFund, From: from, Value: value})
}

// Withdraw drains the whole held balance to the owner.
func (f *FundMe) Withdraw(from types.Address) transaction.Response {
	return f.deliver(&transaction.Transaction{Type: transaction.TypeWithdraw, From: from, Value: big.NewInt(0)})
}

// CheaperWithdraw drains the held balance using the registry-snapshotting
// variant. Observable results match Withdraw exactly.
func (f *FundMe) CheaperWithdraw(from types.Address) transaction.Response {
	return f.deliver(&transaction.Transaction{Type: transaction.TypeCheaperWithdraw, From: from, Value: big.NewInt(0)})
}

// deliver runs one operation to completion. A second operation entering
// before the first finished is refused instead of interleaving with it.
func (f *FundMe) deliver(tx *transaction.Transaction) transaction.Response {
	if !atomic.CompareAndSwapInt32(&f.inProgress, 0, 1) {
		return transaction.Response{
			Code: code.OperationInProgress,
			Log:  "another operation is in progress",
			Info: transaction.EncodeError(code.NewOperationInProgress()),
		}
	}
	defer atomic.StoreInt32(&f.inProgress, 0)

	f.lock.Lock()
	defer f.lock.Unlock()

	response := f.executor.RunTx(f.stateDeliver, tx)
	if response.Code != code.OK {
		f.stateDeliver.Rollback()
		f.logger.Info("operation rejected", "tx", tx.String(), "code", response.Code, "log", response.Log)

		return response
	}

	hash, err := f.stateDeliver.Commit()
	if err != nil {
		// A failed commit means the accounting invariant broke mid-operation.
		panic(fmt.Sprintf("failed to commit state: %s", err))
	}

	height := uint32(f.stateDeliver.Height())
	if err := f.eventsDB.CommitEvents(height); err != nil {
		panic(fmt.Sprintf("failed to commit events: %s", err))
	}

	switch tx.Type {
	case transaction.TypeFund:
		f.stats.Fund()
	case transaction.TypeWithdraw, transaction.TypeCheaperWithdraw:
		f.stats.Withdraw()
	}
	f.stats.SetLedger(f.stateDeliver.Funding.HeldBalance(), f.stateDeliver.Funding.FundersCount())

	f.logger.Info("operation committed", "tx", tx.String(), "height", height, "hash", fmt.Sprintf("%X", hash))

	return response
}

// Owner returns the immutable owner address.
func (f *FundMe) Owner() types.Address {
	return f.owner
}

// MinimumContribution returns the accept threshold in reference units.
func (f *FundMe) MinimumContribution() *big.Int {
	return types.MinimumReferenceAmount()
}

// AmountFunded returns the cumulative contribution of the address.
func (f *FundMe) AmountFunded(address types.Address) *big.Int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.stateDeliver.Funding.AmountFunded(address)
}

// FunderAtIndex returns the registry entry at the given position.
func (f *FundMe) FunderAtIndex(index uint32) (types.Address, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.stateDeliver.Funding.FunderAtIndex(index)
}

// FundersCount returns the registry length, duplicates included.
func (f *FundMe) FundersCount() uint32 {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.stateDeliver.Funding.FundersCount()
}

// HeldBalance returns the total amount currently held by the ledger.
func (f *FundMe) HeldBalance() *big.Int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.stateDeliver.Funding.HeldBalance()
}

// OracleVersion reports the price source version.
func (f *FundMe) OracleVersion() (*big.Int, error) {
	return f.oracle.Version()
}

// OracleDecimals reports the price source decimal precision.
func (f *FundMe) OracleDecimals() (uint8, error) {
	return f.oracle.Decimals()
}

// Height returns the last committed state version.
func (f *FundMe) Height() uint64 {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.stateDeliver.Height()
}

// Events loads the events committed at the given height.
func (f *FundMe) Events(height uint32) eventsdb.Events {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.eventsDB.LoadEvents(height)
}

// Export dumps the full ledger.
func (f *FundMe) Export() types.AppState {
	f.lock.RLock()
	defer f.lock.RUnlock()

	appState := f.stateDeliver.Export()
	appState.Owner = f.owner

	return appState
}
