package fundme

import (
	"errors"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	db "github.com/tendermint/tm-db"
	"github.com/twopieare/foundry-fund-me/core/bank"
	"github.com/twopieare/foundry-fund-me/core/code"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/oracle"
	"github.com/twopieare/foundry-fund-me/core/oracle/mock"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/helpers"
)

var owner = types.Address{0xfe}

func newTestFundMe(t *testing.T, priceSource oracle.PriceSource, accounts bank.Bank) *FundMe {
	t.Helper()

	if priceSource == nil {
		priceSource = mock.NewAggregator(mock.DefaultDecimals, mock.DefaultInitialAnswer())
	}
	if accounts == nil {
		accounts = bank.NewInMemory()
	}

	app, err := NewFundMe(Options{
		Owner:          owner,
		Oracle:         priceSource,
		Bank:           accounts,
		StateDB:        db.NewMemDB(),
		EventsDB:       eventsdb.NewEventsStore(db.NewMemDB()),
		StateCacheSize: 1024,
		KeepLastStates: 120,
	})
	require.NoError(t, err)

	return app
}

func TestFundAccepted(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, nil, nil)

	funder := types.Address{1}
	value := helpers.CoinToAtto(big.NewInt(1))

	response := app.Fund(funder, value)
	require.Equal(t, code.OK, response.Code, response.Log)

	assert.Equal(t, 0, app.AmountFunded(funder).Cmp(value))
	assert.Equal(t, uint32(1), app.FundersCount())
	assert.Equal(t, 0, app.HeldBalance().Cmp(value))

	loaded := app.Events(uint32(app.Height()))
	require.Len(t, loaded, 1)
	event, ok := loaded[0].(*eventsdb.ContributionEvent)
	require.True(t, ok)
	assert.Equal(t, funder, event.Address)
	assert.Equal(t, value.String(), event.Amount)
}

func TestFundBelowMinimumLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, nil, nil)

	require.Equal(t, code.OK, app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(1))).Code)
	heightBefore := app.Height()

	// 0.002 coin converts below the minimum of 5 reference units.
	response := app.Fund(types.Address{2}, big.NewInt(2e15))
	require.Equal(t, code.InsufficientContribution, response.Code)

	assert.Equal(t, heightBefore, app.Height())
	assert.Equal(t, uint32(1), app.FundersCount())
	assert.Equal(t, 0, app.AmountFunded(types.Address{2}).Sign())
}

func TestFundOracleFailureLeavesStateUntouched(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, failingOracle{}, nil)

	response := app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(1)))
	require.Equal(t, code.OracleFailure, response.Code)
	assert.Equal(t, uint64(0), app.Height())
	assert.Equal(t, 0, app.HeldBalance().Sign())
}

func TestWithdrawUnauthorized(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, nil, nil)

	require.Equal(t, code.OK, app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(1))).Code)

	response := app.Withdraw(types.Address{1})
	require.Equal(t, code.Unauthorized, response.Code)
	assert.NotEqual(t, 0, app.HeldBalance().Sign())
}

func TestWithdrawDrainsEverything(t *testing.T) {
	t.Parallel()
	accounts := bank.NewInMemory()
	app := newTestFundMe(t, nil, accounts)

	total := big.NewInt(0)
	for i := 1; i <= 10; i++ {
		value := helpers.CoinToAtto(big.NewInt(int64(i)))
		total.Add(total, value)
		require.Equal(t, code.OK, app.Fund(types.Address{byte(i)}, value).Code)
	}

	response := app.Withdraw(owner)
	require.Equal(t, code.OK, response.Code, response.Log)

	assert.Equal(t, 0, accounts.BalanceOf(owner).Cmp(total))
	assert.Equal(t, 0, app.HeldBalance().Sign())
	assert.Equal(t, uint32(0), app.FundersCount())
	for i := 1; i <= 10; i++ {
		assert.Equal(t, 0, app.AmountFunded(types.Address{byte(i)}).Sign())
	}

	loaded := app.Events(uint32(app.Height()))
	require.Len(t, loaded, 1)
	event, ok := loaded[0].(*eventsdb.WithdrawalEvent)
	require.True(t, ok)
	assert.Equal(t, total.String(), event.Amount)
	assert.Equal(t, uint32(10), event.Funders)
}

func TestWithdrawOnEmptyLedger(t *testing.T) {
	t.Parallel()
	accounts := bank.NewInMemory()
	app := newTestFundMe(t, nil, accounts)

	response := app.Withdraw(owner)
	require.Equal(t, code.OK, response.Code, response.Log)
	assert.Equal(t, 0, accounts.BalanceOf(owner).Sign())

	loaded := app.Events(uint32(app.Height()))
	require.Len(t, loaded, 1)
	event, ok := loaded[0].(*eventsdb.WithdrawalEvent)
	require.True(t, ok)
	assert.Equal(t, "0", event.Amount)
}

func TestWithdrawVariantsAreEquivalent(t *testing.T) {
	t.Parallel()

	contribute := func(app *FundMe) {
		require.Equal(t, code.OK, app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(1))).Code)
		require.Equal(t, code.OK, app.Fund(types.Address{2}, helpers.CoinToAtto(big.NewInt(2))).Code)
		require.Equal(t, code.OK, app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(3))).Code)
	}

	straightforwardBank := bank.NewInMemory()
	straightforward := newTestFundMe(t, nil, straightforwardBank)
	contribute(straightforward)
	require.Equal(t, code.OK, straightforward.Withdraw(owner).Code)

	cachedBank := bank.NewInMemory()
	cached := newTestFundMe(t, nil, cachedBank)
	contribute(cached)
	require.Equal(t, code.OK, cached.CheaperWithdraw(owner).Code)

	assert.Equal(t, 0, straightforwardBank.BalanceOf(owner).Cmp(cachedBank.BalanceOf(owner)))
	assert.Equal(t, straightforward.Export(), cached.Export())
}

type rejectingBank struct{}

func (rejectingBank) Deposit(types.Address, *big.Int) error {
	return errors.New("account rejected deposit")
}
func (rejectingBank) BalanceOf(types.Address) *big.Int { return big.NewInt(0) }

func TestTransferFailureRollsBackBookkeeping(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, nil, rejectingBank{})

	value := helpers.CoinToAtto(big.NewInt(1))
	require.Equal(t, code.OK, app.Fund(types.Address{1}, value).Code)

	response := app.Withdraw(owner)
	require.Equal(t, code.TransferFailure, response.Code)

	// The ledger must look exactly as before the failed withdrawal.
	assert.Equal(t, 0, app.HeldBalance().Cmp(value))
	assert.Equal(t, uint32(1), app.FundersCount())
	assert.Equal(t, 0, app.AmountFunded(types.Address{1}).Cmp(value))
}

type failingOracle struct{}

func (failingOracle) LatestPrice() (*big.Int, error) { return nil, errors.New("feed unreachable") }
func (failingOracle) Decimals() (uint8, error)       { return 0, errors.New("feed unreachable") }
func (failingOracle) Version() (*big.Int, error)     { return nil, errors.New("feed unreachable") }

// reentrantBank tries to run a second withdrawal from inside the transfer of
// the first one.
type reentrantBank struct {
	app    **FundMe
	inner  *bank.InMemory
	nested *uint32
}

func (b reentrantBank) Deposit(to types.Address, amount *big.Int) error {
	response := (*b.app).Withdraw(owner)
	*b.nested = response.Code

	return b.inner.Deposit(to, amount)
}

func (b reentrantBank) BalanceOf(address types.Address) *big.Int {
	return b.inner.BalanceOf(address)
}

func TestReentrantWithdrawIsRefused(t *testing.T) {
	t.Parallel()

	var app *FundMe
	var nestedCode uint32
	accounts := reentrantBank{app: &app, inner: bank.NewInMemory(), nested: &nestedCode}
	app = newTestFundMe(t, nil, accounts)

	value := helpers.CoinToAtto(big.NewInt(1))
	require.Equal(t, code.OK, app.Fund(types.Address{1}, value).Code)

	response := app.Withdraw(owner)
	require.Equal(t, code.OK, response.Code, response.Log)

	assert.Equal(t, code.OperationInProgress, nestedCode)
	assert.Equal(t, 0, accounts.BalanceOf(owner).Cmp(value))
	assert.Equal(t, 0, app.HeldBalance().Sign())
}

// blockingBank parks inside Deposit until released, holding the withdrawal
// mid-transfer.
type blockingBank struct {
	inner   *bank.InMemory
	entered chan struct{}
	release chan struct{}
}

func (b *blockingBank) Deposit(to types.Address, amount *big.Int) error {
	close(b.entered)
	<-b.release

	return b.inner.Deposit(to, amount)
}

func (b *blockingBank) BalanceOf(address types.Address) *big.Int {
	return b.inner.BalanceOf(address)
}

func TestReadersNeverObserveUncommittedState(t *testing.T) {
	t.Parallel()
	accounts := &blockingBank{
		inner:   bank.NewInMemory(),
		entered: make(chan struct{}),
		release: make(chan struct{}),
	}
	app := newTestFundMe(t, nil, accounts)

	value := helpers.CoinToAtto(big.NewInt(1))
	require.Equal(t, code.OK, app.Fund(types.Address{1}, value).Code)

	withdrawn := make(chan uint32, 1)
	go func() {
		withdrawn <- app.Withdraw(owner).Code
	}()

	// The withdrawal now sits between its bookkeeping reset and the
	// transfer. A reader arriving here must not see the zeroed ledger.
	<-accounts.entered

	observed := make(chan *big.Int, 1)
	go func() {
		observed <- app.HeldBalance()
	}()

	var balance *big.Int
	select {
	case balance = <-observed:
		assert.Equal(t, 0, balance.Cmp(value), "reader saw uncommitted balance %s", balance)
	case <-time.After(50 * time.Millisecond):
		// The reader is held back until the operation resolves.
	}

	close(accounts.release)
	require.Equal(t, code.OK, <-withdrawn)

	if balance == nil {
		balance = <-observed
	}
	if balance.Cmp(value) != 0 && balance.Sign() != 0 {
		t.Fatalf("reader saw intermediate balance %s", balance)
	}
	assert.Equal(t, 0, app.HeldBalance().Sign())
	assert.Equal(t, 0, accounts.BalanceOf(owner).Cmp(value))
}

func TestExport(t *testing.T) {
	t.Parallel()
	app := newTestFundMe(t, nil, nil)

	require.Equal(t, code.OK, app.Fund(types.Address{1}, helpers.CoinToAtto(big.NewInt(1))).Code)
	require.Equal(t, code.OK, app.Fund(types.Address{2}, helpers.CoinToAtto(big.NewInt(2))).Code)

	appState := app.Export()
	assert.Equal(t, owner, appState.Owner)
	assert.Equal(t, "3000000000000000000", appState.HeldBalance)
	assert.Len(t, appState.Funders, 2)
	assert.Len(t, appState.Registry, 2)
}
