package funding

import (
	"math/big"
	"testing"

	db "github.com/tendermint/tm-db"
	"github.com/twopieare/foundry-fund-me/core/state/bus"
	"github.com/twopieare/foundry-fund-me/core/state/checker"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/tree"
)

func newTestFunding(t *testing.T) (*Funding, tree.MTree) {
	t.Helper()

	mutableTree, err := tree.NewMutableTree(0, db.NewMemDB(), 1024)
	if err != nil {
		t.Fatal(err)
	}

	b := bus.NewBus()
	checker.NewChecker(b)

	return NewFunding(b, mutableTree), mutableTree
}

func TestFundAccumulates(t *testing.T) {
	t.Parallel()
	funding, _ := newTestFunding(t)

	addr, value := types.Address{1}, big.NewInt(1e18)

	funding.Fund(addr, value)
	funding.Fund(addr, value)

	if funding.AmountFunded(addr).Cmp(big.NewInt(2e18)) != 0 {
		t.Fatal("amount not accumulated")
	}

	if funding.FundersCount() != 2 {
		t.Fatal("registry must keep duplicates")
	}

	first, err := funding.FunderAtIndex(0)
	if err != nil {
		t.Fatal(err)
	}
	second, err := funding.FunderAtIndex(1)
	if err != nil {
		t.Fatal(err)
	}
	if first != addr || second != addr {
		t.Fatal("invalid registry entries")
	}

	if funding.HeldBalance().Cmp(big.NewInt(2e18)) != 0 {
		t.Fatal("invalid held balance")
	}
}

func TestFunderAtIndexOutOfRange(t *testing.T) {
	t.Parallel()
	funding, _ := newTestFunding(t)

	if _, err := funding.FunderAtIndex(0); err == nil {
		t.Fatal("expected out of range error")
	}

	funding.Fund(types.Address{1}, big.NewInt(1))

	if _, err := funding.FunderAtIndex(1); err == nil {
		t.Fatal("expected out of range error")
	}
}

func TestResetFunders(t *testing.T) {
	t.Parallel()
	funding, mutableTree := newTestFunding(t)

	addr1, addr2 := types.Address{1}, types.Address{2}

	funding.Fund(addr1, big.NewInt(1e18))
	funding.Fund(addr2, big.NewInt(2e18))
	funding.Fund(addr1, big.NewInt(3e18))

	released := funding.ResetFunders()
	if released.Cmp(big.NewInt(6e18)) != 0 {
		t.Fatalf("invalid released balance: %s", released)
	}

	if funding.AmountFunded(addr1).Sign() != 0 || funding.AmountFunded(addr2).Sign() != 0 {
		t.Fatal("amounts not reset")
	}
	if funding.FundersCount() != 0 {
		t.Fatal("registry not cleared")
	}
	if funding.HeldBalance().Sign() != 0 {
		t.Fatal("held balance not reset")
	}

	if _, _, err := mutableTree.SaveVersion(); err != nil {
		t.Fatal(err)
	}
}

func TestResetFundersOnEmptyLedger(t *testing.T) {
	t.Parallel()
	funding, _ := newTestFunding(t)

	if released := funding.ResetFunders(); released.Sign() != 0 {
		t.Fatal("released balance of empty ledger must be zero")
	}

	if released := funding.ResetFundersCached(); released.Sign() != 0 {
		t.Fatal("released balance of empty ledger must be zero")
	}
}

func TestResetVariantsAreEquivalent(t *testing.T) {
	t.Parallel()

	contribute := func(funding *Funding) {
		funding.Fund(types.Address{1}, big.NewInt(1e18))
		funding.Fund(types.Address{2}, big.NewInt(2e18))
		funding.Fund(types.Address{1}, big.NewInt(3e18))
		funding.Fund(types.Address{3}, big.NewInt(5e17))
	}

	straightforward, straightforwardTree := newTestFunding(t)
	contribute(straightforward)
	releasedStraightforward := straightforward.ResetFunders()
	hashStraightforward, _, err := straightforwardTree.SaveVersion()
	if err != nil {
		t.Fatal(err)
	}

	cached, cachedTree := newTestFunding(t)
	contribute(cached)
	releasedCached := cached.ResetFundersCached()
	hashCached, _, err := cachedTree.SaveVersion()
	if err != nil {
		t.Fatal(err)
	}

	if releasedStraightforward.Cmp(releasedCached) != 0 {
		t.Fatal("variants released different balances")
	}

	if string(hashStraightforward) != string(hashCached) {
		t.Fatal("variants produced different state trees")
	}
}

func TestExport(t *testing.T) {
	t.Parallel()
	funding, _ := newTestFunding(t)

	funding.Fund(types.Address{1}, big.NewInt(1e18))
	funding.Fund(types.Address{2}, big.NewInt(2e18))
	funding.Fund(types.Address{1}, big.NewInt(1e18))

	state := new(types.AppState)
	funding.Export(state)

	if state.HeldBalance != "4000000000000000000" {
		t.Fatalf("invalid exported balance: %s", state.HeldBalance)
	}
	if len(state.Funders) != 2 {
		t.Fatalf("invalid funders count: %d", len(state.Funders))
	}
	if len(state.Registry) != 3 {
		t.Fatalf("invalid registry length: %d", len(state.Registry))
	}
	if state.Registry[0] != (types.Address{1}) || state.Registry[1] != (types.Address{2}) || state.Registry[2] != (types.Address{1}) {
		t.Fatal("invalid registry order")
	}
}
