package funding

import (
	"encoding/binary"
	"fmt"
	"math/big"
	"sync"

	"github.com/twopieare/foundry-fund-me/core/state/bus"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/tree"
)

const (
	amountPrefix   = byte('f')
	registryPrefix = byte('r')
)

var (
	countPath       = []byte{byte('n')}
	heldBalancePath = []byte{byte('b')}
)

// RFunding is the read-only surface of the funding ledger state.
type RFunding interface {
	AmountFunded(address types.Address) *big.Int
	FunderAtIndex(index uint32) (types.Address, error)
	FundersCount() uint32
	HeldBalance() *big.Int
	Export(state *types.AppState)
}

// Funding is the ledger state module. It keeps one amount entry per
// contributor, an ordered duplicate-allowing registry of contributor
// addresses and the total held balance, all on the state tree. Writes go
// straight to the uncommitted tree; the state owner decides whether to save
// or roll back the version.
type Funding struct {
	bus  *bus.Bus
	iavl tree.MTree

	lock sync.RWMutex
}

// NewFunding creates the ledger module on the given tree.
func NewFunding(stateBus *bus.Bus, iavl tree.MTree) *Funding {
	return &Funding{bus: stateBus, iavl: iavl}
}

// AmountFunded returns the cumulative amount contributed by the address,
// zero if it never contributed.
func (f *Funding) AmountFunded(address types.Address) *big.Int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.amountFunded(address)
}

// FunderAtIndex returns the registry entry at the given position.
func (f *Funding) FunderAtIndex(index uint32) (types.Address, error) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	if index >= f.fundersCount() {
		return types.Address{}, fmt.Errorf("funder index %d out of range", index)
	}

	return f.funderAtIndex(index), nil
}

// FundersCount returns the number of registry entries, duplicates included.
func (f *Funding) FundersCount() uint32 {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.fundersCount()
}

// HeldBalance returns the total amount currently held by the ledger.
func (f *Funding) HeldBalance() *big.Int {
	f.lock.RLock()
	defer f.lock.RUnlock()

	return f.heldBalance()
}

// Fund records an accepted contribution: the ledger entry accumulates, the
// registry gains one entry and the held balance grows by the same amount.
func (f *Funding) Fund(address types.Address, value *big.Int) {
	f.lock.Lock()
	defer f.lock.Unlock()

	amount := f.amountFunded(address)
	amount.Add(amount, value)
	f.iavl.Set(amountPath(address), amount.Bytes())

	count := f.fundersCount()
	f.iavl.Set(registryPath(count), address.Bytes())
	f.setFundersCount(count + 1)

	balance := f.heldBalance()
	balance.Add(balance, value)
	f.iavl.Set(heldBalancePath, balance.Bytes())

	f.bus.Checker().AddLedger(value)
	f.bus.Checker().AddHeldBalance(value)
}

// ResetFunders walks the durable registry entry by entry, zeroing each
// contributor's ledger amount and dropping the registry key as it goes.
// Repeated registry entries reset an already-zeroed amount, which is
// harmless. Returns the held balance that was released.
func (f *Funding) ResetFunders() *big.Int {
	f.lock.Lock()
	defer f.lock.Unlock()

	for index := uint32(0); index < f.fundersCount(); index++ {
		funder := f.funderAtIndex(index)
		f.resetAmount(funder)
		f.iavl.Remove(registryPath(index))
	}
	f.iavl.Remove(countPath)

	return f.resetHeldBalance()
}

// ResetFundersCached behaves exactly like ResetFunders but reads the
// registry into a transient local copy once, zeroes the ledger amounts from
// that copy and clears the durable registry in a single final pass. The
// resulting state is indistinguishable from ResetFunders.
func (f *Funding) ResetFundersCached() *big.Int {
	f.lock.Lock()
	defer f.lock.Unlock()

	count := f.fundersCount()
	funders := make([]types.Address, 0, count)
	for index := uint32(0); index < count; index++ {
		funders = append(funders, f.funderAtIndex(index))
	}

	for _, funder := range funders {
		f.resetAmount(funder)
	}

	for index := uint32(0); index < count; index++ {
		f.iavl.Remove(registryPath(index))
	}
	f.iavl.Remove(countPath)

	return f.resetHeldBalance()
}

// Export fills the app state with every ledger entry and the full registry.
func (f *Funding) Export(state *types.AppState) {
	f.lock.RLock()
	defer f.lock.RUnlock()

	state.HeldBalance = f.heldBalance().String()

	f.iavl.Iterate(func(key []byte, value []byte) bool {
		if len(key) == types.AddressLength+1 && key[0] == amountPrefix {
			state.Funders = append(state.Funders, types.Funder{
				Address: types.BytesToAddress(key[1:]),
				Value:   big.NewInt(0).SetBytes(value).String(),
			})
		}
		return false
	})

	count := f.fundersCount()
	for index := uint32(0); index < count; index++ {
		state.Registry = append(state.Registry, f.funderAtIndex(index))
	}
}

func (f *Funding) amountFunded(address types.Address) *big.Int {
	_, enc := f.iavl.Get(amountPath(address))
	if len(enc) == 0 {
		return big.NewInt(0)
	}

	return big.NewInt(0).SetBytes(enc)
}

func (f *Funding) funderAtIndex(index uint32) types.Address {
	_, enc := f.iavl.Get(registryPath(index))
	return types.BytesToAddress(enc)
}

func (f *Funding) fundersCount() uint32 {
	_, enc := f.iavl.Get(countPath)
	if len(enc) == 0 {
		return 0
	}

	return binary.BigEndian.Uint32(enc)
}

func (f *Funding) setFundersCount(count uint32) {
	enc := make([]byte, 4)
	binary.BigEndian.PutUint32(enc, count)
	f.iavl.Set(countPath, enc)
}

func (f *Funding) heldBalance() *big.Int {
	_, enc := f.iavl.Get(heldBalancePath)
	if len(enc) == 0 {
		return big.NewInt(0)
	}

	return big.NewInt(0).SetBytes(enc)
}

func (f *Funding) resetAmount(address types.Address) {
	amount := f.amountFunded(address)
	if amount.Sign() == 0 {
		return
	}

	f.iavl.Remove(amountPath(address))
	f.bus.Checker().AddLedger(big.NewInt(0).Neg(amount))
}

func (f *Funding) resetHeldBalance() *big.Int {
	balance := f.heldBalance()
	if balance.Sign() == 0 {
		return balance
	}

	f.iavl.Remove(heldBalancePath)
	f.bus.Checker().AddHeldBalance(big.NewInt(0).Neg(balance))

	return balance
}

func amountPath(address types.Address) []byte {
	return append([]byte{amountPrefix}, address.Bytes()...)
}

func registryPath(index uint32) []byte {
	b := make([]byte, 4)
	binary.BigEndian.PutUint32(b, index)

	return append([]byte{registryPrefix}, b...)
}
