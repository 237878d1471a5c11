// Package bank abstracts the account system that ultimately receives
// withdrawn funds. The ledger finalizes its own bookkeeping before any
// deposit is attempted; a deposit either fully succeeds or fails with no
// effect.
package bank

import (
	"math/big"
	"sync"

	"github.com/twopieare/foundry-fund-me/core/types"
)

// Bank credits withdrawn value to external accounts.
type Bank interface {
	Deposit(to types.Address, amount *big.Int) error
	BalanceOf(address types.Address) *big.Int
}

// InMemory is a Bank keeping balances in memory.
type InMemory struct {
	lock     sync.RWMutex
	balances map[types.Address]*big.Int
}

// NewInMemory creates an empty in-memory bank.
func NewInMemory() *InMemory {
	return &InMemory{balances: map[types.Address]*big.Int{}}
}

// Deposit adds amount to the account's balance. A nil or zero amount is a
// no-op.
func (b *InMemory) Deposit(to types.Address, amount *big.Int) error {
	if amount == nil || amount.Sign() == 0 {
		return nil
	}

	b.lock.Lock()
	defer b.lock.Unlock()

	balance, exists := b.balances[to]
	if !exists {
		balance = big.NewInt(0)
		b.balances[to] = balance
	}

	balance.Add(balance, amount)

	return nil
}

// BalanceOf returns the account's balance, zero for unknown accounts.
func (b *InMemory) BalanceOf(address types.Address) *big.Int {
	b.lock.RLock()
	defer b.lock.RUnlock()

	balance, exists := b.balances[address]
	if !exists {
		return big.NewInt(0)
	}

	return big.NewInt(0).Set(balance)
}
