package checker

import (
	"fmt"
	"math/big"
	"sync"

	"github.com/twopieare/foundry-fund-me/core/state/bus"
)

// Checker watches that every operation moves the sum of ledger entries and
// the held balance by the same amount. A mismatch means broken accounting
// and must abort the commit.
type Checker struct {
	ledgerDelta      *big.Int
	heldBalanceDelta *big.Int

	lock sync.RWMutex
}

func NewChecker(bus *bus.Bus) *Checker {
	checker := &Checker{
		ledgerDelta:      big.NewInt(0),
		heldBalanceDelta: big.NewInt(0),
	}
	bus.SetChecker(checker)

	return checker
}

func (c *Checker) AddLedger(value *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.ledgerDelta.Add(c.ledgerDelta, value)
}

func (c *Checker) AddHeldBalance(value *big.Int) {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.heldBalanceDelta.Add(c.heldBalanceDelta, value)
}

// Reset resets checker deltas
func (c *Checker) Reset() {
	c.lock.Lock()
	defer c.lock.Unlock()

	c.ledgerDelta = big.NewInt(0)
	c.heldBalanceDelta = big.NewInt(0)
}

func (c *Checker) Check() error {
	c.lock.RLock()
	defer c.lock.RUnlock()

	if c.ledgerDelta.Cmp(c.heldBalanceDelta) != 0 {
		return fmt.Errorf("invariants error: ledger delta %s, held balance delta %s",
			c.ledgerDelta.String(), c.heldBalanceDelta.String())
	}

	return nil
}
