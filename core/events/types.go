package events

import (
	"github.com/twopieare/foundry-fund-me/core/types"
)

// Event type names
const (
	TypeContributionEvent = "fundme/ContributionEvent"
	TypeWithdrawalEvent   = "fundme/WithdrawalEvent"
)

// Event is something that happened to the ledger and is worth keeping for
// later auditing.
type Event interface {
	Type() string
}

// Events is a slice of events stored under a single height
type Events []Event

// ContributionEvent is emitted for every accepted contribution.
type ContributionEvent struct {
	Address         types.Address `json:"address"`
	Amount          string        `json:"amount"`
	ReferenceAmount string        `json:"reference_amount"`
}

// Type returns event type string
func (ce *ContributionEvent) Type() string {
	return TypeContributionEvent
}

// WithdrawalEvent is emitted when the owner drains the ledger. Funders holds
// the number of registry entries that were cleared.
type WithdrawalEvent struct {
	Address types.Address `json:"address"`
	Amount  string        `json:"amount"`
	Funders uint32        `json:"funders"`
}

// Type returns event type string
func (we *WithdrawalEvent) Type() string {
	return TypeWithdrawalEvent
}
