package types

// AppState is the exportable snapshot of the ledger
type AppState struct {
	Owner       Address   `json:"owner"`
	HeldBalance string    `json:"held_balance"`
	Funders     []Funder  `json:"funders,omitempty"`
	Registry    []Address `json:"registry,omitempty"`
}

// Funder is a single ledger entry: a contributor and its cumulative
// contributed amount in native units.
type Funder struct {
	Address Address `json:"address"`
	Value   string  `json:"value"`
}
