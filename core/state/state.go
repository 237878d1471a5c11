package state

import (
	"sync"

	db "github.com/tendermint/tm-db"
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
	"github.com/twopieare/foundry-fund-me/core/state/bus"
	"github.com/twopieare/foundry-fund-me/core/state/checker"
	"github.com/twopieare/foundry-fund-me/core/state/funding"
	"github.com/twopieare/foundry-fund-me/core/types"
	"github.com/twopieare/foundry-fund-me/tree"
)

// CheckState is a read-only view over the state.
type CheckState struct {
	state *State
}

func NewCheckState(state *State) *CheckState {
	return &CheckState{state: state}
}

func (cs *CheckState) Funding() funding.RFunding {
	return cs.state.Funding
}

func (cs *CheckState) Export() types.AppState {
	appState := new(types.AppState)
	cs.Funding().Export(appState)

	return *appState
}

// State owns the ledger's durable storage. Operations mutate the working
// tree; Commit persists them as a new version, Rollback discards everything
// since the last commit.
type State struct {
	Funding *funding.Funding
	Checker *checker.Checker

	db             db.DB
	events         eventsdb.IEventsDB
	tree           tree.MTree
	keepLastStates int64

	bus  *bus.Bus
	lock sync.RWMutex

	height uint64
}

// NewState opens the state stored in db. With height = 0 the latest
// persisted version is loaded.
func NewState(height uint64, db db.DB, events eventsdb.IEventsDB, cacheSize int, keepLastStates int64) (*State, error) {
	iavlTree, err := tree.NewMutableTree(height, db, cacheSize)
	if err != nil {
		return nil, err
	}

	stateBus := bus.NewBus()
	stateBus.SetEvents(events)

	state := &State{
		db:             db,
		events:         events,
		tree:           iavlTree,
		keepLastStates: keepLastStates,
		bus:            stateBus,
		height:         uint64(iavlTree.Version()),
	}

	state.Checker = checker.NewChecker(stateBus)
	state.Funding = funding.NewFunding(stateBus, iavlTree)

	return state, nil
}

func (s *State) Bus() *bus.Bus {
	return s.bus
}

func (s *State) Tree() tree.MTree {
	return s.tree
}

func (s *State) Height() uint64 {
	s.lock.RLock()
	defer s.lock.RUnlock()

	return s.height
}

func (s *State) Check() error {
	return s.Checker.Check()
}

// Commit verifies the accounting invariant and persists the working tree as
// a new version, pruning versions beyond keepLastStates.
func (s *State) Commit() ([]byte, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := s.Checker.Check(); err != nil {
		return nil, err
	}
	s.Checker.Reset()

	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		return hash, err
	}

	s.height = uint64(version)

	versionToDelete := version - s.keepLastStates - 1
	if versionToDelete < 1 {
		return hash, nil
	}

	if err := s.tree.DeleteVersionIfExists(versionToDelete); err != nil {
		return hash, err
	}

	return hash, nil
}

// Rollback discards every uncommitted change of the current operation.
func (s *State) Rollback() {
	s.lock.Lock()
	defer s.lock.Unlock()

	s.tree.Rollback()
	s.Checker.Reset()
}

func (s *State) Export() types.AppState {
	return NewCheckState(s).Export()
}
