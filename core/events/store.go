package events

import (
	"encoding/binary"
	"sync"

	"github.com/tendermint/go-amino"
	db "github.com/tendermint/tm-db"
)

// IEventsDB is an interface of the events store
type IEventsDB interface {
	AddEvent(event Event)
	LoadEvents(height uint32) Events
	CommitEvents(height uint32) error
}

// MockEvents drops all events. Used when the node runs without an events db.
type MockEvents struct{}

func (e MockEvents) AddEvent(Event) {}

func (e MockEvents) LoadEvents(uint32) Events { return Events{} }

func (e MockEvents) CommitEvents(uint32) error { return nil }

type eventsStore struct {
	cdc *amino.Codec
	sync.RWMutex
	db      db.DB
	pending Events
}

// NewEventsStore creates new events store in given DB
func NewEventsStore(db db.DB) IEventsDB {
	codec := amino.NewCodec()
	codec.RegisterInterface((*Event)(nil), nil)
	codec.RegisterConcrete(&ContributionEvent{}, "contribution", nil)
	codec.RegisterConcrete(&WithdrawalEvent{}, "withdrawal", nil)

	return &eventsStore{
		cdc:     codec,
		RWMutex: sync.RWMutex{},
		db:      db,
	}
}

func (store *eventsStore) AddEvent(event Event) {
	store.Lock()
	defer store.Unlock()

	store.pending = append(store.pending, event)
}

func (store *eventsStore) LoadEvents(height uint32) Events {
	store.RLock()
	defer store.RUnlock()

	bytes, err := store.db.Get(uint32ToBytes(height))
	if err != nil {
		panic(err)
	}
	if len(bytes) == 0 {
		return Events{}
	}

	var items Events
	if err := store.cdc.UnmarshalBinaryBare(bytes, &items); err != nil {
		panic(err)
	}

	return items
}

func (store *eventsStore) CommitEvents(height uint32) error {
	store.Lock()
	defer store.Unlock()

	bytes, err := store.cdc.MarshalBinaryBare(store.pending)
	if err != nil {
		return err
	}

	store.pending = nil

	return store.db.Set(uint32ToBytes(height), bytes)
}

func uint32ToBytes(height uint32) []byte {
	var h = make([]byte, 4)
	binary.BigEndian.PutUint32(h, height)
	return h
}
