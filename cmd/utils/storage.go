package utils

import (
	"github.com/syndtr/goleveldb/leveldb/filter"
	"github.com/syndtr/goleveldb/leveldb/opt"
	db "github.com/tendermint/tm-db"
)

// Storage owns the node's databases: one for the state tree, one for events.
type Storage struct {
	stateDB db.DB
	eventDB db.DB
}

// NewStorage opens the databases with the given backend under dir. The memdb
// backend keeps everything in memory and is meant for tests and throwaway
// runs.
func NewStorage(backend, dir string) (*Storage, error) {
	if backend == "memdb" {
		return &Storage{stateDB: db.NewMemDB(), eventDB: db.NewMemDB()}, nil
	}

	options := &opt.Options{
		OpenFilesCacheCapacity: 1024,
		BlockCacheCapacity:     1 << 30,
		WriteBuffer:            1 << 27,
		Filter:                 filter.NewBloomFilter(10),
	}

	stateDB, err := db.NewGoLevelDBWithOpts("state", dir, options)
	if err != nil {
		return nil, err
	}

	eventDB, err := db.NewGoLevelDBWithOpts("events", dir, options)
	if err != nil {
		return nil, err
	}

	return &Storage{stateDB: stateDB, eventDB: eventDB}, nil
}

// InMemoryStorage returns a Storage over memdb backends.
func InMemoryStorage() *Storage {
	return &Storage{stateDB: db.NewMemDB(), eventDB: db.NewMemDB()}
}

func (s *Storage) StateDB() db.DB {
	return s.stateDB
}

func (s *Storage) EventDB() db.DB {
	return s.eventDB
}

func (s *Storage) Close() error {
	if err := s.stateDB.Close(); err != nil {
		return err
	}

	return s.eventDB.Close()
}
