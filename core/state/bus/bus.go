package bus

import (
	eventsdb "github.com/twopieare/foundry-fund-me/core/events"
)

// Bus carries the narrow interfaces state modules expose to each other.
type Bus struct {
	checker Checker
	events  eventsdb.IEventsDB
}

func NewBus() *Bus {
	return &Bus{}
}

func (b *Bus) SetChecker(checker Checker) {
	b.checker = checker
}

func (b *Bus) Checker() Checker {
	return b.checker
}

func (b *Bus) SetEvents(events eventsdb.IEventsDB) {
	b.events = events
}

func (b *Bus) Events() eventsdb.IEventsDB {
	return b.events
}
