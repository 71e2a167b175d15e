// Package events carries change notifications between components. A
// Broker is created once at startup and handed to every publisher and
// subscriber.
package events

import (
	"sync"
	"sync/atomic"
	"time"

	"fjacquet/budget-insight/internal/logging"
)

// RefreshType names what changed.
type RefreshType string

// Refresh types published by the application.
const (
	Budgets      RefreshType = "BUDGETS"
	Transactions RefreshType = "TRANSACTIONS"
	Advice       RefreshType = "ADVICE"
	Currency     RefreshType = "CURRENCY"
	All          RefreshType = "ALL"
)

// Event is a single change notification.
type Event struct {
	Type RefreshType `json:"type"`
	At   time.Time   `json:"at"`
}

// Matches reports whether a listener interested in want should react to e.
// All matches every type in both directions.
func (e Event) Matches(want RefreshType) bool {
	return e.Type == want || e.Type == All || want == All
}

// Publisher is the write side of a Broker.
type Publisher interface {
	Publish(Event)
}

// Broker fans events out to subscribers. Publish never blocks: a
// subscriber whose buffer is full misses the event and the drop is
// counted.
type Broker struct {
	mu      sync.RWMutex
	subs    map[int]chan Event
	nextID  int
	closed  bool
	dropped atomic.Int64
	logger  logging.Logger
	now     func() time.Time
}

// NewBroker creates an open Broker.
func NewBroker(logger logging.Logger) *Broker {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Broker{
		subs:   make(map[int]chan Event),
		logger: logger.WithField(logging.FieldComponent, "events"),
		now:    time.Now,
	}
}

// Subscribe registers a listener with the given buffer size. The returned
// cancel function unregisters it and closes the channel; it is safe to
// call more than once. Subscribing to a closed broker returns an already
// closed channel.
func (b *Broker) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	ch := make(chan Event, buffer)

	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if sub, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(sub)
			}
		})
	}
	return ch, cancel
}

// Publish delivers e to every subscriber with room in its buffer. A zero
// timestamp is set to the current time.
func (b *Broker) Publish(e Event) {
	if e.At.IsZero() {
		e.At = b.now()
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	if b.closed {
		return
	}
	for id, ch := range b.subs {
		select {
		case ch <- e:
		default:
			b.dropped.Add(1)
			b.logger.Debug("Dropped event for slow subscriber",
				logging.F(logging.FieldEventType, string(e.Type)),
				logging.F(logging.FieldSubscriber, id))
		}
	}
}

// Dropped returns how many deliveries were skipped because a subscriber
// buffer was full.
func (b *Broker) Dropped() int64 {
	return b.dropped.Load()
}

// Close unregisters and closes every subscriber. Later publishes are
// ignored.
func (b *Broker) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
