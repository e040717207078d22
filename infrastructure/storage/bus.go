package storage

import (
	"sync"

	"github.com/sirupsen/logrus"
)

// Topic names a class of change notification.
type Topic string

const (
	// TopicSalesUpdated fires after every successful save of the sales list.
	TopicSalesUpdated Topic = "sales-updated"
	// TopicExpensesUpdated fires after every successful expense append.
	TopicExpensesUpdated Topic = "expenses-updated"
	// TopicStorageChanged fires when another process rewrites a store file.
	// It is advisory and arrives at an unspecified delay after the fact.
	TopicStorageChanged Topic = "storage-changed"
)

type subscriber struct {
	id int
	fn func()
}

// Bus is the change-notification bus owned by the record store. Consumers
// subscribe for the lifetime of a view and unsubscribe on teardown; there is
// no backlog, so a subscriber registered after a save misses that save.
type Bus struct {
	mu     sync.Mutex
	nextID int
	subs   map[Topic][]subscriber
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscribe registers fn for topic and returns its unsubscribe function.
// Callbacks run in registration order.
func (b *Bus) Subscribe(topic Topic, fn func()) (unsubscribe func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	id := b.nextID
	b.subs[topic] = append(b.subs[topic], subscriber{id: id, fn: fn})

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		subs := b.subs[topic]
		for i, s := range subs {
			if s.id == id {
				b.subs[topic] = append(subs[:i:i], subs[i+1:]...)
				return
			}
		}
	}
}

// Publish invokes every subscriber of topic in registration order. A panic
// in one callback is caught and logged so the remaining subscribers still
// run; one misbehaving consumer must not starve the others.
func (b *Bus) Publish(topic Topic) {
	b.mu.Lock()
	subs := make([]subscriber, len(b.subs[topic]))
	copy(subs, b.subs[topic])
	b.mu.Unlock()

	for _, s := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					logrus.WithFields(logrus.Fields{
						"topic": topic,
						"panic": r,
					}).Error("notification subscriber panicked")
				}
			}()
			s.fn()
		}()
	}
}
