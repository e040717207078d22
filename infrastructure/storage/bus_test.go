package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBus_PublishInRegistrationOrder(t *testing.T) {
	bus := NewBus()

	var order []string
	bus.Subscribe(TopicSalesUpdated, func() { order = append(order, "first") })
	bus.Subscribe(TopicSalesUpdated, func() { order = append(order, "second") })
	bus.Subscribe(TopicSalesUpdated, func() { order = append(order, "third") })

	bus.Publish(TopicSalesUpdated)

	assert.Equal(t, []string{"first", "second", "third"}, order)
}

func TestBus_TopicsAreIndependent(t *testing.T) {
	bus := NewBus()

	sales := 0
	expenses := 0
	bus.Subscribe(TopicSalesUpdated, func() { sales++ })
	bus.Subscribe(TopicExpensesUpdated, func() { expenses++ })

	bus.Publish(TopicSalesUpdated)
	bus.Publish(TopicSalesUpdated)

	assert.Equal(t, 2, sales)
	assert.Equal(t, 0, expenses)
}

func TestBus_Unsubscribe(t *testing.T) {
	bus := NewBus()

	calls := 0
	unsubscribe := bus.Subscribe(TopicSalesUpdated, func() { calls++ })

	bus.Publish(TopicSalesUpdated)
	unsubscribe()
	bus.Publish(TopicSalesUpdated)

	assert.Equal(t, 1, calls)

	// A second unsubscribe is a no-op
	unsubscribe()
	bus.Publish(TopicSalesUpdated)
	assert.Equal(t, 1, calls)
}

func TestBus_PanickingSubscriberDoesNotStarveOthers(t *testing.T) {
	bus := NewBus()

	reached := false
	bus.Subscribe(TopicStorageChanged, func() { panic("boom") })
	bus.Subscribe(TopicStorageChanged, func() { reached = true })

	assert.NotPanics(t, func() { bus.Publish(TopicStorageChanged) })
	assert.True(t, reached)
}

func TestBus_NoReplayForLateSubscribers(t *testing.T) {
	bus := NewBus()

	bus.Publish(TopicSalesUpdated)

	calls := 0
	bus.Subscribe(TopicSalesUpdated, func() { calls++ })

	assert.Equal(t, 0, calls)
}
