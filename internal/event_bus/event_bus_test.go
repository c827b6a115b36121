package event_bus

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventBus_PublishAndSubscribe(t *testing.T) {
	t.Run("delivers events to subscribed handlers", func(t *testing.T) {
		bus := NewEventBus()
		var received []Event

		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			received = append(received, e)
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SubscriptionCreated, "payload"))

		assert.NoError(t, err)
		assert.Len(t, received, 1)
		assert.Equal(t, "payload", received[0].Data)
	})

	t.Run("does not deliver events of other types", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0

		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			calls++
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SubscriptionDeleted, nil))

		assert.NoError(t, err)
		assert.Equal(t, 0, calls)
	})

	t.Run("unsubscribe stops delivery", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0

		unsubscribe := bus.Subscribe(SubscriptionCreated, func(e Event) error {
			calls++
			return nil
		})
		unsubscribe()

		err := bus.Publish(NewEvent(context.Background(), SubscriptionCreated, nil))

		assert.NoError(t, err)
		assert.Equal(t, 0, calls)
	})

	t.Run("handlers run in registration order", func(t *testing.T) {
		bus := NewEventBus()
		var order []int

		for i := 0; i < 8; i++ {
			i := i
			bus.Subscribe(SubscriptionCreated, func(e Event) error {
				order = append(order, i)
				return nil
			})
		}

		err := bus.Publish(NewEvent(context.Background(), SubscriptionCreated, nil))

		assert.NoError(t, err)
		assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, order)
	})

	t.Run("a failing handler does not stop the others", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0

		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			return errors.New("boom")
		})
		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			calls++
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SubscriptionCreated, nil))

		assert.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("recovers from a panicking handler", func(t *testing.T) {
		bus := NewEventBus()

		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			panic("boom")
		})

		err := bus.Publish(NewEvent(context.Background(), SubscriptionCreated, nil))

		assert.Error(t, err)
	})

	t.Run("cancelled context skips publishing", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0

		bus.Subscribe(SubscriptionCreated, func(e Event) error {
			calls++
			return nil
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := bus.Publish(NewEvent(ctx, SubscriptionCreated, nil))

		assert.Error(t, err)
		assert.Equal(t, 0, calls)
	})
}

func TestSubscribeTyped(t *testing.T) {
	t.Run("delivers matching payload types", func(t *testing.T) {
		bus := NewEventBus()
		var received []SubscriptionChanged

		SubscribeTyped[SubscriptionChanged](bus, SubscriptionUpdated, func(e EventT[SubscriptionChanged]) error {
			received = append(received, e.Data)
			return nil
		})

		payload := SubscriptionChanged{SubscriptionID: "sub-1", UserID: "user-1", ServiceName: "Netflix"}
		err := bus.Publish(NewEvent(context.Background(), SubscriptionUpdated, payload))

		assert.NoError(t, err)
		assert.Equal(t, []SubscriptionChanged{payload}, received)
	})

	t.Run("skips mismatched payload types", func(t *testing.T) {
		bus := NewEventBus()
		calls := 0

		SubscribeTyped[SubscriptionChanged](bus, SubscriptionUpdated, func(e EventT[SubscriptionChanged]) error {
			calls++
			return nil
		})

		err := bus.Publish(NewEvent(context.Background(), SubscriptionUpdated, "not a struct"))

		assert.NoError(t, err)
		assert.Equal(t, 0, calls)
	})
}
