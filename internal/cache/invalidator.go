package cache

import (
	log "github.com/sirupsen/logrus"
	"github.com/subtrackr/subtrackr/internal/event_bus"
)

// RegisterInvalidation subscribes cache invalidation to subscription change
// events, keeping the write paths free of cache knowledge. Invalidation runs
// synchronously during Publish, so a completed write is never served stale
// within the same request.
func RegisterInvalidation(bus *event_bus.EventBus, c *Cache) {
	invalidate := func(e event_bus.EventT[event_bus.SubscriptionChanged]) error {
		log.Debugf("invalidating cache for subscription %s (user %s)", e.Data.SubscriptionID, e.Data.UserID)
		c.Delete(e.Context(),
			SubscriptionKey(e.Data.UserID, e.Data.SubscriptionID),
			UserSubscriptionsKey(e.Data.UserID),
			UserStatsKey(e.Data.UserID),
		)
		return nil
	}

	event_bus.SubscribeTyped[event_bus.SubscriptionChanged](bus, event_bus.SubscriptionCreated, invalidate)
	event_bus.SubscribeTyped[event_bus.SubscriptionChanged](bus, event_bus.SubscriptionUpdated, invalidate)
	event_bus.SubscribeTyped[event_bus.SubscriptionChanged](bus, event_bus.SubscriptionDeleted, invalidate)
}
