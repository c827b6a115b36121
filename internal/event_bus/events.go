package event_bus

const (
	SubscriptionCreated EventType = "subscription.created"
	SubscriptionUpdated EventType = "subscription.updated"
	SubscriptionDeleted EventType = "subscription.deleted"
)

// SubscriptionChanged is the payload published for every subscription write.
type SubscriptionChanged struct {
	SubscriptionID string
	UserID         string
	ServiceName    string
}
