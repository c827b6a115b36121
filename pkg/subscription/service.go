package subscription

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"github.com/subtrackr/subtrackr/internal/cache"
	"github.com/subtrackr/subtrackr/internal/event_bus"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"github.com/subtrackr/subtrackr/pkg/user"
)

// ResponseCache is the slice of the cache layer the service reads through.
// Invalidation happens through the event bus, not here.
type ResponseCache interface {
	Get(ctx context.Context, key string, value any) bool
	Set(ctx context.Context, key string, value any)
}

type Service interface {
	List(ctx context.Context) ([]Subscription, error)
	Get(ctx context.Context, id string) (Subscription, error)
	Create(ctx context.Context, sub Subscription) (Subscription, error)
	Update(ctx context.Context, sub Subscription) (Subscription, error)
	Delete(ctx context.Context, id string) error
	SyncCalendar(ctx context.Context, id string) (Subscription, error)
}

type ServiceImpl struct {
	repo      Repository
	reminders reminder.Service
	cache     ResponseCache
	bus       *event_bus.EventBus
}

func NewService(repo Repository, reminders reminder.Service, responseCache ResponseCache, bus *event_bus.EventBus) *ServiceImpl {
	return &ServiceImpl{
		repo:      repo,
		reminders: reminders,
		cache:     responseCache,
		bus:       bus,
	}
}

func (s *ServiceImpl) List(ctx context.Context) ([]Subscription, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	key := cache.UserSubscriptionsKey(userId)
	var cached []Subscription
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	subs, err := s.repo.FindAll(ctx, userId)
	if err != nil {
		return nil, err
	}
	s.cache.Set(ctx, key, subs)
	return subs, nil
}

func (s *ServiceImpl) Get(ctx context.Context, id string) (Subscription, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to get current user: %w", err)
	}

	key := cache.SubscriptionKey(userId, id)
	var cached Subscription
	if s.cache.Get(ctx, key, &cached) {
		return cached, nil
	}

	sub, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Subscription{}, err
	}
	s.cache.Set(ctx, key, sub)
	return sub, nil
}

// Create stores the subscription and best-effort syncs its calendar reminder.
// The end date is always derived from the start date and plan type.
func (s *ServiceImpl) Create(ctx context.Context, sub Subscription) (Subscription, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to get current user: %w", err)
	}

	endDate, err := reminder.PeriodEnd(sub.StartDate, reminder.PlanType(sub.Type))
	if err != nil {
		return Subscription{}, err
	}
	sub.ID = uuid.NewString()
	sub.EndDate = endDate
	sub.CalendarEventID = ""

	if err := s.repo.Store(ctx, userId, sub); err != nil {
		return Subscription{}, err
	}

	s.syncReminder(ctx, userId, &sub)
	s.publish(ctx, event_bus.SubscriptionCreated, userId, sub)

	return sub, nil
}

// Update re-derives the end date, stores the record, and best-effort syncs the
// reminder, reusing the previously stored calendar event id.
func (s *ServiceImpl) Update(ctx context.Context, sub Subscription) (Subscription, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.FindById(ctx, userId, sub.ID)
	if err != nil {
		return Subscription{}, err
	}

	endDate, err := reminder.PeriodEnd(sub.StartDate, reminder.PlanType(sub.Type))
	if err != nil {
		return Subscription{}, err
	}
	sub.EndDate = endDate
	sub.CalendarEventID = existing.CalendarEventID

	updated, err := s.repo.Update(ctx, userId, sub)
	if err != nil {
		return Subscription{}, err
	}
	if !updated {
		return Subscription{}, ErrNotFound
	}

	s.syncReminder(ctx, userId, &sub)
	s.publish(ctx, event_bus.SubscriptionUpdated, userId, sub)

	return sub, nil
}

// Delete removes the reminder event and the record. A calendar failure never
// blocks the record deletion; the event is orphaned at worst and the provider
// drops it when the user removes it by hand.
func (s *ServiceImpl) Delete(ctx context.Context, id string) error {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return fmt.Errorf("failed to get current user: %w", err)
	}

	existing, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return err
	}

	if err := s.reminders.RemoveReminder(ctx, existing.CalendarEventID); err != nil {
		log.Warnf("failed to remove calendar reminder for subscription %s: %v", id, err)
	}

	deleted, err := s.repo.Delete(ctx, userId, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNotFound
	}

	s.publish(ctx, event_bus.SubscriptionDeleted, userId, existing)
	return nil
}

// SyncCalendar retries the reminder sync for one subscription and, unlike the
// write paths, reports the sync failure to the caller.
func (s *ServiceImpl) SyncCalendar(ctx context.Context, id string) (Subscription, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return Subscription{}, fmt.Errorf("failed to get current user: %w", err)
	}

	sub, err := s.repo.FindById(ctx, userId, id)
	if err != nil {
		return Subscription{}, err
	}

	eventId, err := s.reminders.UpsertReminder(ctx, toReminder(sub))
	if err != nil {
		return Subscription{}, fmt.Errorf("calendar sync failed: %w", err)
	}

	if eventId != sub.CalendarEventID {
		if err := s.repo.SetCalendarEventId(ctx, userId, sub.ID, eventId); err != nil {
			return Subscription{}, err
		}
		sub.CalendarEventID = eventId
	}

	s.publish(ctx, event_bus.SubscriptionUpdated, userId, sub)
	return sub, nil
}

// syncReminder upserts the calendar event and persists a changed event id.
// Failures are logged and swallowed: a subscription write never fails because
// the calendar provider is down or the user has not connected Google.
func (s *ServiceImpl) syncReminder(ctx context.Context, userId string, sub *Subscription) {
	eventId, err := s.reminders.UpsertReminder(ctx, toReminder(*sub))
	if err != nil {
		log.Warnf("calendar sync failed for subscription %s: %v", sub.ID, err)
		return
	}

	if eventId == sub.CalendarEventID {
		return
	}
	if err := s.repo.SetCalendarEventId(ctx, userId, sub.ID, eventId); err != nil {
		log.Errorf("failed to store calendar event id for subscription %s: %v", sub.ID, err)
		return
	}
	sub.CalendarEventID = eventId
}

func (s *ServiceImpl) publish(ctx context.Context, eventType event_bus.EventType, userId string, sub Subscription) {
	err := s.bus.Publish(event_bus.NewEvent(ctx, eventType, event_bus.SubscriptionChanged{
		SubscriptionID: sub.ID,
		UserID:         userId,
		ServiceName:    sub.ServiceName,
	}))
	if err != nil {
		log.Errorf("failed to publish %s for subscription %s: %v", eventType, sub.ID, err)
	}
}

func toReminder(sub Subscription) reminder.Reminder {
	return reminder.Reminder{
		ServiceName: sub.ServiceName,
		Category:    sub.Category,
		Cost:        sub.Cost,
		StartDate:   sub.StartDate,
		PlanType:    reminder.PlanType(sub.Type),
		EventID:     sub.CalendarEventID,
	}
}
