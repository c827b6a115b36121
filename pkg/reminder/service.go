package reminder

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
)

// Reminder carries the subscription fields the sync needs. EventID is empty
// until the first successful sync; once set it must be passed back on every
// following sync so the same provider event is updated instead of duplicated.
type Reminder struct {
	ServiceName string
	Category    string
	Cost        float64
	StartDate   time.Time
	PlanType    PlanType
	EventID     string
}

type Service interface {
	UpsertReminder(ctx context.Context, rem Reminder) (string, error)
	RemoveReminder(ctx context.Context, eventID string) error
}

// ServiceImpl keeps a single calendar event per subscription in sync with the
// provider. It holds no state of its own: the stored event id is the only
// link between a subscription and its event.
type ServiceImpl struct {
	clients ClientProvider
}

func NewService(clients ClientProvider) *ServiceImpl {
	return &ServiceImpl{clients: clients}
}

// UpsertReminder creates or updates the reminder event for the given
// subscription fields and returns the provider event id. When the stored id
// no longer exists on the provider, a single create is issued instead so the
// mapping self-heals after an externally deleted event. The caller is
// responsible for persisting the returned id when it differs from the one
// passed in.
func (s *ServiceImpl) UpsertReminder(ctx context.Context, rem Reminder) (string, error) {
	window, err := ComputeWindow(rem.StartDate, rem.PlanType)
	if err != nil {
		return "", err
	}
	text := BuildAlertText(rem.ServiceName, rem.PlanType, rem.Category, rem.Cost)

	payload := EventPayload{
		Summary:     text.Summary,
		Description: text.Description,
		Start:       window.Start,
		End:         window.End,
	}

	client, err := s.clients.CalendarClient(ctx)
	if err != nil {
		return "", err
	}

	if rem.EventID != "" {
		eventID, err := client.UpdateEvent(ctx, rem.EventID, payload)
		if err == nil {
			return eventID, nil
		}
		if !errors.Is(err, ErrEventNotFound) {
			return "", fmt.Errorf("failed to update reminder event: %w", err)
		}
		log.Infof("reminder event %s no longer exists on the provider, recreating", rem.EventID)
	}

	eventID, err := client.CreateEvent(ctx, payload)
	if err != nil {
		return "", fmt.Errorf("failed to create reminder event: %w", err)
	}
	return eventID, nil
}

// RemoveReminder deletes the reminder event. An empty id means the
// subscription was never synced and no provider call is made.
func (s *ServiceImpl) RemoveReminder(ctx context.Context, eventID string) error {
	if eventID == "" {
		return nil
	}

	client, err := s.clients.CalendarClient(ctx)
	if err != nil {
		return err
	}

	if err := client.DeleteEvent(ctx, eventID); err != nil {
		return fmt.Errorf("failed to delete reminder event: %w", err)
	}
	return nil
}
