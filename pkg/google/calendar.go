package google

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	gcal "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
)

const primaryCalendarId = "primary"

// reminderOverrides is the fixed notification policy attached to every event
// this application writes: an email a day ahead and a popup 10 minutes ahead.
var reminderOverrides = []*gcal.EventReminder{
	{Method: "email", Minutes: 24 * 60},
	{Method: "popup", Minutes: 10},
}

// Calendar adapts the user's primary Google Calendar to the
// reminder.CalendarClient interface.
type Calendar struct {
	service    *gcal.Service
	calendarId string
}

func newGoogleCalendar(service *gcal.Service) *Calendar {
	return &Calendar{
		service:    service,
		calendarId: primaryCalendarId,
	}
}

func (c *Calendar) CreateEvent(ctx context.Context, payload reminder.EventPayload) (string, error) {
	log.Debugf("Inserting event %q into calendar %s", payload.Summary, c.calendarId)

	result, err := c.service.Events.Insert(c.calendarId, toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		err := fmt.Errorf("unable to insert event in Google Calendar: %w", translateError(err))
		log.Error(err)
		return "", err
	}
	return result.Id, nil
}

func (c *Calendar) UpdateEvent(ctx context.Context, eventId string, payload reminder.EventPayload) (string, error) {
	log.Debugf("Updating event %s in calendar %s", eventId, c.calendarId)

	result, err := c.service.Events.Update(c.calendarId, eventId, toGoogleEvent(payload)).Context(ctx).Do()
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, reminder.ErrEventNotFound) {
			return "", translated
		}
		err := fmt.Errorf("unable to update event in Google Calendar: %w", translated)
		log.Error(err)
		return "", err
	}
	return result.Id, nil
}

// DeleteEvent removes the event; an already-gone event counts as deleted.
func (c *Calendar) DeleteEvent(ctx context.Context, eventId string) error {
	log.Debugf("Deleting event %s from calendar %s", eventId, c.calendarId)

	err := c.service.Events.Delete(c.calendarId, eventId).Context(ctx).Do()
	if err != nil {
		translated := translateError(err)
		if errors.Is(translated, reminder.ErrEventNotFound) {
			log.Debugf("event %s already gone from Google Calendar", eventId)
			return nil
		}
		err := fmt.Errorf("unable to delete event from Google Calendar: %w", translated)
		log.Error(err)
		return err
	}
	return nil
}

func toGoogleEvent(payload reminder.EventPayload) *gcal.Event {
	return &gcal.Event{
		Summary:     payload.Summary,
		Description: payload.Description,
		Start: &gcal.EventDateTime{
			DateTime: payload.Start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcal.EventDateTime{
			DateTime: payload.End.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Reminders: &gcal.EventReminders{
			UseDefault:      false,
			Overrides:       reminderOverrides,
			ForceSendFields: []string{"UseDefault"},
		},
	}
}

// translateError maps Google API failures onto the reminder error taxonomy.
// Google answers 410 for events deleted out-of-band, 404 for unknown ids.
func translateError(err error) error {
	var apiErr *googleapi.Error
	if !errors.As(err, &apiErr) {
		return err
	}
	switch apiErr.Code {
	case http.StatusNotFound, http.StatusGone:
		return reminder.ErrEventNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return reminder.ErrUnauthenticated
	default:
		return err
	}
}
