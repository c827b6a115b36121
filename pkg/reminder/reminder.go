package reminder

import (
	"context"
	"errors"
	"time"
)

type PlanType string

const (
	PlanTrial   PlanType = "trial"
	PlanMonthly PlanType = "monthly"
)

var (
	// ErrInvalidStartDate is returned when a reminder window cannot be computed
	// from the given start date.
	ErrInvalidStartDate = errors.New("invalid subscription start date")
	// ErrEventNotFound is returned by a CalendarClient when the provider no
	// longer knows the given event id.
	ErrEventNotFound = errors.New("calendar event not found")
	// ErrUnauthenticated is returned when the user has no valid calendar
	// authorization.
	ErrUnauthenticated = errors.New("user is unauthenticated, authentication is required")
)

// Window is the one-hour calendar event span used to notify the user before a
// subscription period ends.
type Window struct {
	Start time.Time
	End   time.Time
}

// EventPayload is the provider-agnostic shape of a reminder event. The
// reminder-notification policy (email a day ahead, popup 10 minutes ahead) is
// fixed by the calendar client, not carried here.
type EventPayload struct {
	Summary     string
	Description string
	Start       time.Time
	End         time.Time
}

// CalendarClient is the single point of contact with the external calendar
// provider, already bound to one user's calendar.
type CalendarClient interface {
	// CreateEvent inserts a new event and returns the provider-assigned id.
	CreateEvent(ctx context.Context, payload EventPayload) (string, error)
	// UpdateEvent replaces the named event in place and returns its id.
	// Returns ErrEventNotFound when the id no longer exists on the provider.
	UpdateEvent(ctx context.Context, eventID string, payload EventPayload) (string, error)
	// DeleteEvent removes the named event. A missing event is treated as a
	// successful no-op.
	DeleteEvent(ctx context.Context, eventID string) error
}

// ClientProvider resolves a CalendarClient for the current user. Returns
// ErrUnauthenticated when the user has not connected a calendar.
type ClientProvider interface {
	CalendarClient(ctx context.Context) (CalendarClient, error)
}
