package google

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"google.golang.org/api/googleapi"
)

func TestTranslateError(t *testing.T) {
	t.Run("404 maps to event not found", func(t *testing.T) {
		err := translateError(&googleapi.Error{Code: http.StatusNotFound})
		assert.ErrorIs(t, err, reminder.ErrEventNotFound)
	})

	t.Run("410 maps to event not found", func(t *testing.T) {
		err := translateError(&googleapi.Error{Code: http.StatusGone})
		assert.ErrorIs(t, err, reminder.ErrEventNotFound)
	})

	t.Run("401 and 403 map to unauthenticated", func(t *testing.T) {
		assert.ErrorIs(t, translateError(&googleapi.Error{Code: http.StatusUnauthorized}), reminder.ErrUnauthenticated)
		assert.ErrorIs(t, translateError(&googleapi.Error{Code: http.StatusForbidden}), reminder.ErrUnauthenticated)
	})

	t.Run("other API errors pass through unchanged", func(t *testing.T) {
		apiErr := &googleapi.Error{Code: http.StatusTooManyRequests}
		assert.Equal(t, error(apiErr), translateError(apiErr))
	})

	t.Run("wrapped API errors are unwrapped", func(t *testing.T) {
		wrapped := fmt.Errorf("calling google: %w", &googleapi.Error{Code: http.StatusNotFound})
		assert.ErrorIs(t, translateError(wrapped), reminder.ErrEventNotFound)
	})

	t.Run("non-API errors pass through unchanged", func(t *testing.T) {
		plain := errors.New("network down")
		assert.Equal(t, plain, translateError(plain))
	})
}

func TestToGoogleEvent(t *testing.T) {
	payload := reminder.EventPayload{
		Summary:     "Subscription Alert: Netflix Trial Ending Soon",
		Description: "details",
		Start:       time.Date(2024, 1, 7, 12, 0, 0, 0, time.UTC),
		End:         time.Date(2024, 1, 7, 13, 0, 0, 0, time.UTC),
	}

	event := toGoogleEvent(payload)

	assert.Equal(t, payload.Summary, event.Summary)
	assert.Equal(t, "2024-01-07T12:00:00Z", event.Start.DateTime)
	assert.Equal(t, "2024-01-07T13:00:00Z", event.End.DateTime)
	assert.Equal(t, "UTC", event.Start.TimeZone)

	// Default notifications are replaced by the fixed email + popup pair.
	assert.False(t, event.Reminders.UseDefault)
	assert.Contains(t, event.Reminders.ForceSendFields, "UseDefault")
	assert.Len(t, event.Reminders.Overrides, 2)
	assert.Equal(t, "email", event.Reminders.Overrides[0].Method)
	assert.Equal(t, int64(1440), event.Reminders.Overrides[0].Minutes)
	assert.Equal(t, "popup", event.Reminders.Overrides[1].Method)
	assert.Equal(t, int64(10), event.Reminders.Overrides[1].Minutes)
}
