package google

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/subtrackr/subtrackr/pkg/reminder"
	"github.com/subtrackr/subtrackr/pkg/user"
	"google.golang.org/api/calendar/v3"
	"google.golang.org/api/option"
)

type Service interface {
	reminder.ClientProvider
}

type ServiceImpl struct {
	auth *GoogleAuth
}

func NewService(auth *GoogleAuth) *ServiceImpl {
	return &ServiceImpl{
		auth: auth,
	}
}

// CalendarClient returns a calendar client bound to the current user's primary
// Google Calendar. Returns reminder.ErrUnauthenticated when the user has not
// connected their Google account.
func (s *ServiceImpl) CalendarClient(ctx context.Context) (reminder.CalendarClient, error) {
	userId, err := user.CurrentId(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get current user: %w", err)
	}

	client, err := s.auth.getClient(ctx, userId)
	if err != nil {
		err := fmt.Errorf("unable to retrieve Google auth client: %v", err)
		log.Error(err)
		return nil, err
	}
	if client == nil {
		log.Debug("user is unauthenticated, authentication is required")
		return nil, reminder.ErrUnauthenticated
	}

	service, err := calendar.NewService(ctx, option.WithHTTPClient(client))
	if err != nil {
		err := fmt.Errorf("unable to retrieve Calendar client: %v", err)
		log.Error(err)
		return nil, err
	}

	return newGoogleCalendar(service), nil
}
