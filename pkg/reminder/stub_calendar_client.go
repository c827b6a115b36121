package reminder

import (
	"context"
	"strconv"
)

// StubCalendarClient records provider calls for tests.
type StubCalendarClient struct {
	nextID int
	Events map[string]EventPayload

	CreateCalls int
	UpdateCalls int
	DeleteCalls int

	// FailUpdateWith, when set, is returned by every UpdateEvent call.
	FailUpdateWith error
}

func NewStubCalendarClient() *StubCalendarClient {
	return &StubCalendarClient{Events: map[string]EventPayload{}}
}

func (c *StubCalendarClient) CreateEvent(ctx context.Context, payload EventPayload) (string, error) {
	c.CreateCalls++
	c.nextID++
	id := "evt-" + strconv.Itoa(c.nextID)
	c.Events[id] = payload
	return id, nil
}

func (c *StubCalendarClient) UpdateEvent(ctx context.Context, eventID string, payload EventPayload) (string, error) {
	c.UpdateCalls++
	if c.FailUpdateWith != nil {
		return "", c.FailUpdateWith
	}
	if _, ok := c.Events[eventID]; !ok {
		return "", ErrEventNotFound
	}
	c.Events[eventID] = payload
	return eventID, nil
}

func (c *StubCalendarClient) DeleteEvent(ctx context.Context, eventID string) error {
	c.DeleteCalls++
	delete(c.Events, eventID)
	return nil
}

// StubClientProvider hands out the same client for every request.
type StubClientProvider struct {
	Client *StubCalendarClient
	Err    error
}

func (p *StubClientProvider) CalendarClient(ctx context.Context) (CalendarClient, error) {
	if p.Err != nil {
		return nil, p.Err
	}
	return p.Client, nil
}
