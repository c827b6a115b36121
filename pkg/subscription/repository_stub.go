package subscription

import (
	"context"
)

type StubRepository struct {
	data map[string]map[string]Subscription // userId -> id -> subscription
}

func NewStubRepository() *StubRepository {
	return &StubRepository{data: map[string]map[string]Subscription{}}
}

func (s *StubRepository) Store(ctx context.Context, userId string, sub Subscription) error {
	if s.data[userId] == nil {
		s.data[userId] = map[string]Subscription{}
	}
	s.data[userId][sub.ID] = sub
	return nil
}

func (s *StubRepository) FindAll(ctx context.Context, userId string) ([]Subscription, error) {
	subs := make([]Subscription, 0, len(s.data[userId]))
	for _, sub := range s.data[userId] {
		subs = append(subs, sub)
	}
	return subs, nil
}

func (s *StubRepository) FindById(ctx context.Context, userId string, id string) (Subscription, error) {
	sub, ok := s.data[userId][id]
	if !ok {
		return Subscription{}, ErrNotFound
	}
	return sub, nil
}

func (s *StubRepository) Update(ctx context.Context, userId string, sub Subscription) (bool, error) {
	if _, ok := s.data[userId][sub.ID]; !ok {
		return false, nil
	}
	s.data[userId][sub.ID] = sub
	return true, nil
}

func (s *StubRepository) SetCalendarEventId(ctx context.Context, userId string, id string, eventId string) error {
	sub, ok := s.data[userId][id]
	if !ok {
		return ErrNotFound
	}
	sub.CalendarEventID = eventId
	s.data[userId][id] = sub
	return nil
}

func (s *StubRepository) Delete(ctx context.Context, userId string, id string) (bool, error) {
	if _, ok := s.data[userId][id]; !ok {
		return false, nil
	}
	delete(s.data[userId], id)
	return true, nil
}
