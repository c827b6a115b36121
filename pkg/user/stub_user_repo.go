package user

import (
	"context"
)

type StubUserRepo struct {
	data map[string]User
}

func NewStubUserRepo() *StubUserRepo {
	return &StubUserRepo{data: map[string]User{}}
}

func (s *StubUserRepo) CreateUser(ctx context.Context, user User) error {
	s.data[user.ID] = user
	return nil
}

func (s *StubUserRepo) GetUser(ctx context.Context, id string) (User, error) {
	user, ok := s.data[id]
	if !ok {
		return User{}, ErrNoUser
	}
	return user, nil
}

func (s *StubUserRepo) GetAllUsers(ctx context.Context) ([]User, error) {
	users := make([]User, 0, len(s.data))
	for _, user := range s.data {
		users = append(users, user)
	}
	return users, nil
}

func (s *StubUserRepo) IsUsernameTaken(ctx context.Context, username string) (bool, error) {
	for _, user := range s.data {
		if user.Username == username {
			return true, nil
		}
	}
	return false, nil
}

func (s *StubUserRepo) DeleteUser(ctx context.Context, id string) (bool, error) {
	if _, ok := s.data[id]; !ok {
		return false, nil
	}
	delete(s.data, id)
	return true, nil
}
