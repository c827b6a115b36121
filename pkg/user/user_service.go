package user

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/subtrackr/subtrackr/internal/utils"
)

type Service interface {
	GetCurrentUser(ctx context.Context) (User, error)
	GetUser(ctx context.Context, id string) (User, error)
	CreateUser(ctx context.Context, user User) (User, error)
	GetAllUsers(ctx context.Context) ([]User, error)
	IsUsernameAvailable(ctx context.Context, username string) (bool, error)
	DeleteUser(ctx context.Context, id string) error
}

type ServiceImpl struct {
	repo  Repo
	clock utils.Clock
}

func NewUserService(repo Repo, clock utils.Clock) *ServiceImpl {
	return &ServiceImpl{repo: repo, clock: clock}
}

func (s *ServiceImpl) GetCurrentUser(ctx context.Context) (User, error) {
	userId, err := CurrentId(ctx)
	if err != nil {
		return User{}, fmt.Errorf("failed to get current user: %w", err)
	}
	return s.GetUser(ctx, userId)
}

func (s *ServiceImpl) GetUser(ctx context.Context, id string) (User, error) {
	return s.repo.GetUser(ctx, id)
}

func (s *ServiceImpl) CreateUser(ctx context.Context, user User) (User, error) {
	taken, err := s.repo.IsUsernameTaken(ctx, user.Username)
	if err != nil {
		return User{}, err
	}
	if taken {
		return User{}, fmt.Errorf("username %q is already taken", user.Username)
	}

	user.ID = uuid.NewString()
	user.CreatedAt = s.clock.Now().UTC()
	if err := s.repo.CreateUser(ctx, user); err != nil {
		return User{}, err
	}
	return user, nil
}

func (s *ServiceImpl) GetAllUsers(ctx context.Context) ([]User, error) {
	return s.repo.GetAllUsers(ctx)
}

func (s *ServiceImpl) IsUsernameAvailable(ctx context.Context, username string) (bool, error) {
	taken, err := s.repo.IsUsernameTaken(ctx, username)
	if err != nil {
		return false, err
	}
	return !taken, nil
}

func (s *ServiceImpl) DeleteUser(ctx context.Context, id string) error {
	deleted, err := s.repo.DeleteUser(ctx, id)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrNoUser
	}
	return nil
}
