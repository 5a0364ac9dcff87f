package service

import (
	"alcyxob/exercise-tracker/internal/domain"
	"alcyxob/exercise-tracker/internal/metrics"
	"alcyxob/exercise-tracker/internal/repository"
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type UserService interface {
	CreateUser(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	GetUser(ctx context.Context, rawID string) (*domain.User, error)
}

// userService implements the UserService interface.
type userService struct {
	userRepo repository.UserRepository
	metrics  *metrics.Metrics
}

// NewUserService creates a new instance of userService.
func NewUserService(userRepo repository.UserRepository, m *metrics.Metrics) UserService {
	return &userService{
		userRepo: userRepo,
		metrics:  m,
	}
}

// CreateUser stores a user with the username exactly as given.
func (s *userService) CreateUser(ctx context.Context, username string) (*domain.User, error) {
	user := &domain.User{Username: username}

	userID, err := s.userRepo.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	user.ID = userID
	s.metrics.UsersCreatedTotal.Inc()

	return user, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []domain.User{}
	}
	return users, nil
}

// GetUser resolves a hex id to a user. Malformed ids are reported as
// ErrUserNotFound since no user can carry them.
func (s *userService) GetUser(ctx context.Context, rawID string) (*domain.User, error) {
	userID, err := primitive.ObjectIDFromHex(rawID)
	if err != nil {
		return nil, ErrUserNotFound
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}
