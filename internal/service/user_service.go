package service

import (
	"context"

	"github.com/amirsoft21/bementor/internal/models"
	"github.com/amirsoft21/bementor/internal/repository"
)

// UserService backs the admin endpoints.
type UserService struct {
	users repository.UserRepository
}

func NewUserService(users repository.UserRepository) *UserService {
	return &UserService{users: users}
}

func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	return s.users.List(ctx)
}

// Deactivate soft-deletes: the record stays, but the account can no longer
// authenticate in durable mode.
func (s *UserService) Deactivate(ctx context.Context, userID string) error {
	return s.users.SetActive(ctx, userID, false)
}
