package service

import (
	"context"
	"errors"
	"fmt"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/repository"
)

// AdminService backs the admin endpoints and the user export command.
type AdminService interface {
	ListUsers(ctx context.Context) ([]*entities.User, error)
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type adminService struct {
	users repository.UserRepository
}

func NewAdminService(users repository.UserRepository) AdminService {
	return &adminService{users: users}
}

// ListUsers returns every account, newest first.
func (s *adminService) ListUsers(ctx context.Context) ([]*entities.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// IsAdmin reads the stored flag. A deleted user is not an admin.
func (s *adminService) IsAdmin(ctx context.Context, userID string) (bool, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to find user: %w", err)
	}
	return user.IsAdmin, nil
}
