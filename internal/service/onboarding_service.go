package service

import (
	"context"
	"errors"
	"fmt"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/repository"
)

// OnboardingService stores the onboarding answers on the user and mirrors
// them into the user's wedding.
type OnboardingService interface {
	Get(ctx context.Context, userID string) (*entities.OnboardingData, error)
	Save(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.User, error)
	SaveDraft(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.User, error)
}

type onboardingService struct {
	users    repository.UserRepository
	weddings WeddingService
}

func NewOnboardingService(users repository.UserRepository, weddings WeddingService) OnboardingService {
	return &onboardingService{users: users, weddings: weddings}
}

// Get returns the stored answers, or an empty record when onboarding has not
// happened yet.
func (s *onboardingService) Get(ctx context.Context, userID string) (*entities.OnboardingData, error) {
	user, err := s.users.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user.OnboardingData == nil {
		return &entities.OnboardingData{}, nil
	}
	return user.OnboardingData, nil
}

// Save replaces the answers, marks onboarding complete and embeds the answers
// in the wedding.
func (s *onboardingService) Save(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.User, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateOnboarding(ctx, userID, data)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save onboarding: %w", err)
	}

	if _, err := s.weddings.ApplyOnboarding(ctx, userID, data); err != nil {
		return nil, err
	}
	return user, nil
}

// SaveDraft stores answers given mid-flow without completing onboarding. The
// wedding copy is only refreshed once onboarding has already completed.
func (s *onboardingService) SaveDraft(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.User, error) {
	if err := validateStruct(data); err != nil {
		return nil, err
	}

	user, err := s.users.UpdateOnboardingDraft(ctx, userID, data)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to save onboarding draft: %w", err)
	}

	if user.OnboardingCompleted {
		if _, err := s.weddings.ApplyOnboarding(ctx, userID, data); err != nil {
			return nil, err
		}
	}
	return user, nil
}
