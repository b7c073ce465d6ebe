package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/jwt"
	"vivaha-be/internal/models"
	"vivaha-be/internal/repository"
)

const welcomeEmailTimeout = 15 * time.Second

// WelcomeSender delivers the post-registration email.
type WelcomeSender interface {
	SendWelcome(ctx context.Context, to, name string) error
}

// AuthService defines the interface for authentication business logic
type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error)
	Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error)
	Me(ctx context.Context, userID string) (*entities.User, error)
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *jwt.JWTService
	mailer     WelcomeSender
	logger     zerolog.Logger
}

// NewAuthService creates a new auth service. mailer may be nil.
func NewAuthService(userRepo repository.UserRepository, jwtService *jwt.JWTService, mailer WelcomeSender, logger zerolog.Logger) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		mailer:     mailer,
		logger:     logger,
	}
}

// Register creates a new user account and logs it in
func (s *authService) Register(ctx context.Context, req *models.RegisterRequest) (*models.AuthResponse, error) {
	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	role := entities.UserRole(req.Role)
	if role == "" {
		role = entities.UserRoleBride
	}

	// Duplicates are detected by the unique index on email.
	user, err := s.userRepo.Create(ctx, req.Email, string(hashedPassword), req.Name, role)
	if errors.Is(err, repository.ErrDuplicate) {
		return nil, ErrEmailTaken
	}
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	// Generate JWT token for automatic login after registration
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	s.sendWelcome(user)

	return &models.AuthResponse{Token: token, User: user}, nil
}

// sendWelcome emails the new user in the background. Failures are logged only.
func (s *authService) sendWelcome(user *entities.User) {
	if s.mailer == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), welcomeEmailTimeout)
		defer cancel()
		if err := s.mailer.SendWelcome(ctx, user.Email, user.Name); err != nil {
			s.logger.Warn().Err(err).Str("user_id", user.ID).Msg("failed to send welcome email")
			return
		}
		s.logger.Info().Str("user_id", user.ID).Msg("welcome email sent")
	}()
}

// Login authenticates a user and returns user info with JWT token
func (s *authService) Login(ctx context.Context, req *models.LoginRequest) (*models.AuthResponse, error) {
	// Find user by email
	user, err := s.userRepo.FindByEmail(ctx, req.Email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	// Verify password
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Generate JWT token
	token, err := s.jwtService.GenerateToken(user.ID, user.Email, user.IsAdmin)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token: %w", err)
	}

	return &models.AuthResponse{Token: token, User: user}, nil
}

// Me returns the authenticated user
func (s *authService) Me(ctx context.Context, userID string) (*entities.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}
