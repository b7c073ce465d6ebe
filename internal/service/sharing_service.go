package service

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"vivaha-be/internal/cache"
	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/repository"
)

const (
	shareLinkLifetime = 90 * 24 * time.Hour
	shareLinkCacheTTL = time.Hour
	shareTokenBytes   = 32
	defaultCoupleName = "Couple"
)

// SharingService manages read-only links to a user's wedding.
type SharingService interface {
	Generate(ctx context.Context, userID string, level entities.AccessLevel) (*models.ShareLinkResponse, error)
	List(ctx context.Context, userID string) ([]*entities.ShareLink, error)
	Revoke(ctx context.Context, userID, token string) error
	Lookup(ctx context.Context, token string) (*entities.ShareLink, error)
	Resolve(ctx context.Context, token string) (*models.SharedWeddingResponse, error)
	ShareURL(token string) string
}

type sharingService struct {
	repo      repository.ShareLinkRepository
	weddings  WeddingService
	cache     cache.Cache
	clientURL string
	now       func() time.Time
	logger    zerolog.Logger
}

// NewSharingService creates a new sharing service. cacheClient may be nil.
func NewSharingService(repo repository.ShareLinkRepository, weddings WeddingService, cacheClient cache.Cache, clientURL string, logger zerolog.Logger) SharingService {
	svc := &sharingService{
		repo:      repo,
		weddings:  weddings,
		clientURL: strings.TrimRight(clientURL, "/"),
		now:       time.Now,
		logger:    logger,
	}
	// Only set cache if provided (allows graceful degradation)
	if cacheClient != nil {
		svc.cache = cacheClient
	}
	return svc
}

// generateToken returns 32 random bytes, hex encoded
func generateToken() (string, error) {
	b := make([]byte, shareTokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func shareCacheKey(token string) string {
	return "share:" + token
}

// ShareURL is the client page that opens a shared wedding.
func (s *sharingService) ShareURL(token string) string {
	return s.clientURL + "/shared/" + token
}

// Generate creates a link that expires after 90 days
func (s *sharingService) Generate(ctx context.Context, userID string, level entities.AccessLevel) (*models.ShareLinkResponse, error) {
	if level == "" {
		level = entities.AccessView
	}
	if level != entities.AccessView && level != entities.AccessEdit {
		return nil, invalid("accessLevel must be view or edit")
	}

	token, err := generateToken()
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	expiresAt := now.Add(shareLinkLifetime)
	link := &entities.ShareLink{
		Token:       token,
		UserID:      userID,
		AccessLevel: level,
		CreatedAt:   now,
		ExpiresAt:   &expiresAt,
	}
	if err := s.repo.Create(ctx, link); err != nil {
		return nil, fmt.Errorf("failed to create share link: %w", err)
	}

	s.cacheLink(ctx, link)

	return &models.ShareLinkResponse{
		ShareLink:   s.ShareURL(token),
		ShareToken:  token,
		AccessLevel: string(level),
		ExpiresAt:   link.ExpiresAt,
	}, nil
}

func (s *sharingService) List(ctx context.Context, userID string) ([]*entities.ShareLink, error) {
	return s.repo.ListByUser(ctx, userID)
}

// Revoke deletes the link and drops it from the cache
func (s *sharingService) Revoke(ctx context.Context, userID, token string) error {
	err := s.repo.Delete(ctx, token, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrShareLinkNotFound
	}
	if err != nil {
		return err
	}

	if s.cache != nil {
		s.forget(ctx, token)
	}
	return nil
}

// Lookup returns a live link, checking the cache before the database. An
// unknown token yields ErrShareLinkNotFound and an expired one
// ErrShareLinkExpired.
func (s *sharingService) Lookup(ctx context.Context, token string) (*entities.ShareLink, error) {
	now := s.now()

	if s.cache != nil {
		var cached entities.ShareLink
		if err := s.cache.GetJSON(ctx, shareCacheKey(token), &cached); err == nil {
			if cached.Expired(now) {
				s.forget(ctx, token)
				return nil, ErrShareLinkExpired
			}
			return &cached, nil
		}
	}

	link, err := s.repo.FindByToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrShareLinkNotFound
	}
	if err != nil {
		return nil, err
	}
	if link.Expired(now) {
		return nil, ErrShareLinkExpired
	}

	s.cacheLink(ctx, link)
	return link, nil
}

// Resolve returns the wedding a live link points to, with the link's access
// level.
func (s *sharingService) Resolve(ctx context.Context, token string) (*models.SharedWeddingResponse, error) {
	link, err := s.Lookup(ctx, token)
	if err != nil {
		return nil, err
	}
	wedding, err := s.weddings.Get(ctx, link.UserID)
	if err != nil {
		return nil, err
	}

	coupleName := string(wedding.OnboardingData.Role)
	if coupleName == "" {
		coupleName = defaultCoupleName
	}
	return &models.SharedWeddingResponse{
		AccessLevel: string(link.AccessLevel),
		CoupleName:  coupleName,
		Wedding:     wedding,
	}, nil
}

func (s *sharingService) forget(ctx context.Context, token string) {
	if err := s.cache.Delete(ctx, shareCacheKey(token)); err != nil {
		s.logger.Warn().Err(err).Msg("failed to invalidate share link cache")
	}
}

// cacheLink caches link for an hour, or until it expires if that is sooner.
func (s *sharingService) cacheLink(ctx context.Context, link *entities.ShareLink) {
	if s.cache == nil {
		return
	}
	ttl := shareLinkCacheTTL
	if link.ExpiresAt != nil {
		if left := link.ExpiresAt.Sub(s.now()); left < ttl {
			ttl = left
		}
	}
	if ttl <= 0 {
		return
	}
	if err := s.cache.SetJSON(ctx, shareCacheKey(link.Token), link, ttl); err != nil {
		s.logger.Warn().Err(err).Msg("failed to cache share link")
	}
}
