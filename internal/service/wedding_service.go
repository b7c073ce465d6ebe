package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/repository"
)

// WeddingService manages the top level of a user's wedding.
type WeddingService interface {
	Get(ctx context.Context, userID string) (*entities.Wedding, error)
	UpdateDetails(ctx context.Context, userID string, req *models.UpdateWeddingRequest) (*entities.Wedding, error)
	ApplyOnboarding(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.Wedding, error)
	Delete(ctx context.Context, userID string) error
	Summary(ctx context.Context, userID string) (*models.WeddingSummary, error)
}

// weddingStore does the read-modify-write cycle shared by every wedding
// mutation. Concurrent writers to the same wedding overwrite each other.
type weddingStore struct {
	repo   repository.WeddingRepository
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

func newWeddingStore(repo repository.WeddingRepository) *weddingStore {
	return &weddingStore{
		repo:   repo,
		tracer: otel.Tracer("vivaha-be/internal/service"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// load returns the user's wedding, creating an empty one on first access.
func (s *weddingStore) load(ctx context.Context, userID string) (*entities.Wedding, error) {
	wedding, err := s.repo.FindByUserID(ctx, userID)
	if err == nil {
		return wedding, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to load wedding: %w", err)
	}

	wedding, err = s.repo.CreateIfAbsent(ctx, entities.NewWedding(s.newID(), userID, s.now().UTC()))
	if err != nil {
		return nil, fmt.Errorf("failed to create wedding: %w", err)
	}
	return wedding, nil
}

// mutate applies fn to the stored wedding and saves the result. Nothing is
// written when fn fails.
func (s *weddingStore) mutate(ctx context.Context, userID string, fn func(*entities.Wedding) error) (*entities.Wedding, error) {
	ctx, span := s.tracer.Start(ctx, "wedding.mutate")
	defer span.End()

	wedding, err := s.load(ctx, userID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	if err := fn(wedding); err != nil {
		return nil, err
	}

	wedding.UpdatedAt = s.now().UTC()
	if err := s.repo.Save(ctx, wedding); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to save wedding: %w", err)
	}
	return wedding, nil
}

func (s *weddingStore) nextID() string {
	return s.newID()
}

type weddingService struct {
	store *weddingStore
}

// NewWeddingService creates a new wedding service
func NewWeddingService(repo repository.WeddingRepository) WeddingService {
	return &weddingService{store: newWeddingStore(repo)}
}

func (s *weddingService) Get(ctx context.Context, userID string) (*entities.Wedding, error) {
	return s.store.load(ctx, userID)
}

// UpdateDetails changes date, venue and total budget. Nil fields are kept.
func (s *weddingService) UpdateDetails(ctx context.Context, userID string, req *models.UpdateWeddingRequest) (*entities.Wedding, error) {
	if req.TotalBudget != nil && *req.TotalBudget < 0 {
		return nil, invalid("totalBudget must not be negative")
	}

	return s.store.mutate(ctx, userID, func(w *entities.Wedding) error {
		if req.Date != nil {
			date := req.Date.UTC()
			w.Date = &date
		}
		if req.Venue != nil {
			w.Venue = *req.Venue
		}
		if req.TotalBudget != nil {
			w.TotalBudget = *req.TotalBudget
		}
		return nil
	})
}

// ApplyOnboarding embeds the onboarding answers in the wedding. The total
// budget is seeded from the estimate only while it is still unset.
func (s *weddingService) ApplyOnboarding(ctx context.Context, userID string, data *entities.OnboardingData) (*entities.Wedding, error) {
	return s.store.mutate(ctx, userID, func(w *entities.Wedding) error {
		w.OnboardingData = *data
		if w.TotalBudget == 0 && data.EstimatedBudget != nil {
			w.TotalBudget = *data.EstimatedBudget
		}
		return nil
	})
}

// Delete removes the wedding together with every nested entity.
func (s *weddingService) Delete(ctx context.Context, userID string) error {
	err := s.store.repo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrItemNotFound
	}
	return err
}

// Summary aggregates the wedding for the dashboard overview.
func (s *weddingService) Summary(ctx context.Context, userID string) (*models.WeddingSummary, error) {
	w, err := s.store.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return summarize(w, s.store.now()), nil
}

func summarize(w *entities.Wedding, now time.Time) *models.WeddingSummary {
	summary := &models.WeddingSummary{
		TotalBudget: w.TotalBudget,
		GuestCount:  len(w.Guests),
		RSVPCounts: map[string]int{
			string(entities.RSVPPending):  0,
			string(entities.RSVPAccepted): 0,
			string(entities.RSVPDeclined): 0,
		},
		TodosTotal: len(w.Todos),
	}

	for _, c := range w.Budget {
		summary.EstimatedTotal += c.EstimatedAmount
		summary.ActualTotal += c.ActualAmount
		summary.PaidTotal += c.Paid
	}
	summary.Remaining = w.TotalBudget - summary.ActualTotal

	for _, g := range w.Guests {
		status := g.RSVPStatus
		if status == "" {
			status = entities.RSVPPending
		}
		summary.RSVPCounts[string(status)]++
	}
	for _, t := range w.Seating {
		summary.SeatedGuests += len(t.Guests)
	}
	for _, t := range w.Todos {
		if t.Completed {
			summary.TodosCompleted++
		}
	}
	for _, v := range w.Vendors {
		if v.Status == entities.VendorBooked || v.Status == entities.VendorPaid {
			summary.VendorsBooked++
		}
	}

	if w.Date != nil {
		days := int(dayOf(*w.Date).Sub(dayOf(now)).Hours() / 24)
		summary.DaysUntil = &days
	}
	return summary
}

func dayOf(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
