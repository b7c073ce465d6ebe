package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"

	"vivaha-be/internal/entities"
	"vivaha-be/internal/models"
	"vivaha-be/internal/repository"
)

// BachelorTripService manages the bachelor or bachelorette trip a user
// organizes. Attendees, expenses, flights and stays are separate
// CollectionServices over the same document.
type BachelorTripService interface {
	Get(ctx context.Context, userID string) (*entities.BachelorTrip, error)
	Plan(ctx context.Context, userID string, req *models.PlanTripRequest) (*entities.BachelorTrip, error)
	Delete(ctx context.Context, userID string) error
	MarkExpensePaid(ctx context.Context, userID, expenseID, participantID string) (*entities.TripExpense, error)
}

// tripStore is weddingStore for trips, except that a missing trip is an
// error instead of being created on first access.
type tripStore struct {
	repo   repository.BachelorTripRepository
	tracer trace.Tracer
	now    func() time.Time
	newID  func() string
}

func newTripStore(repo repository.BachelorTripRepository) *tripStore {
	return &tripStore{
		repo:   repo,
		tracer: otel.Tracer("vivaha-be/internal/service"),
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

func (s *tripStore) load(ctx context.Context, userID string) (*entities.BachelorTrip, error) {
	trip, err := s.repo.FindByUserID(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load bachelor trip: %w", err)
	}
	return trip, nil
}

// mutate applies fn, recomputes the expense total and saves. Nothing is
// written when fn fails.
func (s *tripStore) mutate(ctx context.Context, userID string, fn func(*entities.BachelorTrip) error) (*entities.BachelorTrip, error) {
	ctx, span := s.tracer.Start(ctx, "bachelor_trip.mutate")
	defer span.End()

	trip, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := fn(trip); err != nil {
		return nil, err
	}

	settleExpenses(trip)
	trip.UpdatedAt = s.now().UTC()
	err = s.repo.Save(ctx, trip)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrTripNotFound
	}
	if err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to save bachelor trip: %w", err)
	}
	return trip, nil
}

func (s *tripStore) nextID() string {
	return s.newID()
}

func settleExpenses(trip *entities.BachelorTrip) {
	var total float64
	for _, e := range trip.Expenses {
		total += e.Amount
	}
	trip.TotalExpenses = total
}

type bachelorTripService struct {
	store *tripStore
}

func NewBachelorTripService(repo repository.BachelorTripRepository) BachelorTripService {
	return &bachelorTripService{store: newTripStore(repo)}
}

func (s *bachelorTripService) Get(ctx context.Context, userID string) (*entities.BachelorTrip, error) {
	return s.store.load(ctx, userID)
}

// Plan creates the caller's trip, or updates its details when one exists.
// Attendees, expenses, flights and stays are never touched.
func (s *bachelorTripService) Plan(ctx context.Context, userID string, req *models.PlanTripRequest) (*entities.BachelorTrip, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	trip, err := s.store.mutate(ctx, userID, func(t *entities.BachelorTrip) error {
		applyPlan(t, req)
		return nil
	})
	if !errors.Is(err, ErrTripNotFound) {
		return trip, err
	}

	created := entities.NewBachelorTrip(s.store.nextID(), userID, s.store.now().UTC())
	applyPlan(created, req)
	stored, err := s.store.repo.CreateIfAbsent(ctx, created)
	if err != nil {
		return nil, fmt.Errorf("failed to create bachelor trip: %w", err)
	}
	if stored.ID == created.ID {
		return stored, nil
	}

	// A concurrent request created the trip first.
	return s.store.mutate(ctx, userID, func(t *entities.BachelorTrip) error {
		applyPlan(t, req)
		return nil
	})
}

func applyPlan(t *entities.BachelorTrip, req *models.PlanTripRequest) {
	t.EventName = req.EventName
	t.EventType = req.EventType
	t.TripDate = req.TripDate.UTC()
	t.Location = req.Location
	t.EstimatedBudget = *req.EstimatedBudget
	if req.Status != "" {
		t.Status = req.Status
	}
}

func (s *bachelorTripService) Delete(ctx context.Context, userID string) error {
	err := s.store.repo.Delete(ctx, userID)
	if errors.Is(err, repository.ErrNotFound) {
		return ErrTripNotFound
	}
	return err
}

// MarkExpensePaid settles one participant's share of an expense.
func (s *bachelorTripService) MarkExpensePaid(ctx context.Context, userID, expenseID, participantID string) (*entities.TripExpense, error) {
	var settled entities.TripExpense
	_, err := s.store.mutate(ctx, userID, func(t *entities.BachelorTrip) error {
		for i := range t.Expenses {
			e := &t.Expenses[i]
			if e.ID != expenseID {
				continue
			}
			for j := range e.SplitBetween {
				if e.SplitBetween[j].UserID == participantID {
					e.SplitBetween[j].Paid = true
					settled = *e
					return nil
				}
			}
			return invalid(fmt.Sprintf("%q has no share in this expense", participantID))
		}
		return ErrItemNotFound
	})
	if err != nil {
		return nil, err
	}
	return &settled, nil
}

func tripCollection[T any](store *tripStore, coll collection[entities.BachelorTrip, T]) CollectionService[T] {
	return &collectionService[entities.BachelorTrip, T]{store: store, coll: coll}
}

func NewTripAttendeeService(repo repository.BachelorTripRepository) CollectionService[entities.TripAttendee] {
	return tripCollection(newTripStore(repo), collection[entities.BachelorTrip, entities.TripAttendee]{
		items: func(t *entities.BachelorTrip) *[]entities.TripAttendee { return &t.Attendees },
		id:    func(a *entities.TripAttendee) *string { return &a.ID },
	})
}

// NewTripExpenseService manages expenses. The trip's total follows every
// change.
func NewTripExpenseService(repo repository.BachelorTripRepository) CollectionService[entities.TripExpense] {
	store := newTripStore(repo)
	return tripCollection(store, collection[entities.BachelorTrip, entities.TripExpense]{
		items: func(t *entities.BachelorTrip) *[]entities.TripExpense { return &t.Expenses },
		id:    func(e *entities.TripExpense) *string { return &e.ID },
		defaults: func(e *entities.TripExpense) {
			if e.Category == "" {
				e.Category = entities.ExpenseOther
			}
			if e.SplitBetween == nil {
				e.SplitBetween = []entities.ExpenseShare{}
			}
			if e.Date.IsZero() {
				e.Date = store.now().UTC()
			}
		},
	})
}

// NewTripFlightService manages saved flights. A flight cannot land before it
// departs.
func NewTripFlightService(repo repository.BachelorTripRepository) CollectionService[entities.TripFlight] {
	return tripCollection(newTripStore(repo), collection[entities.BachelorTrip, entities.TripFlight]{
		items: func(t *entities.BachelorTrip) *[]entities.TripFlight { return &t.Flights },
		id:    func(f *entities.TripFlight) *string { return &f.ID },
		check: func(t *entities.BachelorTrip, f *entities.TripFlight) error {
			if f.Arrival.Time.Before(f.Departure.Time) {
				return invalid("arrival must not be before departure")
			}
			if len(f.SavedByUsers) == 0 {
				f.SavedByUsers = []string{t.UserID}
			}
			return nil
		},
	})
}

// NewTripStayService manages saved stays. TotalNights is derived from the
// dates, counting a started night as a whole one.
func NewTripStayService(repo repository.BachelorTripRepository) CollectionService[entities.TripStay] {
	return tripCollection(newTripStore(repo), collection[entities.BachelorTrip, entities.TripStay]{
		items: func(t *entities.BachelorTrip) *[]entities.TripStay { return &t.Stays },
		id:    func(s *entities.TripStay) *string { return &s.ID },
		check: func(t *entities.BachelorTrip, s *entities.TripStay) error {
			if !s.CheckOut.After(s.CheckIn) {
				return invalid("checkOut must be after checkIn")
			}
			s.TotalNights = int(math.Ceil(s.CheckOut.Sub(s.CheckIn).Hours() / 24))
			if len(s.SavedByUsers) == 0 {
				s.SavedByUsers = []string{t.UserID}
			}
			return nil
		},
	})
}
