package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"vivaha-be/internal/entities"
)

// BachelorTripRepository persists each organizer's trip as one JSONB
// document, the same way weddings are stored.
type BachelorTripRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entities.BachelorTrip, error)
	CreateIfAbsent(ctx context.Context, trip *entities.BachelorTrip) (*entities.BachelorTrip, error)
	Save(ctx context.Context, trip *entities.BachelorTrip) error
	Delete(ctx context.Context, userID string) error
}

type bachelorTripRepository struct {
	db *sql.DB
}

func NewBachelorTripRepository(db *sql.DB) BachelorTripRepository {
	return &bachelorTripRepository{db: db}
}

func (r *bachelorTripRepository) FindByUserID(ctx context.Context, userID string) (*entities.BachelorTrip, error) {
	query := `SELECT id, user_id, document, created_at, updated_at FROM bachelor_trips WHERE user_id = $1`

	var trip entities.BachelorTrip
	var id, owner string
	var document []byte
	var createdAt, updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&id, &owner, &document, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find bachelor trip: %w", err)
	}

	if err := json.Unmarshal(document, &trip); err != nil {
		return nil, fmt.Errorf("failed to decode bachelor trip document: %w", err)
	}

	trip.ID = id
	trip.UserID = owner
	trip.CreatedAt = createdAt.Time
	trip.UpdatedAt = updatedAt.Time
	normalizeTrip(&trip)
	return &trip, nil
}

// CreateIfAbsent inserts trip unless its organizer already has one, then
// returns whichever row is stored.
func (r *bachelorTripRepository) CreateIfAbsent(ctx context.Context, trip *entities.BachelorTrip) (*entities.BachelorTrip, error) {
	document, err := json.Marshal(trip)
	if err != nil {
		return nil, fmt.Errorf("failed to encode bachelor trip: %w", err)
	}

	query := `
		INSERT INTO bachelor_trips (id, user_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query, trip.ID, trip.UserID, document, trip.CreatedAt, trip.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create bachelor trip: %w", err)
	}
	return r.FindByUserID(ctx, trip.UserID)
}

func (r *bachelorTripRepository) Save(ctx context.Context, trip *entities.BachelorTrip) error {
	document, err := json.Marshal(trip)
	if err != nil {
		return fmt.Errorf("failed to encode bachelor trip: %w", err)
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE bachelor_trips SET document = $1, updated_at = $2 WHERE user_id = $3`,
		document, trip.UpdatedAt, trip.UserID)
	if err != nil {
		return fmt.Errorf("failed to save bachelor trip: %w", err)
	}
	return expectOneRow(result)
}

func (r *bachelorTripRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bachelor_trips WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bachelor trip: %w", err)
	}
	return expectOneRow(result)
}

func normalizeTrip(t *entities.BachelorTrip) {
	if t.Attendees == nil {
		t.Attendees = []entities.TripAttendee{}
	}
	if t.Expenses == nil {
		t.Expenses = []entities.TripExpense{}
	}
	if t.Flights == nil {
		t.Flights = []entities.TripFlight{}
	}
	if t.Stays == nil {
		t.Stays = []entities.TripStay{}
	}
}
