package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"vivaha-be/internal/entities"
)

// WeddingRepository persists the wedding aggregate as a single JSONB document
// per user.
type WeddingRepository interface {
	FindByUserID(ctx context.Context, userID string) (*entities.Wedding, error)
	CreateIfAbsent(ctx context.Context, wedding *entities.Wedding) (*entities.Wedding, error)
	Save(ctx context.Context, wedding *entities.Wedding) error
	Delete(ctx context.Context, userID string) error
}

type weddingRepository struct {
	db *sql.DB
}

// NewWeddingRepository creates a new wedding repository
func NewWeddingRepository(db *sql.DB) WeddingRepository {
	return &weddingRepository{db: db}
}

// FindByUserID loads the wedding owned by userID
func (r *weddingRepository) FindByUserID(ctx context.Context, userID string) (*entities.Wedding, error) {
	query := `SELECT id, user_id, document, created_at, updated_at FROM weddings WHERE user_id = $1`

	var wedding entities.Wedding
	var id, owner string
	var document []byte
	var createdAt, updatedAt sql.NullTime
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&id, &owner, &document, &createdAt, &updatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find wedding: %w", err)
	}

	if err := json.Unmarshal(document, &wedding); err != nil {
		return nil, fmt.Errorf("failed to decode wedding document: %w", err)
	}

	// Columns are authoritative over whatever the document carries.
	wedding.ID = id
	wedding.UserID = owner
	wedding.CreatedAt = createdAt.Time
	wedding.UpdatedAt = updatedAt.Time
	normalize(&wedding)
	return &wedding, nil
}

// CreateIfAbsent inserts wedding unless its user already owns one, then
// returns whichever row is stored.
func (r *weddingRepository) CreateIfAbsent(ctx context.Context, wedding *entities.Wedding) (*entities.Wedding, error) {
	document, err := json.Marshal(wedding)
	if err != nil {
		return nil, fmt.Errorf("failed to encode wedding: %w", err)
	}

	query := `
		INSERT INTO weddings (id, user_id, document, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id) DO NOTHING`

	_, err = r.db.ExecContext(ctx, query, wedding.ID, wedding.UserID, document, wedding.CreatedAt, wedding.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create wedding: %w", err)
	}
	return r.FindByUserID(ctx, wedding.UserID)
}

// Save overwrites the stored document. The last writer wins.
func (r *weddingRepository) Save(ctx context.Context, wedding *entities.Wedding) error {
	document, err := json.Marshal(wedding)
	if err != nil {
		return fmt.Errorf("failed to encode wedding: %w", err)
	}

	query := `UPDATE weddings SET document = $1, updated_at = $2 WHERE user_id = $3`

	result, err := r.db.ExecContext(ctx, query, document, wedding.UpdatedAt, wedding.UserID)
	if err != nil {
		return fmt.Errorf("failed to save wedding: %w", err)
	}
	return expectOneRow(result)
}

// Delete removes the wedding owned by userID
func (r *weddingRepository) Delete(ctx context.Context, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM weddings WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("failed to delete wedding: %w", err)
	}
	return expectOneRow(result)
}

// normalize replaces nil collections so they encode as [] rather than null.
func normalize(w *entities.Wedding) {
	if w.Guests == nil {
		w.Guests = []entities.Guest{}
	}
	if w.Budget == nil {
		w.Budget = []entities.BudgetCategory{}
	}
	if w.Todos == nil {
		w.Todos = []entities.Todo{}
	}
	if w.Vendors == nil {
		w.Vendors = []entities.Vendor{}
	}
	if w.Seating == nil {
		w.Seating = []entities.SeatingTable{}
	}
}
