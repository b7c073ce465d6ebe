package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"vivaha-be/internal/entities"
)

// ShareLinkRepository defines the interface for share link database operations
type ShareLinkRepository interface {
	Create(ctx context.Context, link *entities.ShareLink) error
	FindByToken(ctx context.Context, token string) (*entities.ShareLink, error)
	ListByUser(ctx context.Context, userID string) ([]*entities.ShareLink, error)
	Delete(ctx context.Context, token, userID string) error
}

type shareLinkRepository struct {
	db *sql.DB
}

// NewShareLinkRepository creates a new share link repository
func NewShareLinkRepository(db *sql.DB) ShareLinkRepository {
	return &shareLinkRepository{db: db}
}

// Create inserts a new share link
func (r *shareLinkRepository) Create(ctx context.Context, link *entities.ShareLink) error {
	query := `
		INSERT INTO share_links (token, user_id, access_level, created_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query, link.Token, link.UserID, link.AccessLevel, link.CreatedAt, link.ExpiresAt)
	if isUniqueViolation(err) {
		return ErrDuplicate
	}
	if err != nil {
		return fmt.Errorf("failed to create share link: %w", err)
	}
	return nil
}

// FindByToken finds a share link by its token
func (r *shareLinkRepository) FindByToken(ctx context.Context, token string) (*entities.ShareLink, error) {
	query := `
		SELECT token, user_id, access_level, created_at, expires_at
		FROM share_links
		WHERE token = $1`

	link, err := scanShareLink(r.db.QueryRowContext(ctx, query, token))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find share link: %w", err)
	}
	return link, nil
}

// ListByUser returns the user's share links, newest first
func (r *shareLinkRepository) ListByUser(ctx context.Context, userID string) ([]*entities.ShareLink, error) {
	query := `
		SELECT token, user_id, access_level, created_at, expires_at
		FROM share_links
		WHERE user_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list share links: %w", err)
	}
	defer rows.Close()

	links := []*entities.ShareLink{}
	for rows.Next() {
		link, err := scanShareLink(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan share link: %w", err)
		}
		links = append(links, link)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating share links: %w", err)
	}
	return links, nil
}

// Delete removes a share link. Only the owner can delete it.
func (r *shareLinkRepository) Delete(ctx context.Context, token, userID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM share_links WHERE token = $1 AND user_id = $2`, token, userID)
	if err != nil {
		return fmt.Errorf("failed to delete share link: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func scanShareLink(row rowScanner) (*entities.ShareLink, error) {
	var link entities.ShareLink
	var expiresAt sql.NullTime
	if err := row.Scan(&link.Token, &link.UserID, &link.AccessLevel, &link.CreatedAt, &expiresAt); err != nil {
		return nil, err
	}
	if expiresAt.Valid {
		link.ExpiresAt = &expiresAt.Time
	}
	return &link, nil
}
