package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// OutfitRepository manages persistence for saved outfits.
type OutfitRepository struct {
	db *sqlx.DB
}

// NewOutfitRepository constructs an OutfitRepository.
func NewOutfitRepository(db *sqlx.DB) *OutfitRepository {
	return &OutfitRepository{db: db}
}

// List returns all outfits belonging to a user, newest first.
func (r *OutfitRepository) List(ctx context.Context, userID string) ([]models.Outfit, error) {
	const query = `SELECT id, user_id, name, occasion, items, created_at FROM outfits WHERE user_id = $1 ORDER BY created_at DESC`
	var outfits []models.Outfit
	if err := r.db.SelectContext(ctx, &outfits, query, userID); err != nil {
		return nil, fmt.Errorf("list outfits: %w", err)
	}
	return outfits, nil
}

// FindByID fetches an outfit scoped to its owner.
func (r *OutfitRepository) FindByID(ctx context.Context, userID, id string) (*models.Outfit, error) {
	const query = `SELECT id, user_id, name, occasion, items, created_at FROM outfits WHERE id = $1 AND user_id = $2 LIMIT 1`
	var outfit models.Outfit
	if err := r.db.GetContext(ctx, &outfit, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find outfit: %w", err)
	}
	return &outfit, nil
}

// Create inserts a new outfit.
func (r *OutfitRepository) Create(ctx context.Context, outfit *models.Outfit) error {
	if outfit.ID == "" {
		outfit.ID = uuid.NewString()
	}
	if outfit.CreatedAt.IsZero() {
		outfit.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO outfits (id, user_id, name, occasion, items, created_at) VALUES (:id, :user_id, :name, :occasion, :items, :created_at)`
	if _, err := r.db.NamedExecContext(ctx, query, outfit); err != nil {
		return fmt.Errorf("create outfit: %w", err)
	}
	return nil
}

// Update modifies an outfit's name, occasion, and item list.
func (r *OutfitRepository) Update(ctx context.Context, outfit *models.Outfit) error {
	const query = `UPDATE outfits SET name = :name, occasion = :occasion, items = :items WHERE id = :id AND user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, outfit)
	if err != nil {
		return fmt.Errorf("update outfit: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an outfit and any schedules pointing at it.
func (r *OutfitRepository) Delete(ctx context.Context, userID, id string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete outfit: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM outfit_schedules WHERE outfit_id = $1 AND user_id = $2`, id, userID); err != nil {
		return fmt.Errorf("delete outfit schedules: %w", err)
	}
	result, err := tx.ExecContext(ctx, `DELETE FROM outfits WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("delete outfit: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete outfit: %w", err)
	}
	return nil
}
