package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// ClothingItemRepository manages persistence for closet items.
type ClothingItemRepository struct {
	db *sqlx.DB
}

// NewClothingItemRepository constructs a ClothingItemRepository.
func NewClothingItemRepository(db *sqlx.DB) *ClothingItemRepository {
	return &ClothingItemRepository{db: db}
}

const clothingItemColumns = "id, user_id, image_url, name, brand, category, color, occasion, created_at, updated_at"

// List returns a user's items matching the provided filters with total count.
func (r *ClothingItemRepository) List(ctx context.Context, userID string, filter models.ClothingItemFilter) ([]models.ClothingItem, int, error) {
	baseQuery := "FROM clothing_items WHERE user_id = $1"
	args := []interface{}{userID}
	var conditions []string

	if filter.Category != "" {
		conditions = append(conditions, fmt.Sprintf("category = $%d", len(args)+1))
		args = append(args, filter.Category)
	}
	if filter.Color != "" {
		conditions = append(conditions, fmt.Sprintf("color = $%d", len(args)+1))
		args = append(args, filter.Color)
	}
	if filter.Occasion != "" {
		conditions = append(conditions, fmt.Sprintf("occasion = $%d", len(args)+1))
		args = append(args, filter.Occasion)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(COALESCE(name, '')) LIKE $%d OR LOWER(COALESCE(brand, '')) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}
	if len(conditions) > 0 {
		baseQuery += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 || pageSize > 100 {
		pageSize = 50
	}
	offset := (page - 1) * pageSize

	listQuery := fmt.Sprintf("SELECT %s %s ORDER BY created_at DESC LIMIT %d OFFSET %d", clothingItemColumns, baseQuery, pageSize, offset)

	var items []models.ClothingItem
	if err := r.db.SelectContext(ctx, &items, listQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("list clothing items: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", baseQuery)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count clothing items: %w", err)
	}
	return items, total, nil
}

// ListAll returns every item a user owns, used for outfit hydration.
func (r *ClothingItemRepository) ListAll(ctx context.Context, userID string) ([]models.ClothingItem, error) {
	query := fmt.Sprintf("SELECT %s FROM clothing_items WHERE user_id = $1 ORDER BY created_at DESC", clothingItemColumns)
	var items []models.ClothingItem
	if err := r.db.SelectContext(ctx, &items, query, userID); err != nil {
		return nil, fmt.Errorf("list all clothing items: %w", err)
	}
	return items, nil
}

// FindByID fetches a single item scoped to its owner.
func (r *ClothingItemRepository) FindByID(ctx context.Context, userID, id string) (*models.ClothingItem, error) {
	query := fmt.Sprintf("SELECT %s FROM clothing_items WHERE id = $1 AND user_id = $2 LIMIT 1", clothingItemColumns)
	var item models.ClothingItem
	if err := r.db.GetContext(ctx, &item, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find clothing item: %w", err)
	}
	return &item, nil
}

// Create inserts a new item.
func (r *ClothingItemRepository) Create(ctx context.Context, item *models.ClothingItem) error {
	if item.ID == "" {
		item.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now

	const query = `INSERT INTO clothing_items (id, user_id, image_url, name, brand, category, color, occasion, created_at, updated_at) VALUES (:id, :user_id, :image_url, :name, :brand, :category, :color, :occasion, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, item); err != nil {
		return fmt.Errorf("create clothing item: %w", err)
	}
	return nil
}

// Update modifies an item's mutable fields.
func (r *ClothingItemRepository) Update(ctx context.Context, item *models.ClothingItem) error {
	item.UpdatedAt = time.Now().UTC()
	const query = `UPDATE clothing_items SET image_url = :image_url, name = :name, brand = :brand, category = :category, color = :color, occasion = :occasion, updated_at = :updated_at WHERE id = :id AND user_id = :user_id`
	result, err := r.db.NamedExecContext(ctx, query, item)
	if err != nil {
		return fmt.Errorf("update clothing item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Delete removes an item. Outfits referencing the item keep their reference;
// dangling ids are filtered out at read time.
func (r *ClothingItemRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM clothing_items WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete clothing item: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
