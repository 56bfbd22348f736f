package repository

import (
	"context"
	"database/sql"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

func clothingItemRows(now time.Time) *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "image_url", "name", "brand", "category", "color", "occasion", "created_at", "updated_at"}).
		AddRow("i1", "u1", "http://localhost/uploads/i1.jpg", "Blue Tee", nil, "T-Shirt", "Blue", "Casual", now, now)
}

func TestListClothingItemsWithFilters(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClothingItemRepository(db)

	now := time.Now()
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, image_url, name, brand, category, color, occasion, created_at, updated_at FROM clothing_items WHERE user_id = $1 AND category = $2 ORDER BY created_at DESC LIMIT 50 OFFSET 0")).
		WithArgs("u1", "T-Shirt").
		WillReturnRows(clothingItemRows(now))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM clothing_items WHERE user_id = $1 AND category = $2")).
		WithArgs("u1", "T-Shirt").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	items, total, err := repo.List(context.Background(), "u1", models.ClothingItemFilter{Category: "T-Shirt"})
	require.NoError(t, err)
	assert.Len(t, items, 1)
	assert.Equal(t, 1, total)
	assert.Equal(t, "Blue", items[0].Color)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFindClothingItemScopedToOwner(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClothingItemRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, image_url, name, brand, category, color, occasion, created_at, updated_at FROM clothing_items WHERE id = $1 AND user_id = $2 LIMIT 1")).
		WithArgs("i1", "someone-else").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.FindByID(context.Background(), "someone-else", "i1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateClothingItemAssignsIdentity(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClothingItemRepository(db)

	mock.ExpectExec("INSERT INTO clothing_items").WillReturnResult(sqlmock.NewResult(1, 1))

	item := &models.ClothingItem{UserID: "u1", ImageURL: "http://localhost/uploads/x.jpg", Category: "Shoes", Color: "Black", Occasion: "Casual"}
	err := repo.Create(context.Background(), item)
	require.NoError(t, err)
	assert.NotEmpty(t, item.ID)
	assert.False(t, item.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteClothingItemMissing(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewClothingItemRepository(db)

	mock.ExpectExec("DELETE FROM clothing_items").
		WithArgs("i404", "u1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Delete(context.Background(), "u1", "i404")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
