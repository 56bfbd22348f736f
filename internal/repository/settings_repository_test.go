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

func TestFindSettingsMissingRow(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT user_id, city, units, google_calendar_connected, google_access_token, google_token_expiry, updated_at FROM user_settings WHERE user_id = $1 LIMIT 1")).
		WithArgs("u1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.Find(context.Background(), "u1")
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpsertSettings(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewSettingsRepository(db)

	mock.ExpectExec("INSERT INTO user_settings").WillReturnResult(sqlmock.NewResult(0, 1))

	token := "ya29.token"
	expiry := time.Now().Add(time.Hour)
	settings := &models.UserSettings{
		UserID:                  "u1",
		City:                    "Calgary",
		Units:                   "metric",
		GoogleCalendarConnected: true,
		GoogleAccessToken:       &token,
		GoogleTokenExpiry:       &expiry,
	}
	require.NoError(t, repo.Upsert(context.Background(), settings))
	assert.False(t, settings.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
