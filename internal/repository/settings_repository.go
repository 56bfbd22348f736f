package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

// SettingsRepository manages per-user settings rows, one per user.
type SettingsRepository struct {
	db *sqlx.DB
}

// NewSettingsRepository constructs a SettingsRepository.
func NewSettingsRepository(db *sqlx.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Find returns a user's settings row. Callers treat sql.ErrNoRows as
// "defaults apply".
func (r *SettingsRepository) Find(ctx context.Context, userID string) (*models.UserSettings, error) {
	const query = `SELECT user_id, city, units, google_calendar_connected, google_access_token, google_token_expiry, updated_at FROM user_settings WHERE user_id = $1 LIMIT 1`
	var settings models.UserSettings
	if err := r.db.GetContext(ctx, &settings, query, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find settings: %w", err)
	}
	return &settings, nil
}

// Upsert writes a user's settings, inserting the row on first save.
func (r *SettingsRepository) Upsert(ctx context.Context, settings *models.UserSettings) error {
	settings.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO user_settings (user_id, city, units, google_calendar_connected, google_access_token, google_token_expiry, updated_at)
        VALUES (:user_id, :city, :units, :google_calendar_connected, :google_access_token, :google_token_expiry, :updated_at)
        ON CONFLICT (user_id) DO UPDATE SET
        city = EXCLUDED.city,
        units = EXCLUDED.units,
        google_calendar_connected = EXCLUDED.google_calendar_connected,
        google_access_token = EXCLUDED.google_access_token,
        google_token_expiry = EXCLUDED.google_token_expiry,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, settings); err != nil {
		return fmt.Errorf("upsert settings: %w", err)
	}
	return nil
}
