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

// ScheduleRepository manages persistence for outfit schedules. The date
// column is a DATE; it is read back with to_char so the value stays the
// literal calendar day instead of being shifted through the session timezone.
type ScheduleRepository struct {
	db *sqlx.DB
}

// NewScheduleRepository constructs a ScheduleRepository.
func NewScheduleRepository(db *sqlx.DB) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

const scheduleColumns = "id, user_id, outfit_id, to_char(date, 'YYYY-MM-DD') AS date, created_at"

// List returns a user's schedules ordered by date then creation time.
// The ordering makes the board's duplicate-day pick deterministic.
func (r *ScheduleRepository) List(ctx context.Context, userID string) ([]models.OutfitSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM outfit_schedules WHERE user_id = $1 ORDER BY date ASC, created_at ASC", scheduleColumns)
	var schedules []models.OutfitSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, userID); err != nil {
		return nil, fmt.Errorf("list schedules: %w", err)
	}
	return schedules, nil
}

// ListRange returns schedules within an inclusive date range.
func (r *ScheduleRepository) ListRange(ctx context.Context, userID, from, to string) ([]models.OutfitSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM outfit_schedules WHERE user_id = $1 AND date >= $2::date AND date <= $3::date ORDER BY date ASC, created_at ASC", scheduleColumns)
	var schedules []models.OutfitSchedule
	if err := r.db.SelectContext(ctx, &schedules, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("list schedules in range: %w", err)
	}
	return schedules, nil
}

// FindByID fetches a schedule scoped to its owner.
func (r *ScheduleRepository) FindByID(ctx context.Context, userID, id string) (*models.OutfitSchedule, error) {
	query := fmt.Sprintf("SELECT %s FROM outfit_schedules WHERE id = $1 AND user_id = $2 LIMIT 1", scheduleColumns)
	var schedule models.OutfitSchedule
	if err := r.db.GetContext(ctx, &schedule, query, id, userID); err != nil {
		if err == sql.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("find schedule: %w", err)
	}
	return &schedule, nil
}

// Create inserts a new schedule. The date string is cast to DATE server-side.
func (r *ScheduleRepository) Create(ctx context.Context, schedule *models.OutfitSchedule) error {
	if schedule.ID == "" {
		schedule.ID = uuid.NewString()
	}
	if schedule.CreatedAt.IsZero() {
		schedule.CreatedAt = time.Now().UTC()
	}
	const query = `INSERT INTO outfit_schedules (id, user_id, outfit_id, date, created_at) VALUES ($1, $2, $3, $4::date, $5)`
	if _, err := r.db.ExecContext(ctx, query, schedule.ID, schedule.UserID, schedule.OutfitID, schedule.Date, schedule.CreatedAt); err != nil {
		return fmt.Errorf("create schedule: %w", err)
	}
	return nil
}

// Delete removes a schedule.
func (r *ScheduleRepository) Delete(ctx context.Context, userID, id string) error {
	const query = `DELETE FROM outfit_schedules WHERE id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("delete schedule: %w", err)
	}
	if n, err := result.RowsAffected(); err == nil && n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
