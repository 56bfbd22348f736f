package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

func TestListSchedulesReadsDateAsText(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"id", "user_id", "outfit_id", "date", "created_at"}).
		AddRow("s1", "u1", "o1", "2024-06-10", now).
		AddRow("s2", "u1", "o2", "2024-06-11", now)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT id, user_id, outfit_id, to_char(date, 'YYYY-MM-DD') AS date, created_at FROM outfit_schedules WHERE user_id = $1 ORDER BY date ASC, created_at ASC")).
		WithArgs("u1").
		WillReturnRows(rows)

	schedules, err := repo.List(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, schedules, 2)
	assert.Equal(t, "2024-06-10", schedules[0].Date)
	assert.Equal(t, "2024-06-11", schedules[1].Date)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateSchedulePassesDateVerbatim(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	mock.ExpectExec("INSERT INTO outfit_schedules").
		WithArgs(sqlmock.AnyArg(), "u1", "o1", "2024-06-10", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	schedule := &models.OutfitSchedule{UserID: "u1", OutfitID: "o1", Date: "2024-06-10"}
	err := repo.Create(context.Background(), schedule)
	require.NoError(t, err)
	assert.NotEmpty(t, schedule.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListSchedulesRange(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewScheduleRepository(db)

	rows := sqlmock.NewRows([]string{"id", "user_id", "outfit_id", "date", "created_at"}).
		AddRow("s1", "u1", "o1", "2024-06-10", time.Now())
	mock.ExpectQuery("SELECT id, user_id, outfit_id, to_char").
		WithArgs("u1", "2024-06-10", "2024-06-14").
		WillReturnRows(rows)

	schedules, err := repo.ListRange(context.Background(), "u1", "2024-06-10", "2024-06-14")
	require.NoError(t, err)
	assert.Len(t, schedules, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
