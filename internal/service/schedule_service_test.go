package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
)

type mockScheduleRepo struct {
	schedules map[string]*models.OutfitSchedule
	order     []string
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{schedules: make(map[string]*models.OutfitSchedule)}
}

func (m *mockScheduleRepo) List(ctx context.Context, userID string) ([]models.OutfitSchedule, error) {
	out := make([]models.OutfitSchedule, 0, len(m.order))
	for _, id := range m.order {
		out = append(out, *m.schedules[id])
	}
	return out, nil
}

func (m *mockScheduleRepo) ListRange(ctx context.Context, userID, from, to string) ([]models.OutfitSchedule, error) {
	all, _ := m.List(ctx, userID)
	out := make([]models.OutfitSchedule, 0, len(all))
	for _, s := range all {
		if s.Date >= from && s.Date <= to {
			out = append(out, s)
		}
	}
	return out, nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, userID, id string) (*models.OutfitSchedule, error) {
	s, ok := m.schedules[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return s, nil
}

func (m *mockScheduleRepo) Create(ctx context.Context, schedule *models.OutfitSchedule) error {
	if schedule.ID == "" {
		schedule.ID = "generated"
	}
	schedule.CreatedAt = time.Now().UTC()
	m.schedules[schedule.ID] = schedule
	m.order = append(m.order, schedule.ID)
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, userID, id string) error {
	if _, ok := m.schedules[id]; !ok {
		return sql.ErrNoRows
	}
	delete(m.schedules, id)
	return nil
}

func newScheduleService(t *testing.T) (*ScheduleService, *mockScheduleRepo) {
	t.Helper()
	raw, err := models.EncodeItemIDs([]string{"a"})
	require.NoError(t, err)
	outfits := &mockOutfitList{outfits: []models.Outfit{{ID: "o1", UserID: "u1", Name: "Office", RawItems: raw}}}
	items := &mockItemCatalog{items: []models.ClothingItem{{ID: "a", Category: "Shirt"}}}
	repo := newMockScheduleRepo()
	return NewScheduleService(repo, outfits, items, nil, nil, time.UTC), repo
}

func TestCreateScheduleHydrates(t *testing.T) {
	svc, _ := newScheduleService(t)

	created, err := svc.Create(context.Background(), "u1", CreateScheduleRequest{OutfitID: "o1", Date: "2024-06-11"})
	require.NoError(t, err)
	assert.Equal(t, "2024-06-11", created.Date)
	assert.Equal(t, "Office", created.Outfit.Name)
	require.Len(t, created.Outfit.Items, 1)
}

func TestCreateScheduleRejectsBadDate(t *testing.T) {
	svc, _ := newScheduleService(t)
	_, err := svc.Create(context.Background(), "u1", CreateScheduleRequest{OutfitID: "o1", Date: "June 11"})
	require.Error(t, err)
}

func TestCreateScheduleUnknownOutfit(t *testing.T) {
	svc, _ := newScheduleService(t)
	_, err := svc.Create(context.Background(), "u1", CreateScheduleRequest{OutfitID: "nope", Date: "2024-06-11"})
	require.Error(t, err)
}

func TestListSchedulesJoinsOutfits(t *testing.T) {
	svc, repo := newScheduleService(t)
	require.NoError(t, repo.Create(context.Background(), &models.OutfitSchedule{ID: "s1", UserID: "u1", OutfitID: "o1", Date: "2024-06-11"}))
	require.NoError(t, repo.Create(context.Background(), &models.OutfitSchedule{ID: "s2", UserID: "u1", OutfitID: "deleted-outfit", Date: "2024-06-12"}))

	hydrated, err := svc.List(context.Background(), "u1")
	require.NoError(t, err)
	// The schedule pointing at a deleted outfit is skipped, not an error.
	require.Len(t, hydrated, 1)
	assert.Equal(t, "s1", hydrated[0].ID)
}

func TestListRangeValidatesBounds(t *testing.T) {
	svc, _ := newScheduleService(t)
	_, err := svc.ListRange(context.Background(), "u1", "bad", "2024-06-14")
	require.Error(t, err)
}
