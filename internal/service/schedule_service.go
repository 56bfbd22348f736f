package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type scheduleRepository interface {
	List(ctx context.Context, userID string) ([]models.OutfitSchedule, error)
	ListRange(ctx context.Context, userID, from, to string) ([]models.OutfitSchedule, error)
	FindByID(ctx context.Context, userID, id string) (*models.OutfitSchedule, error)
	Create(ctx context.Context, schedule *models.OutfitSchedule) error
	Delete(ctx context.Context, userID, id string) error
}

type scheduleOutfitRepository interface {
	List(ctx context.Context, userID string) ([]models.Outfit, error)
	FindByID(ctx context.Context, userID, id string) (*models.Outfit, error)
}

// CreateScheduleRequest assigns an outfit to a date.
type CreateScheduleRequest struct {
	OutfitID string `json:"outfit_id" validate:"required"`
	Date     string `json:"date" validate:"required,datetime=2006-01-02"`
}

// ScheduleService provides outfit schedule use cases.
type ScheduleService struct {
	repo      scheduleRepository
	outfits   scheduleOutfitRepository
	items     outfitItemCatalog
	validator *validator.Validate
	logger    *zap.Logger
	location  *time.Location
}

// NewScheduleService constructs a ScheduleService.
func NewScheduleService(repo scheduleRepository, outfits scheduleOutfitRepository, items outfitItemCatalog, validate *validator.Validate, logger *zap.Logger, loc *time.Location) *ScheduleService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if loc == nil {
		loc = time.Local
	}
	return &ScheduleService{repo: repo, outfits: outfits, items: items, validator: validate, logger: logger, location: loc}
}

// List returns the user's schedules joined with their outfits, ordered by
// date then creation time.
func (s *ScheduleService) List(ctx context.Context, userID string) ([]models.HydratedSchedule, error) {
	schedules, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return s.hydrate(ctx, userID, schedules)
}

// ListRange returns hydrated schedules within an inclusive date range.
func (s *ScheduleService) ListRange(ctx context.Context, userID, from, to string) ([]models.HydratedSchedule, error) {
	if _, err := planner.KeyForString(from, s.location); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid range start")
	}
	if _, err := planner.KeyForString(to, s.location); err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "invalid range end")
	}
	schedules, err := s.repo.ListRange(ctx, userID, from, to)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list schedules")
	}
	return s.hydrate(ctx, userID, schedules)
}

// Create assigns an outfit to a date and returns the hydrated record.
func (s *ScheduleService) Create(ctx context.Context, userID string, req CreateScheduleRequest) (*models.HydratedSchedule, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid schedule payload")
	}

	outfit, err := s.outfits.FindByID(ctx, userID, req.OutfitID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfit")
	}

	schedule := &models.OutfitSchedule{
		UserID:   userID,
		OutfitID: outfit.ID,
		Date:     req.Date,
	}
	if err := s.repo.Create(ctx, schedule); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create schedule")
	}

	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &models.HydratedSchedule{
		ID:        schedule.ID,
		Date:      schedule.Date,
		Outfit:    planner.HydrateOutfit(*outfit, catalog),
		CreatedAt: schedule.CreatedAt,
	}, nil
}

// Delete removes a schedule.
func (s *ScheduleService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "schedule not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete schedule")
	}
	return nil
}

func (s *ScheduleService) hydrate(ctx context.Context, userID string, schedules []models.OutfitSchedule) ([]models.HydratedSchedule, error) {
	outfits, err := s.outfits.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfits")
	}
	items, err := s.items.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load closet")
	}

	hydrated, skipped := planner.HydrateSchedules(schedules, outfits, items)
	if skipped > 0 {
		s.logger.Warn("schedules referencing deleted outfits were skipped", zap.Int("count", skipped), zap.String("user_id", userID))
	}
	return hydrated, nil
}

func (s *ScheduleService) catalog(ctx context.Context, userID string) (map[string]models.ClothingItem, error) {
	items, err := s.items.ListAll(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load closet")
	}
	catalog := make(map[string]models.ClothingItem, len(items))
	for _, item := range items {
		catalog[item.ID] = item
	}
	return catalog, nil
}
