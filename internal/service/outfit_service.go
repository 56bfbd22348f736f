package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/planner"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type outfitRepository interface {
	List(ctx context.Context, userID string) ([]models.Outfit, error)
	FindByID(ctx context.Context, userID, id string) (*models.Outfit, error)
	Create(ctx context.Context, outfit *models.Outfit) error
	Update(ctx context.Context, outfit *models.Outfit) error
	Delete(ctx context.Context, userID, id string) error
}

type outfitItemCatalog interface {
	ListAll(ctx context.Context, userID string) ([]models.ClothingItem, error)
}

// SaveOutfitRequest creates or replaces an outfit's contents.
type SaveOutfitRequest struct {
	Name     string   `json:"name" validate:"required,max=100"`
	Occasion *string  `json:"occasion" validate:"omitempty,max=50"`
	ItemIDs  []string `json:"item_ids" validate:"required,min=1,dive,required"`
}

// OutfitService provides outfit use cases. Read paths return hydrated
// outfits with dangling item references already filtered out.
type OutfitService struct {
	repo      outfitRepository
	items     outfitItemCatalog
	validator *validator.Validate
	logger    *zap.Logger
}

// NewOutfitService constructs an OutfitService.
func NewOutfitService(repo outfitRepository, items outfitItemCatalog, validate *validator.Validate, logger *zap.Logger) *OutfitService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &OutfitService{repo: repo, items: items, validator: validate, logger: logger}
}

// List returns the user's outfits, hydrated.
func (s *OutfitService) List(ctx context.Context, userID string) ([]models.HydratedOutfit, error) {
	outfits, err := s.repo.List(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list outfits")
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}

	hydrated := make([]models.HydratedOutfit, 0, len(outfits))
	for _, outfit := range outfits {
		if _, err := outfit.ItemIDs(); err != nil {
			s.logger.Warn("outfit has malformed item list", zap.String("outfit_id", outfit.ID), zap.Error(err))
		}
		hydrated = append(hydrated, planner.HydrateOutfit(outfit, catalog))
	}
	return hydrated, nil
}

// Get fetches one outfit, hydrated.
func (s *OutfitService) Get(ctx context.Context, userID, id string) (*models.HydratedOutfit, error) {
	outfit, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfit")
	}
	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	hydrated := planner.HydrateOutfit(*outfit, catalog)
	return &hydrated, nil
}

// Create stores a new outfit and returns it hydrated, so the caller sees the
// same shape a fresh fetch would produce.
func (s *OutfitService) Create(ctx context.Context, userID string, req SaveOutfitRequest) (*models.HydratedOutfit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid outfit payload")
	}

	raw, err := models.EncodeItemIDs(req.ItemIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode item list")
	}
	outfit := &models.Outfit{
		UserID:   userID,
		Name:     req.Name,
		Occasion: req.Occasion,
		RawItems: raw,
	}
	if err := s.repo.Create(ctx, outfit); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create outfit")
	}

	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	hydrated := planner.HydrateOutfit(*outfit, catalog)
	return &hydrated, nil
}

// Update replaces an outfit's name, occasion, and item list.
func (s *OutfitService) Update(ctx context.Context, userID, id string, req SaveOutfitRequest) (*models.HydratedOutfit, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid outfit payload")
	}

	outfit, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load outfit")
	}

	raw, err := models.EncodeItemIDs(req.ItemIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to encode item list")
	}
	outfit.Name = req.Name
	outfit.Occasion = req.Occasion
	outfit.RawItems = raw

	if err := s.repo.Update(ctx, outfit); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update outfit")
	}

	catalog, err := s.catalog(ctx, userID)
	if err != nil {
		return nil, err
	}
	hydrated := planner.HydrateOutfit(*outfit, catalog)
	return &hydrated, nil
}

// Delete removes an outfit along with any schedules pointing at it.
func (s *OutfitService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "outfit not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete outfit")
	}
	return nil
}

func (s *OutfitService) catalog(ctx context.Context, userID string) (map[string]models.ClothingItem, error) {
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
