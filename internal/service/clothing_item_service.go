package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type clothingItemRepository interface {
	List(ctx context.Context, userID string, filter models.ClothingItemFilter) ([]models.ClothingItem, int, error)
	ListAll(ctx context.Context, userID string) ([]models.ClothingItem, error)
	FindByID(ctx context.Context, userID, id string) (*models.ClothingItem, error)
	Create(ctx context.Context, item *models.ClothingItem) error
	Update(ctx context.Context, item *models.ClothingItem) error
	Delete(ctx context.Context, userID, id string) error
}

// CreateClothingItemRequest is the payload for adding a closet item. The
// image is uploaded separately; ImageURL points at the stored file.
type CreateClothingItemRequest struct {
	ImageURL string  `json:"image_url" validate:"required,max=500"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Brand    *string `json:"brand" validate:"omitempty,max=100"`
	Category string  `json:"category" validate:"required,max=50"`
	Color    string  `json:"color" validate:"required,max=50"`
	Occasion string  `json:"occasion" validate:"required,max=50"`
}

// UpdateClothingItemRequest carries partial updates for an item.
type UpdateClothingItemRequest struct {
	ImageURL *string `json:"image_url" validate:"omitempty,max=500"`
	Name     *string `json:"name" validate:"omitempty,max=100"`
	Brand    *string `json:"brand" validate:"omitempty,max=100"`
	Category *string `json:"category" validate:"omitempty,max=50"`
	Color    *string `json:"color" validate:"omitempty,max=50"`
	Occasion *string `json:"occasion" validate:"omitempty,max=50"`
}

// ClothingItemService provides closet item use cases.
type ClothingItemService struct {
	repo      clothingItemRepository
	validator *validator.Validate
	logger    *zap.Logger
}

// NewClothingItemService constructs a ClothingItemService.
func NewClothingItemService(repo clothingItemRepository, validate *validator.Validate, logger *zap.Logger) *ClothingItemService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &ClothingItemService{repo: repo, validator: validate, logger: logger}
}

// List returns a page of the user's items with the total count.
func (s *ClothingItemService) List(ctx context.Context, userID string, filter models.ClothingItemFilter) ([]models.ClothingItem, int, error) {
	items, total, err := s.repo.List(ctx, userID, filter)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list items")
	}
	return items, total, nil
}

// Get fetches one item owned by the user.
func (s *ClothingItemService) Get(ctx context.Context, userID, id string) (*models.ClothingItem, error) {
	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load item")
	}
	return item, nil
}

// Create stores a new item and returns the persisted record.
func (s *ClothingItemService) Create(ctx context.Context, userID string, req CreateClothingItemRequest) (*models.ClothingItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload")
	}

	item := &models.ClothingItem{
		UserID:   userID,
		ImageURL: req.ImageURL,
		Name:     req.Name,
		Brand:    req.Brand,
		Category: req.Category,
		Color:    req.Color,
		Occasion: req.Occasion,
	}
	if !models.IsKnownTag(models.KnownCategories, req.Category) {
		s.logger.Debug("custom category", zap.String("category", req.Category))
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create item")
	}
	return item, nil
}

// Update applies partial changes and returns the updated record.
func (s *ClothingItemService) Update(ctx context.Context, userID, id string, req UpdateClothingItemRequest) (*models.ClothingItem, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid item payload")
	}

	item, err := s.repo.FindByID(ctx, userID, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load item")
	}

	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Name != nil {
		item.Name = req.Name
	}
	if req.Brand != nil {
		item.Brand = req.Brand
	}
	if req.Category != nil {
		item.Category = *req.Category
	}
	if req.Color != nil {
		item.Color = *req.Color
	}
	if req.Occasion != nil {
		item.Occasion = *req.Occasion
	}

	if err := s.repo.Update(ctx, item); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update item")
	}
	return item, nil
}

// Delete removes an item. Outfits referencing it keep the dangling id, which
// hydration filters out.
func (s *ClothingItemService) Delete(ctx context.Context, userID, id string) error {
	if err := s.repo.Delete(ctx, userID, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "item not found")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete item")
	}
	return nil
}
