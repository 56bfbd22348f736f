package handler

import (
	"fmt"
	"net/http"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	"github.com/wrdrb-app/wrdrb-api/internal/service"
	"github.com/wrdrb-app/wrdrb-api/pkg/config"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
	"github.com/wrdrb-app/wrdrb-api/pkg/response"
	"github.com/wrdrb-app/wrdrb-api/pkg/storage"
)

// ClothingItemHandler exposes closet item endpoints.
type ClothingItemHandler struct {
	items   *service.ClothingItemService
	uploads *storage.LocalStorage
	cfg     config.UploadsConfig
}

// NewClothingItemHandler constructs ClothingItemHandler.
func NewClothingItemHandler(items *service.ClothingItemService, uploads *storage.LocalStorage, cfg config.UploadsConfig) *ClothingItemHandler {
	return &ClothingItemHandler{items: items, uploads: uploads, cfg: cfg}
}

// List godoc
// @Summary List closet items
// @Tags Items
// @Produce json
// @Param category query string false "Filter by category"
// @Param color query string false "Filter by color"
// @Param occasion query string false "Filter by occasion"
// @Param search query string false "Search by name or brand"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /items [get]
func (h *ClothingItemHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var filter models.ClothingItemFilter
	filter.Category = c.Query("category")
	filter.Color = c.Query("color")
	filter.Occasion = c.Query("occasion")
	filter.Search = strings.TrimSpace(c.Query("search"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "50")); err == nil {
		filter.PageSize = size
	}

	items, total, err := h.items.List(c.Request.Context(), claims.UserID, filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	pagination := &models.Pagination{Page: filter.Page, PageSize: filter.PageSize, TotalCount: total}
	response.JSON(c, http.StatusOK, items, pagination)
}

// Get godoc
// @Summary Get closet item detail
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} response.Envelope
// @Router /items/{id} [get]
func (h *ClothingItemHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	item, err := h.items.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Create godoc
// @Summary Create closet item
// @Tags Items
// @Accept json
// @Produce json
// @Param payload body service.CreateClothingItemRequest true "Item payload"
// @Success 201 {object} response.Envelope
// @Router /items [post]
func (h *ClothingItemHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.CreateClothingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	item, err := h.items.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, item)
}

// Update godoc
// @Summary Update closet item
// @Tags Items
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param payload body service.UpdateClothingItemRequest true "Item payload"
// @Success 200 {object} response.Envelope
// @Router /items/{id} [put]
func (h *ClothingItemHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.UpdateClothingItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	item, err := h.items.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, item, nil)
}

// Delete godoc
// @Summary Delete closet item
// @Tags Items
// @Produce json
// @Param id path string true "Item ID"
// @Success 204
// @Router /items/{id} [delete]
func (h *ClothingItemHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.items.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// UploadImage godoc
// @Summary Upload an item photo
// @Description Stores the image and returns its public URL for use in item payloads
// @Tags Items
// @Accept multipart/form-data
// @Produce json
// @Param image formData file true "Image file"
// @Success 201 {object} response.Envelope
// @Failure 413 {object} response.Envelope
// @Failure 415 {object} response.Envelope
// @Router /items/upload [post]
func (h *ClothingItemHandler) UploadImage(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	file, err := c.FormFile("image")
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "image file required"))
		return
	}
	if h.cfg.MaxFileSizeBytes > 0 && file.Size > h.cfg.MaxFileSizeBytes {
		response.Error(c, appErrors.ErrUploadTooLarge)
		return
	}
	contentType := file.Header.Get("Content-Type")
	if !h.allowedMIME(contentType) {
		response.Error(c, appErrors.Clone(appErrors.ErrUnsupportedMedia, fmt.Sprintf("unsupported file type %q", contentType)))
		return
	}

	src, err := file.Open()
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to read upload"))
		return
	}
	defer src.Close() //nolint:errcheck

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		ext = extensionForMIME(contentType)
	}
	filename := fmt.Sprintf("%s/%d_%s%s", claims.UserID, time.Now().UTC().Unix(), uuid.NewString(), ext)

	stored, err := h.uploads.SaveStream(filename, src)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to store upload"))
		return
	}

	response.Created(c, gin.H{"image_url": storage.PublicURL(h.cfg.PublicBaseURL, stored)})
}

func (h *ClothingItemHandler) allowedMIME(contentType string) bool {
	if len(h.cfg.AllowedMIMEs) == 0 {
		return strings.HasPrefix(contentType, "image/")
	}
	for _, allowed := range h.cfg.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

func extensionForMIME(contentType string) string {
	switch contentType {
	case "image/jpeg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
