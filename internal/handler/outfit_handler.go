package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrdrb-app/wrdrb-api/internal/service"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
	"github.com/wrdrb-app/wrdrb-api/pkg/response"
)

// OutfitHandler exposes outfit endpoints.
type OutfitHandler struct {
	outfits *service.OutfitService
}

// NewOutfitHandler constructs OutfitHandler.
func NewOutfitHandler(outfits *service.OutfitService) *OutfitHandler {
	return &OutfitHandler{outfits: outfits}
}

// List godoc
// @Summary List outfits
// @Description Returns the user's outfits with items resolved and ordered
// @Tags Outfits
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /outfits [get]
func (h *OutfitHandler) List(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	outfits, err := h.outfits.List(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outfits, nil)
}

// Get godoc
// @Summary Get outfit detail
// @Tags Outfits
// @Produce json
// @Param id path string true "Outfit ID"
// @Success 200 {object} response.Envelope
// @Router /outfits/{id} [get]
func (h *OutfitHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	outfit, err := h.outfits.Get(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outfit, nil)
}

// Create godoc
// @Summary Create outfit
// @Tags Outfits
// @Accept json
// @Produce json
// @Param payload body service.SaveOutfitRequest true "Outfit payload"
// @Success 201 {object} response.Envelope
// @Router /outfits [post]
func (h *OutfitHandler) Create(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SaveOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	outfit, err := h.outfits.Create(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, outfit)
}

// Update godoc
// @Summary Update outfit
// @Tags Outfits
// @Accept json
// @Produce json
// @Param id path string true "Outfit ID"
// @Param payload body service.SaveOutfitRequest true "Outfit payload"
// @Success 200 {object} response.Envelope
// @Router /outfits/{id} [put]
func (h *OutfitHandler) Update(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var req service.SaveOutfitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	outfit, err := h.outfits.Update(c.Request.Context(), claims.UserID, c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, outfit, nil)
}

// Delete godoc
// @Summary Delete outfit
// @Description Removes the outfit and any schedules referencing it
// @Tags Outfits
// @Produce json
// @Param id path string true "Outfit ID"
// @Success 204
// @Router /outfits/{id} [delete]
func (h *OutfitHandler) Delete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.outfits.Delete(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
