package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/wrdrb-app/wrdrb-api/internal/service"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
	"github.com/wrdrb-app/wrdrb-api/pkg/response"
)

// PlannerHandler serves the merged planner board.
type PlannerHandler struct {
	planner *service.PlannerService
}

// NewPlannerHandler constructs PlannerHandler.
func NewPlannerHandler(planner *service.PlannerService) *PlannerHandler {
	return &PlannerHandler{planner: planner}
}

// Board godoc
// @Summary Get the planner board
// @Description Five day columns merging schedules, calendar events and forecast.
// @Description Weather and calendar failures degrade the board instead of failing it.
// @Tags Planner
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 500 {object} response.Envelope
// @Router /planner/board [get]
func (h *PlannerHandler) Board(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	board, err := h.planner.Board(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, board, nil)
}
