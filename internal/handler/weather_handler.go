package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/wrdrb-app/wrdrb-api/internal/service"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
	"github.com/wrdrb-app/wrdrb-api/pkg/response"
)

// WeatherHandler exposes weather lookups for the planner UI.
type WeatherHandler struct {
	weather  *service.WeatherService
	settings *service.SettingsService
}

// NewWeatherHandler constructs WeatherHandler.
func NewWeatherHandler(weather *service.WeatherService, settings *service.SettingsService) *WeatherHandler {
	return &WeatherHandler{weather: weather, settings: settings}
}

// Current godoc
// @Summary Current weather
// @Description Current conditions for the given city, defaulting to the user's configured city
// @Tags Weather
// @Produce json
// @Param city query string false "City name"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /weather/current [get]
func (h *WeatherHandler) Current(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	city, err := h.resolveCity(c, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	weather, err := h.weather.Current(c.Request.Context(), city)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, weather, nil)
}

// Forecast godoc
// @Summary Daily forecast
// @Description One entry per day for the board window, padded when data is short
// @Tags Weather
// @Produce json
// @Param city query string false "City name"
// @Success 200 {object} response.Envelope
// @Failure 503 {object} response.Envelope
// @Router /weather/forecast [get]
func (h *WeatherHandler) Forecast(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	city, err := h.resolveCity(c, claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	forecast, err := h.weather.DailyForecast(c.Request.Context(), city)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, forecast, nil)
}

func (h *WeatherHandler) resolveCity(c *gin.Context, userID string) (string, error) {
	if city := strings.TrimSpace(c.Query("city")); city != "" {
		return city, nil
	}
	settings, err := h.settings.Get(c.Request.Context(), userID)
	if err != nil {
		return "", err
	}
	return settings.City, nil
}
