package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/wrdrb-app/wrdrb-api/internal/models"
	appErrors "github.com/wrdrb-app/wrdrb-api/pkg/errors"
)

type settingsRepository interface {
	Find(ctx context.Context, userID string) (*models.UserSettings, error)
	Upsert(ctx context.Context, settings *models.UserSettings) error
}

// SettingsService manages per-user preferences and the Google Calendar link.
type SettingsService struct {
	repo        settingsRepository
	validator   *validator.Validate
	logger      *zap.Logger
	defaultCity string
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(repo settingsRepository, validate *validator.Validate, logger *zap.Logger, defaultCity string) *SettingsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &SettingsService{repo: repo, validator: validate, logger: logger, defaultCity: defaultCity}
}

// Get returns the user's settings, falling back to defaults when no row
// exists yet.
func (s *SettingsService) Get(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.repo.Find(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return s.defaults(userID), nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load settings")
	}
	return settings, nil
}

// Update applies preference changes and returns the stored settings.
func (s *SettingsService) Update(ctx context.Context, userID string, req models.UpdateSettingsRequest) (*models.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	if req.City != nil {
		settings.City = *req.City
	}
	if req.Units != nil {
		settings.Units = *req.Units
	}
	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save settings")
	}
	return settings, nil
}

// ConnectCalendar stores the user's Google access token and marks the
// calendar as connected.
func (s *SettingsService) ConnectCalendar(ctx context.Context, userID string, req models.ConnectCalendarRequest) (*models.UserSettings, error) {
	if req.AccessToken == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "access token is required")
	}
	if !req.Expiry.After(time.Now()) {
		return nil, appErrors.Clone(appErrors.ErrValidation, "token is already expired")
	}

	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	token := req.AccessToken
	expiry := req.Expiry
	settings.GoogleCalendarConnected = true
	settings.GoogleAccessToken = &token
	settings.GoogleTokenExpiry = &expiry

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save calendar connection")
	}
	s.logger.Info("google calendar connected", zap.String("user_id", userID))
	return settings, nil
}

// DisconnectCalendar drops the stored token.
func (s *SettingsService) DisconnectCalendar(ctx context.Context, userID string) (*models.UserSettings, error) {
	settings, err := s.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	settings.GoogleCalendarConnected = false
	settings.GoogleAccessToken = nil
	settings.GoogleTokenExpiry = nil

	if err := s.repo.Upsert(ctx, settings); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save calendar disconnect")
	}
	return settings, nil
}

func (s *SettingsService) defaults(userID string) *models.UserSettings {
	return &models.UserSettings{
		UserID: userID,
		City:   s.defaultCity,
		Units:  "metric",
	}
}
