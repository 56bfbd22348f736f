package models

import "time"

// UserSettings holds per-user preferences and the Google Calendar link state.
// GoogleAccessToken is only ever exposed through the service layer.
type UserSettings struct {
	UserID                  string     `db:"user_id" json:"user_id"`
	City                    string     `db:"city" json:"city"`
	Units                   string     `db:"units" json:"units"`
	GoogleCalendarConnected bool       `db:"google_calendar_connected" json:"google_calendar_connected"`
	GoogleAccessToken       *string    `db:"google_access_token" json:"-"`
	GoogleTokenExpiry       *time.Time `db:"google_token_expiry" json:"google_token_expiry,omitempty"`
	UpdatedAt               time.Time  `db:"updated_at" json:"updated_at"`
}

// UpdateSettingsRequest is the settings update payload.
type UpdateSettingsRequest struct {
	City  *string `json:"city" binding:"omitempty,min=1,max=100"`
	Units *string `json:"units" binding:"omitempty,oneof=metric imperial"`
}

// ConnectCalendarRequest carries a Google OAuth access token obtained by the
// client-side consent flow, plus its expiry.
type ConnectCalendarRequest struct {
	AccessToken string    `json:"access_token" binding:"required"`
	Expiry      time.Time `json:"expiry" binding:"required"`
}

// HasValidGoogleToken reports whether a calendar token is present and not yet
// expired at the given instant.
func (s *UserSettings) HasValidGoogleToken(now time.Time) bool {
	if !s.GoogleCalendarConnected || s.GoogleAccessToken == nil || *s.GoogleAccessToken == "" {
		return false
	}
	if s.GoogleTokenExpiry == nil {
		return false
	}
	return s.GoogleTokenExpiry.After(now)
}
