package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
	"github.com/pharmacare/pharmacare-api/internal/domain/repository"
)

// SettingsService handles user settings business logic
type SettingsService struct {
	settingsRepo repository.SettingsRepository
}

// NewSettingsService creates a new settings service
func NewSettingsService(settingsRepo repository.SettingsRepository) *SettingsService {
	return &SettingsService{
		settingsRepo: settingsRepo,
	}
}

// GetSettings retrieves user settings, creating defaults if not exists
func (s *SettingsService) GetSettings(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create default settings
	if settings == nil {
		settings = &entity.UserSettings{
			UserID:             userID,
			Language:           "en",
			Timezone:           "Africa/Nairobi",
			Currency:           "KES",
			DateFormat:         "DD/MM/YYYY",
			DefaultTaxRate:     0,
			ReceiptAutoPrint:   true,
			EmailNotifications: true,
			LowStockAlerts:     true,
			ExpiryAlerts:       true,
			SessionTimeout:     "30",
			LoginAlerts:        true,
		}
		if err := s.settingsRepo.Save(ctx, settings); err != nil {
			return nil, err
		}
	}

	return settings, nil
}

// UpdateSettingsInput represents the input for updating settings
type UpdateSettingsInput struct {
	UserID             uuid.UUID
	Language           string
	Timezone           string
	Currency           string
	DateFormat         string
	DefaultTaxRate     float64
	ReceiptAutoPrint   bool
	EmailNotifications bool
	LowStockAlerts     bool
	ExpiryAlerts       bool
	SessionTimeout     string
	LoginAlerts        bool
}

// UpdateSettings updates user settings
func (s *SettingsService) UpdateSettings(ctx context.Context, input *UpdateSettingsInput) (*entity.UserSettings, error) {
	settings, err := s.settingsRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, err
	}

	// If no settings exist, create new
	if settings == nil {
		settings = &entity.UserSettings{
			UserID: input.UserID,
		}
	}

	// Update fields
	settings.Language = input.Language
	settings.Timezone = input.Timezone
	settings.Currency = input.Currency
	settings.DateFormat = input.DateFormat
	settings.DefaultTaxRate = input.DefaultTaxRate
	settings.ReceiptAutoPrint = input.ReceiptAutoPrint
	settings.EmailNotifications = input.EmailNotifications
	settings.LowStockAlerts = input.LowStockAlerts
	settings.ExpiryAlerts = input.ExpiryAlerts
	settings.SessionTimeout = input.SessionTimeout
	settings.LoginAlerts = input.LoginAlerts

	if err := s.settingsRepo.Save(ctx, settings); err != nil {
		return nil, err
	}

	return settings, nil
}

// ResetSettings deletes the user's settings so defaults apply again
func (s *SettingsService) ResetSettings(ctx context.Context, userID uuid.UUID) error {
	return s.settingsRepo.Delete(ctx, userID)
}
