package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/pharmacare/pharmacare-api/internal/domain/entity"
)

// SettingsRepository defines the interface for user settings data operations
type SettingsRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entity.UserSettings, error)
	Save(ctx context.Context, settings *entity.UserSettings) error
	Delete(ctx context.Context, userID uuid.UUID) error
}
