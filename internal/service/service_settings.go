package service

import (
	"context"
	"fmt"

	"github.com/sweebapp/sweebguard/internal/logger"
	"github.com/sweebapp/sweebguard/internal/store"
	"github.com/sweebapp/sweebguard/models"
)

// settingsService is the concrete implementation of SettingsService.
// Thin by design: settings have no influence on rule evaluation.
type settingsService struct {
	settingsRepository store.SettingsRepository
	logger             *logger.Logger
}

// NewSettingsService constructs a SettingsService.
func NewSettingsService(settingsRepository store.SettingsRepository, logger *logger.Logger) SettingsService {
	return &settingsService{
		settingsRepository: settingsRepository,
		logger:             logger,
	}
}

func (s *settingsService) GetSettings(ctx context.Context, userID int64) (models.UserSettings, error) {
	return s.settingsRepository.GetSettings(ctx, userID)
}

func (s *settingsService) UpdateSettings(ctx context.Context, settings models.UserSettings) error {
	log := logger.FromContext(ctx)

	if settings.UserID == 0 {
		return ErrInvalidDataProvided
	}

	if err := s.settingsRepository.UpdateSettings(ctx, settings); err != nil {
		log.Err(err).Int64("user_id", settings.UserID).Msg("settings update ended with error")
		return fmt.Errorf("settings update ended with error: %w", err)
	}

	return nil
}
