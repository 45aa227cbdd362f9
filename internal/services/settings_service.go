package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
)

// settingsService manages the single notification settings record.
type settingsService struct {
	db *gorm.DB
}

// NewSettingsService creates a new SettingsServicer.
func NewSettingsService(db *gorm.DB) SettingsServicer {
	return &settingsService{db: db}
}

// GetSettings returns the settings row, creating it with defaults on first
// use. Rows persisted by older schema versions get missing fields filled
// with defaults instead of failing.
func (s *settingsService) GetSettings() (*models.NotificationSettings, error) {
	var settings models.NotificationSettings
	err := s.db.Order("created_at").First(&settings).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		settings = models.DefaultNotificationSettings()
		if err := s.db.Create(&settings).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
		return &settings, nil
	}
	if err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	settings.ApplyDefaults()
	return &settings, nil
}

// UpdateSettings applies a partial update to the settings row.
func (s *settingsService) UpdateSettings(updates map[string]interface{}) (*models.NotificationSettings, error) {
	settings, err := s.GetSettings()
	if err != nil {
		return nil, err
	}

	if len(updates) > 0 {
		if err := s.db.Model(settings).Updates(updates).Error; err != nil {
			return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return s.GetSettings()
}
