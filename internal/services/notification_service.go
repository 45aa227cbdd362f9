package services

import (
	"errors"

	"gorm.io/gorm"

	apperrors "fintrack/internal/errors"
	"fintrack/internal/models"
	"fintrack/internal/pagination"
)

// MaxNotifications caps the notification log. Appending past the cap evicts
// the oldest entries first.
const MaxNotifications = 100

// notificationService manages the capped notification log.
type notificationService struct {
	db *gorm.DB
}

// NewNotificationService creates a new NotificationServicer.
func NewNotificationService(db *gorm.DB) NotificationServicer {
	return &notificationService{db: db}
}

// Append inserts a notification and evicts everything beyond the newest
// MaxNotifications. Runs on tx so callers can batch appends with latch
// writes in one transaction; pass the service's own DB otherwise.
func (s *notificationService) Append(tx *gorm.DB, notification *models.Notification) error {
	if tx == nil {
		tx = s.db
	}

	if err := tx.Create(notification).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	// Collect IDs beyond the cap, oldest last, and remove them for good.
	var evict []string
	err := tx.Model(&models.Notification{}).
		Order("created_at DESC, id DESC").
		Offset(MaxNotifications).
		Pluck("id", &evict).Error
	if err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	if len(evict) > 0 {
		if err := tx.Unscoped().Where("id IN ?", evict).Delete(&models.Notification{}).Error; err != nil {
			return apperrors.Wrap(apperrors.ErrInternalServer, err)
		}
	}

	return nil
}

// GetNotifications returns a paginated list, newest first.
func (s *notificationService) GetNotifications(page pagination.PageRequest) (*pagination.PageResponse[models.Notification], error) {
	page.Defaults()

	base := s.db.Model(&models.Notification{})

	var totalItems int64
	if err := base.Count(&totalItems).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	var notifications []models.Notification
	if err := base.Order("created_at DESC, id DESC").Scopes(pagination.Paginate(page)).Find(&notifications).Error; err != nil {
		return nil, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	result := pagination.NewPageResponse(notifications, page.Page, page.PageSize, totalItems)
	return &result, nil
}

// MarkRead marks a single notification as read.
func (s *notificationService) MarkRead(id string) error {
	res := s.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, res.Error)
	}
	if res.RowsAffected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllRead marks every unread notification as read.
func (s *notificationService) MarkAllRead() error {
	if err := s.db.Model(&models.Notification{}).Where("read = ?", false).Update("read", true).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// DeleteNotification removes one notification.
func (s *notificationService) DeleteNotification(id string) error {
	var n models.Notification
	if err := s.db.Where("id = ?", id).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrNotificationNotFound
		}
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}

	if err := s.db.Unscoped().Delete(&n).Error; err != nil {
		return apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return nil
}

// UnreadCount returns the number of unread notifications.
func (s *notificationService) UnreadCount() (int64, error) {
	var count int64
	if err := s.db.Model(&models.Notification{}).Where("read = ?", false).Count(&count).Error; err != nil {
		return 0, apperrors.Wrap(apperrors.ErrInternalServer, err)
	}
	return count, nil
}
