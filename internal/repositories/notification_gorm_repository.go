package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMNotificationRepository is a GORM implementation of NotificationRepository.
type GORMNotificationRepository struct {
	db *gorm.DB
}

// NewGORMNotificationRepository creates a new instance of GORMNotificationRepository.
func NewGORMNotificationRepository(db *gorm.DB) *GORMNotificationRepository {
	return &GORMNotificationRepository{
		db: db,
	}
}

// Create inserts a new notification.
func (r *GORMNotificationRepository) Create(notification *models.Notification) error {
	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if err := r.db.Create(notification).Error; err != nil {
		return models.WrapError(models.KindInternal, "failed to create notification", err)
	}
	return nil
}

// ListByUser retrieves a user's notifications, newest first, capped at limit.
func (r *GORMNotificationRepository) ListByUser(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	query := r.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error; err != nil {
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to list notifications for user %s", userID), err)
	}
	return notifications, nil
}

// CountUnread returns the user's number of unread notifications.
func (r *GORMNotificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Count(&count).Error; err != nil {
		return 0, models.WrapError(models.KindInternal, fmt.Sprintf("failed to count unread notifications for user %s", userID), err)
	}
	return count, nil
}

// GetByID retrieves a notification scoped to its owning user.
func (r *GORMNotificationRepository) GetByID(id, userID string) (*models.Notification, error) {
	var notification models.Notification
	if err := r.db.First(&notification, "id = ? AND user_id = ?", id, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("notification with ID %s not found", id))
		}
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get notification by ID %s", id), err)
	}
	return &notification, nil
}

// MarkRead flips a single notification's read flag.
func (r *GORMNotificationRepository) MarkRead(id string) error {
	res := r.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true)
	if res.Error != nil {
		return models.WrapError(models.KindInternal, fmt.Sprintf("failed to mark notification %s read", id), res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewError(models.KindNotFound, fmt.Sprintf("notification with ID %s not found", id))
	}
	return nil
}

// MarkAllRead flips every unread notification owned by the user.
func (r *GORMNotificationRepository) MarkAllRead(userID string) error {
	res := r.db.Model(&models.Notification{}).Where("user_id = ? AND read = ?", userID, false).Update("read", true)
	if res.Error != nil {
		return models.WrapError(models.KindInternal, fmt.Sprintf("failed to mark notifications read for user %s", userID), res.Error)
	}
	return nil
}
