package repositories

import (
	"lapak/internal/models"
)

// NotificationRepository defines the interface for notification data
// access. Notifications are append-only; only the read flag changes.
type NotificationRepository interface {
	Create(notification *models.Notification) error
	// ListByUser returns a user's notifications, newest first, capped at
	// limit. unreadOnly restricts the result to unread ones.
	ListByUser(userID string, unreadOnly bool, limit int) ([]models.Notification, error)
	CountUnread(userID string) (int64, error)
	// GetByID returns a notification only when it belongs to the user.
	GetByID(id, userID string) (*models.Notification, error)
	MarkRead(id string) error
	MarkAllRead(userID string) error
}
