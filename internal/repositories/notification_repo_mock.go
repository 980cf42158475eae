package repositories

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockNotificationRepository is an in-memory implementation of NotificationRepository.
type MockNotificationRepository struct {
	notifications map[string]models.Notification
	mu            sync.RWMutex
}

// NewMockNotificationRepository creates a new instance of MockNotificationRepository.
func NewMockNotificationRepository() *MockNotificationRepository {
	return &MockNotificationRepository{
		notifications: make(map[string]models.Notification),
	}
}

// Create adds a new notification.
func (r *MockNotificationRepository) Create(notification *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if notification.ID == "" {
		notification.ID = uuid.New().String()
	}
	if notification.CreatedAt.IsZero() {
		notification.CreatedAt = time.Now()
	}
	r.notifications[notification.ID] = *notification
	return nil
}

// ListByUser returns a user's notifications, newest first, capped at limit.
func (r *MockNotificationRepository) ListByUser(userID string, unreadOnly bool, limit int) ([]models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var list []models.Notification
	for _, n := range r.notifications {
		if n.UserID != userID {
			continue
		}
		if unreadOnly && n.Read {
			continue
		}
		list = append(list, n)
	}
	sort.Slice(list, func(i, j int) bool {
		return list[i].CreatedAt.After(list[j].CreatedAt)
	})
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

// CountUnread returns the user's number of unread notifications.
func (r *MockNotificationRepository) CountUnread(userID string) (int64, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var count int64
	for _, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			count++
		}
	}
	return count, nil
}

// GetByID returns a notification scoped to its owning user.
func (r *MockNotificationRepository) GetByID(id, userID string) (*models.Notification, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	n, ok := r.notifications[id]
	if !ok || n.UserID != userID {
		return nil, models.NewError(models.KindNotFound, fmt.Sprintf("notification with ID %s not found", id))
	}
	return &n, nil
}

// MarkRead flips a single notification's read flag.
func (r *MockNotificationRepository) MarkRead(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	n, ok := r.notifications[id]
	if !ok {
		return models.NewError(models.KindNotFound, fmt.Sprintf("notification with ID %s not found", id))
	}
	n.Read = true
	r.notifications[id] = n
	return nil
}

// MarkAllRead flips every unread notification owned by the user.
func (r *MockNotificationRepository) MarkAllRead(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for id, n := range r.notifications {
		if n.UserID == userID && !n.Read {
			n.Read = true
			r.notifications[id] = n
		}
	}
	return nil
}
