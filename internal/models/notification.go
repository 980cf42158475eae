package models

import (
	"errors"
	"time"
)

// NotificationType classifies a notification for display and routing.
type NotificationType string

const (
	NotificationOrderUpdate         NotificationType = "order_update"
	NotificationShippingUpdate      NotificationType = "shipping_update"
	NotificationPaymentConfirmation NotificationType = "payment_confirmation"
	NotificationNewOrder            NotificationType = "new_order"
)

var validNotificationTypes = map[NotificationType]struct{}{
	NotificationOrderUpdate:         {},
	NotificationShippingUpdate:      {},
	NotificationPaymentConfirmation: {},
	NotificationNewOrder:            {},
}

// ToNotificationType validates a raw notification type string.
func ToNotificationType(s string) (NotificationType, error) {
	t := NotificationType(s)
	if _, ok := validNotificationTypes[t]; ok {
		return t, nil
	}
	return "", errors.New("invalid notification type")
}

// Notification is an append-only in-app record created by the dispatcher.
// Only the Read flag is ever mutated after creation.
type Notification struct {
	ID        string           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string           `json:"user_id" gorm:"index;type:varchar(36)"`
	Type      NotificationType `json:"type" gorm:"type:varchar(32)"`
	Message   string           `json:"message"`
	Read      bool             `json:"read"`
	OrderID   string           `json:"order_id,omitempty" gorm:"type:varchar(36)"`
	CreatedAt time.Time        `json:"created_at"`
}
