package services

import (
	"fmt"
	"log"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// maxNotificationPage caps a single notification listing.
const maxNotificationPage = 50

// EmailNotifier sends one email of the given kind to a recipient address.
// Implementations are fire-and-forget from the dispatcher's perspective;
// the RabbitMQ client in pkg/rabbitmq is the production implementation.
type EmailNotifier interface {
	Send(kind, recipient string, data map[string]interface{}) error
}

// NotificationService creates in-app notifications and triggers the
// matching external email sends. The persisted in-app record is the
// authoritative side effect; email delivery is best-effort.
type NotificationService struct {
	notifRepo repositories.NotificationRepository
	userRepo  repositories.UserRepository
	notifier  EmailNotifier // may be nil, e.g. in tests
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notifRepo repositories.NotificationRepository, userRepo repositories.UserRepository, notifier EmailNotifier) *NotificationService {
	return &NotificationService{
		notifRepo: notifRepo,
		userRepo:  userRepo,
		notifier:  notifier,
	}
}

// Notify persists one notification for the user and attempts exactly one
// email send to their registered address. Email failure is logged, never
// returned; a failure to persist the record is returned to the caller.
func (s *NotificationService) Notify(userID string, notifType models.NotificationType, message, orderID string) error {
	notification := &models.Notification{
		UserID:  userID,
		Type:    notifType,
		Message: message,
		Read:    false,
		OrderID: orderID,
	}
	if err := s.notifRepo.Create(notification); err != nil {
		return fmt.Errorf("failed to create %s notification for user %s: %w", notifType, userID, err)
	}

	s.sendEmail(userID, notifType, message, orderID)
	return nil
}

// NotifyAdmins fans one notification plus one email out to every admin user.
func (s *NotificationService) NotifyAdmins(notifType models.NotificationType, message, orderID string) error {
	admins, err := s.userRepo.GetAdmins()
	if err != nil {
		return fmt.Errorf("failed to resolve admin users: %w", err)
	}

	for _, admin := range admins {
		if err := s.Notify(admin.ID, notifType, message, orderID); err != nil {
			return err
		}
	}
	return nil
}

// sendEmail looks up the user's address and hands the send to the
// notifier. All failures are swallowed after logging.
func (s *NotificationService) sendEmail(userID string, notifType models.NotificationType, message, orderID string) {
	if s.notifier == nil {
		return
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		log.Printf("Warning: could not resolve user %s for %s email: %v", userID, notifType, err)
		return
	}

	data := map[string]interface{}{
		"order_id": orderID,
		"message":  message,
	}
	if err := s.notifier.Send(string(notifType), user.Email, data); err != nil {
		log.Printf("Warning: failed to send %s email to %s: %v", notifType, user.Email, err)
	}
}

// List returns the user's notifications (newest first, capped at 50,
// optionally unread-only) together with the unread count.
func (s *NotificationService) List(userID string, unreadOnly bool) ([]models.Notification, int64, error) {
	notifications, err := s.notifRepo.ListByUser(userID, unreadOnly, maxNotificationPage)
	if err != nil {
		return nil, 0, err
	}
	unread, err := s.notifRepo.CountUnread(userID)
	if err != nil {
		return nil, 0, err
	}
	return notifications, unread, nil
}

// MarkRead flips one notification to read. The notification must belong
// to the requesting user. Returns the user's updated unread count.
func (s *NotificationService) MarkRead(userID, notificationID string) (int64, error) {
	notification, err := s.notifRepo.GetByID(notificationID, userID)
	if err != nil {
		return 0, err
	}
	if err := s.notifRepo.MarkRead(notification.ID); err != nil {
		return 0, err
	}
	return s.notifRepo.CountUnread(userID)
}

// MarkAllRead flips every unread notification owned by the user. Returns
// the updated unread count (zero unless concurrent writes landed).
func (s *NotificationService) MarkAllRead(userID string) (int64, error) {
	if err := s.notifRepo.MarkAllRead(userID); err != nil {
		return 0, err
	}
	return s.notifRepo.CountUnread(userID)
}
