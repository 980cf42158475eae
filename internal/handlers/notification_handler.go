package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// NotificationHandler handles HTTP requests for the caller's notifications.
type NotificationHandler struct {
	service *services.NotificationService
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(service *services.NotificationService) *NotificationHandler {
	return &NotificationHandler{
		service: service,
	}
}

// RegisterRoutes registers the notification routes with the Fiber app.
func (h *NotificationHandler) RegisterRoutes(router fiber.Router) {
	notificationRoutes := router.Group("/notifications")
	notificationRoutes.Get("/", h.HandleList)
	notificationRoutes.Put("/", h.HandleMarkRead)
}

// HandleList returns the caller's notifications plus their unread count.
// ?unreadOnly=true restricts the list to unread notifications.
func (h *NotificationHandler) HandleList(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	unreadOnly := c.Query("unreadOnly") == "true"

	notifications, unreadCount, err := h.service.List(actor.ID, unreadOnly)
	if err != nil {
		log.Printf("Error listing notifications for user %s: %v", actor.ID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":       true,
		"notifications": notifications,
		"unread_count":  unreadCount,
	})
}

// MarkReadRequest selects one notification, or all of them, to mark read.
type MarkReadRequest struct {
	NotificationID string `json:"notification_id"`
	MarkAllAsRead  bool   `json:"mark_all_as_read"`
}

// HandleMarkRead marks one notification (or all of the caller's) as read
// and returns the updated unread count.
func (h *NotificationHandler) HandleMarkRead(c *fiber.Ctx) error {
	var req MarkReadRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing mark read request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	actor := middleware.Actor(c)

	var (
		unreadCount int64
		err         error
	)
	switch {
	case req.MarkAllAsRead:
		unreadCount, err = h.service.MarkAllRead(actor.ID)
	case req.NotificationID != "":
		unreadCount, err = h.service.MarkRead(actor.ID, req.NotificationID)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide notification_id or mark_all_as_read",
		})
	}
	if err != nil {
		log.Printf("Error marking notifications read for user %s: %v", actor.ID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"unread_count": unreadCount,
	})
}
