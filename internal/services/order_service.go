package services

import (
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// OrderPolicy groups the two configurable decision points of the order
// state machine. The zero value gives the legacy behavior: any status
// may move to any other, and "already shipped" is a substring check.
type OrderPolicy struct {
	Transition models.TransitionPolicy
	Shipped    models.ShippedMatch
}

// OrderService handles order queries and the admin update path that
// drives status and shipping-detail transitions.
type OrderService struct {
	orderRepo     repositories.OrderRepository
	notifications *NotificationService
	policy        OrderPolicy
}

// NewOrderService creates a new OrderService.
func NewOrderService(orderRepo repositories.OrderRepository, notifications *NotificationService, policy OrderPolicy) *OrderService {
	if policy.Transition == "" {
		policy.Transition = models.TransitionAny
	}
	if policy.Shipped == "" {
		policy.Shipped = models.ShippedMatchSubstring
	}
	return &OrderService{
		orderRepo:     orderRepo,
		notifications: notifications,
		policy:        policy,
	}
}

// ListOrders returns the actor's own orders, or every order for an admin.
func (s *OrderService) ListOrders(actor models.AuthUser) ([]models.Order, error) {
	if actor.IsAdmin() {
		return s.orderRepo.GetAll()
	}
	return s.orderRepo.GetByUserID(actor.ID)
}

// GetOrder returns a single order. Non-admins may only read their own.
func (s *OrderService) GetOrder(id string, actor models.AuthUser) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if !actor.IsAdmin() && order.UserID != actor.ID {
		return nil, models.NewError(models.KindForbidden, "you do not have access to this order")
	}
	return order, nil
}

// UpdateOrder applies an admin's status and/or shipping-detail delta to
// an order, persists it, and dispatches the owner's notifications:
// an order_update when the status actually changed, and a
// shipping_update when the delta introduces a tracking number on an
// order that was not already shipped.
func (s *OrderService) UpdateOrder(id string, update models.OrderUpdate, actor models.AuthUser) (*models.Order, error) {
	if !actor.IsAdmin() {
		return nil, models.NewError(models.KindForbidden, "admin access required")
	}

	order, err := s.orderRepo.GetByID(id)
	if err != nil {
		return nil, err
	}

	oldStatus := order.Status

	if update.Status != "" {
		newStatus, err := models.ToOrderStatus(update.Status)
		if err != nil {
			return nil, models.NewError(models.KindValidation, fmt.Sprintf("invalid order status: %s", update.Status))
		}
		if !s.policy.Transition.Allows(oldStatus, newStatus) {
			return nil, models.NewError(models.KindValidation,
				fmt.Sprintf("status transition %s -> %s not allowed", oldStatus, newStatus))
		}
		order.Status = newStatus
	}

	// Merge shipping details field by field; omitted sub-fields keep
	// their existing values.
	if update.ShippingDetails != nil {
		if update.ShippingDetails.Carrier != "" {
			order.ShippingDetails.Carrier = update.ShippingDetails.Carrier
		}
		if update.ShippingDetails.TrackingNumber != "" {
			order.ShippingDetails.TrackingNumber = update.ShippingDetails.TrackingNumber
			// Mirror onto the legacy top-level field.
			order.TrackingNumber = update.ShippingDetails.TrackingNumber
		}
		if update.ShippingDetails.EstimatedDelivery != nil {
			order.ShippingDetails.EstimatedDelivery = update.ShippingDetails.EstimatedDelivery
		}
	}

	if err := s.orderRepo.Update(order); err != nil {
		return nil, fmt.Errorf("failed to update order %s: %w", id, err)
	}

	if update.Status != "" && order.Status != oldStatus {
		if err := s.notifications.Notify(
			order.UserID,
			models.NotificationOrderUpdate,
			fmt.Sprintf("Your order status has been updated to %s", order.Status),
			order.ID,
		); err != nil {
			return nil, err
		}
	}

	if update.ShippingDetails != nil && update.ShippingDetails.TrackingNumber != "" &&
		!s.policy.Shipped.AlreadyShipped(oldStatus) {
		if err := s.notifications.Notify(
			order.UserID,
			models.NotificationShippingUpdate,
			fmt.Sprintf("Your order has been shipped. Tracking number: %s", update.ShippingDetails.TrackingNumber),
			order.ID,
		); err != nil {
			return nil, err
		}
	}

	// Re-read so the response carries resolved product detail.
	return s.orderRepo.GetByID(order.ID)
}
