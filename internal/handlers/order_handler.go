package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// OrderHandler handles HTTP requests for orders.
type OrderHandler struct {
	orderService    *services.OrderService
	checkoutService *services.CheckoutService
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(orderService *services.OrderService, checkoutService *services.CheckoutService) *OrderHandler {
	return &OrderHandler{
		orderService:    orderService,
		checkoutService: checkoutService,
	}
}

// RegisterRoutes registers the order routes with the Fiber app.
func (h *OrderHandler) RegisterRoutes(router fiber.Router) {
	orderRoutes := router.Group("/orders")
	orderRoutes.Get("/", h.HandleGetOrders)
	orderRoutes.Get("/:id", h.HandleGetOrderByID)
	orderRoutes.Post("/", h.HandleCreateOrder)
	orderRoutes.Put("/:id", h.HandleUpdateOrder)
}

// HandleGetOrders returns the caller's orders, or every order for admins.
func (h *OrderHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.orderService.ListOrders(middleware.Actor(c))
	if err != nil {
		log.Printf("Error getting orders: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"orders":  orders,
	})
}

// HandleGetOrderByID returns a single order; 403 for non-owner non-admins.
func (h *OrderHandler) HandleGetOrderByID(c *fiber.Ctx) error {
	orderID := c.Params("id")
	order, err := h.orderService.GetOrder(orderID, middleware.Actor(c))
	if err != nil {
		log.Printf("Error getting order by ID %s: %v", orderID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

// CreateOrderRequest is the checkout request body.
type CreateOrderRequest struct {
	ShippingAddress models.ShippingAddress `json:"shipping_address"`
}

// HandleCreateOrder creates an order from the caller's current cart.
func (h *OrderHandler) HandleCreateOrder(c *fiber.Ctx) error {
	var req CreateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing create order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	actor := middleware.Actor(c)
	order, err := h.checkoutService.CreateOrder(actor.ID, req.ShippingAddress)
	if err != nil {
		log.Printf("Error creating order for user %s: %v", actor.ID, err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}

// HandleUpdateOrder applies an admin's status/shipping-detail delta.
func (h *OrderHandler) HandleUpdateOrder(c *fiber.Ctx) error {
	orderID := c.Params("id")

	var update models.OrderUpdate
	if err := c.BodyParser(&update); err != nil {
		log.Printf("Error parsing update order request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	order, err := h.orderService.UpdateOrder(orderID, update, middleware.Actor(c))
	if err != nil {
		log.Printf("Error updating order %s: %v", orderID, err)
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"success": true,
		"order":   order,
	})
}
