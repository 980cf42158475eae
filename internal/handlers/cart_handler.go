package handlers

import (
	"log"

	"lapak/internal/middleware"
	"lapak/internal/services"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles HTTP requests for the caller's cart.
type CartHandler struct {
	service *services.CartService
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(service *services.CartService) *CartHandler {
	return &CartHandler{
		service: service,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Post("/", h.HandleAddItem)
	cartRoutes.Put("/", h.HandleUpdateItem)
	cartRoutes.Delete("/", h.HandleRemoveItem)
}

// HandleGetCart returns the caller's cart, creating one on first access.
func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	cart, err := h.service.GetCart(actor.ID)
	if err != nil {
		log.Printf("Error getting cart for user %s: %v", actor.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart,
	})
}

// CartItemRequest is the body for adding or updating a cart item.
type CartItemRequest struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// HandleAddItem puts a product into the caller's cart, merging duplicates.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing add to cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" || req.Quantity < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide product_id and a quantity of at least 1",
		})
	}

	actor := middleware.Actor(c)
	cart, err := h.service.AddItem(actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error adding product %s to cart of user %s: %v", req.ProductID, actor.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart,
	})
}

// HandleUpdateItem sets a cart item's quantity; below 1 removes the item.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req CartItemRequest
	if err := c.BodyParser(&req); err != nil {
		log.Printf("Error parsing update cart request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide product_id",
		})
	}

	actor := middleware.Actor(c)
	cart, err := h.service.UpdateItem(actor.ID, req.ProductID, req.Quantity)
	if err != nil {
		log.Printf("Error updating product %s in cart of user %s: %v", req.ProductID, actor.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart,
	})
}

// HandleRemoveItem drops a product from the caller's cart.
func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	if productID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Please provide product_id",
		})
	}

	actor := middleware.Actor(c)
	cart, err := h.service.RemoveItem(actor.ID, productID)
	if err != nil {
		log.Printf("Error removing product %s from cart of user %s: %v", productID, actor.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"cart":    cart,
	})
}
