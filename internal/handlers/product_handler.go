package handlers

import (
	"fmt"
	"log"

	"lapak/internal/middleware"
	"lapak/internal/models"
	"lapak/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ProductHandler handles HTTP requests for the catalog.
type ProductHandler struct {
	service  *services.ProductService
	validate *validator.Validate
}

// NewProductHandler creates a new ProductHandler.
func NewProductHandler(service *services.ProductService) *ProductHandler {
	return &ProductHandler{
		service:  service,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the product routes with the Fiber app.
func (h *ProductHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleGetProducts)
	productRoutes.Get("/:id", h.HandleGetProductByID)
	productRoutes.Post("/", h.HandleCreateProduct)
	productRoutes.Put("/:id", h.HandleUpdateProduct)
	productRoutes.Delete("/:id", h.HandleDeleteProduct)
}

// HandleGetProducts retrieves all products.
func (h *ProductHandler) HandleGetProducts(c *fiber.Ctx) error {
	products, err := h.service.GetAllProducts()
	if err != nil {
		log.Printf("Error getting all products: %v", err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"products": products,
	})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *ProductHandler) HandleGetProductByID(c *fiber.Ctx) error {
	productID := c.Params("id")
	product, err := h.service.GetProductByID(productID)
	if err != nil {
		log.Printf("Error getting product by ID %s: %v", productID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleCreateProduct creates a new product. Admin only.
func (h *ProductHandler) HandleCreateProduct(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if !actor.IsAdmin() {
		return respondError(c, models.NewError(models.KindForbidden, "admin access required"))
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing create product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}

	if err := h.validate.Struct(product); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.CreateProduct(&product, actor.ID); err != nil {
		log.Printf("Error creating product: %v", err)
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleUpdateProduct updates an existing product. Admin only.
func (h *ProductHandler) HandleUpdateProduct(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if !actor.IsAdmin() {
		return respondError(c, models.NewError(models.KindForbidden, "admin access required"))
	}

	var product models.Product
	if err := c.BodyParser(&product); err != nil {
		log.Printf("Error parsing update product request body: %v", err)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	product.ID = c.Params("id")

	if err := h.validate.Struct(product); err != nil {
		return respondValidation(c, err)
	}

	if err := h.service.UpdateProduct(&product); err != nil {
		log.Printf("Error updating product %s: %v", product.ID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"product": product,
	})
}

// HandleDeleteProduct deletes a product by its ID. Admin only.
func (h *ProductHandler) HandleDeleteProduct(c *fiber.Ctx) error {
	actor := middleware.Actor(c)
	if !actor.IsAdmin() {
		return respondError(c, models.NewError(models.KindForbidden, "admin access required"))
	}

	productID := c.Params("id")
	if err := h.service.DeleteProduct(productID); err != nil {
		log.Printf("Error deleting product %s: %v", productID, err)
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"message": fmt.Sprintf("Product %s deleted", productID),
	})
}

// respondValidation reports validator failures with field-level messages.
func respondValidation(c *fiber.Ctx, err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Validation failed",
			"error":   err.Error(),
		})
	}
	errorMessages := make(map[string]string)
	for _, e := range validationErrors {
		errorMessages[e.Field()] = fmt.Sprintf("Field '%s' failed on the '%s' tag", e.Field(), e.Tag())
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Validation failed",
		"errors":  errorMessages,
	})
}
