package repositories

import (
	"lapak/internal/models"
)

// OrderRepository defines the interface for order data access. Read
// methods resolve each item's product for display; list methods return
// newest orders first.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByUserID(userID string) ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	Create(order *models.Order) error
	Update(order *models.Order) error
	// Orders are never deleted.
}
