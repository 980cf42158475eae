package repositories

import (
	"lapak/internal/models"
)

// CartRepository defines the interface for cart data access. Each user
// owns at most one cart; GetByUserID resolves item products for display.
type CartRepository interface {
	GetByUserID(userID string) (*models.Cart, error)
	Create(cart *models.Cart) error
	// Save replaces the cart's item set with the one on the given cart.
	Save(cart *models.Cart) error
	// ClearItems empties the cart's item list but keeps the cart itself.
	ClearItems(cartID string) error
}
