package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMCartRepository is a GORM implementation of CartRepository.
type GORMCartRepository struct {
	db *gorm.DB
}

// NewGORMCartRepository creates a new instance of GORMCartRepository.
func NewGORMCartRepository(db *gorm.DB) *GORMCartRepository {
	return &GORMCartRepository{
		db: db,
	}
}

// GetByUserID retrieves a user's cart with item products resolved.
func (r *GORMCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	var cart models.Cart
	if err := r.db.Preload("Items.Product").First(&cart, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("cart for user %s not found", userID))
		}
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get cart for user %s", userID), err)
	}
	return &cart, nil
}

// Create inserts a new cart.
func (r *GORMCartRepository) Create(cart *models.Cart) error {
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	if err := r.db.Create(cart).Error; err != nil {
		return models.WrapError(models.KindInternal, "failed to create cart", err)
	}
	return nil
}

// Save replaces the cart's stored item set with cart.Items.
func (r *GORMCartRepository) Save(cart *models.Cart) error {
	err := r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(cart).Error; err != nil {
			return fmt.Errorf("failed to save cart: %w", err)
		}
		if err := tx.Delete(&models.CartItem{}, "cart_id = ?", cart.ID).Error; err != nil {
			return fmt.Errorf("failed to clear previous cart items: %w", err)
		}
		for i := range cart.Items {
			cart.Items[i].ID = 0
			cart.Items[i].CartID = cart.ID
		}
		if len(cart.Items) > 0 {
			if err := tx.Create(&cart.Items).Error; err != nil {
				return fmt.Errorf("failed to insert cart items: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return models.WrapError(models.KindInternal, fmt.Sprintf("failed to save cart %s", cart.ID), err)
	}
	return nil
}

// ClearItems empties a cart's item list but keeps the cart row.
func (r *GORMCartRepository) ClearItems(cartID string) error {
	if err := r.db.Delete(&models.CartItem{}, "cart_id = ?", cartID).Error; err != nil {
		return models.WrapError(models.KindInternal, fmt.Sprintf("failed to clear items of cart %s", cartID), err)
	}
	return nil
}
