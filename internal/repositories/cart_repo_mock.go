package repositories

import (
	"fmt"
	"sync"
	"time"

	"lapak/internal/models"

	"github.com/google/uuid"
)

// MockCartRepository is an in-memory implementation of CartRepository.
type MockCartRepository struct {
	carts map[string]models.Cart // keyed by user ID, one cart per user
	mu    sync.RWMutex
}

// NewMockCartRepository creates a new instance of MockCartRepository.
func NewMockCartRepository() *MockCartRepository {
	return &MockCartRepository{
		carts: make(map[string]models.Cart),
	}
}

// GetByUserID returns a user's cart.
func (r *MockCartRepository) GetByUserID(userID string) (*models.Cart, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	cart, ok := r.carts[userID]
	if !ok {
		return nil, models.NewError(models.KindNotFound, fmt.Sprintf("cart for user %s not found", userID))
	}
	items := make([]models.CartItem, len(cart.Items))
	copy(items, cart.Items)
	cart.Items = items
	return &cart, nil
}

// Create adds a new cart.
func (r *MockCartRepository) Create(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; ok {
		return models.NewError(models.KindValidation, fmt.Sprintf("cart for user %s already exists", cart.UserID))
	}
	if cart.ID == "" {
		cart.ID = uuid.New().String()
	}
	cart.CreatedAt = time.Now()
	cart.UpdatedAt = time.Now()
	r.carts[cart.UserID] = *cart
	return nil
}

// Save replaces the cart's stored item set with cart.Items.
func (r *MockCartRepository) Save(cart *models.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.carts[cart.UserID]; !ok {
		return models.NewError(models.KindNotFound, fmt.Sprintf("cart for user %s not found", cart.UserID))
	}
	cart.UpdatedAt = time.Now()
	r.carts[cart.UserID] = *cart
	return nil
}

// ClearItems empties a cart's item list but keeps the cart.
func (r *MockCartRepository) ClearItems(cartID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for userID, cart := range r.carts {
		if cart.ID == cartID {
			cart.Items = nil
			cart.UpdatedAt = time.Now()
			r.carts[userID] = cart
			return nil
		}
	}
	return models.NewError(models.KindNotFound, fmt.Sprintf("cart with ID %s not found", cartID))
}
