package services

import (
	"fmt"

	"lapak/internal/models"
	"lapak/internal/repositories"
)

// CartService handles business logic related to carts. Each user owns a
// single cart, created lazily on first access.
type CartService struct {
	cartRepo    repositories.CartRepository
	productRepo repositories.ProductRepository
}

// NewCartService creates a new CartService.
func NewCartService(cartRepo repositories.CartRepository, productRepo repositories.ProductRepository) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		productRepo: productRepo,
	}
}

// GetCart returns the user's cart, creating an empty one if none exists yet.
func (s *CartService) GetCart(userID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err == nil {
		return cart, nil
	}
	if !models.IsKind(err, models.KindNotFound) {
		return nil, err
	}

	cart = &models.Cart{UserID: userID}
	if err := s.cartRepo.Create(cart); err != nil {
		return nil, fmt.Errorf("failed to create cart for user %s: %w", userID, err)
	}
	return cart, nil
}

// AddItem puts quantity units of a product into the user's cart. Adding a
// product already present merges by incrementing its quantity.
func (s *CartService) AddItem(userID, productID string, quantity int) (*models.Cart, error) {
	if quantity < 1 {
		return nil, models.NewError(models.KindValidation, "quantity must be at least 1")
	}

	// Verify the product exists before staging it.
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}

	cart, err := s.GetCart(userID)
	if err != nil {
		return nil, err
	}

	merged := false
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			cart.Items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		cart.Items = append(cart.Items, models.CartItem{ProductID: productID, Quantity: quantity})
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// UpdateItem sets the quantity of a cart item. A quantity below 1 removes
// the item; a cart never retains a zero-quantity line.
func (s *CartService) UpdateItem(userID, productID string, quantity int) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	idx := -1
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			idx = i
			break
		}
	}
	if idx == -1 {
		return nil, models.NewError(models.KindNotFound, fmt.Sprintf("product %s not found in cart", productID))
	}

	if quantity < 1 {
		cart.Items = append(cart.Items[:idx], cart.Items[idx+1:]...)
	} else {
		cart.Items[idx].Quantity = quantity
	}

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}

// RemoveItem drops a product from the user's cart. Removing an absent
// product is a no-op, matching a repeated delete click.
func (s *CartService) RemoveItem(userID, productID string) (*models.Cart, error) {
	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	kept := cart.Items[:0]
	for _, item := range cart.Items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	cart.Items = kept

	if err := s.cartRepo.Save(cart); err != nil {
		return nil, err
	}
	return s.cartRepo.GetByUserID(userID)
}
