package repositories

import (
	"errors"
	"fmt"

	"lapak/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOrderRepository is a GORM implementation of OrderRepository.
type GORMOrderRepository struct {
	db *gorm.DB
}

// NewGORMOrderRepository creates a new instance of GORMOrderRepository.
func NewGORMOrderRepository(db *gorm.DB) *GORMOrderRepository {
	return &GORMOrderRepository{
		db: db,
	}
}

// GetAll retrieves every order with product detail, newest first.
func (r *GORMOrderRepository) GetAll() ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Order("created_at DESC").Find(&orders).Error; err != nil {
		return nil, models.WrapError(models.KindInternal, "failed to get all orders", err)
	}
	return orders, nil
}

// GetByUserID retrieves a user's orders with product detail, newest first.
func (r *GORMOrderRepository) GetByUserID(userID string) ([]models.Order, error) {
	var orders []models.Order
	if err := r.db.Preload("Items.Product").Order("created_at DESC").Find(&orders, "user_id = ?", userID).Error; err != nil {
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get orders for user %s", userID), err)
	}
	return orders, nil
}

// GetByID retrieves a single order with product detail.
func (r *GORMOrderRepository) GetByID(id string) (*models.Order, error) {
	var order models.Order
	if err := r.db.Preload("Items.Product").First(&order, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("order with ID %s not found", id))
		}
		return nil, models.WrapError(models.KindInternal, fmt.Sprintf("failed to get order by ID %s", id), err)
	}
	return &order, nil
}

// Create inserts a new order together with its line items.
func (r *GORMOrderRepository) Create(order *models.Order) error {
	if order.ID == "" {
		order.ID = uuid.New().String()
	}
	if err := r.db.Create(order).Error; err != nil {
		return models.WrapError(models.KindInternal, "failed to create order", err)
	}
	return nil
}

// Update persists the order's own columns. Line items are immutable after
// creation, so they are deliberately left out of the write.
func (r *GORMOrderRepository) Update(order *models.Order) error {
	res := r.db.Omit("Items").Save(order)
	if res.Error != nil {
		return models.WrapError(models.KindInternal, "failed to update order", res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewError(models.KindNotFound, fmt.Sprintf("order with ID %s not found for update", order.ID))
	}
	return nil
}
