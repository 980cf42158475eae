package models

import (
	"errors"
	"time"
)

// OrderStatus is the fulfillment state of an order.
type OrderStatus string

// remember to add new statuses to the validOrderStatuses map and statusRank
const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusDelivered  OrderStatus = "delivered"
)

var validOrderStatuses = map[OrderStatus]struct{}{
	OrderStatusPending:    {},
	OrderStatusProcessing: {},
	OrderStatusShipped:    {},
	OrderStatusDelivered:  {},
}

// statusRank orders statuses along the normal fulfillment progression.
var statusRank = map[OrderStatus]int{
	OrderStatusPending:    0,
	OrderStatusProcessing: 1,
	OrderStatusShipped:    2,
	OrderStatusDelivered:  3,
}

// ToOrderStatus validates a raw status string.
func ToOrderStatus(s string) (OrderStatus, error) {
	status := OrderStatus(s)
	if _, ok := validOrderStatuses[status]; ok {
		return status, nil
	}
	return "", errors.New("invalid order status")
}

// Rank returns the status position in the normal fulfillment progression.
func (s OrderStatus) Rank() int {
	return statusRank[s]
}

// PaymentStatus is the payment state of an order. It is set once at
// creation (the mock gateway always approves) and not revisited.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// ShippingAddress is the delivery address captured at checkout. It is a
// point-in-time copy, never a live reference to the user's profile address.
type ShippingAddress struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zip_code" validate:"required"`
	Country string `json:"country" validate:"required"`
}

// ShippingDetails is the admin-maintained fulfillment substructure.
// Fields are merged individually on update, not replaced wholesale.
type ShippingDetails struct {
	Carrier           string     `json:"carrier,omitempty"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}

// OrderItem represents a single item within an order. Price is the
// product's price at the time of order, frozen thereafter.
type OrderItem struct {
	ID        uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	OrderID   string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int      `json:"quantity"`
	Price     float64  `json:"price"` // Price at the time of order
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Order represents a customer order.
type Order struct {
	ID              string          `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID          string          `json:"user_id" gorm:"index;type:varchar(36)"`
	Items           []OrderItem     `json:"items" gorm:"foreignKey:OrderID"`
	TotalAmount     float64         `json:"total_amount"`
	Status          OrderStatus     `json:"status" gorm:"type:varchar(16)"`
	PaymentStatus   PaymentStatus   `json:"payment_status" gorm:"type:varchar(16)"`
	ShippingAddress ShippingAddress `json:"shipping_address" gorm:"embedded;embeddedPrefix:addr_"`
	ShippingDetails ShippingDetails `json:"shipping_details" gorm:"embedded;embeddedPrefix:ship_"`
	// TrackingNumber mirrors ShippingDetails.TrackingNumber once an admin
	// supplies one. Kept as a separate column for compatibility with
	// clients that read the top-level field.
	TrackingNumber string    `json:"tracking_number,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// ComputeTotal returns the sum of quantity x price across items.
// Order.TotalAmount must always equal this sum.
func (o *Order) ComputeTotal() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}

// OrderUpdate is the admin-supplied delta for an order. Nil/empty fields
// are left untouched on the order.
type OrderUpdate struct {
	Status          string                 `json:"status,omitempty"`
	ShippingDetails *ShippingDetailsUpdate `json:"shipping_details,omitempty"`
}

// ShippingDetailsUpdate carries only the shipping sub-fields to overwrite;
// omitted sub-fields on the existing order are preserved.
type ShippingDetailsUpdate struct {
	Carrier           string     `json:"carrier,omitempty"`
	TrackingNumber    string     `json:"tracking_number,omitempty"`
	EstimatedDelivery *time.Time `json:"estimated_delivery,omitempty"`
}
