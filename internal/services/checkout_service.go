package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"lapak/internal/models"
	"lapak/internal/repositories"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// CheckoutService converts a user's cart into an order: it snapshots the
// cart lines at current product prices, persists the order, clears the
// cart, and dispatches the checkout notifications.
//
// The order insert is the commit point. Steps after it (cart clear,
// notifications) are best-effort: their failures are logged and the
// checkout still reports success, because the order already exists and
// must be treated as committed. There is no cross-document transaction
// around the sequence.
type CheckoutService struct {
	orderRepo     repositories.OrderRepository
	cartRepo      repositories.CartRepository
	productRepo   repositories.ProductRepository
	notifications *NotificationService
	validate      *validator.Validate
}

// NewCheckoutService creates a new CheckoutService.
func NewCheckoutService(
	orderRepo repositories.OrderRepository,
	cartRepo repositories.CartRepository,
	productRepo repositories.ProductRepository,
	notifications *NotificationService,
) *CheckoutService {
	return &CheckoutService{
		orderRepo:     orderRepo,
		cartRepo:      cartRepo,
		productRepo:   productRepo,
		notifications: notifications,
		validate:      validator.New(),
	}
}

// CreateOrder creates an order from the user's current cart, shipped to
// the given address. The cart must exist and be non-empty, and the
// address must carry all five required fields.
func (s *CheckoutService) CreateOrder(userID string, address models.ShippingAddress) (*models.Order, error) {
	if err := s.validate.Struct(address); err != nil {
		return nil, models.WrapError(models.KindValidation, "please provide a complete shipping address", err)
	}

	cart, err := s.cartRepo.GetByUserID(userID)
	if err != nil {
		if models.IsKind(err, models.KindNotFound) {
			return nil, models.NewError(models.KindEmptyCart, "cart is empty")
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, models.NewError(models.KindEmptyCart, "cart is empty")
	}

	items, totalAmount, err := s.snapshotItems(cart.Items)
	if err != nil {
		return nil, err
	}

	order := &models.Order{
		ID:          uuid.New().String(),
		UserID:      userID,
		Items:       items,
		TotalAmount: totalAmount,
		Status:      models.OrderStatusPending,
		// Mock payment gateway: every charge is approved.
		PaymentStatus:   models.PaymentStatusPaid,
		ShippingAddress: address,
		TrackingNumber:  generateTrackingNumber(),
	}

	// Commit point. A failure before here aborts the whole conversion;
	// a failure after here is logged but does not undo the order.
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if err := s.cartRepo.ClearItems(cart.ID); err != nil {
		log.Printf("Warning: failed to clear cart %s after order %s: %v", cart.ID, order.ID, err)
	}

	if err := s.notifications.Notify(
		userID,
		models.NotificationPaymentConfirmation,
		fmt.Sprintf("Payment confirmed for order #%s. Amount: $%.2f", order.ID, totalAmount),
		order.ID,
	); err != nil {
		log.Printf("Warning: payment confirmation notification for order %s failed: %v", order.ID, err)
	}

	if err := s.notifications.NotifyAdmins(
		models.NotificationNewOrder,
		fmt.Sprintf("New order received: Order #%s - $%.2f", order.ID, totalAmount),
		order.ID,
	); err != nil {
		log.Printf("Warning: new order notifications for order %s failed: %v", order.ID, err)
	}

	return order, nil
}

// snapshotItems freezes the cart lines into order line items at the
// products' current prices. Any missing product aborts the whole
// conversion; no partial order is ever produced.
func (s *CheckoutService) snapshotItems(cartItems []models.CartItem) ([]models.OrderItem, float64, error) {
	var totalAmount float64
	items := make([]models.OrderItem, 0, len(cartItems))

	for _, item := range cartItems {
		product, err := s.resolve(item.Ref())
		if err != nil {
			return nil, 0, err
		}

		// The price is copied here, never referenced again: the snapshot
		// stays fixed even if the product's price changes later.
		items = append(items, models.OrderItem{
			ProductID: product.ID,
			Quantity:  item.Quantity,
			Price:     product.Price,
			Product:   product,
		})
		totalAmount += product.Price * float64(item.Quantity)
	}

	return items, totalAmount, nil
}

// resolve turns a line ref into a product, fetching it when the cart was
// loaded without product detail.
func (s *CheckoutService) resolve(ref models.LineRef) (*models.Product, error) {
	if product, ok := ref.Product(); ok {
		return product, nil
	}
	product, err := s.productRepo.GetByID(ref.ProductID())
	if err != nil {
		if models.IsKind(err, models.KindNotFound) {
			return nil, models.NewError(models.KindNotFound, fmt.Sprintf("product %s not found", ref.ProductID()))
		}
		return nil, err
	}
	return product, nil
}

// generateTrackingNumber builds a tracking number from a time component
// plus a random suffix. Unique with overwhelming probability, though not
// guaranteed.
func generateTrackingNumber() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", ""))[:7]
	return fmt.Sprintf("TRK%d%s", time.Now().UnixMilli(), suffix)
}
