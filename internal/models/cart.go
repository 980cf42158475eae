package models

import "time"

// CartItem is one product entry in a cart. A cart holds at most one entry
// per product; adding the same product again increments the quantity.
type CartItem struct {
	ID        uint     `json:"-" gorm:"primaryKey;autoIncrement"`
	CartID    string   `json:"-" gorm:"index;type:varchar(36)"`
	ProductID string   `json:"product_id" gorm:"type:varchar(36)"`
	Quantity  int      `json:"quantity"`
	Product   *Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

// Ref returns the line's product reference: resolved when the product row
// was preloaded, unresolved otherwise.
func (i CartItem) Ref() LineRef {
	if i.Product != nil {
		return ResolvedRef(i.Product)
	}
	return UnresolvedRef(i.ProductID)
}

// Cart is a user's staging area for an order. One cart per user; created
// lazily on first access and emptied (never deleted) after checkout.
type Cart struct {
	ID        string     `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string     `json:"user_id" gorm:"uniqueIndex;type:varchar(36)"`
	Items     []CartItem `json:"items" gorm:"foreignKey:CartID"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// LineRef is a cart line's product reference: either a bare product ID
// still to be fetched, or a product already loaded from storage. The
// two cases are explicit so callers never have to infer "is this
// populated" from field presence.
type LineRef struct {
	productID string
	product   *Product
}

// UnresolvedRef references a product by ID only.
func UnresolvedRef(productID string) LineRef {
	return LineRef{productID: productID}
}

// ResolvedRef references an already-loaded product.
func ResolvedRef(product *Product) LineRef {
	return LineRef{productID: product.ID, product: product}
}

// ProductID returns the referenced product's ID in either case.
func (r LineRef) ProductID() string {
	return r.productID
}

// Product returns the loaded product and true when the ref is resolved.
func (r LineRef) Product() (*Product, bool) {
	return r.product, r.product != nil
}
