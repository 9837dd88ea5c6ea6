package cart

import (
	"github.com/google/uuid"

	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
)

// Item is one purchasable entry in a cart. UnitAmountCents is the
// per-unit price in minor currency units.
type Item struct {
	PrintifyProductID string `json:"printify_product_id"`
	PrintifyVariantID int64  `json:"printify_variant_id"`
	Title             string `json:"title"`
	VariantTitle      string `json:"variant_title,omitempty"`
	UnitAmountCents   int64  `json:"unit_amount_cents"`
	Quantity          int    `json:"quantity"`
	ImageURL          string `json:"image_url,omitempty"`
}

// Cart holds the items a shopper intends to buy. Items are unique per
// (product id, variant id); adding the same pair again increments the
// existing quantity.
type Cart struct {
	ID    string `json:"id"`
	Items []Item `json:"items"`
}

// New returns an empty cart. A fresh id is generated when none is given.
func New(id string) *Cart {
	if id == "" {
		id = uuid.NewString()
	}
	return &Cart{ID: id}
}

// Add merges an item into the cart. An existing (product, variant) entry
// gains the incoming quantity; a new pair is appended.
func (c *Cart) Add(item Item) error {
	if item.PrintifyProductID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item requires a product id")
	}
	if item.PrintifyVariantID == 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item requires a variant id")
	}
	if item.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "cart item quantity must be positive")
	}

	for i := range c.Items {
		if c.Items[i].PrintifyProductID == item.PrintifyProductID &&
			c.Items[i].PrintifyVariantID == item.PrintifyVariantID {
			c.Items[i].Quantity += item.Quantity
			return nil
		}
	}
	c.Items = append(c.Items, item)
	return nil
}

// Remove drops the (product, variant) entry if present.
func (c *Cart) Remove(productID string, variantID int64) {
	for i := range c.Items {
		if c.Items[i].PrintifyProductID == productID && c.Items[i].PrintifyVariantID == variantID {
			c.Items = append(c.Items[:i], c.Items[i+1:]...)
			return
		}
	}
}

// IsEmpty reports whether the cart has no items.
func (c *Cart) IsEmpty() bool {
	return len(c.Items) == 0
}

// TotalQuantity sums the quantities across all items.
func (c *Cart) TotalQuantity() int {
	total := 0
	for _, item := range c.Items {
		total += item.Quantity
	}
	return total
}

// TotalAmountCents sums quantity-weighted unit prices.
func (c *Cart) TotalAmountCents() int64 {
	var total int64
	for _, item := range c.Items {
		total += item.UnitAmountCents * int64(item.Quantity)
	}
	return total
}
