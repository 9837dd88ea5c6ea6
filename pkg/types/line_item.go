package types

// OrderLineItem is the denormalized cart snapshot stored on an order.
// Printify identifiers travel with each line so fulfillment can be
// submitted without re-reading the catalog.
type OrderLineItem struct {
	PrintifyProductID string `json:"printify_product_id"`
	PrintifyVariantID int64  `json:"printify_variant_id"`
	Quantity          int    `json:"quantity"`
	AmountCents       int64  `json:"amount_cents"`
}

// OrderLineItems exists so the slice can carry a gorm jsonb serializer tag.
type OrderLineItems []OrderLineItem
