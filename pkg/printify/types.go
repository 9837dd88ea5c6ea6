package printify

// Product is one catalog entry as returned by the Printify shop API.
type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Tags        []string  `json:"tags"`
	Options     []Option  `json:"options"`
	Variants    []Variant `json:"variants"`
	Images      []Image   `json:"images"`
	Visible     bool      `json:"visible"`
	IsLocked    bool      `json:"is_locked"`
}

// Option is one option axis (color, size) with its selectable values.
type Option struct {
	Name   string        `json:"name"`
	Type   string        `json:"type"`
	Values []OptionValue `json:"values"`
}

type OptionValue struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// Variant is a purchasable option combination. Price is a decimal amount
// in the shop currency, not minor units.
type Variant struct {
	ID          int64   `json:"id"`
	SKU         string  `json:"sku"`
	Price       float64 `json:"price"`
	Title       string  `json:"title"`
	IsEnabled   bool    `json:"is_enabled"`
	IsDefault   bool    `json:"is_default"`
	IsAvailable bool    `json:"is_available"`
	Options     []int64 `json:"options"`
}

// Image is a mockup render, optionally scoped to specific variants.
type Image struct {
	Src        string  `json:"src"`
	VariantIDs []int64 `json:"variant_ids"`
	Position   string  `json:"position"`
	IsDefault  bool    `json:"is_default"`
}

type productListPage struct {
	CurrentPage int       `json:"current_page"`
	LastPage    int       `json:"last_page"`
	Data        []Product `json:"data"`
}

// OrderRequest is the payload submitted to create a fulfillment order.
type OrderRequest struct {
	ExternalID               string          `json:"external_id"`
	Label                    string          `json:"label,omitempty"`
	LineItems                []OrderLineItem `json:"line_items"`
	ShippingMethod           int             `json:"shipping_method"`
	SendShippingNotification bool            `json:"send_shipping_notification"`
	AddressTo                Address         `json:"address_to"`
}

type OrderLineItem struct {
	ProductID string `json:"product_id"`
	VariantID int64  `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

type Address struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	Country   string `json:"country"`
	Region    string `json:"region"`
	Address1  string `json:"address1"`
	Address2  string `json:"address2,omitempty"`
	City      string `json:"city"`
	Zip       string `json:"zip"`
}

// OrderResponse is the subset of the order-creation response we consume.
type OrderResponse struct {
	ID            string `json:"id"`
	Status        string `json:"status"`
	TotalPrice    int64  `json:"total_price"`
	TotalShipping int64  `json:"total_shipping"`
	CreatedAt     string `json:"created_at"`
}

// ShippingMethods carries per-tier shipping costs for a destination.
type ShippingMethods struct {
	Standard int64 `json:"standard"`
	Express  int64 `json:"express"`
	Priority int64 `json:"priority"`
}
