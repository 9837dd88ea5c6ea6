package enums

// OrderStatus tracks the fulfillment lifecycle of a paid order.
type OrderStatus string

const (
	OrderStatusPaid                  OrderStatus = "paid"
	OrderStatusSubmittedToPrintify   OrderStatus = "submitted_to_printify"
	OrderStatusTestOrderNotSubmitted OrderStatus = "test_order_not_submitted"
)

var validOrderStatuses = []OrderStatus{
	OrderStatusPaid,
	OrderStatusSubmittedToPrintify,
	OrderStatusTestOrderNotSubmitted,
}

// String implements fmt.Stringer.
func (s OrderStatus) String() string {
	return string(s)
}

// IsValid reports whether the value is a known OrderStatus.
func (s OrderStatus) IsValid() bool {
	for _, candidate := range validOrderStatuses {
		if candidate == s {
			return true
		}
	}
	return false
}
