package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/steno/caribbean-tees-pod/pkg/enums"
	"github.com/steno/caribbean-tees-pod/pkg/types"
)

// Order is written exactly once per completed checkout session and owned
// by the webhook handler; every other reader treats it as immutable.
type Order struct {
	ID                    uuid.UUID             `gorm:"column:id;type:uuid;primaryKey"`
	StripeSessionID       string                `gorm:"column:stripe_session_id;not null;uniqueIndex"`
	StripePaymentIntentID string                `gorm:"column:stripe_payment_intent_id;not null;default:''"`
	PrintifyOrderID       *string               `gorm:"column:printify_order_id"`
	CustomerEmail         string                `gorm:"column:customer_email;not null;default:''"`
	CustomerName          string                `gorm:"column:customer_name;not null;default:''"`
	ShippingAddress       types.ShippingAddress `gorm:"column:shipping_address;type:jsonb;serializer:json"`
	TotalAmountCents      int64                 `gorm:"column:total_amount_cents;not null"`
	Status                enums.OrderStatus     `gorm:"column:status;not null;default:'paid'"`
	LineItems             types.OrderLineItems  `gorm:"column:line_items;type:jsonb;serializer:json"`
	CreatedAt             time.Time             `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt             time.Time             `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Order) TableName() string { return "orders" }
