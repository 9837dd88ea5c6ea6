package models

import (
	"time"

	"github.com/google/uuid"
)

// FulfillmentFailure is the dead-letter record written when a paid order
// could not be submitted to Printify. The webhook still acks the event,
// so these rows are the only trace of orders stuck in paid.
type FulfillmentFailure struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"column:order_id;type:uuid;not null;index"`
	Stage     string    `gorm:"column:stage;not null"`
	Message   string    `gorm:"column:message;not null"`
	Payload   string    `gorm:"column:payload;not null;default:''"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
}

// TableName overrides the default pluralization.
func (FulfillmentFailure) TableName() string { return "fulfillment_failures" }
