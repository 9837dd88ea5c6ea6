package orders

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	"github.com/steno/caribbean-tees-pod/pkg/enums"
)

// Repository defines persistence operations for orders and their
// fulfillment dead-letter records.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, order *models.Order) (*models.Order, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error)
	FindByStripeSessionID(ctx context.Context, sessionID string) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error
	MarkSubmitted(ctx context.Context, id uuid.UUID, printifyOrderID string) error
	CreateFulfillmentFailure(ctx context.Context, failure *models.FulfillmentFailure) error
	ListFulfillmentFailures(ctx context.Context, orderID uuid.UUID) ([]models.FulfillmentFailure, error)
}
