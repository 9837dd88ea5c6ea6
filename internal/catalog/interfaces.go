package catalog

import (
	"context"

	"gorm.io/gorm"

	"github.com/steno/caribbean-tees-pod/pkg/db/models"
)

// Repository defines persistence operations for the mirrored catalog.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	UpsertProduct(ctx context.Context, product *models.Product) error
	FindProduct(ctx context.Context, printifyProductID string) (*models.Product, error)
	ListVisibleProducts(ctx context.Context) ([]models.Product, error)
	MarkInvisible(ctx context.Context, printifyProductID string) error
	HideProductsNotIn(ctx context.Context, remoteIDs []string) (int64, error)
	ListVariantIDs(ctx context.Context, printifyProductID string) ([]int64, error)
	UpsertVariants(ctx context.Context, variants []models.ProductVariant) error
	DeleteVariants(ctx context.Context, printifyProductID string, variantIDs []int64) error
}
