package catalog

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
)

type repository struct {
	db *gorm.DB
}

// NewRepository builds a catalog repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) UpsertProduct(ctx context.Context, product *models.Product) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "printify_product_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "description", "main_image_url", "options", "tags", "visible", "updated_at",
			}),
		}).
		Omit("Variants").
		Create(product).Error
}

func (r *repository) FindProduct(ctx context.Context, printifyProductID string) (*models.Product, error) {
	var product models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("printify_product_id = ?", printifyProductID).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, err
	}
	return &product, nil
}

func (r *repository) ListVisibleProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	err := r.db.WithContext(ctx).
		Preload("Variants").
		Where("visible = ?", true).
		Order("title ASC").
		Find(&products).Error
	if err != nil {
		return nil, err
	}
	return products, nil
}

func (r *repository) MarkInvisible(ctx context.Context, printifyProductID string) error {
	return r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("printify_product_id = ?", printifyProductID).
		Update("visible", false).Error
}

func (r *repository) HideProductsNotIn(ctx context.Context, remoteIDs []string) (int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Product{}).
		Where("visible = ?", true)
	if len(remoteIDs) > 0 {
		query = query.Where("printify_product_id NOT IN ?", remoteIDs)
	}
	result := query.Update("visible", false)
	return result.RowsAffected, result.Error
}

func (r *repository) ListVariantIDs(ctx context.Context, printifyProductID string) ([]int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("printify_product_id = ?", printifyProductID).
		Pluck("printify_variant_id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *repository) UpsertVariants(ctx context.Context, variants []models.ProductVariant) error {
	if len(variants) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "printify_product_id"}, {Name: "printify_variant_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"title", "price_cents", "is_available", "sku", "image_url", "option_ids", "updated_at",
			}),
		}).
		Create(&variants).Error
}

func (r *repository) DeleteVariants(ctx context.Context, printifyProductID string, variantIDs []int64) error {
	if len(variantIDs) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("printify_product_id = ? AND printify_variant_id IN ?", printifyProductID, variantIDs).
		Delete(&models.ProductVariant{}).Error
}
