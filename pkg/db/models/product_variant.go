package models

import "time"

// ProductVariant is one purchasable (color, size) combination. Variants
// absent from the remote enabled+available set are hard-deleted by sync.
type ProductVariant struct {
	PrintifyProductID string    `gorm:"column:printify_product_id;primaryKey"`
	PrintifyVariantID int64     `gorm:"column:printify_variant_id;primaryKey"`
	Title             string    `gorm:"column:title;not null"`
	PriceCents        int64     `gorm:"column:price_cents;not null"`
	IsAvailable       bool      `gorm:"column:is_available;not null;default:true"`
	SKU               string    `gorm:"column:sku;not null;default:''"`
	ImageURL          *string   `gorm:"column:image_url"`
	OptionIDs         []int64   `gorm:"column:option_ids;type:jsonb;serializer:json"`
	CreatedAt         time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (ProductVariant) TableName() string { return "product_variants" }
