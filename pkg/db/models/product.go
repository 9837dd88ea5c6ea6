package models

import (
	"time"
)

// ProductOptionValue is one selectable value of a product option.
type ProductOptionValue struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// ProductOption describes an option axis (color, size) and its values.
type ProductOption struct {
	Name   string               `json:"name"`
	Type   string               `json:"type"`
	Values []ProductOptionValue `json:"values"`
}

// Product mirrors one Printify catalog product. Rows are keyed by the
// remote product id and are hidden rather than deleted when the product
// disappears upstream.
type Product struct {
	PrintifyProductID string           `gorm:"column:printify_product_id;primaryKey"`
	Title             string           `gorm:"column:title;not null"`
	Description       string           `gorm:"column:description;not null;default:''"`
	MainImageURL      *string          `gorm:"column:main_image_url"`
	Options           []ProductOption  `gorm:"column:options;type:jsonb;serializer:json"`
	Tags              []string         `gorm:"column:tags;type:jsonb;serializer:json"`
	Visible           bool             `gorm:"column:visible;not null;default:true"`
	Variants          []ProductVariant `gorm:"foreignKey:PrintifyProductID;references:PrintifyProductID;constraint:OnDelete:CASCADE"`
	CreatedAt         time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt         time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName overrides the default pluralization.
func (Product) TableName() string { return "products" }
