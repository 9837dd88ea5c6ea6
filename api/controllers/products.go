package controllers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/steno/caribbean-tees-pod/api/responses"
	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

type productCatalog interface {
	ListVisibleProducts(ctx context.Context) ([]models.Product, error)
	FindProduct(ctx context.Context, printifyProductID string) (*models.Product, error)
}

type productVariantResponse struct {
	PrintifyVariantID int64   `json:"printify_variant_id"`
	Title             string  `json:"title"`
	PriceCents        int64   `json:"price_cents"`
	SKU               string  `json:"sku,omitempty"`
	ImageURL          *string `json:"image_url,omitempty"`
	OptionIDs         []int64 `json:"option_ids,omitempty"`
}

type productResponse struct {
	PrintifyProductID string                   `json:"printify_product_id"`
	Title             string                   `json:"title"`
	Description       string                   `json:"description,omitempty"`
	MainImageURL      *string                  `json:"main_image_url,omitempty"`
	Options           []models.ProductOption   `json:"options,omitempty"`
	Tags              []string                 `json:"tags,omitempty"`
	Variants          []productVariantResponse `json:"variants"`
}

// ListProducts returns the visible catalog with purchasable variants.
func ListProducts(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		products, err := repo.ListVisibleProducts(ctx)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		payload := make([]productResponse, 0, len(products))
		for i := range products {
			payload = append(payload, toProductResponse(&products[i]))
		}
		responses.WriteSuccess(w, payload)
	}
}

// GetProduct returns one visible product by its remote id.
func GetProduct(repo productCatalog, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if repo == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		productID := chi.URLParam(r, "productID")
		if productID == "" {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeValidation, "product id required"))
			return
		}

		product, err := repo.FindProduct(ctx, productID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if !product.Visible {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found"))
			return
		}

		payload := toProductResponse(product)
		responses.WriteSuccess(w, payload)
	}
}

func toProductResponse(product *models.Product) productResponse {
	variants := make([]productVariantResponse, 0, len(product.Variants))
	for _, v := range product.Variants {
		variants = append(variants, productVariantResponse{
			PrintifyVariantID: v.PrintifyVariantID,
			Title:             v.Title,
			PriceCents:        v.PriceCents,
			SKU:               v.SKU,
			ImageURL:          v.ImageURL,
			OptionIDs:         v.OptionIDs,
		})
	}
	return productResponse{
		PrintifyProductID: product.PrintifyProductID,
		Title:             product.Title,
		Description:       product.Description,
		MainImageURL:      product.MainImageURL,
		Options:           product.Options,
		Tags:              product.Tags,
		Variants:          variants,
	}
}
