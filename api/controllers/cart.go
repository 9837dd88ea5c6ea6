package controllers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/steno/caribbean-tees-pod/api/responses"
	"github.com/steno/caribbean-tees-pod/api/validators"
	"github.com/steno/caribbean-tees-pod/internal/cart"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

type addCartItemRequest struct {
	PrintifyProductID string `json:"printify_product_id" validate:"required"`
	PrintifyVariantID int64  `json:"printify_variant_id" validate:"required"`
	Title             string `json:"title" validate:"required"`
	VariantTitle      string `json:"variant_title,omitempty"`
	UnitAmountCents   int64  `json:"unit_amount_cents" validate:"required,min=1"`
	Quantity          int    `json:"quantity" validate:"required,min=1"`
	ImageURL          string `json:"image_url,omitempty"`
}

func (r addCartItemRequest) toItem() cart.Item {
	return cart.Item{
		PrintifyProductID: r.PrintifyProductID,
		PrintifyVariantID: r.PrintifyVariantID,
		Title:             r.Title,
		VariantTitle:      r.VariantTitle,
		UnitAmountCents:   r.UnitAmountCents,
		Quantity:          r.Quantity,
		ImageURL:          r.ImageURL,
	}
}

// CreateCart starts an empty server-held cart.
func CreateCart(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		c := cart.New("")
		if err := store.Save(ctx, c); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, c)
	}
}

// GetCart returns a cart by id.
func GetCart(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		c, err := store.Load(ctx, chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, c)
	}
}

// AddCartItem merges one item into the cart; an existing (product,
// variant) pair gains the posted quantity.
func AddCartItem(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		var payload addCartItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c, err := store.Load(ctx, chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		if err := c.Add(payload.toItem()); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := store.Save(ctx, c); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, c)
	}
}

// RemoveCartItem drops one (product, variant) entry from the cart.
func RemoveCartItem(store cart.Store, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		if store == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart store unavailable"))
			return
		}

		variantID, err := strconv.ParseInt(chi.URLParam(r, "variantID"), 10, 64)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
			return
		}

		c, err := store.Load(ctx, chi.URLParam(r, "cartID"))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		c.Remove(chi.URLParam(r, "productID"), variantID)
		if err := store.Save(ctx, c); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, c)
	}
}
