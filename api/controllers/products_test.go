package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
)

type stubProductCatalog struct {
	products []models.Product
	product  *models.Product
	listErr  error
	findErr  error
}

func (s *stubProductCatalog) ListVisibleProducts(context.Context) ([]models.Product, error) {
	return s.products, s.listErr
}

func (s *stubProductCatalog) FindProduct(context.Context, string) (*models.Product, error) {
	return s.product, s.findErr
}

func visibleProduct() *models.Product {
	img := "https://images.printify.com/front.png"
	return &models.Product{
		PrintifyProductID: "prod-1",
		Title:             "Island Vibes Tee",
		Visible:           true,
		MainImageURL:      &img,
		Variants: []models.ProductVariant{
			{PrintifyVariantID: 42, Title: "Navy / M", PriceCents: 2499},
		},
	}
}

func productsRouter(repo productCatalog) http.Handler {
	r := chi.NewRouter()
	r.Get("/products", ListProducts(repo, testLogger()))
	r.Get("/products/{productID}", GetProduct(repo, testLogger()))
	return r
}

func TestListProducts(t *testing.T) {
	repo := &stubProductCatalog{products: []models.Product{*visibleProduct()}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)

	productsRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "prod-1")
	assert.Contains(t, rec.Body.String(), `"price_cents":2499`)
}

func TestListProductsEmptyCatalog(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)

	productsRouter(&stubProductCatalog{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"data":[]`)
}

func TestGetProduct(t *testing.T) {
	repo := &stubProductCatalog{product: visibleProduct()}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/prod-1", nil)

	productsRouter(repo).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Island Vibes Tee")
}

func TestGetProductUnknownID(t *testing.T) {
	repo := &stubProductCatalog{findErr: pkgerrors.New(pkgerrors.CodeNotFound, "product not found")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/missing", nil)

	productsRouter(repo).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestGetProductHiddenIsNotFound(t *testing.T) {
	hidden := visibleProduct()
	hidden.Visible = false
	repo := &stubProductCatalog{product: hidden}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/products/prod-1", nil)

	productsRouter(repo).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
