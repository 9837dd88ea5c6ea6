package controllers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/steno/caribbean-tees-pod/internal/checkout"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
)

type stubCheckoutService struct {
	gotReq  checkout.Request
	session *checkout.Session
	err     error
}

func (s *stubCheckoutService) CreateSession(_ context.Context, req checkout.Request) (*checkout.Session, error) {
	s.gotReq = req
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

const validCheckoutBody = `{
	"cart_id": "cart-1",
	"items": [
		{
			"printify_product_id": "prod-1",
			"printify_variant_id": 42,
			"title": "Island Vibes Tee",
			"unit_amount_cents": 2499,
			"quantity": 2
		}
	]
}`

func TestCreateCheckoutSessionReturnsSession(t *testing.T) {
	svc := &stubCheckoutService{session: &checkout.Session{ID: "cs_1", URL: "https://checkout.stripe.com/cs_1"}}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(validCheckoutBody))

	CreateCheckoutSession(svc, testLogger()).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "cs_1")
	assert.Equal(t, "prod-1", svc.gotReq.Items[0].PrintifyProductID)
	assert.Equal(t, 2, svc.gotReq.Items[0].Quantity)
}

func TestCreateCheckoutSessionRejectsMalformedBody(t *testing.T) {
	svc := &stubCheckoutService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"items": "nope"`))

	CreateCheckoutSession(svc, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateCheckoutSessionRejectsEmptyItems(t *testing.T) {
	svc := &stubCheckoutService{}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(`{"cart_id":"c1","items":[]}`))

	CreateCheckoutSession(svc, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "VALIDATION_ERROR")
}

func TestCreateCheckoutSessionPropagatesDependencyError(t *testing.T) {
	svc := &stubCheckoutService{err: pkgerrors.New(pkgerrors.CodeDependency, "stripe unavailable")}
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(validCheckoutBody))

	CreateCheckoutSession(svc, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestCreateCheckoutSessionNilService(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(validCheckoutBody))

	CreateCheckoutSession(nil, testLogger()).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
