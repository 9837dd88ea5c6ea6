package stripewebhook

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v84"
	"gorm.io/gorm"

	"github.com/steno/caribbean-tees-pod/internal/orders"
	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	"github.com/steno/caribbean-tees-pod/pkg/enums"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
	"github.com/steno/caribbean-tees-pod/pkg/printify"
)

type stubOrdersRepo struct {
	created   []*models.Order
	statuses  map[uuid.UUID]enums.OrderStatus
	remoteIDs map[uuid.UUID]string
	failures  []*models.FulfillmentFailure

	createErr error
	markErr   error
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{
		statuses:  map[uuid.UUID]enums.OrderStatus{},
		remoteIDs: map[uuid.UUID]string{},
	}
}

func (s *stubOrdersRepo) WithTx(*gorm.DB) orders.Repository { return s }

func (s *stubOrdersRepo) Create(_ context.Context, order *models.Order) (*models.Order, error) {
	if s.createErr != nil {
		return nil, s.createErr
	}
	if order.ID == uuid.Nil {
		order.ID = uuid.New()
	}
	s.created = append(s.created, order)
	s.statuses[order.ID] = order.Status
	return order, nil
}

func (s *stubOrdersRepo) FindByID(_ context.Context, id uuid.UUID) (*models.Order, error) {
	for _, order := range s.created {
		if order.ID == id {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) FindByStripeSessionID(_ context.Context, sessionID string) (*models.Order, error) {
	for _, order := range s.created {
		if order.StripeSessionID == sessionID {
			return order, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *stubOrdersRepo) UpdateStatus(_ context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statuses[id] = status
	return nil
}

func (s *stubOrdersRepo) MarkSubmitted(_ context.Context, id uuid.UUID, printifyOrderID string) error {
	if s.markErr != nil {
		return s.markErr
	}
	s.statuses[id] = enums.OrderStatusSubmittedToPrintify
	s.remoteIDs[id] = printifyOrderID
	return nil
}

func (s *stubOrdersRepo) CreateFulfillmentFailure(_ context.Context, failure *models.FulfillmentFailure) error {
	s.failures = append(s.failures, failure)
	return nil
}

func (s *stubOrdersRepo) ListFulfillmentFailures(_ context.Context, orderID uuid.UUID) ([]models.FulfillmentFailure, error) {
	var out []models.FulfillmentFailure
	for _, f := range s.failures {
		if f.OrderID == orderID {
			out = append(out, *f)
		}
	}
	return out, nil
}

type stubSessions struct {
	session *stripe.CheckoutSession
	err     error
	calls   int
}

func (s *stubSessions) Retrieve(_ context.Context, _ string, _ *stripe.CheckoutSessionRetrieveParams) (*stripe.CheckoutSession, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.session, nil
}

type stubFulfillment struct {
	lastRequest *printify.OrderRequest
	response    *printify.OrderResponse
	err         error
	calls       int
}

func (s *stubFulfillment) CreateOrder(_ context.Context, order printify.OrderRequest) (*printify.OrderResponse, error) {
	s.calls++
	s.lastRequest = &order
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func completedSession() *stripe.CheckoutSession {
	return &stripe.CheckoutSession{
		ID:            "cs_1",
		AmountTotal:   5000,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1"},
		CustomerDetails: &stripe.CheckoutSessionCustomerDetails{
			Email: "ann@example.com",
			Name:  "Ann Marie Joseph",
		},
		CollectedInformation: &stripe.CheckoutSessionCollectedInformation{
			ShippingDetails: &stripe.CheckoutSessionCollectedInformationShippingDetails{
				Address: &stripe.Address{
					Line1:      "12 Harbour St",
					City:       "Kingston",
					PostalCode: "JMAKN05",
					Country:    "JM",
				},
			},
		},
		LineItems: &stripe.LineItemList{Data: []*stripe.LineItem{
			{
				Quantity: 2,
				Price: &stripe.Price{
					UnitAmount: 2500,
					Product: &stripe.Product{
						Metadata: map[string]string{
							"printify_product_id": "prod-1",
							"printify_variant_id": "42",
						},
					},
				},
			},
		}},
	}
}

func completedEvent(t *testing.T) *stripe.Event {
	t.Helper()
	raw, err := json.Marshal(map[string]string{"id": "cs_1"})
	require.NoError(t, err)
	return &stripe.Event{
		ID:   "evt_1",
		Type: stripe.EventTypeCheckoutSessionCompleted,
		Data: &stripe.EventData{Raw: raw},
	}
}

func newTestService(t *testing.T, repo *stubOrdersRepo, sessions *stubSessions, fulfillment *stubFulfillment, sandbox bool) *Service {
	t.Helper()
	svc, err := NewService(ServiceParams{
		OrdersRepo:     repo,
		Sessions:       sessions,
		Fulfillment:    fulfillment,
		Sandbox:        sandbox,
		ShippingMethod: 1,
		Logger:         testLogger(),
	})
	require.NoError(t, err)
	return svc
}

func TestHandleEventIgnoresOtherEventTypes(t *testing.T) {
	repo := newStubOrdersRepo()
	sessions := &stubSessions{}
	fulfillment := &stubFulfillment{}
	svc := newTestService(t, repo, sessions, fulfillment, false)

	err := svc.HandleEvent(context.Background(), &stripe.Event{
		ID:   "evt_other",
		Type: stripe.EventTypeInvoicePaid,
		Data: &stripe.EventData{Raw: json.RawMessage(`{}`)},
	})
	require.NoError(t, err)
	assert.Zero(t, sessions.calls)
	assert.Empty(t, repo.created)
}

func TestHandleEventSandboxSkipsFulfillment(t *testing.T) {
	repo := newStubOrdersRepo()
	sessions := &stubSessions{session: completedSession()}
	fulfillment := &stubFulfillment{}
	svc := newTestService(t, repo, sessions, fulfillment, true)

	require.NoError(t, svc.HandleEvent(context.Background(), completedEvent(t)))

	require.Len(t, repo.created, 1)
	order := repo.created[0]
	assert.Equal(t, "cs_1", order.StripeSessionID)
	assert.Equal(t, "pi_1", order.StripePaymentIntentID)
	assert.Equal(t, enums.OrderStatusTestOrderNotSubmitted, repo.statuses[order.ID])
	assert.Zero(t, fulfillment.calls)
}

func TestHandleEventLiveSubmitsFulfillmentOnce(t *testing.T) {
	repo := newStubOrdersRepo()
	sessions := &stubSessions{session: completedSession()}
	fulfillment := &stubFulfillment{response: &printify.OrderResponse{ID: "pf-77"}}
	svc := newTestService(t, repo, sessions, fulfillment, false)

	require.NoError(t, svc.HandleEvent(context.Background(), completedEvent(t)))

	require.Len(t, repo.created, 1)
	order := repo.created[0]
	assert.Equal(t, enums.OrderStatusSubmittedToPrintify, repo.statuses[order.ID])
	assert.Equal(t, "pf-77", repo.remoteIDs[order.ID])

	require.Equal(t, 1, fulfillment.calls)
	request := fulfillment.lastRequest
	assert.Equal(t, order.ID.String(), request.ExternalID)
	assert.Equal(t, "Ann", request.AddressTo.FirstName)
	assert.Equal(t, "Marie Joseph", request.AddressTo.LastName)
	assert.Equal(t, "JM", request.AddressTo.Country)
	require.Len(t, request.LineItems, 1)
	assert.Equal(t, "prod-1", request.LineItems[0].ProductID)
	assert.Equal(t, int64(42), request.LineItems[0].VariantID)
	assert.Equal(t, 2, request.LineItems[0].Quantity)
}

func TestHandleEventRequiresShippingAddress(t *testing.T) {
	sess := completedSession()
	sess.CollectedInformation = nil
	repo := newStubOrdersRepo()
	sessions := &stubSessions{session: sess}
	svc := newTestService(t, repo, sessions, &stubFulfillment{}, false)

	err := svc.HandleEvent(context.Background(), completedEvent(t))
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestHandleEventRequiresFulfillmentMetadata(t *testing.T) {
	sess := completedSession()
	sess.LineItems.Data[0].Price.Product.Metadata = map[string]string{}
	repo := newStubOrdersRepo()
	sessions := &stubSessions{session: sess}
	svc := newTestService(t, repo, sessions, &stubFulfillment{}, false)

	err := svc.HandleEvent(context.Background(), completedEvent(t))
	require.Error(t, err)
	assert.Empty(t, repo.created)
}

func TestHandleEventFulfillmentFailureWritesDeadLetter(t *testing.T) {
	repo := newStubOrdersRepo()
	sessions := &stubSessions{session: completedSession()}
	fulfillment := &stubFulfillment{err: errors.New("printify is down")}
	svc := newTestService(t, repo, sessions, fulfillment, false)

	require.NoError(t, svc.HandleEvent(context.Background(), completedEvent(t)))

	require.Len(t, repo.created, 1)
	order := repo.created[0]
	assert.Equal(t, enums.OrderStatusPaid, repo.statuses[order.ID])

	require.Len(t, repo.failures, 1)
	failure := repo.failures[0]
	assert.Equal(t, order.ID, failure.OrderID)
	assert.Equal(t, stageSubmitOrder, failure.Stage)
	assert.Contains(t, failure.Message, "printify is down")
	assert.Contains(t, failure.Payload, order.ID.String())
}

func TestSplitName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		first string
		last  string
	}{
		{"full name", "Ann Joseph", "Ann", "Joseph"},
		{"three tokens", "Ann Marie Joseph", "Ann", "Marie Joseph"},
		{"single token", "Ann", "Ann", "Customer"},
		{"empty", "", "Customer", "Customer"},
		{"whitespace only", "   ", "Customer", "Customer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first, last := splitName(tt.input)
			assert.Equal(t, tt.first, first)
			assert.Equal(t, tt.last, last)
		})
	}
}

type memoryIdempotencyStore struct {
	keys map[string]string
}

func newMemoryIdempotencyStore() *memoryIdempotencyStore {
	return &memoryIdempotencyStore{keys: map[string]string{}}
}

func (m *memoryIdempotencyStore) Get(_ context.Context, key string) (string, error) {
	return m.keys[key], nil
}

func (m *memoryIdempotencyStore) SetNX(_ context.Context, key string, value any, _ time.Duration) (bool, error) {
	if _, ok := m.keys[key]; ok {
		return false, nil
	}
	m.keys[key] = "1"
	return true, nil
}

func (m *memoryIdempotencyStore) IdempotencyKey(scope, id string) string {
	return "tees:idempotency:" + scope + ":" + id
}

func (m *memoryIdempotencyStore) Del(_ context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.keys, key)
	}
	return nil
}

func TestIdempotencyGuardMarksAndReplays(t *testing.T) {
	store := newMemoryIdempotencyStore()
	guard, err := NewIdempotencyGuard(store, 0, "stripe")
	require.NoError(t, err)

	ctx := context.Background()

	seen, err := guard.CheckAndMark(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)

	seen, err = guard.CheckAndMark(ctx, "evt_1")
	require.NoError(t, err)
	assert.True(t, seen)

	require.NoError(t, guard.Delete(ctx, "evt_1"))

	seen, err = guard.CheckAndMark(ctx, "evt_1")
	require.NoError(t, err)
	assert.False(t, seen)
}
