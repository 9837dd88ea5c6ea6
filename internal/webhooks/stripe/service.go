package stripewebhook

import (
	"context"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/stripe/stripe-go/v84"

	"github.com/steno/caribbean-tees-pod/internal/checkout"
	"github.com/steno/caribbean-tees-pod/internal/orders"
	"github.com/steno/caribbean-tees-pod/pkg/db/models"
	"github.com/steno/caribbean-tees-pod/pkg/enums"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
	"github.com/steno/caribbean-tees-pod/pkg/printify"
	"github.com/steno/caribbean-tees-pod/pkg/types"
)

// placeholderName fills first/last name slots when the session carries none.
const placeholderName = "Customer"

const stageSubmitOrder = "submit_order"

type sessionRetriever interface {
	Retrieve(ctx context.Context, id string, params *stripe.CheckoutSessionRetrieveParams) (*stripe.CheckoutSession, error)
}

type fulfillmentClient interface {
	CreateOrder(ctx context.Context, order printify.OrderRequest) (*printify.OrderResponse, error)
}

type ServiceParams struct {
	OrdersRepo     orders.Repository
	Sessions       sessionRetriever
	Fulfillment    fulfillmentClient
	Sandbox        bool
	ShippingMethod int
	Logger         *logger.Logger
}

// Service bridges completed checkout sessions to Printify order submission.
type Service struct {
	ordersRepo     orders.Repository
	sessions       sessionRetriever
	fulfillment    fulfillmentClient
	sandbox        bool
	shippingMethod int
	logger         *logger.Logger
}

func NewService(params ServiceParams) (*Service, error) {
	if params.OrdersRepo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "orders repo required")
	}
	if params.Sessions == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "stripe session client required")
	}
	if params.Fulfillment == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "printify client required")
	}
	if params.Logger == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "logger required")
	}
	shippingMethod := params.ShippingMethod
	if shippingMethod == 0 {
		shippingMethod = 1
	}
	return &Service{
		ordersRepo:     params.OrdersRepo,
		sessions:       params.Sessions,
		fulfillment:    params.Fulfillment,
		sandbox:        params.Sandbox,
		shippingMethod: shippingMethod,
		logger:         params.Logger,
	}, nil
}

// HandleEvent processes one verified Stripe event. Non-checkout events are
// ignored. A fulfillment submission failure is recorded as a dead-letter
// row and swallowed so the event is still acknowledged; the order stays in
// paid until someone replays it.
func (s *Service) HandleEvent(ctx context.Context, event *stripe.Event) error {
	if event == nil || event.Data == nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "stripe event data required")
	}
	if event.Type != stripe.EventTypeCheckoutSessionCompleted {
		return nil
	}

	var completed stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &completed); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode checkout session event")
	}
	if completed.ID == "" {
		return pkgerrors.New(pkgerrors.CodeValidation, "checkout session id missing")
	}

	sess, err := s.sessions.Retrieve(ctx, completed.ID, &stripe.CheckoutSessionRetrieveParams{
		Expand: []*string{
			stripe.String("line_items.data.price.product"),
			stripe.String("customer_details"),
		},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "fetch checkout session")
	}

	address, err := shippingAddressFromSession(sess)
	if err != nil {
		return err
	}

	lineItems, err := lineItemsFromSession(sess)
	if err != nil {
		return err
	}

	order := &models.Order{
		StripeSessionID:  sess.ID,
		CustomerEmail:    customerEmail(sess),
		CustomerName:     customerName(sess),
		ShippingAddress:  *address,
		TotalAmountCents: sess.AmountTotal,
		Status:           enums.OrderStatusPaid,
		LineItems:        lineItems,
	}
	if sess.PaymentIntent != nil {
		order.StripePaymentIntentID = sess.PaymentIntent.ID
	}

	order, err = s.ordersRepo.Create(ctx, order)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "persist order")
	}

	logCtx := s.logger.WithOrderID(ctx, order.ID.String())

	if s.sandbox {
		if err := s.ordersRepo.UpdateStatus(ctx, order.ID, enums.OrderStatusTestOrderNotSubmitted); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "mark test order")
		}
		s.logger.Info(logCtx, "test mode order recorded, fulfillment skipped")
		return nil
	}

	s.submitFulfillment(logCtx, order)
	return nil
}

// submitFulfillment forwards a paid order to Printify. Errors are written
// to the dead-letter table instead of being returned so the webhook can
// still acknowledge the event.
func (s *Service) submitFulfillment(ctx context.Context, order *models.Order) {
	request := s.buildOrderRequest(order)

	resp, err := s.fulfillment.CreateOrder(ctx, request)
	if err != nil {
		s.recordFailure(ctx, order.ID, request, err)
		return
	}

	if err := s.ordersRepo.MarkSubmitted(ctx, order.ID, resp.ID); err != nil {
		s.recordFailure(ctx, order.ID, request, err)
		return
	}

	logCtx := s.logger.WithField(ctx, "printify_order_id", resp.ID)
	s.logger.Info(logCtx, "order submitted for fulfillment")
}

func (s *Service) buildOrderRequest(order *models.Order) printify.OrderRequest {
	firstName, lastName := splitName(order.CustomerName)

	items := make([]printify.OrderLineItem, 0, len(order.LineItems))
	for _, item := range order.LineItems {
		items = append(items, printify.OrderLineItem{
			ProductID: item.PrintifyProductID,
			VariantID: item.PrintifyVariantID,
			Quantity:  item.Quantity,
		})
	}

	return printify.OrderRequest{
		ExternalID:               order.ID.String(),
		LineItems:                items,
		ShippingMethod:           s.shippingMethod,
		SendShippingNotification: true,
		AddressTo: printify.Address{
			FirstName: firstName,
			LastName:  lastName,
			Email:     order.CustomerEmail,
			Country:   order.ShippingAddress.Country,
			Region:    order.ShippingAddress.State,
			Address1:  order.ShippingAddress.Line1,
			Address2:  order.ShippingAddress.Line2,
			City:      order.ShippingAddress.City,
			Zip:       order.ShippingAddress.PostalCode,
		},
	}
}

func (s *Service) recordFailure(ctx context.Context, orderID uuid.UUID, request printify.OrderRequest, cause error) {
	payload, _ := json.Marshal(request)
	failure := &models.FulfillmentFailure{
		OrderID: orderID,
		Stage:   stageSubmitOrder,
		Message: cause.Error(),
		Payload: string(payload),
	}
	if err := s.ordersRepo.CreateFulfillmentFailure(ctx, failure); err != nil {
		s.logger.Error(ctx, "recording fulfillment failure", err)
	}
	s.logger.Error(ctx, "fulfillment submission failed, order left in paid", cause)
}

func shippingAddressFromSession(sess *stripe.CheckoutSession) (*types.ShippingAddress, error) {
	var addr *stripe.Address
	if sess.CollectedInformation != nil && sess.CollectedInformation.ShippingDetails != nil {
		addr = sess.CollectedInformation.ShippingDetails.Address
	}
	if addr == nil && sess.CustomerDetails != nil {
		addr = sess.CustomerDetails.Address
	}
	if addr == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session has no shipping address")
	}

	address := &types.ShippingAddress{
		Line1:      addr.Line1,
		Line2:      addr.Line2,
		City:       addr.City,
		State:      addr.State,
		PostalCode: addr.PostalCode,
		Country:    addr.Country,
	}
	if address.IsZero() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session has no shipping address")
	}
	return address, nil
}

func lineItemsFromSession(sess *stripe.CheckoutSession) (types.OrderLineItems, error) {
	if sess.LineItems == nil || len(sess.LineItems.Data) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "checkout session has no line items")
	}

	items := make(types.OrderLineItems, 0, len(sess.LineItems.Data))
	for _, li := range sess.LineItems.Data {
		if li.Price == nil || li.Price.Product == nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item missing product metadata")
		}
		meta := li.Price.Product.Metadata
		productID := meta[checkout.MetadataProductID]
		variantRaw := meta[checkout.MetadataVariantID]
		if productID == "" || variantRaw == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "line item missing fulfillment metadata")
		}
		variantID, err := strconv.ParseInt(variantRaw, 10, 64)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "parse variant id metadata")
		}
		items = append(items, types.OrderLineItem{
			PrintifyProductID: productID,
			PrintifyVariantID: variantID,
			Quantity:          int(li.Quantity),
			AmountCents:       li.Price.UnitAmount,
		})
	}
	return items, nil
}

func customerEmail(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails == nil {
		return ""
	}
	return sess.CustomerDetails.Email
}

func customerName(sess *stripe.CheckoutSession) string {
	if sess.CustomerDetails == nil {
		return ""
	}
	return sess.CustomerDetails.Name
}

// splitName separates a full name into first token and remainder, with
// placeholders for missing parts.
func splitName(full string) (string, string) {
	fields := strings.Fields(full)
	if len(fields) == 0 {
		return placeholderName, placeholderName
	}
	first := fields[0]
	last := strings.Join(fields[1:], " ")
	if last == "" {
		last = placeholderName
	}
	return first, last
}
