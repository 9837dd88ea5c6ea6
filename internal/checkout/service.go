package checkout

import (
	"context"
	"errors"
	"strconv"

	"github.com/stripe/stripe-go/v84"

	"github.com/steno/caribbean-tees-pod/internal/cart"
	"github.com/steno/caribbean-tees-pod/pkg/config"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

// Metadata keys attached to every checkout line item. The webhook handler
// reads them back to map paid line items onto fulfillment products.
const (
	MetadataProductID = "printify_product_id"
	MetadataVariantID = "printify_variant_id"
)

// Request is the payload accepted by the checkout endpoint.
type Request struct {
	CartID string      `json:"cart_id,omitempty"`
	Items  []cart.Item `json:"items" validate:"required,min=1,dive"`
}

// Session is the created hosted-payment session reference.
type Session struct {
	ID  string `json:"session_id"`
	URL string `json:"url"`
}

// Service creates hosted payment sessions from cart contents.
type Service interface {
	CreateSession(ctx context.Context, req Request) (*Session, error)
}

type sessionCreator interface {
	Create(ctx context.Context, params *stripe.CheckoutSessionCreateParams) (*stripe.CheckoutSession, error)
}

// Params collects the dependencies for NewService.
type Params struct {
	Sessions sessionCreator
	Config   config.CheckoutConfig
	BaseURL  string
	Logger   *logger.Logger
}

type service struct {
	sessions         sessionCreator
	currency         string
	allowedCountries []string
	baseURL          string
	logger           *logger.Logger
}

func NewService(params Params) (Service, error) {
	if params.Sessions == nil {
		return nil, errors.New("checkout service requires a stripe session client")
	}
	if params.BaseURL == "" {
		return nil, errors.New("checkout service requires a base url")
	}
	if params.Logger == nil {
		return nil, errors.New("checkout service requires a logger")
	}
	currency := params.Config.Currency
	if currency == "" {
		currency = "usd"
	}
	return &service{
		sessions:         params.Sessions,
		currency:         currency,
		allowedCountries: params.Config.AllowedCountries,
		baseURL:          params.BaseURL,
		logger:           params.Logger,
	}, nil
}

// CreateSession validates the cart and requests a hosted payment session.
// Nothing is persisted locally; orders exist only after payment completes.
func (s *service) CreateSession(ctx context.Context, req Request) (*Session, error) {
	if len(req.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "cart is empty")
	}

	lineItems := make([]*stripe.CheckoutSessionCreateLineItemParams, 0, len(req.Items))
	for i, item := range req.Items {
		if err := validateItem(item); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid cart item").
				WithDetails(map[string]any{"index": i})
		}

		productData := &stripe.CheckoutSessionCreateLineItemPriceDataProductDataParams{
			Name: stripe.String(item.Title),
			Metadata: map[string]string{
				MetadataProductID: item.PrintifyProductID,
				MetadataVariantID: strconv.FormatInt(item.PrintifyVariantID, 10),
			},
		}
		if item.VariantTitle != "" {
			productData.Description = stripe.String(item.VariantTitle)
		}
		if item.ImageURL != "" {
			productData.Images = []*string{stripe.String(item.ImageURL)}
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionCreateLineItemParams{
			PriceData: &stripe.CheckoutSessionCreateLineItemPriceDataParams{
				Currency:    stripe.String(s.currency),
				UnitAmount:  stripe.Int64(item.UnitAmountCents),
				ProductData: productData,
			},
			Quantity: stripe.Int64(int64(item.Quantity)),
		})
	}

	params := &stripe.CheckoutSessionCreateParams{
		Mode:       stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems:  lineItems,
		SuccessURL: stripe.String(s.baseURL + "/checkout/success?session_id={CHECKOUT_SESSION_ID}"),
		CancelURL:  stripe.String(s.baseURL + "/cart"),
	}
	if len(s.allowedCountries) > 0 {
		params.ShippingAddressCollection = &stripe.CheckoutSessionCreateShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(s.allowedCountries),
		}
	}

	sess, err := s.sessions.Create(ctx, params)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating checkout session")
	}

	logCtx := s.logger.WithFields(ctx, map[string]any{
		"session_id": sess.ID,
		"item_count": len(req.Items),
	})
	s.logger.Info(logCtx, "checkout session created")

	return &Session{ID: sess.ID, URL: sess.URL}, nil
}

func validateItem(item cart.Item) error {
	switch {
	case item.PrintifyProductID == "":
		return errors.New("missing product id")
	case item.PrintifyVariantID == 0:
		return errors.New("missing variant id")
	case item.Title == "":
		return errors.New("missing title")
	case item.UnitAmountCents <= 0:
		return errors.New("unit amount must be positive")
	case item.Quantity <= 0:
		return errors.New("quantity must be positive")
	default:
		return nil
	}
}
