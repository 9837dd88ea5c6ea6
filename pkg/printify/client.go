package printify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/steno/caribbean-tees-pod/pkg/config"
	pkgerrors "github.com/steno/caribbean-tees-pod/pkg/errors"
	"github.com/steno/caribbean-tees-pod/pkg/logger"
)

var (
	errAPITokenRequired = errors.New("printify api token is required")
	errShopIDRequired   = errors.New("printify shop id is required")
)

// Doer abstracts *http.Client for tests.
type Doer interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the Printify v1 REST API for one shop.
type Client struct {
	httpClient Doer
	baseURL    string
	apiToken   string
	shopID     string
	logger     *logger.Logger
}

// NewClient validates the credentials and builds the API wrapper.
func NewClient(cfg config.PrintifyConfig, logg *logger.Logger) (*Client, error) {
	token := strings.TrimSpace(cfg.APIToken)
	if token == "" {
		return nil, errAPITokenRequired
	}
	shopID := strings.TrimSpace(cfg.ShopID)
	if shopID == "" {
		return nil, errShopIDRequired
	}
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.printify.com/v1"
	}
	return &Client{
		httpClient: &http.Client{Timeout: cfg.RequestTimeout},
		baseURL:    baseURL,
		apiToken:   token,
		shopID:     shopID,
		logger:     logg,
	}, nil
}

// WithHTTPClient swaps the transport; used by tests.
func (c *Client) WithHTTPClient(doer Doer) *Client {
	if doer != nil {
		c.httpClient = doer
	}
	return c
}

// GetProducts fetches the full product list, following pagination.
func (c *Client) GetProducts(ctx context.Context) ([]Product, error) {
	var all []Product
	page := 1
	for {
		var body productListPage
		path := fmt.Sprintf("/shops/%s/products.json?page=%d", c.shopID, page)
		if err := c.do(ctx, http.MethodGet, path, nil, &body); err != nil {
			return nil, err
		}
		all = append(all, body.Data...)
		if body.LastPage == 0 || body.CurrentPage >= body.LastPage {
			return all, nil
		}
		page = body.CurrentPage + 1
	}
}

// GetProduct fetches a single product by its remote id.
func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	if productID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	var product Product
	path := fmt.Sprintf("/shops/%s/products/%s.json", c.shopID, url.PathEscape(productID))
	if err := c.do(ctx, http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// CreateOrder submits an order for fulfillment and returns the remote id.
func (c *Client) CreateOrder(ctx context.Context, order OrderRequest) (*OrderResponse, error) {
	if order.ExternalID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order external id required")
	}
	if len(order.LineItems) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order line items required")
	}
	var resp OrderResponse
	path := fmt.Sprintf("/shops/%s/orders.json", c.shopID)
	if err := c.do(ctx, http.MethodPost, path, order, &resp); err != nil {
		return nil, err
	}
	if c.logger != nil {
		logCtx := c.logger.WithFields(ctx, map[string]any{
			"printify_order_id": resp.ID,
			"external_id":       order.ExternalID,
		})
		c.logger.Info(logCtx, "printify order created")
	}
	return &resp, nil
}

// GetShippingMethods returns shipping costs for the destination country.
func (c *Client) GetShippingMethods(ctx context.Context, country string) (*ShippingMethods, error) {
	if country == "" {
		country = "US"
	}
	var methods ShippingMethods
	path := fmt.Sprintf("/shops/%s/shipping.json?country=%s", c.shopID, url.QueryEscape(country))
	if err := c.do(ctx, http.MethodGet, path, nil, &methods); err != nil {
		return nil, err
	}
	return &methods, nil
}

func (c *Client) do(ctx context.Context, method, path string, payload, dest any) error {
	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode printify payload")
		}
		body = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "build printify request")
	}
	req.Header.Set("Authorization", "Bearer "+c.apiToken)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "printify request failed")
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return pkgerrors.New(pkgerrors.CodeDependency, "printify api error").WithDetails(map[string]any{
			"status": strconv.Itoa(resp.StatusCode),
			"body":   string(detail),
		})
	}

	if dest == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decode printify response")
	}
	return nil
}
