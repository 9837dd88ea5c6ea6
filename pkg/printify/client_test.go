package printify

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/steno/caribbean-tees-pod/pkg/config"
)

func testConfig(baseURL string) config.PrintifyConfig {
	return config.PrintifyConfig{
		APIToken:       "token",
		ShopID:         "99",
		BaseURL:        baseURL,
		RequestTimeout: 5 * time.Second,
	}
}

func TestNewClientRequiresCredentials(t *testing.T) {
	_, err := NewClient(config.PrintifyConfig{ShopID: "99"}, nil)
	require.Error(t, err)

	_, err = NewClient(config.PrintifyConfig{APIToken: "token"}, nil)
	require.Error(t, err)
}

func TestGetProductsFollowsPagination(t *testing.T) {
	var pagesServed []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		require.Equal(t, "/shops/99/products.json", r.URL.Path)
		page := r.URL.Query().Get("page")
		pagesServed = append(pagesServed, page)

		switch page {
		case "1":
			json.NewEncoder(w).Encode(productListPage{
				CurrentPage: 1,
				LastPage:    2,
				Data:        []Product{{ID: "prod-1", Title: "Island Tee"}},
			})
		default:
			json.NewEncoder(w).Encode(productListPage{
				CurrentPage: 2,
				LastPage:    2,
				Data:        []Product{{ID: "prod-2", Title: "Reef Tee"}},
			})
		}
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	products, err := client.GetProducts(context.Background())
	require.NoError(t, err)
	require.Len(t, products, 2)
	require.Equal(t, []string{"1", "2"}, pagesServed)
	require.Equal(t, "prod-2", products[1].ID)
}

func TestCreateOrderPostsPayload(t *testing.T) {
	var received OrderRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/shops/99/orders.json", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		json.NewEncoder(w).Encode(OrderResponse{ID: "pf-order-1", Status: "pending"})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	resp, err := client.CreateOrder(context.Background(), OrderRequest{
		ExternalID:     "order-123",
		ShippingMethod: 1,
		LineItems: []OrderLineItem{
			{ProductID: "prod-1", VariantID: 42, Quantity: 2},
		},
		AddressTo: Address{FirstName: "Ann", LastName: "Joseph", Country: "JM"},
	})
	require.NoError(t, err)
	require.Equal(t, "pf-order-1", resp.ID)
	require.Equal(t, "order-123", received.ExternalID)
	require.Equal(t, int64(42), received.LineItems[0].VariantID)
}

func TestCreateOrderValidatesInput(t *testing.T) {
	client, err := NewClient(testConfig("http://127.0.0.1:1"), nil)
	require.NoError(t, err)

	_, err = client.CreateOrder(context.Background(), OrderRequest{})
	require.Error(t, err)

	_, err = client.CreateOrder(context.Background(), OrderRequest{ExternalID: "order-1"})
	require.Error(t, err)
}

func TestDoSurfacesAPIErrors(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("upstream exploded"))
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	_, err = client.GetProducts(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "DEPENDENCY_ERROR")
}

func TestGetShippingMethodsDefaultsCountry(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "US", r.URL.Query().Get("country"))
		json.NewEncoder(w).Encode(ShippingMethods{Standard: 499})
	}))
	defer server.Close()

	client, err := NewClient(testConfig(server.URL), nil)
	require.NoError(t, err)

	methods, err := client.GetShippingMethods(context.Background(), "")
	require.NoError(t, err)
	require.Equal(t, int64(499), methods.Standard)
}
