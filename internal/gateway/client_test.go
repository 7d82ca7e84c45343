package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/hoangnd-dev/storefront/pkg/config"
	"github.com/hoangnd-dev/storefront/pkg/db/models"
	"github.com/hoangnd-dev/storefront/pkg/types"
)

func newTestClient(t *testing.T, baseURL string, simulate bool) Client {
	t.Helper()
	c, err := NewClient(config.GatewayConfig{
		BaseURL:              baseURL,
		Timeout:              2 * time.Second,
		SimulateOrderSuccess: simulate,
	}, nil)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return c
}

func TestFetchProductsSuccess(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/products" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		_ = json.NewEncoder(w).Encode([]models.Product{
			{ID: 1, Name: "Pho Bo", Price: decimal.NewFromInt(55000)},
			{ID: 2, Name: "Banh Mi", Price: decimal.NewFromInt(25000)},
		})
	}))
	defer srv.Close()

	products := newTestClient(t, srv.URL+"/api", false).FetchProducts(context.Background())
	if len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if products[0].Name != "Pho Bo" {
		t.Fatalf("unexpected first product %q", products[0].Name)
	}
}

func TestFetchProductsEmptyOnFailure(t *testing.T) {
	t.Parallel()

	cases := map[string]http.HandlerFunc{
		"server error": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		},
		"not found": func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
		"malformed payload": func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{"not":"a list"`))
		},
	}

	for name, handler := range cases {
		t.Run(name, func(t *testing.T) {
			srv := httptest.NewServer(handler)
			defer srv.Close()

			products := newTestClient(t, srv.URL+"/api", false).FetchProducts(context.Background())
			if len(products) != 0 {
				t.Fatalf("expected empty list, got %d products", len(products))
			}
		})
	}
}

func TestFetchProductsEmptyWhenUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	products := newTestClient(t, srv.URL+"/api", false).FetchProducts(context.Background())
	if len(products) != 0 {
		t.Fatalf("expected empty list, got %d products", len(products))
	}
}

func sampleOrder() types.OrderRequest {
	return types.OrderRequest{
		CustomerName:    "Nguyen Van A",
		CustomerPhone:   "0912345678",
		CustomerAddress: "1 Tran Hung Dao, Ha Noi",
		TotalPrice:      decimal.NewFromInt(55000),
		Items: []types.OrderItemRequest{
			{ProductID: 1, ProductName: "Pho Bo", ProductPrice: decimal.NewFromInt(55000), Quantity: 1, TotalPrice: decimal.NewFromInt(55000)},
		},
	}
}

func TestSubmitOrderAccepted(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/orders" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("unexpected content type %q", ct)
		}
		var got types.OrderRequest
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Errorf("decoding order: %v", err)
		}
		if got.CustomerName != "Nguyen Van A" {
			t.Errorf("unexpected customer %q", got.CustomerName)
		}
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(types.OrderCreated{Message: "order created successfully", OrderID: 1})
	}))
	defer srv.Close()

	if !newTestClient(t, srv.URL+"/api", false).SubmitOrder(context.Background(), sampleOrder()) {
		t.Fatal("expected order to be accepted")
	}
}

func TestSubmitOrderRejectedByReachableServer(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(types.Message{Message: "invalid order"})
	}))
	defer srv.Close()

	// Simulation only covers unreachable servers, never genuine rejections.
	if newTestClient(t, srv.URL+"/api", true).SubmitOrder(context.Background(), sampleOrder()) {
		t.Fatal("expected rejection to be reported as failure")
	}
}

func TestSubmitOrderUnreachable(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	if newTestClient(t, srv.URL+"/api", false).SubmitOrder(context.Background(), sampleOrder()) {
		t.Fatal("expected failure when unreachable and simulation disabled")
	}
	if !newTestClient(t, srv.URL+"/api", true).SubmitOrder(context.Background(), sampleOrder()) {
		t.Fatal("expected simulated success when unreachable and simulation enabled")
	}
}
