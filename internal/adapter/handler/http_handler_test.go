package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/rl1809/cart-store/internal/adapter/notifier"
	"github.com/rl1809/cart-store/internal/core/domain"
	"github.com/rl1809/cart-store/internal/core/service"
)

type fakeCatalog struct {
	products map[int64]domain.Product
	stock    map[int64]int
}

func (f *fakeCatalog) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, errors.New("product not found")
	}
	return &p, nil
}

func (f *fakeCatalog) GetStock(ctx context.Context, id int64) (*domain.Stock, error) {
	amount, ok := f.stock[id]
	if !ok {
		return nil, errors.New("stock not found")
	}
	return &domain.Stock{ID: id, Amount: amount}, nil
}

type fakeSnapshots struct {
	saved []domain.CartItem
}

func (f *fakeSnapshots) Load(ctx context.Context) ([]domain.CartItem, error) {
	return f.saved, nil
}

func (f *fakeSnapshots) Save(ctx context.Context, cart []domain.CartItem) error {
	f.saved = cart
	return nil
}

func newTestServer(t *testing.T) (*httptest.Server, *notifier.Buffer) {
	t.Helper()

	catalog := &fakeCatalog{
		products: map[int64]domain.Product{
			1: {ID: 1, Title: "sneaker", Price: 99.9},
		},
		stock: map[int64]int{1: 5},
	}
	notifications := notifier.NewBuffer()
	carts := service.NewCartService(catalog, &fakeSnapshots{}, notifications, zap.NewNop())

	mux := http.NewServeMux()
	NewHTTPHandler(carts, notifications).Register(mux)

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, notifications
}

func getCart(t *testing.T, srv *httptest.Server) cartResponse {
	t.Helper()

	resp, err := http.Get(srv.URL + "/api/cart")
	if err != nil {
		t.Fatalf("get cart: %v", err)
	}
	defer resp.Body.Close()

	var cart cartResponse
	if err := json.NewDecoder(resp.Body).Decode(&cart); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return cart
}

func TestAddItem(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/cart/items", "application/json",
		strings.NewReader(`{"product_id":1}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := getCart(t, srv)
	if len(cart.Items) != 1 || cart.Items[0].ID != 1 || cart.Items[0].Amount != 1 {
		t.Errorf("unexpected cart: %+v", cart.Items)
	}
}

func TestAddItem_InvalidBody(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/cart/items", "application/json",
		strings.NewReader(`{`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", resp.StatusCode)
	}
}

func TestUpdateItem(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := http.Post(srv.URL+"/api/cart/items", "application/json",
		strings.NewReader(`{"product_id":1}`))
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/api/cart/items/1",
		strings.NewReader(`{"amount":4}`))
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("put failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	cart := getCart(t, srv)
	if len(cart.Items) != 1 || cart.Items[0].Amount != 4 {
		t.Errorf("unexpected cart: %+v", cart.Items)
	}
}

func TestRemoveItem(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, _ := http.Post(srv.URL+"/api/cart/items", "application/json",
		strings.NewReader(`{"product_id":1}`))
	resp.Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/cart/items/1", nil)
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	if cart := getCart(t, srv); len(cart.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", cart.Items)
	}
}

// The mutation endpoint keeps reporting transport-level success; the
// rejection is delivered through the notifications endpoint.
func TestAddItem_FailureSurfacesAsNotification(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Post(srv.URL+"/api/cart/items", "application/json",
		strings.NewReader(`{"product_id":99}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	resp, err = http.Get(srv.URL + "/api/notifications")
	if err != nil {
		t.Fatalf("get notifications: %v", err)
	}
	defer resp.Body.Close()

	var pending []domain.Notification
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(pending) != 1 || pending[0].Message != "error adding product" {
		t.Errorf("expected one add-failed notification, got %+v", pending)
	}
}

func TestNotifications_EmptyQueue(t *testing.T) {
	srv, _ := newTestServer(t)

	resp, err := http.Get(srv.URL + "/api/notifications")
	if err != nil {
		t.Fatalf("get notifications: %v", err)
	}
	defer resp.Body.Close()

	var pending []domain.Notification
	if err := json.NewDecoder(resp.Body).Decode(&pending); err != nil {
		t.Fatalf("decode notifications: %v", err)
	}
	if len(pending) != 0 {
		t.Errorf("expected empty list, got %+v", pending)
	}
}
