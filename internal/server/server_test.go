package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/matthieukhl/oms/internal/apperr"
	"github.com/matthieukhl/oms/internal/metrics"
	"github.com/matthieukhl/oms/internal/models"
	"github.com/matthieukhl/oms/internal/orders"
	"github.com/matthieukhl/oms/internal/queue"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type memCatalog struct {
	products map[string]*models.Product
}

func (m *memCatalog) Create(ctx context.Context, p *models.Product) error {
	p.ID = uuid.NewString()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) FindAll(ctx context.Context) ([]models.Product, error) {
	list := []models.Product{}
	for _, p := range m.products {
		list = append(list, *p)
	}
	return list, nil
}

func (m *memCatalog) FindOne(ctx context.Context, id string) (*models.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, apperr.NotFound("Product", id)
}

func (m *memCatalog) Update(ctx context.Context, p *models.Product) error {
	m.products[p.ID] = p
	return nil
}

func (m *memCatalog) Remove(ctx context.Context, id string) error {
	if _, ok := m.products[id]; !ok {
		return apperr.NotFound("Product", id)
	}
	delete(m.products, id)
	return nil
}

type memOrderStore struct {
	orders map[string]*models.Order
}

func (m *memOrderStore) Create(ctx context.Context, o *models.Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *memOrderStore) FindAll(ctx context.Context) ([]models.Order, error) {
	list := []models.Order{}
	for _, o := range m.orders {
		list = append(list, *o)
	}
	return list, nil
}

func (m *memOrderStore) FindOne(ctx context.Context, id string) (*models.Order, error) {
	if o, ok := m.orders[id]; ok {
		return o, nil
	}
	return nil, apperr.NotFound("Order", id)
}

func (m *memOrderStore) Update(ctx context.Context, o *models.Order) error {
	m.orders[o.ID] = o
	return nil
}

func (m *memOrderStore) Remove(ctx context.Context, id string) error {
	delete(m.orders, id)
	return nil
}

type memWorkerStore struct {
	workers map[string]*models.WorkerConfiguration
}

func (m *memWorkerStore) Create(ctx context.Context, w *models.WorkerConfiguration) error {
	w.ID = uuid.NewString()
	now := time.Now().UTC()
	w.CreatedAt = now
	w.UpdatedAt = now
	m.workers[w.ID] = w
	return nil
}

func (m *memWorkerStore) FindAll(ctx context.Context) ([]models.WorkerConfiguration, error) {
	list := []models.WorkerConfiguration{}
	for _, w := range m.workers {
		list = append(list, *w)
	}
	return list, nil
}

func (m *memWorkerStore) FindOne(ctx context.Context, id string) (*models.WorkerConfiguration, error) {
	if w, ok := m.workers[id]; ok {
		return w, nil
	}
	return nil, apperr.NotFound("Worker", id)
}

func (m *memWorkerStore) Update(ctx context.Context, w *models.WorkerConfiguration) error {
	m.workers[w.ID] = w
	return nil
}

func (m *memWorkerStore) Remove(ctx context.Context, id string) error {
	if _, ok := m.workers[id]; !ok {
		return apperr.NotFound("Worker", id)
	}
	delete(m.workers, id)
	return nil
}

// newTestServer wires a real workflow engine and queue over in-memory stores.
func newTestServer(products ...*models.Product) (*Server, *memCatalog) {
	cat := &memCatalog{products: map[string]*models.Product{}}
	for _, p := range products {
		cat.products[p.ID] = p
	}

	m := metrics.New("test")
	pub := queue.NewPublisher(time.Millisecond, m)
	svc := orders.NewService(cat, &memOrderStore{orders: map[string]*models.Order{}}, pub, m)

	return NewServer(nil, svc, cat, &memWorkerStore{workers: map[string]*models.WorkerConfiguration{}}, m), cat
}

func seededProduct(stock int) *models.Product {
	return &models.Product{
		ID:            uuid.NewString(),
		Name:          "White Table",
		BasePrice:     decimal.RequireFromString("499.99"),
		StockQuantity: stock,
		Attributes:    models.JSONMap{"material": "Wood"},
		CreatedAt:     time.Now().UTC(),
		UpdatedAt:     time.Now().UTC(),
	}
}

func doJSON(srv *Server, method, path string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, req)
	return w
}

func orderBody(productID string, quantity int, price string) map[string]any {
	return map[string]any{
		"customerId": uuid.NewString(),
		"items": []map[string]any{
			{"productId": productID, "quantity": quantity, "price": json.Number(price)},
		},
		"shippingAddress": map[string]any{
			"street":  "Main St 1",
			"city":    "Berlin",
			"zip":     "10115",
			"country": "DE",
		},
	}
}

func TestCreateOrderEndToEnd(t *testing.T) {
	product := seededProduct(100)
	srv, _ := newTestServer(product)

	w := doJSON(srv, http.MethodPost, "/api/orders", orderBody(product.ID, 2, "99.99"))

	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var order models.Order
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &order))
	assert.Equal(t, models.StatusDraft, order.Status)
	assert.True(t, order.Total.Equal(decimal.RequireFromString("199.98")),
		"expected total 199.98, got %s", order.Total)
	require.Len(t, order.Items, 1)
	assert.Equal(t, "White Table", order.Items[0].ProductSnapshot.Name)
	assert.False(t, order.CreatedAt.IsZero())
}

func TestCreateOrderInsufficientStock(t *testing.T) {
	product := seededProduct(1)
	srv, _ := newTestServer(product)

	w := doJSON(srv, http.MethodPost, "/api/orders", orderBody(product.ID, 2, "99.99"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Insufficient stock for product White Table. Available: 1")
}

func TestCreateOrderUnknownProduct(t *testing.T) {
	srv, _ := newTestServer()

	w := doJSON(srv, http.MethodPost, "/api/orders", orderBody(uuid.NewString(), 1, "10"))

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateOrderValidation(t *testing.T) {
	product := seededProduct(100)

	tests := []struct {
		name   string
		mutate func(body map[string]any)
	}{
		{"missing customerId", func(b map[string]any) { delete(b, "customerId") }},
		{"customerId not a uuid", func(b map[string]any) { b["customerId"] = "nope" }},
		{"empty items", func(b map[string]any) { b["items"] = []map[string]any{} }},
		{"zero quantity", func(b map[string]any) {
			b["items"] = []map[string]any{{"productId": product.ID, "quantity": 0, "price": json.Number("10")}}
		}},
		{"negative price", func(b map[string]any) {
			b["items"] = []map[string]any{{"productId": product.ID, "quantity": 1, "price": json.Number("-1")}}
		}},
		{"missing shipping street", func(b map[string]any) {
			b["shippingAddress"] = map[string]any{"city": "Berlin", "zip": "10115", "country": "DE"}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(product)
			body := orderBody(product.ID, 1, "10")
			tt.mutate(body)

			w := doJSON(srv, http.MethodPost, "/api/orders", body)

			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}
}

func TestGetOrderNotFound(t *testing.T) {
	srv, _ := newTestServer()

	w := doJSON(srv, http.MethodGet, "/api/orders/"+uuid.NewString(), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "not found")
}

func TestOrderLifecycleOverHTTP(t *testing.T) {
	product := seededProduct(100)
	srv, _ := newTestServer(product)

	created := doJSON(srv, http.MethodPost, "/api/orders", orderBody(product.ID, 1, "10"))
	require.Equal(t, http.StatusCreated, created.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &order))

	// PATCH status
	patched := doJSON(srv, http.MethodPatch, "/api/orders/"+order.ID, map[string]any{"status": "confirmed"})
	require.Equal(t, http.StatusOK, patched.Code)
	var updated models.Order
	require.NoError(t, json.Unmarshal(patched.Body.Bytes(), &updated))
	assert.Equal(t, models.StatusConfirmed, updated.Status)

	// GET reflects the patch
	fetched := doJSON(srv, http.MethodGet, "/api/orders/"+order.ID, nil)
	require.Equal(t, http.StatusOK, fetched.Code)

	// DELETE then 404
	deleted := doJSON(srv, http.MethodDelete, "/api/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	missing := doJSON(srv, http.MethodGet, "/api/orders/"+order.ID, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestUpdateOrderRejectsUnknownStatus(t *testing.T) {
	product := seededProduct(100)
	srv, _ := newTestServer(product)

	created := doJSON(srv, http.MethodPost, "/api/orders", orderBody(product.ID, 1, "10"))
	require.Equal(t, http.StatusCreated, created.Code)
	var order models.Order
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &order))

	w := doJSON(srv, http.MethodPatch, "/api/orders/"+order.ID, map[string]any{"status": "teleported"})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestProductCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer()

	created := doJSON(srv, http.MethodPost, "/api/products", map[string]any{
		"name":          "Monitor 27\" 4K",
		"basePrice":     json.Number("599.99"),
		"stockQuantity": 30,
		"attributes":    map[string]any{"panelTyp": "IPS"},
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var product models.Product
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &product))
	assert.NotEmpty(t, product.ID)

	fetched := doJSON(srv, http.MethodGet, "/api/products/"+product.ID, nil)
	assert.Equal(t, http.StatusOK, fetched.Code)

	patched := doJSON(srv, http.MethodPatch, "/api/products/"+product.ID, map[string]any{"stockQuantity": 25})
	require.Equal(t, http.StatusOK, patched.Code)
	var updated models.Product
	require.NoError(t, json.Unmarshal(patched.Body.Bytes(), &updated))
	assert.Equal(t, 25, updated.StockQuantity)

	deleted := doJSON(srv, http.MethodDelete, "/api/products/"+product.ID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
	missing := doJSON(srv, http.MethodGet, "/api/products/"+product.ID, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestCreateProductRejectsNonPositivePrice(t *testing.T) {
	srv, _ := newTestServer()

	w := doJSON(srv, http.MethodPost, "/api/products", map[string]any{
		"name":          "Free Table",
		"basePrice":     json.Number("0"),
		"stockQuantity": 5,
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkerCRUDOverHTTP(t *testing.T) {
	srv, _ := newTestServer()

	created := doJSON(srv, http.MethodPost, "/api/workers", map[string]any{
		"workerType":      "email",
		"name":            "Order Confirmation Email",
		"triggerStatuses": []string{"confirmed"},
		"config":          map[string]any{"templateId": "order-confirmation"},
	})
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var worker models.WorkerConfiguration
	require.NoError(t, json.Unmarshal(created.Body.Bytes(), &worker))
	assert.True(t, worker.Enabled, "enabled defaults to true")

	enabled := false
	patched := doJSON(srv, http.MethodPatch, "/api/workers/"+worker.ID, map[string]any{"enabled": enabled})
	require.Equal(t, http.StatusOK, patched.Code)
	var updated models.WorkerConfiguration
	require.NoError(t, json.Unmarshal(patched.Body.Bytes(), &updated))
	assert.False(t, updated.Enabled)

	deleted := doJSON(srv, http.MethodDelete, "/api/workers/"+worker.ID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestCreateWorkerRejectsUnknownType(t *testing.T) {
	srv, _ := newTestServer()

	w := doJSON(srv, http.MethodPost, "/api/workers", map[string]any{
		"workerType":      "carrier-pigeon",
		"name":            "Pigeon Post",
		"triggerStatuses": []string{"confirmed"},
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestMetricsEndpointExposesCounters(t *testing.T) {
	product := seededProduct(100)
	srv, _ := newTestServer(product)

	created := doJSON(srv, http.MethodPost, "/api/orders", orderBody(product.ID, 1, "10"))
	require.Equal(t, http.StatusCreated, created.Code)

	w := doJSON(srv, http.MethodGet, "/metrics", nil)

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "oms_test_orders_created_total 1")
	assert.Contains(t, body, fmt.Sprintf(`oms_test_events_published_total{type=%q} 1`, models.EventOrderCreated))
}
