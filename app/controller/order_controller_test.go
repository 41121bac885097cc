package controller

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"carpet-erp/models"
	"carpet-erp/service"
)

func storedOrder() *models.OrderResponse {
	return &models.OrderResponse{
		Order: models.Order{
			ID:         7,
			Reference:  "5b0c7c1e-8f0e-4c55-9d43-2f8f3e0a1b2c",
			Status:     models.OrderStatusSubmitted,
			Subtotal:   1944,
			GSTPercent: 12,
			GSTAmount:  233.28,
			GrandTotal: 2177.28,
		},
		Lines: []models.OrderLine{{ID: 1, OrderID: 7, Position: 1, ProductID: "CP-001", Quantity: 2, PricingUnit: "sqm"}},
	}
}

func newTestOrderController(orders *fakeOrders) *OrderController {
	return NewOrderController(orders, &fakeInvoices{orders: orders})
}

func TestCreateOrder(t *testing.T) {
	orders := &fakeOrders{order: storedOrder()}
	c := newTestOrderController(orders)

	body := `{"customerName":"Ravi","gstPercent":5,"lines":[{"productId":"CP-001","quantity":2,"unitPrice":200,"pricingUnit":"sqm"}]}`
	rec := httptest.NewRecorder()
	c.CreateOrder(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	require.Len(t, orders.submitted, 1)
	assert.Equal(t, "Ravi", orders.submitted[0].CustomerName)
	require.NotNil(t, orders.submitted[0].GSTPercent)
	assert.Equal(t, 5.0, *orders.submitted[0].GSTPercent)

	var resp models.OrderResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, int64(7), resp.ID)
	assert.Len(t, resp.Lines, 1)
}

func TestCreateOrderRejected(t *testing.T) {
	orders := &fakeOrders{submitErr: &service.OrderValidationError{Problems: []models.LineProblem{
		{Position: 1, ProductID: "CP-001", Message: "enter a price for this item"},
	}}}
	c := newTestOrderController(orders)

	rec := httptest.NewRecorder()
	c.CreateOrder(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(`{"lines":[{"productId":"CP-001","quantity":1}]}`)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	var resp models.OrderRejectedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Problems, 1)
	assert.Equal(t, "enter a price for this item", resp.Problems[0].Message)
}

func TestCreateOrderRejectsUnitNotOfferedForProduct(t *testing.T) {
	store := &fakeOrderStore{}
	svc := service.NewOrderService(newFakeCatalog(), store, service.NewStockAlertService(service.LogNotifier{}), 12)
	c := NewOrderController(svc, &fakeInvoices{orders: &fakeOrders{}})

	body := `{"lines":[{"productId":"RM-010","quantity":2,"unitPrice":100,"pricingUnit":"gsm"}]}`
	rec := httptest.NewRecorder()
	c.CreateOrder(rec, httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body)))

	require.Equal(t, http.StatusUnprocessableEntity, rec.Code, rec.Body.String())
	assert.Zero(t, store.created)

	var resp models.OrderRejectedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Problems, 1)
	assert.Equal(t, "RM-010", resp.Problems[0].ProductID)
	assert.Equal(t, "gsm pricing is not available for raw_material products", resp.Problems[0].Message)
}

func TestCreateOrderErrors(t *testing.T) {
	tests := []struct {
		name   string
		method string
		body   string
		err    error
		status int
	}{
		{"wrong method", http.MethodGet, "", nil, http.StatusMethodNotAllowed},
		{"bad json", http.MethodPost, `{`, nil, http.StatusBadRequest},
		{"fractional quantity", http.MethodPost, `{"lines":[{"productId":"CP-001","quantity":0.5}]}`, nil, http.StatusBadRequest},
		{"empty order", http.MethodPost, `{"lines":[]}`, service.ErrEmptyOrder, http.StatusBadRequest},
		{"bad gst", http.MethodPost, `{"gstPercent":150,"lines":[]}`, service.ErrInvalidGSTPercent, http.StatusBadRequest},
		{"storage failure", http.MethodPost, `{"lines":[]}`, errBoom, http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestOrderController(&fakeOrders{submitErr: tt.err})
			rec := httptest.NewRecorder()
			c.CreateOrder(rec, httptest.NewRequest(tt.method, "/orders", strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
		})
	}
}

func TestGetAndListOrders(t *testing.T) {
	c := newTestOrderController(&fakeOrders{order: storedOrder()})

	rec := httptest.NewRecorder()
	c.GetOrder(rec, httptest.NewRequest(http.MethodGet, "/orders/7", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"reference":"5b0c7c1e-8f0e-4c55-9d43-2f8f3e0a1b2c"`)

	rec = httptest.NewRecorder()
	c.GetOrder(rec, httptest.NewRequest(http.MethodGet, "/orders/8", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	c.GetOrder(rec, httptest.NewRequest(http.MethodGet, "/orders/abc", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	c.ListOrders(rec, httptest.NewRequest(http.MethodGet, "/orders", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	var list models.OrderListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &list))
	require.Len(t, list.Orders, 1)
	assert.Equal(t, 1, list.Orders[0].LineCount)
}

func TestDownloadInvoice(t *testing.T) {
	c := newTestOrderController(&fakeOrders{order: storedOrder()})

	rec := httptest.NewRecorder()
	c.DownloadInvoice(rec, httptest.NewRequest(http.MethodGet, "/orders/7/invoice.pdf", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "invoice-5b0c7c1e-8f0e-4c55-9d43-2f8f3e0a1b2c.pdf")
	assert.Equal(t, "%PDF-1.4 fake", rec.Body.String())

	rec = httptest.NewRecorder()
	c.DownloadInvoice(rec, httptest.NewRequest(http.MethodGet, "/orders/9/invoice.pdf", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
