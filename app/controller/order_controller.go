package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"carpet-erp/models"
	"carpet-erp/repository"
	"carpet-erp/service"
)

// OrderController handles HTTP requests for submitted orders
type OrderController struct {
	orders   service.OrderServiceInterface
	invoices service.InvoiceServiceInterface
}

// NewOrderController creates a new OrderController
func NewOrderController(orders service.OrderServiceInterface, invoices service.InvoiceServiceInterface) *OrderController {
	return &OrderController{
		orders:   orders,
		invoices: invoices,
	}
}

// CreateOrder handles POST /orders
// Example request:
// POST /orders
// {
//   "customerName": "Ravi Textiles",
//   "lines": [
//     {"productId": "CP-001", "quantity": 2, "unitPrice": 200, "pricingUnit": "sqm"}
//   ]
// }
// Responds 201 with the stored order, or 422 with one problem per invalid line:
// {
//   "error": "order has invalid lines",
//   "problems": [{"position": 1, "productId": "CP-001", "message": "enter a price for this item"}]
// }
func (c *OrderController) CreateOrder(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 CreateOrder: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodPost {
		log.Printf("❌ CreateOrder: Method not allowed: %s", r.Method)
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req models.CreateOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ CreateOrder: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	order, err := c.orders.Submit(r.Context(), req)
	if err != nil {
		var verr *service.OrderValidationError
		switch {
		case errors.As(err, &verr):
			writeJSON(w, http.StatusUnprocessableEntity, models.OrderRejectedResponse{
				Error:    "order has invalid lines",
				Problems: verr.Problems,
			}, "CreateOrder")
		case errors.Is(err, service.ErrEmptyOrder), errors.Is(err, service.ErrInvalidGSTPercent):
			http.Error(w, err.Error(), http.StatusBadRequest)
		default:
			log.Printf("❌ CreateOrder: Error creating order: %v", err)
			http.Error(w, fmt.Sprintf("Failed to create order: %v", err), http.StatusInternalServerError)
		}
		return
	}

	log.Printf("✅ CreateOrder: Successfully created order id=%d", order.ID)
	writeJSON(w, http.StatusCreated, order, "CreateOrder")
}

// ListOrders handles GET /orders
func (c *OrderController) ListOrders(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	orders, err := c.orders.List(r.Context())
	if err != nil {
		log.Printf("❌ ListOrders: Error listing orders: %v", err)
		http.Error(w, fmt.Sprintf("Failed to list orders: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, models.OrderListResponse{Orders: orders}, "ListOrders")
}

// GetOrder handles GET /orders/{id}
func (c *OrderController) GetOrder(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/orders/")
	orderID, ok := parseOrderID(idStr)
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	order, err := c.orders.Get(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ GetOrder: Error fetching order %d: %v", orderID, err)
		http.Error(w, fmt.Sprintf("Failed to get order: %v", err), http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusOK, order, "GetOrder")
}

// DownloadInvoice handles GET /orders/{id}/invoice.pdf
func (c *OrderController) DownloadInvoice(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 DownloadInvoice: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	idStr, _ := pathID(r.URL.Path, "/orders/")
	orderID, ok := parseOrderID(idStr)
	if !ok {
		http.Error(w, "Invalid order ID", http.StatusBadRequest)
		return
	}

	pdf, filename, err := c.invoices.GenerateInvoicePDF(r.Context(), orderID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Order not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ DownloadInvoice: Error generating invoice for order %d: %v", orderID, err)
		http.Error(w, fmt.Sprintf("Failed to generate invoice: %v", err), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s\"", filename))
	w.Header().Set("Content-Length", strconv.Itoa(len(pdf)))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		log.Printf("❌ DownloadInvoice: Error writing PDF: %v", err)
	}
}
