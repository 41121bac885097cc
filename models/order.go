package models

import "encoding/json"

// Order statuses
const (
	OrderStatusSubmitted = "submitted"
)

// Order represents a submitted order in the database
type Order struct {
	ID            int64   `json:"id"`
	Reference     string  `json:"reference"`
	Status        string  `json:"status"`
	CustomerName  string  `json:"customerName,omitempty"`
	CustomerPhone string  `json:"customerPhone,omitempty"`
	Notes         string  `json:"notes,omitempty"`
	Subtotal      float64 `json:"subtotal"`
	GSTPercent    float64 `json:"gstPercent"`
	GSTAmount     float64 `json:"gstAmount"`
	GrandTotal    float64 `json:"grandTotal"`
	CreatedAt     string  `json:"createdAt"`
}

// OrderLine is the read-only snapshot of a priced line item taken when the
// order is submitted
type OrderLine struct {
	ID          int64           `json:"id"`
	OrderID     int64           `json:"orderId"`
	Position    int             `json:"position"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	ProductType string          `json:"productType"`
	Quantity    int             `json:"quantity"`
	UnitPrice   float64         `json:"unitPrice"`
	PricingUnit string          `json:"pricingUnit"`
	Dimensions  json.RawMessage `json:"dimensions"`
	UnitValue   float64         `json:"unitValue"`
	TotalValue  float64         `json:"totalValue"`
	TotalPrice  float64         `json:"totalPrice"`
}

// CreateOrderLineRequest is one line of an order submission
type CreateOrderLineRequest struct {
	ProductID   string  `json:"productId"`
	ProductType string  `json:"productType,omitempty"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
	PricingUnit string  `json:"pricingUnit"`
}

// CreateOrderRequest represents the request body for submitting an order
// Example:
// {
//   "customerName": "Ravi Textiles",
//   "customerPhone": "+91 98765 43210",
//   "gstPercent": 12,
//   "lines": [
//     {"productId": "CP-001", "quantity": 2, "unitPrice": 200, "pricingUnit": "sqm"}
//   ]
// }
// gstPercent is optional; the server default applies when it is omitted
type CreateOrderRequest struct {
	CustomerName  string                   `json:"customerName,omitempty"`
	CustomerPhone string                   `json:"customerPhone,omitempty"`
	Notes         string                   `json:"notes,omitempty"`
	GSTPercent    *float64                 `json:"gstPercent,omitempty"`
	Lines         []CreateOrderLineRequest `json:"lines"`
}

// LineProblem explains why one submitted line could not be priced
type LineProblem struct {
	Position  int    `json:"position"`
	ProductID string `json:"productId"`
	Message   string `json:"message"`
}

// OrderRejectedResponse is returned when any line of a submission is invalid
type OrderRejectedResponse struct {
	Error    string        `json:"error"`
	Problems []LineProblem `json:"problems"`
}

// OrderResponse represents a single order with its lines
// Example response:
// {
//   "id": 1,
//   "reference": "5b0c7c1e-8f0e-4c55-9d43-2f8f3e0a1b2c",
//   "status": "submitted",
//   "customerName": "Ravi Textiles",
//   "subtotal": 1944,
//   "gstPercent": 12,
//   "gstAmount": 233.28,
//   "grandTotal": 2177.28,
//   "createdAt": "2026-10-15T10:30:00Z",
//   "lines": [...]
// }
type OrderResponse struct {
	Order
	Lines []OrderLine `json:"lines"`
}

// OrderListItem represents an order in a list response
type OrderListItem struct {
	Order
	LineCount int `json:"lineCount"`
}

// OrderListResponse represents the response for listing orders
type OrderListResponse struct {
	Orders []OrderListItem `json:"orders"`
}
