package service

import (
	"context"

	"carpet-erp/models"
)

// OrderServiceInterface defines the contract for order operations
type OrderServiceInterface interface {
	Submit(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error)
	Get(ctx context.Context, id int64) (*models.OrderResponse, error)
	List(ctx context.Context) ([]models.OrderListItem, error)
}

// InvoiceServiceInterface defines the contract for invoice generation
type InvoiceServiceInterface interface {
	// GenerateInvoicePDF returns the PDF and its file name
	GenerateInvoicePDF(ctx context.Context, orderID int64) ([]byte, string, error)
}
