package repository

import (
	"context"
	"errors"

	"carpet-erp/models"
)

// ErrNotFound is returned when a requested row does not exist
var ErrNotFound = errors.New("not found")

// CatalogFilterParams represents optional filter parameters for catalog listing
type CatalogFilterParams struct {
	ProductType *string
	Search      *string
}

// CatalogRepositoryInterface defines the contract for catalog record operations
type CatalogRepositoryInterface interface {
	GetByID(ctx context.Context, id string) (*models.CatalogRecord, error)
	List(ctx context.Context, filters CatalogFilterParams) ([]models.CatalogRecord, error)
	// Upsert inserts new records and updates existing ones by id
	Upsert(ctx context.Context, records []models.CatalogRecord) (inserted int, updated int, err error)
}

// OrderRepositoryInterface defines the contract for order persistence
type OrderRepositoryInterface interface {
	Create(ctx context.Context, order *models.Order, lines []models.OrderLine) (*models.OrderResponse, error)
	GetByID(ctx context.Context, id int64) (*models.OrderResponse, error)
	List(ctx context.Context) ([]models.OrderListItem, error)
}
