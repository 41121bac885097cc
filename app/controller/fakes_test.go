package controller

import (
	"context"
	"errors"
	"fmt"

	"carpet-erp/models"
	"carpet-erp/repository"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	records map[string]models.CatalogRecord
	filters []repository.CatalogFilterParams
}

func newFakeCatalog() *fakeCatalog {
	return &fakeCatalog{records: map[string]models.CatalogRecord{
		"CP-001": {ID: "CP-001", Name: "Kashan Red", ProductType: "carpet", Width: "180 cm", Height: 270.0},
		"RM-010": {ID: "RM-010", Name: "Wool Yarn", ProductType: "raw_material", Weight: "2.5kg"},
		"CP-BAD": {ID: "CP-BAD", Name: "Broken", ProductType: "carpet", Width: "n/a"},
	}}
}

func (f *fakeCatalog) GetByID(_ context.Context, id string) (*models.CatalogRecord, error) {
	if id == "CP-ERR" {
		return nil, errBoom
	}
	rec, ok := f.records[id]
	if !ok {
		return nil, fmt.Errorf("catalog record %s: %w", id, repository.ErrNotFound)
	}
	return &rec, nil
}

func (f *fakeCatalog) List(_ context.Context, filters repository.CatalogFilterParams) ([]models.CatalogRecord, error) {
	f.filters = append(f.filters, filters)
	return []models.CatalogRecord{f.records["CP-001"]}, nil
}

func (f *fakeCatalog) Upsert(_ context.Context, records []models.CatalogRecord) (int, int, error) {
	return len(records), 0, nil
}

type fakeOrders struct {
	submitted []models.CreateOrderRequest
	submitErr error
	order     *models.OrderResponse
}

func (f *fakeOrders) Submit(_ context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	f.submitted = append(f.submitted, req)
	if f.submitErr != nil {
		return nil, f.submitErr
	}
	return f.order, nil
}

func (f *fakeOrders) Get(_ context.Context, id int64) (*models.OrderResponse, error) {
	if f.order == nil || f.order.ID != id {
		return nil, fmt.Errorf("order %d: %w", id, repository.ErrNotFound)
	}
	return f.order, nil
}

func (f *fakeOrders) List(_ context.Context) ([]models.OrderListItem, error) {
	if f.order == nil {
		return []models.OrderListItem{}, nil
	}
	return []models.OrderListItem{{Order: f.order.Order, LineCount: len(f.order.Lines)}}, nil
}

type fakeInvoices struct {
	orders *fakeOrders
}

func (f *fakeInvoices) GenerateInvoicePDF(ctx context.Context, orderID int64) ([]byte, string, error) {
	order, err := f.orders.Get(ctx, orderID)
	if err != nil {
		return nil, "", err
	}
	return []byte("%PDF-1.4 fake"), "invoice-" + order.Reference + ".pdf", nil
}

type fakeSync struct {
	err error
}

func (f *fakeSync) SyncCatalog(_ context.Context) (*models.CatalogSyncResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.CatalogSyncResponse{Inserted: 2, Updated: 1, Skipped: 1, Total: 4}, nil
}

type fakeOrderStore struct {
	created int
}

func (f *fakeOrderStore) Create(_ context.Context, order *models.Order, lines []models.OrderLine) (*models.OrderResponse, error) {
	f.created++
	return &models.OrderResponse{Order: *order, Lines: lines}, nil
}

func (f *fakeOrderStore) GetByID(_ context.Context, id int64) (*models.OrderResponse, error) {
	return nil, fmt.Errorf("order %d: %w", id, repository.ErrNotFound)
}

func (f *fakeOrderStore) List(context.Context) ([]models.OrderListItem, error) {
	return nil, nil
}
