package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"carpet-erp/models"
	"carpet-erp/repository"
)

type fakeCatalogRepo struct {
	records map[string]models.CatalogRecord
	upserts [][]models.CatalogRecord
	err     error
}

func newFakeCatalogRepo(records ...models.CatalogRecord) *fakeCatalogRepo {
	r := &fakeCatalogRepo{records: make(map[string]models.CatalogRecord)}
	for _, rec := range records {
		r.records[rec.ID] = rec
	}
	return r
}

func (r *fakeCatalogRepo) GetByID(_ context.Context, id string) (*models.CatalogRecord, error) {
	if r.err != nil {
		return nil, r.err
	}
	rec, ok := r.records[id]
	if !ok {
		return nil, fmt.Errorf("catalog record %s: %w", id, repository.ErrNotFound)
	}
	return &rec, nil
}

func (r *fakeCatalogRepo) List(_ context.Context, _ repository.CatalogFilterParams) ([]models.CatalogRecord, error) {
	out := make([]models.CatalogRecord, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, rec)
	}
	return out, nil
}

func (r *fakeCatalogRepo) Upsert(_ context.Context, records []models.CatalogRecord) (int, int, error) {
	if r.err != nil {
		return 0, 0, r.err
	}
	r.upserts = append(r.upserts, records)
	inserted, updated := 0, 0
	for _, rec := range records {
		if _, ok := r.records[rec.ID]; ok {
			updated++
		} else {
			inserted++
		}
		r.records[rec.ID] = rec
	}
	return inserted, updated, nil
}

type fakeOrderRepo struct {
	orders []models.OrderResponse
	err    error
}

func (r *fakeOrderRepo) Create(_ context.Context, order *models.Order, lines []models.OrderLine) (*models.OrderResponse, error) {
	if r.err != nil {
		return nil, r.err
	}
	saved := models.OrderResponse{Order: *order, Lines: lines}
	saved.ID = int64(len(r.orders) + 1)
	saved.CreatedAt = "2026-10-15T10:30:00Z"
	for i := range saved.Lines {
		saved.Lines[i].ID = int64(i + 1)
		saved.Lines[i].OrderID = saved.ID
	}
	r.orders = append(r.orders, saved)
	return &saved, nil
}

func (r *fakeOrderRepo) GetByID(_ context.Context, id int64) (*models.OrderResponse, error) {
	for _, o := range r.orders {
		if o.ID == id {
			o := o
			return &o, nil
		}
	}
	return nil, fmt.Errorf("order %d: %w", id, repository.ErrNotFound)
}

func (r *fakeOrderRepo) List(_ context.Context) ([]models.OrderListItem, error) {
	out := make([]models.OrderListItem, 0, len(r.orders))
	for i := len(r.orders) - 1; i >= 0; i-- {
		out = append(out, models.OrderListItem{Order: r.orders[i].Order, LineCount: len(r.orders[i].Lines)})
	}
	return out, nil
}

type fakeNotifier struct {
	mu     sync.Mutex
	alerts [][]models.StockAlert
	err    error
}

func (n *fakeNotifier) Notify(_ context.Context, alerts []models.StockAlert) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.alerts = append(n.alerts, alerts)
	return n.err
}

var errBoom = errors.New("boom")

func carpetRecord() models.CatalogRecord {
	return models.CatalogRecord{
		ID:          "CP-001",
		Name:        "Kashan Red",
		ProductType: "carpet",
		Width:       "180 cm",
		Height:      270.0,
		Stock:       5,
	}
}

func yarnRecord() models.CatalogRecord {
	return models.CatalogRecord{
		ID:                      "RM-010",
		Name:                    "Wool Yarn",
		ProductType:             "raw_material",
		Weight:                  "2.5kg",
		Stock:                   3,
		IndividualStockTracking: true,
	}
}
