package service

import (
	"context"
	"strconv"

	log "github.com/sirupsen/logrus"

	"carpet-erp/metrics"
	"carpet-erp/models"
)

// StockRequest is the quantity an order asks of one catalog record
type StockRequest struct {
	Record   models.CatalogRecord
	Quantity int
}

// StockAlertServiceInterface defines the contract for stock shortfall checks
type StockAlertServiceInterface interface {
	Check(ctx context.Context, orderReference string, requests []StockRequest) []models.StockAlert
}

// StockAlertService compares requested quantities against catalog stock.
// It works on catalog data only and knows nothing about prices.
type StockAlertService struct {
	notifier Notifier
}

// NewStockAlertService creates a new StockAlertService
func NewStockAlertService(notifier Notifier) *StockAlertService {
	return &StockAlertService{notifier: notifier}
}

// Ensure StockAlertService implements StockAlertServiceInterface
var _ StockAlertServiceInterface = (*StockAlertService)(nil)

// Shortfalls returns one alert per stock-tracked product whose total
// requested quantity exceeds its stock. Products keep the order of their
// first request; untracked products are ignored.
func Shortfalls(orderReference string, requests []StockRequest) []models.StockAlert {
	type demand struct {
		record    models.CatalogRecord
		requested int
	}
	var order []string
	byProduct := make(map[string]*demand)
	for _, req := range requests {
		if !req.Record.IndividualStockTracking {
			continue
		}
		d, ok := byProduct[req.Record.ID]
		if !ok {
			d = &demand{record: req.Record}
			byProduct[req.Record.ID] = d
			order = append(order, req.Record.ID)
		}
		d.requested += req.Quantity
	}

	var alerts []models.StockAlert
	for _, id := range order {
		d := byProduct[id]
		if float64(d.requested) <= d.record.Stock {
			continue
		}
		available := d.record.Stock
		if available < 0 {
			available = 0
		}
		alerts = append(alerts, models.StockAlert{
			OrderReference: orderReference,
			ProductID:      id,
			ProductName:    d.record.Name,
			Requested:      d.requested,
			Available:      available,
			Shortfall:      float64(d.requested) - available,
		})
	}
	return alerts
}

// Check finds shortfalls and hands them to the notifier. Delivery failures
// are logged; they never fail the order that triggered them.
func (s *StockAlertService) Check(ctx context.Context, orderReference string, requests []StockRequest) []models.StockAlert {
	alerts := Shortfalls(orderReference, requests)
	if len(alerts) == 0 {
		return nil
	}

	log.Printf("⚠️  Order %s needs restock for %d products", orderReference, len(alerts))

	delivered := true
	if err := s.notifier.Notify(ctx, alerts); err != nil {
		log.Printf("❌ Failed to deliver stock alerts for order %s: %v", orderReference, err)
		delivered = false
	}
	metrics.StockAlerts.WithLabelValues(strconv.FormatBool(delivered)).Add(float64(len(alerts)))
	return alerts
}
