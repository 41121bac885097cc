package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"carpet-erp/metrics"
	"carpet-erp/models"
	"carpet-erp/pricing"
	"carpet-erp/repository"
)

var (
	ErrEmptyOrder        = errors.New("an order needs at least one line")
	ErrInvalidGSTPercent = errors.New("gst percent must be between 0 and 100")
)

// OrderValidationError carries every line that could not be priced
type OrderValidationError struct {
	Problems []models.LineProblem
}

func (e *OrderValidationError) Error() string {
	msgs := make([]string, 0, len(e.Problems))
	for _, p := range e.Problems {
		msgs = append(msgs, fmt.Sprintf("line %d (%s): %s", p.Position, p.ProductID, p.Message))
	}
	return "order has invalid lines: " + strings.Join(msgs, "; ")
}

// OrderService prices and persists order submissions
type OrderService struct {
	catalog    repository.CatalogRepositoryInterface
	orders     repository.OrderRepositoryInterface
	alerts     StockAlertServiceInterface
	gstPercent float64
}

// NewOrderService creates a new OrderService. defaultGSTPercent applies to
// submissions that do not name their own rate.
func NewOrderService(catalog repository.CatalogRepositoryInterface, orders repository.OrderRepositoryInterface, alerts StockAlertServiceInterface, defaultGSTPercent float64) *OrderService {
	return &OrderService{
		catalog:    catalog,
		orders:     orders,
		alerts:     alerts,
		gstPercent: defaultGSTPercent,
	}
}

// Ensure OrderService implements OrderServiceInterface
var _ OrderServiceInterface = (*OrderService)(nil)

// pricedLine is a submitted line after the engine has recomputed it
type pricedLine struct {
	record models.CatalogRecord
	item   pricing.LineItem
}

// priceLines recomputes every submitted line from the catalog. Client-side
// totals are never trusted. Lines that fail are reported as problems.
func (s *OrderService) priceLines(ctx context.Context, lines []models.CreateOrderLineRequest) ([]pricedLine, []models.LineProblem, error) {
	priced := make([]pricedLine, 0, len(lines))
	var problems []models.LineProblem

	for i, req := range lines {
		position := i + 1
		problem := func(msg string) {
			problems = append(problems, models.LineProblem{Position: position, ProductID: req.ProductID, Message: msg})
		}

		if strings.TrimSpace(req.ProductID) == "" {
			problem("productId is required")
			continue
		}

		productType, err := pricing.ParseProductType(req.ProductType)
		if err != nil {
			problem(err.Error())
			continue
		}

		record, err := s.catalog.GetByID(ctx, req.ProductID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				problem("product not found in catalog")
				continue
			}
			return nil, nil, fmt.Errorf("failed to look up product %s: %w", req.ProductID, err)
		}
		if req.ProductType == "" {
			if productType, err = pricing.ParseProductType(record.ProductType); err != nil {
				problem(err.Error())
				continue
			}
		}

		unit, err := pricing.ParseUnit(req.PricingUnit)
		if err != nil {
			problem(err.Error())
			continue
		}

		item := pricing.NewLineItem(record.ID, pricing.Resolve(*record, productType))
		item, err = item.Apply(pricing.Edit{
			Quantity:    &req.Quantity,
			UnitPrice:   &req.UnitPrice,
			PricingUnit: &unit,
		})
		if err != nil {
			problem(err.Error())
			continue
		}

		metrics.PriceCalculations.WithLabelValues(string(item.PricingUnit), strconv.FormatBool(item.IsValid)).Inc()
		if !item.IsValid {
			problem(item.ErrorMessage)
			continue
		}
		priced = append(priced, pricedLine{record: *record, item: item})
	}

	return priced, problems, nil
}

// Submit prices an order, applies GST and stores it with a fresh reference.
// Any invalid line rejects the whole order with an *OrderValidationError.
func (s *OrderService) Submit(ctx context.Context, req models.CreateOrderRequest) (*models.OrderResponse, error) {
	log.Printf("📥 Submit: Received order with %d lines", len(req.Lines))

	if len(req.Lines) == 0 {
		metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
		return nil, ErrEmptyOrder
	}

	gstPercent := s.gstPercent
	if req.GSTPercent != nil {
		gstPercent = *req.GSTPercent
	}
	if gstPercent < 0 || gstPercent > 100 {
		metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
		return nil, ErrInvalidGSTPercent
	}

	priced, problems, err := s.priceLines(ctx, req.Lines)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()
		return nil, err
	}
	if len(problems) > 0 {
		log.Printf("❌ Submit: Rejected order with %d invalid lines", len(problems))
		metrics.OrdersSubmitted.WithLabelValues("rejected").Inc()
		return nil, &OrderValidationError{Problems: problems}
	}

	items := make([]pricing.LineItem, 0, len(priced))
	for _, p := range priced {
		items = append(items, p.item)
	}
	subtotal := pricing.Total(items)
	gstAmount := subtotal * gstPercent / 100

	order := &models.Order{
		Reference:     uuid.New().String(),
		Status:        models.OrderStatusSubmitted,
		CustomerName:  strings.TrimSpace(req.CustomerName),
		CustomerPhone: strings.TrimSpace(req.CustomerPhone),
		Notes:         strings.TrimSpace(req.Notes),
		Subtotal:      subtotal,
		GSTPercent:    gstPercent,
		GSTAmount:     gstAmount,
		GrandTotal:    subtotal + gstAmount,
	}

	lines, err := snapshotLines(priced)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()
		return nil, err
	}

	saved, err := s.orders.Create(ctx, order, lines)
	if err != nil {
		metrics.OrdersSubmitted.WithLabelValues("error").Inc()
		return nil, fmt.Errorf("failed to save order: %w", err)
	}

	metrics.OrdersSubmitted.WithLabelValues("accepted").Inc()
	metrics.OrderSubtotal.Observe(subtotal)
	log.Printf("✅ Submit: Order %s saved, subtotal=%.2f grandTotal=%.2f", saved.Reference, saved.Subtotal, saved.GrandTotal)

	if s.alerts != nil {
		requests := make([]StockRequest, 0, len(priced))
		for _, p := range priced {
			requests = append(requests, StockRequest{Record: p.record, Quantity: p.item.Quantity})
		}
		s.alerts.Check(ctx, saved.Reference, requests)
	}

	return saved, nil
}

// snapshotLines freezes priced lines into their stored form
func snapshotLines(priced []pricedLine) ([]models.OrderLine, error) {
	lines := make([]models.OrderLine, 0, len(priced))
	for i, p := range priced {
		dims, err := json.Marshal(p.item.Dimensions)
		if err != nil {
			return nil, fmt.Errorf("failed to encode dimensions for line %d: %w", i+1, err)
		}
		lines = append(lines, models.OrderLine{
			Position:    i + 1,
			ProductID:   p.item.ProductID,
			ProductName: p.record.Name,
			ProductType: string(p.item.ProductType),
			Quantity:    p.item.Quantity,
			UnitPrice:   p.item.UnitPrice,
			PricingUnit: string(p.item.PricingUnit),
			Dimensions:  dims,
			UnitValue:   p.item.UnitValue,
			TotalValue:  p.item.TotalValue,
			TotalPrice:  p.item.TotalPrice,
		})
	}
	return lines, nil
}

// Get returns a stored order with its lines
func (s *OrderService) Get(ctx context.Context, id int64) (*models.OrderResponse, error) {
	return s.orders.GetByID(ctx, id)
}

// List returns every stored order, newest first
func (s *OrderService) List(ctx context.Context) ([]models.OrderListItem, error) {
	return s.orders.List(ctx)
}
