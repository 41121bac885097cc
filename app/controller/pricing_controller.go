package controller

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"carpet-erp/metrics"
	"carpet-erp/pricing"
	"carpet-erp/repository"
	"carpet-erp/utils"
)

// PricingController exposes the pricing engine over HTTP
type PricingController struct {
	catalog pricing.ProductCatalogLookup
}

// NewPricingController creates a new PricingController
func NewPricingController(catalog pricing.ProductCatalogLookup) *PricingController {
	return &PricingController{catalog: catalog}
}

// UnitsResponse lists the registered pricing units
type UnitsResponse struct {
	Units []pricing.UnitDescriptor `json:"units"`
}

// LineItemDisplay holds the money fields of a line item formatted for people
type LineItemDisplay struct {
	UnitPrice  string `json:"unitPrice"`
	TotalPrice string `json:"totalPrice"`
}

// LineItemResponse is a priced line item with the units it can switch to
type LineItemResponse struct {
	Item           pricing.LineItem    `json:"item"`
	SuggestedUnit  pricing.PricingUnit `json:"suggestedUnit"`
	AvailableUnits pricing.UnitSet     `json:"availableUnits"`
	Display        LineItemDisplay     `json:"display"`
}

// CalculateRequest is the state of a line item after a user edit.
// Dimensions may be sent directly; otherwise they are resolved from the
// catalog by productId. An empty pricingUnit keeps the suggested unit.
type CalculateRequest struct {
	ProductID   string                     `json:"productId"`
	ProductType string                     `json:"productType,omitempty"`
	Dimensions  *pricing.ProductDimensions `json:"dimensions,omitempty"`
	Quantity    int                        `json:"quantity"`
	UnitPrice   float64                    `json:"unitPrice"`
	PricingUnit string                     `json:"pricingUnit,omitempty"`
}

// SummaryRequest carries the line items of an order being built
type SummaryRequest struct {
	Items []pricing.LineItem `json:"items"`
}

// SummaryResponse is the order-level view with recomputed items
type SummaryResponse struct {
	pricing.Summary
	SubtotalDisplay string             `json:"subtotalDisplay"`
	Items           []pricing.LineItem `json:"items"`
}

func newLineItemResponse(item pricing.LineItem) LineItemResponse {
	return LineItemResponse{
		Item:           item,
		SuggestedUnit:  pricing.Suggest(item.Dimensions),
		AvailableUnits: pricing.Available(item.Dimensions),
		Display: LineItemDisplay{
			UnitPrice:  utils.FormatINR(item.UnitPrice),
			TotalPrice: utils.FormatINR(item.TotalPrice),
		},
	}
}

// ListUnits handles GET /pricing/units
func (c *PricingController) ListUnits(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, http.StatusOK, UnitsResponse{Units: pricing.ListUnits()}, "ListUnits")
}

// SelectProduct handles GET /pricing/products/{id}?type=carpet
// Example response:
// {
//   "item": {"productId": "CP-001", "quantity": 1, "unitPrice": 0, "pricingUnit": "sqm", ...},
//   "suggestedUnit": "sqm",
//   "availableUnits": ["piece", "roll", "unit", "meter", "sqm", "sqft", "yard"],
//   "display": {"unitPrice": "₹0.00", "totalPrice": "₹0.00"}
// }
func (c *PricingController) SelectProduct(w http.ResponseWriter, r *http.Request) {
	log.Printf("📥 SelectProduct: Received %s request to %s", r.Method, r.URL.Path)

	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID, tail := pathID(r.URL.Path, "/pricing/products/")
	if productID == "" || tail != "" {
		http.Error(w, "Product id is required", http.StatusBadRequest)
		return
	}

	var productType pricing.ProductType
	if t := r.URL.Query().Get("type"); t != "" {
		var err error
		if productType, err = pricing.ParseProductType(t); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	item, err := pricing.SelectProduct(r.Context(), c.catalog, productID, productType)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			http.Error(w, "Product not found", http.StatusNotFound)
			return
		}
		log.Printf("❌ SelectProduct: Error selecting product %s: %v", productID, err)
		http.Error(w, fmt.Sprintf("Failed to select product: %v", err), http.StatusInternalServerError)
		return
	}

	log.Printf("✅ SelectProduct: %s suggested unit=%s", productID, item.PricingUnit)
	writeJSON(w, http.StatusOK, newLineItemResponse(item), "SelectProduct")
}

// Calculate handles POST /pricing/calculate
// Example request:
// POST /pricing/calculate
// {
//   "productId": "CP-001",
//   "quantity": 2,
//   "unitPrice": 200,
//   "pricingUnit": "sqm"
// }
func (c *PricingController) Calculate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Printf("❌ Calculate: Failed to decode request body: %v", err)
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	var item pricing.LineItem
	switch {
	case req.Dimensions != nil:
		typeName := req.ProductType
		if typeName == "" {
			typeName = string(req.Dimensions.ProductType)
		}
		productType, err := pricing.ParseProductType(typeName)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		dims := *req.Dimensions
		dims.ProductType = productType
		item = pricing.NewLineItem(req.ProductID, dims)
	case req.ProductID != "":
		var productType pricing.ProductType
		if req.ProductType != "" {
			var err error
			if productType, err = pricing.ParseProductType(req.ProductType); err != nil {
				http.Error(w, err.Error(), http.StatusBadRequest)
				return
			}
		}
		var err error
		item, err = pricing.SelectProduct(r.Context(), c.catalog, req.ProductID, productType)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				http.Error(w, "Product not found", http.StatusNotFound)
				return
			}
			log.Printf("❌ Calculate: Error selecting product %s: %v", req.ProductID, err)
			http.Error(w, fmt.Sprintf("Failed to select product: %v", err), http.StatusInternalServerError)
			return
		}
	default:
		http.Error(w, "productId or dimensions is required", http.StatusBadRequest)
		return
	}

	edit := pricing.Edit{Quantity: &req.Quantity, UnitPrice: &req.UnitPrice}
	if req.PricingUnit != "" {
		unit, err := pricing.ParseUnit(req.PricingUnit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		edit.PricingUnit = &unit
	}

	item, err := item.Apply(edit)
	if err != nil {
		log.Printf("❌ Calculate: Rejected edit: %v", err)
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	metrics.PriceCalculations.WithLabelValues(string(item.PricingUnit), strconv.FormatBool(item.IsValid)).Inc()
	writeJSON(w, http.StatusOK, newLineItemResponse(item), "Calculate")
}

// checkLineItem rejects line items the calculator must never see
func checkLineItem(item pricing.LineItem) error {
	if _, err := pricing.Describe(item.PricingUnit); err != nil {
		return err
	}
	if item.Quantity < 0 {
		return pricing.ErrNegativeQuantity
	}
	if item.UnitPrice < 0 || math.IsNaN(item.UnitPrice) || math.IsInf(item.UnitPrice, 0) {
		return pricing.ErrInvalidUnitPrice
	}
	return nil
}

// Summary handles POST /pricing/summary
// Every item is recomputed before it is totaled; submitted totals are ignored.
func (c *PricingController) Summary(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req SummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	items := make([]pricing.LineItem, 0, len(req.Items))
	for i, item := range req.Items {
		if err := checkLineItem(item); err != nil {
			http.Error(w, fmt.Sprintf("item %d: %v", i+1, err), http.StatusBadRequest)
			return
		}
		if item.Dimensions.ProductType == "" {
			item.Dimensions.ProductType = item.ProductType
		}
		items = append(items, item.Recompute())
	}

	summary := pricing.Summarize(items)
	writeJSON(w, http.StatusOK, SummaryResponse{
		Summary:         summary,
		SubtotalDisplay: utils.FormatINR(summary.Subtotal),
		Items:           items,
	}, "Summary")
}
