package router

import (
	"net/http"
	"strings"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"carpet-erp/app/controller"
	"carpet-erp/metrics"
)

// Controllers groups the handlers SetupRoutes registers
type Controllers struct {
	Pricing *controller.PricingController
	Order   *controller.OrderController
	Catalog *controller.CatalogController
}

// pingHandler handles GET /ping
func pingHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status":"ok"}`))
}

func SetupRoutes(mux *http.ServeMux, controllers *Controllers) {
	// Ping endpoint
	mux.HandleFunc("/ping", pingHandler)

	// Prometheus scrape endpoint
	mux.Handle("/metrics", promhttp.Handler())

	// Pricing routes
	mux.HandleFunc("/pricing/units", metrics.Middleware("/pricing/units", controllers.Pricing.ListUnits))
	mux.HandleFunc("/pricing/products/", metrics.Middleware("/pricing/products/:id", controllers.Pricing.SelectProduct))
	mux.HandleFunc("/pricing/calculate", metrics.Middleware("/pricing/calculate", controllers.Pricing.Calculate))
	mux.HandleFunc("/pricing/summary", metrics.Middleware("/pricing/summary", controllers.Pricing.Summary))

	// Orders routes
	createOrder := metrics.Middleware("/orders", controllers.Order.CreateOrder)
	listOrders := metrics.Middleware("/orders", controllers.Order.ListOrders)
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			createOrder(w, r)
		} else if r.Method == http.MethodGet {
			listOrders(w, r)
		} else {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
	})

	getOrder := metrics.Middleware("/orders/:id", controllers.Order.GetOrder)
	downloadInvoice := metrics.Middleware("/orders/:id/invoice.pdf", controllers.Order.DownloadInvoice)
	mux.HandleFunc("/orders/", func(w http.ResponseWriter, r *http.Request) {
		path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/orders/"), "/")

		// Handle GET /orders/:id/invoice.pdf
		if strings.HasSuffix(path, "/invoice.pdf") {
			downloadInvoice(w, r)
			return
		}
		// Otherwise, treat as GET /orders/:id
		if !strings.Contains(path, "/") {
			getOrder(w, r)
			return
		}
		http.Error(w, "Not found", http.StatusNotFound)
	})

	// Catalog routes
	mux.HandleFunc("/catalog", metrics.Middleware("/catalog", controllers.Catalog.ListRecords))
	mux.HandleFunc("/catalog/sync", metrics.Middleware("/catalog/sync", controllers.Catalog.Sync))
	mux.HandleFunc("/catalog/", metrics.Middleware("/catalog/:id", controllers.Catalog.GetRecord))
}
