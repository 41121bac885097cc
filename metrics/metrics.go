package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// PriceCalculations counts line item recalculations by unit and outcome
	PriceCalculations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pricing_calculations_total",
			Help: "Total number of line item price calculations",
		},
		[]string{"unit", "valid"},
	)

	// OrdersSubmitted counts order submissions by outcome
	OrdersSubmitted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "orders_submitted_total",
			Help: "Total number of order submissions",
		},
		[]string{"status"},
	)

	// OrderSubtotal tracks order subtotals before GST
	OrderSubtotal = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "order_subtotal_rupees",
			Help:    "Order subtotals in rupees before GST",
			Buckets: []float64{1000, 5000, 25000, 100000, 500000, 2500000},
		},
	)

	// StockAlerts counts stock shortfall alerts by delivery outcome
	StockAlerts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "stock_alerts_total",
			Help: "Total number of stock shortfall alerts",
		},
		[]string{"delivered"},
	)

	// CatalogRecordsSynced counts catalog rows imported by outcome
	CatalogRecordsSynced = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "catalog_records_synced_total",
			Help: "Total number of catalog records processed by the sheet import",
		},
		[]string{"result"},
	)
)

// statusRecorder captures the status code written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

// Middleware records request count and latency for a handler registered
// under endpoint
func Middleware(endpoint string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next(rec, r)

		RequestsTotal.WithLabelValues(r.Method, endpoint, strconv.Itoa(rec.status)).Inc()
		RequestDuration.WithLabelValues(r.Method, endpoint).Observe(time.Since(start).Seconds())
	}
}
