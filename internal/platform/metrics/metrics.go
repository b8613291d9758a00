package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the process-wide Prometheus metrics. Escrow ledger metrics
// live in their own package next to the escrow service.
type Metrics struct {
	SellersRegistered prometheus.Counter
	ProductsCreated   prometheus.Counter
	RequestDuration   *prometheus.HistogramVec
}

// New creates and registers all process-wide Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		SellersRegistered: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridev_sellers_registered_total",
			Help: "Total number of seller accounts registered",
		}),
		ProductsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridev_products_created_total",
			Help: "Total number of certification products listed",
		}),
		RequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "veridev_http_request_duration_seconds",
			Help:    "Duration of HTTP requests by method and path",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}, []string{"method", "path"}),
	}
}

// IncrementSellersRegistered records a successful seller registration.
func (m *Metrics) IncrementSellersRegistered() {
	m.SellersRegistered.Inc()
}

// IncrementProductsCreated records a successful product listing.
func (m *Metrics) IncrementProductsCreated() {
	m.ProductsCreated.Inc()
}

// ObserveRequest records the duration of an HTTP request.
func (m *Metrics) ObserveRequest(method, path string, start time.Time) {
	m.RequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
}
