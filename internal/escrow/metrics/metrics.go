package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the escrow module.
// Tracks certificate lifecycle counts and critical path durations.
type Metrics struct {
	CertificatesPurchased prometheus.Counter
	CertificatesCompleted prometheus.Counter
	CertificatesRefunded  prometheus.Counter
	PurchaseDuration      prometheus.Histogram
	FinalizeDuration      prometheus.Histogram
}

// New creates a new Metrics instance with all escrow module metrics registered.
func New() *Metrics {
	return &Metrics{
		CertificatesPurchased: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridev_certificates_purchased_total",
			Help: "Total number of certification purchases",
		}),
		CertificatesCompleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridev_certificates_completed_total",
			Help: "Total number of completed certifications",
		}),
		CertificatesRefunded: promauto.NewCounter(prometheus.CounterOpts{
			Name: "veridev_certificates_refunded_total",
			Help: "Total number of refunded certifications",
		}),
		PurchaseDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veridev_purchase_duration_seconds",
			Help:    "Duration of Purchase operations (escrow funding path)",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
		FinalizeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "veridev_finalize_duration_seconds",
			Help:    "Duration of Complete and Refund operations",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementPurchased records a successful certification purchase.
func (m *Metrics) IncrementPurchased() {
	m.CertificatesPurchased.Inc()
}

// IncrementCompleted records a successful certification completion.
func (m *Metrics) IncrementCompleted() {
	m.CertificatesCompleted.Inc()
}

// IncrementRefunded records a successful certification refund.
func (m *Metrics) IncrementRefunded() {
	m.CertificatesRefunded.Inc()
}

// ObservePurchase records the duration of a Purchase operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObservePurchase(start time.Time) {
	m.PurchaseDuration.Observe(time.Since(start).Seconds())
}

// ObserveFinalize records the duration of a Complete or Refund operation.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveFinalize(start time.Time) {
	m.FinalizeDuration.Observe(time.Since(start).Seconds())
}
